package connector

import "serumgw/pkg/types"

// Every operation family accepts a selector of cardinality none (all
// matching entities), one, or many. A request with both the singular and the
// plural selector populated is malformed and rejected before any network
// call.

type GetMarketsRequest struct {
	Name  string   `json:"name,omitempty"`
	Names []string `json:"names,omitempty"`
}

func (r GetMarketsRequest) Cardinality() Cardinality {
	return nameCardinality(r.Name, r.Names)
}

func (r GetMarketsRequest) Validate() error {
	if r.Name != "" && len(r.Names) > 0 {
		return ValidationError("both name and names set in markets request")
	}
	return nil
}

type GetOrderBooksRequest struct {
	MarketName  string   `json:"marketName,omitempty"`
	MarketNames []string `json:"marketNames,omitempty"`
}

func (r GetOrderBooksRequest) Cardinality() Cardinality {
	return nameCardinality(r.MarketName, r.MarketNames)
}

func (r GetOrderBooksRequest) Validate() error {
	if r.MarketName != "" && len(r.MarketNames) > 0 {
		return ValidationError("both marketName and marketNames set in order books request")
	}
	return nil
}

type GetTickersRequest struct {
	MarketName  string   `json:"marketName,omitempty"`
	MarketNames []string `json:"marketNames,omitempty"`
}

func (r GetTickersRequest) Cardinality() Cardinality {
	return nameCardinality(r.MarketName, r.MarketNames)
}

func (r GetTickersRequest) Validate() error {
	if r.MarketName != "" && len(r.MarketNames) > 0 {
		return ValidationError("both marketName and marketNames set in tickers request")
	}
	return nil
}

// GetOrdersRequest selects orders by client and/or venue identity for one
// owner. With no identity selector it targets all of the owner's orders,
// optionally narrowed to one market.
type GetOrdersRequest struct {
	ID          string   `json:"id,omitempty"`
	ExchangeID  string   `json:"exchangeId,omitempty"`
	IDs         []string `json:"ids,omitempty"`
	ExchangeIDs []string `json:"exchangeIds,omitempty"`

	MarketName   string `json:"marketName,omitempty"`
	OwnerAddress string `json:"ownerAddress"`
}

func (r GetOrdersRequest) Cardinality() Cardinality {
	return idCardinality(r.ID, r.ExchangeID, r.IDs, r.ExchangeIDs)
}

func (r GetOrdersRequest) Validate() error {
	if r.OwnerAddress == "" {
		return ValidationError("ownerAddress is required in orders request")
	}
	return validateIDSelector(r.ID, r.ExchangeID, r.IDs, r.ExchangeIDs)
}

// GetOpenOrdersRequest and GetFilledOrdersRequest carry the same selector
// shape as GetOrdersRequest but address only one lifecycle slice.
type GetOpenOrdersRequest = GetOrdersRequest
type GetFilledOrdersRequest = GetOrdersRequest

// CreateOrder is one order to submit. ID is optional; the connector assigns
// a client id when absent.
type CreateOrder struct {
	ID           string          `json:"id,omitempty"`
	MarketName   string          `json:"marketName"`
	OwnerAddress string          `json:"ownerAddress"`
	PayerAddress string          `json:"payerAddress"`
	Side         types.OrderSide `json:"side"`
	Price        float64         `json:"price"`
	Amount       float64         `json:"amount"`
	Type         types.OrderType `json:"type,omitempty"`
}

type CreateOrdersRequest struct {
	Order  *CreateOrder  `json:"order,omitempty"`
	Orders []CreateOrder `json:"orders,omitempty"`
}

func (r CreateOrdersRequest) Cardinality() Cardinality {
	if r.Order != nil {
		return CardinalityOne
	}
	return CardinalityMany
}

func (r CreateOrdersRequest) Validate() error {
	if r.Order != nil && len(r.Orders) > 0 {
		return ValidationError("both order and orders set in create request")
	}
	if r.Order == nil && len(r.Orders) == 0 {
		return ValidationError("create request has no orders")
	}
	return nil
}

// Entries returns the submission list regardless of request flavor.
func (r CreateOrdersRequest) Entries() []CreateOrder {
	if r.Order != nil {
		return []CreateOrder{*r.Order}
	}
	return r.Orders
}

type CancelOrdersRequest struct {
	ID          string   `json:"id,omitempty"`
	ExchangeID  string   `json:"exchangeId,omitempty"`
	IDs         []string `json:"ids,omitempty"`
	ExchangeIDs []string `json:"exchangeIds,omitempty"`

	MarketName   string `json:"marketName"`
	OwnerAddress string `json:"ownerAddress"`
}

func (r CancelOrdersRequest) Cardinality() Cardinality {
	return idCardinality(r.ID, r.ExchangeID, r.IDs, r.ExchangeIDs)
}

func (r CancelOrdersRequest) Validate() error {
	if r.OwnerAddress == "" {
		return ValidationError("ownerAddress is required in cancel request")
	}
	if err := validateIDSelector(r.ID, r.ExchangeID, r.IDs, r.ExchangeIDs); err != nil {
		return err
	}
	if r.Cardinality() == CardinalityNone {
		return ValidationError("cancel request has no order selector; use cancel open orders to sweep")
	}
	return nil
}

// CancelOpenOrdersRequest sweeps every open order of one owner, optionally
// narrowed to one or many markets.
type CancelOpenOrdersRequest struct {
	MarketName   string   `json:"marketName,omitempty"`
	MarketNames  []string `json:"marketNames,omitempty"`
	OwnerAddress string   `json:"ownerAddress"`
}

func (r CancelOpenOrdersRequest) Cardinality() Cardinality {
	return nameCardinality(r.MarketName, r.MarketNames)
}

func (r CancelOpenOrdersRequest) Validate() error {
	if r.OwnerAddress == "" {
		return ValidationError("ownerAddress is required in cancel open orders request")
	}
	if r.MarketName != "" && len(r.MarketNames) > 0 {
		return ValidationError("both marketName and marketNames set in cancel open orders request")
	}
	return nil
}

func nameCardinality(name string, names []string) Cardinality {
	if name != "" {
		return CardinalityOne
	}
	if len(names) > 0 {
		return CardinalityMany
	}
	return CardinalityNone
}

func idCardinality(id, exchangeID string, ids, exchangeIDs []string) Cardinality {
	if id != "" || exchangeID != "" {
		return CardinalityOne
	}
	if len(ids) > 0 || len(exchangeIDs) > 0 {
		return CardinalityMany
	}
	return CardinalityNone
}

func validateIDSelector(id, exchangeID string, ids, exchangeIDs []string) error {
	singular := id != "" || exchangeID != ""
	plural := len(ids) > 0 || len(exchangeIDs) > 0
	if singular && plural {
		return ValidationError("both singular and plural order selectors set")
	}
	return nil
}
