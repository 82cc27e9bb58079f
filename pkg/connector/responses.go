package connector

import (
	"encoding/json"

	"serumgw/pkg/book"
	"serumgw/pkg/market"
	"serumgw/pkg/order"
	"serumgw/pkg/ticker"
)

// Response shapes mirror selector cardinality: a singular selector yields the
// single-entity field, plural/none selectors yield the mapping. The Kind tag
// states which variant is populated; it always equals the shape implied by
// the request's Cardinality().

type GetMarketsResponse struct {
	Kind    ResponseKind              `json:"kind"`
	Market  *market.Market            `json:"market,omitempty"`
	Markets map[string]*market.Market `json:"markets,omitempty"`
}

type GetOrderBooksResponse struct {
	Kind  ResponseKind               `json:"kind"`
	Book  *book.OrderBook            `json:"book,omitempty"`
	Books map[string]*book.OrderBook `json:"books,omitempty"`
}

type GetTickersResponse struct {
	Kind    ResponseKind              `json:"kind"`
	Ticker  *ticker.Ticker            `json:"ticker,omitempty"`
	Tickers map[string]*ticker.Ticker `json:"tickers,omitempty"`
}

// GetOrdersResponse carries one of three shapes: a single order, a flat map
// keyed by the requested identities for a plural id selector, or the full
// market name -> order identity -> order nesting when no selector narrows it.
type GetOrdersResponse struct {
	Kind           ResponseKind                       `json:"kind"`
	Order          *order.Order                       `json:"order,omitempty"`
	Orders         map[string]*order.Order            `json:"orders,omitempty"`
	OrdersByMarket map[string]map[string]*order.Order `json:"ordersByMarket,omitempty"`
}

type GetOpenOrdersResponse = GetOrdersResponse
type GetFilledOrdersResponse = GetOrdersResponse

// OrderResult is one batch entry's independent outcome: the resulting order
// or the typed error that felled this entry alone.
type OrderResult struct {
	Order *order.Order
	Err   error
}

func (r OrderResult) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		payload := struct {
			Error string    `json:"error"`
			Kind  ErrorKind `json:"kind,omitempty"`
		}{Error: r.Err.Error()}
		if ce, ok := r.Err.(*Error); ok {
			payload.Kind = ce.Kind
		}
		return json.Marshal(payload)
	}
	return json.Marshal(struct {
		Order *order.Order `json:"order"`
	}{r.Order})
}

// CreateOrdersResponse reports batch entries keyed by client order id.
type CreateOrdersResponse struct {
	Kind    ResponseKind           `json:"kind"`
	Order   *order.Order           `json:"order,omitempty"`
	Results map[string]OrderResult `json:"results,omitempty"`
}

// CancelOrdersResponse reports batch entries keyed by the selector that
// addressed them.
type CancelOrdersResponse struct {
	Kind    ResponseKind           `json:"kind"`
	Order   *order.Order           `json:"order,omitempty"`
	Results map[string]OrderResult `json:"results,omitempty"`
}

// MarketErrorKey keys a whole-market failure inside a sweep result map, for
// when the owner's open orders on that market could not even be listed.
const MarketErrorKey = "*"

// CancelOpenOrdersResponse reports swept orders: flat for a single-market
// selector, grouped by market otherwise.
type CancelOpenOrdersResponse struct {
	Kind            ResponseKind                      `json:"kind"`
	Results         map[string]OrderResult            `json:"results,omitempty"`
	ResultsByMarket map[string]map[string]OrderResult `json:"resultsByMarket,omitempty"`
}
