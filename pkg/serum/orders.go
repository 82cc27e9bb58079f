package serum

import (
	"context"

	log "github.com/sirupsen/logrus"

	"serumgw/pkg/connector"
	"serumgw/pkg/order"
)

// openOrdersFor lists the owner's resting orders, converted to canonical
// orders. marketName narrows the query; empty means all markets. Records on
// markets missing from the registry are skipped, not errored: the venue may
// list markets the gateway does not track.
func (c *SerumConnector) openOrdersFor(ctx context.Context, owner, marketName string) ([]*order.Order, error) {
	address, err := c.selectorAddress(marketName)
	if err != nil {
		return nil, err
	}
	records, err := c.provider.OpenOrders(ctx, owner, address)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(records))
	for _, rec := range records {
		m, ok := c.marketByAddress(rec.MarketAddress)
		if !ok {
			log.Warnf("🚩 open order %v on untracked market %v, skipping", rec.ExchangeID, rec.MarketAddress)
			continue
		}
		orders = append(orders, openOrderFromRecord(rec, m.Name))
	}
	return orders, nil
}

// filledOrdersFor lists the owner's recent fills as FILLED orders.
func (c *SerumConnector) filledOrdersFor(ctx context.Context, owner, marketName string) ([]*order.Order, error) {
	address, err := c.selectorAddress(marketName)
	if err != nil {
		return nil, err
	}
	records, err := c.provider.FilledOrders(ctx, owner, address, FILLS_QUERY_LIMIT)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(records))
	for _, rec := range records {
		m, ok := c.marketByAddress(rec.MarketAddress)
		if !ok {
			log.Warnf("🚩 fill %v on untracked market %v, skipping", rec.ExchangeID, rec.MarketAddress)
			continue
		}
		orders = append(orders, filledOrderFromRecord(rec, m.Name))
	}
	return orders, nil
}

// findOrder resolves one identity key against a candidate pool; the key may
// be either the client id or the venue id.
func findOrder(orders []*order.Order, key string) *order.Order {
	for _, o := range orders {
		if o.MatchesID(key) {
			return o
		}
	}
	return nil
}

// groupByMarket builds the nested response mapping, later entries winning on
// identity collisions (fills supersede stale open records).
func groupByMarket(orders []*order.Order) map[string]map[string]*order.Order {
	grouped := make(map[string]map[string]*order.Order)
	for _, o := range orders {
		byKey, ok := grouped[o.MarketName]
		if !ok {
			byKey = make(map[string]*order.Order)
			grouped[o.MarketName] = byKey
		}
		byKey[o.Key()] = o
	}
	return grouped
}

func singularKey(id, exchangeID string) string {
	if id != "" {
		return id
	}
	return exchangeID
}

// ordersResponse assembles the cardinality-shaped response from a candidate
// pool. For one/many selectors each key must resolve or the whole request
// fails with ORDER_NOT_FOUND; a plural selector answers flat, keyed by the
// requested identities, and a none selector returns the full pool nested by
// market.
func ordersResponse(req connector.GetOrdersRequest, pool []*order.Order) (*connector.GetOrdersResponse, error) {
	card := req.Cardinality()
	res := &connector.GetOrdersResponse{Kind: connector.KindFor(card, true)}

	switch card {
	case connector.CardinalityOne:
		key := singularKey(req.ID, req.ExchangeID)
		o := findOrder(pool, key)
		if o == nil {
			return nil, connector.OrderNotFound(key)
		}
		res.Order = o
	case connector.CardinalityMany:
		keys := append(append([]string{}, req.IDs...), req.ExchangeIDs...)
		res.Orders = make(map[string]*order.Order, len(keys))
		for _, key := range keys {
			o := findOrder(pool, key)
			if o == nil {
				return nil, connector.OrderNotFound(key)
			}
			res.Orders[key] = o
		}
	default:
		res.OrdersByMarket = groupByMarket(pool)
	}
	return res, nil
}

// GetOrders searches the owner's open orders first, then recent fills, so a
// lookup by either identity key resolves wherever the order currently lives.
func (c *SerumConnector) GetOrders(ctx context.Context, req connector.GetOrdersRequest) (*connector.GetOrdersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	open, err := c.openOrdersFor(ctx, req.OwnerAddress, req.MarketName)
	if err != nil {
		return nil, err
	}
	filled, err := c.filledOrdersFor(ctx, req.OwnerAddress, req.MarketName)
	if err != nil {
		return nil, err
	}
	return ordersResponse(req, append(open, filled...))
}

func (c *SerumConnector) GetOpenOrders(ctx context.Context, req connector.GetOpenOrdersRequest) (*connector.GetOpenOrdersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	open, err := c.openOrdersFor(ctx, req.OwnerAddress, req.MarketName)
	if err != nil {
		return nil, err
	}
	return ordersResponse(req, open)
}

func (c *SerumConnector) GetFilledOrders(ctx context.Context, req connector.GetFilledOrdersRequest) (*connector.GetFilledOrdersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filled, err := c.filledOrdersFor(ctx, req.OwnerAddress, req.MarketName)
	if err != nil {
		return nil, err
	}
	return ordersResponse(req, filled)
}
