package serum

import (
	"context"
	"errors"
	"sync"

	"serumgw/pkg/connector"
	"serumgw/pkg/market"
	"serumgw/pkg/order"
	"serumgw/pkg/provider"
	"serumgw/pkg/types"
)

// CancelOrders cancels the selected open orders. Batch entries are keyed by
// the selector that addressed them and fail independently; a singular request
// surfaces its entry's error directly.
func (c *SerumConnector) CancelOrders(ctx context.Context, req connector.CancelOrdersRequest) (*connector.CancelOrdersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	open, err := c.openOrdersFor(ctx, req.OwnerAddress, req.MarketName)
	if err != nil {
		return nil, err
	}

	card := req.Cardinality()
	res := &connector.CancelOrdersResponse{Kind: connector.KindFor(card, false)}

	if card == connector.CardinalityOne {
		key := singularKey(req.ID, req.ExchangeID)
		target := findOrder(open, key)
		if target == nil {
			return nil, connector.OrderNotFound(key)
		}
		if err := c.cancelOne(ctx, req.OwnerAddress, target); err != nil {
			return nil, err
		}
		res.Order = target
		return res, nil
	}

	keys := append(append([]string{}, req.IDs...), req.ExchangeIDs...)
	results := make(map[string]connector.OrderResult, len(keys))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, key := range keys {
		target := findOrder(open, key)
		if target == nil {
			results[key] = connector.OrderResult{Err: connector.OrderNotFound(key)}
			continue
		}
		wg.Add(1)
		go func(key string, target *order.Order) {
			defer wg.Done()
			err := c.cancelOne(ctx, req.OwnerAddress, target)
			mu.Lock()
			results[key] = connector.OrderResult{Order: target, Err: err}
			mu.Unlock()
		}(key, target)
	}
	wg.Wait()

	res.Results = results
	return res, nil
}

// CancelOpenOrders sweeps every open order of the owner on the selected
// markets, grouping outcomes by market.
func (c *SerumConnector) CancelOpenOrders(ctx context.Context, req connector.CancelOpenOrdersRequest) (*connector.CancelOpenOrdersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	markets, err := c.resolveMarketSelector(req.MarketName, req.MarketNames)
	if err != nil {
		return nil, err
	}

	card := req.Cardinality()
	res := &connector.CancelOpenOrdersResponse{Kind: connector.SweepKindFor(card)}

	byMarket := make(map[string]map[string]connector.OrderResult, len(markets))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, m := range markets {
		open, err := c.openOrdersFor(ctx, req.OwnerAddress, m.Name)
		if err != nil {
			// one market's listing failure must not fell the sibling sweeps
			byMarket[m.Name] = map[string]connector.OrderResult{
				connector.MarketErrorKey: {Err: err},
			}
			continue
		}
		byKey := make(map[string]connector.OrderResult, len(open))
		byMarket[m.Name] = byKey
		for _, target := range open {
			wg.Add(1)
			go func(byKey map[string]connector.OrderResult, target *order.Order) {
				defer wg.Done()
				err := c.cancelOne(ctx, req.OwnerAddress, target)
				mu.Lock()
				byKey[target.Key()] = connector.OrderResult{Order: target, Err: err}
				mu.Unlock()
			}(byKey, target)
		}
	}
	wg.Wait()

	if card == connector.CardinalityOne {
		res.Results = byMarket[markets[0].Name]
		return res, nil
	}
	res.ResultsByMarket = byMarket
	return res, nil
}

// cancelOne submits the cancellation and confirms removal by re-listing the
// owner's open orders. An acknowledged cancel whose removal cannot be
// confirmed leaves the order UNKNOWN rather than guessing.
func (c *SerumConnector) cancelOne(ctx context.Context, owner string, target *order.Order) error {
	m, err := c.resolveMarket(target.MarketName)
	if err != nil {
		return err
	}

	subCtx, cancel := context.WithTimeout(ctx, c.ackTimeout)
	defer cancel()

	sig, err := c.provider.CancelOrder(subCtx, provider.CancelOrderRequest{
		MarketAddress: m.Address,
		Owner:         owner,
		ExchangeID:    target.ExchangeID,
		ClientID:      target.ID,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			target.Transition(types.OrderStatusUnknown)
			return connector.TimeoutError("no venue acknowledgment canceling order %v within %v", target.Key(), c.ackTimeout)
		}
		target.Transition(types.OrderStatusFailed)
		return err
	}
	target.Signature = sig

	c.confirmCancel(ctx, owner, m, target)
	return nil
}

// confirmCancel flips the order to CANCELED once it is gone from the book.
// While the venue still lists it, or the confirmation read fails, the order
// stays UNKNOWN until a later poll settles it.
func (c *SerumConnector) confirmCancel(ctx context.Context, owner string, m *market.Market, target *order.Order) {
	still, err := c.provider.OpenOrders(ctx, owner, m.Address)
	if err != nil {
		target.Transition(types.OrderStatusUnknown)
		return
	}
	for _, rec := range still {
		if (target.ExchangeID != "" && rec.ExchangeID == target.ExchangeID) ||
			(target.ID != "" && rec.ClientID == target.ID) {
			target.Transition(types.OrderStatusUnknown)
			return
		}
	}
	target.Transition(types.OrderStatusCanceled)
}
