package serum

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"serumgw/pkg/connector"
	"serumgw/pkg/market"
	"serumgw/pkg/order"
	"serumgw/pkg/provider"
	"serumgw/pkg/types"
)

type submission struct {
	entry  connector.CreateOrder
	market *market.Market
	order  *order.Order
	err    error
}

// CreateOrders validates every entry first, then submits the valid ones
// concurrently. Batch entries fail independently; a singular request surfaces
// its entry's error directly.
func (c *SerumConnector) CreateOrders(ctx context.Context, req connector.CreateOrdersRequest) (*connector.CreateOrdersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entries := req.Entries()
	subs := make([]*submission, len(entries))
	for i, e := range entries {
		subs[i] = c.prepare(e)
	}

	var wg sync.WaitGroup
	for _, sub := range subs {
		if sub.err != nil {
			continue
		}
		wg.Add(1)
		go func(sub *submission) {
			defer wg.Done()
			c.submitOrder(ctx, sub)
		}(sub)
	}
	wg.Wait()

	card := req.Cardinality()
	res := &connector.CreateOrdersResponse{Kind: connector.KindFor(card, false)}

	if card == connector.CardinalityOne {
		sub := subs[0]
		if sub.err != nil {
			return nil, sub.err
		}
		res.Order = sub.order
		return res, nil
	}

	res.Results = make(map[string]connector.OrderResult, len(subs))
	for _, sub := range subs {
		res.Results[sub.order.ID] = connector.OrderResult{Order: sub.order, Err: sub.err}
	}
	return res, nil
}

// prepare resolves the market, assigns a client id when absent, and runs all
// local validation. Entries that fail here never reach the venue.
func (c *SerumConnector) prepare(e connector.CreateOrder) *submission {
	id := e.ID
	if id == "" {
		id = uuid.NewString()
	}

	o := order.New(id, e.MarketName)
	o.OwnerAddress = e.OwnerAddress
	o.Price = e.Price
	o.Amount = e.Amount
	o.Side = e.Side
	o.Type = e.Type
	if o.Type == "" {
		o.Type = types.OrderTypeLimit
	}

	sub := &submission{entry: e, order: o}
	m, err := c.resolveMarket(e.MarketName)
	if err != nil {
		sub.err = err
		sub.order.Transition(types.OrderStatusFailed)
		return sub
	}
	sub.market = m
	if err := validateCreate(m, e); err != nil {
		sub.err = err
		sub.order.Transition(types.OrderStatusFailed)
	}
	return sub
}

func (c *SerumConnector) submitOrder(ctx context.Context, sub *submission) {
	subCtx, cancel := context.WithTimeout(ctx, c.ackTimeout)
	defer cancel()

	receipt, err := c.provider.SubmitOrder(subCtx, provider.SubmitOrderRequest{
		MarketAddress: sub.market.Address,
		Owner:         sub.entry.OwnerAddress,
		Payer:         sub.entry.PayerAddress,
		ClientID:      sub.order.ID,
		Side:          sub.order.Side,
		Price:         sub.order.Price,
		Amount:        sub.order.Amount,
		Type:          sub.order.Type,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			sub.order.Transition(types.OrderStatusTimedOut)
			sub.err = connector.TimeoutError("no venue acknowledgment for order %v within %v", sub.order.ID, c.ackTimeout)
		} else {
			sub.order.Transition(types.OrderStatusFailed)
			sub.err = err
		}
		return
	}

	sub.order.ExchangeID = receipt.ExchangeID
	sub.order.Signature = receipt.Signature
	sub.order.Transition(types.OrderStatusOpen)
}
