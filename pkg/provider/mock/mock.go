package mock

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"serumgw/pkg/market"
	"serumgw/pkg/provider"
	"serumgw/pkg/solana"
)

// Provider is an in-memory venue for tests and local runs. State is seeded
// directly on the struct; submissions and cancels mutate the open-order set
// the way the real venue would.
type Provider struct {
	mu sync.Mutex

	Listings []market.BasicMarket
	Attrs    map[string]market.Attributes      // by market address
	Books    map[string]*provider.BookSnapshot // by market address
	Trades   map[string][]provider.TradeRecord // by market address
	Open     map[string][]provider.OrderRecord // by owner
	Fills    map[string][]provider.FillRecord  // by owner

	// knobs
	SubmitDelay time.Duration // simulated venue latency on submissions
	FailSubmit  error         // returned by SubmitOrder when set
	KeepOnBook  bool          // cancels succeed but leave the order resting

	SubmitCalls int
	CancelCalls int

	seq int
}

func New() *Provider {
	return &Provider{
		Attrs:  make(map[string]market.Attributes),
		Books:  make(map[string]*provider.BookSnapshot),
		Trades: make(map[string][]provider.TradeRecord),
		Open:   make(map[string][]provider.OrderRecord),
		Fills:  make(map[string][]provider.FillRecord),
	}
}

func (p *Provider) ListMarkets(_ context.Context) ([]market.BasicMarket, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]market.BasicMarket{}, p.Listings...), nil
}

func (p *Provider) LoadMarket(_ context.Context, address solana.PublicKey) (market.Attributes, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	attrs, exists := p.Attrs[address.String()]
	if !exists {
		return market.Attributes{}, fmt.Errorf("no attributes seeded for market %v", address)
	}
	return attrs, nil
}

func (p *Provider) FetchBook(_ context.Context, address solana.PublicKey) (*provider.BookSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	snapshot, exists := p.Books[address.String()]
	if !exists {
		return &provider.BookSnapshot{}, nil
	}
	return snapshot, nil
}

func (p *Provider) RecentTrades(_ context.Context, address solana.PublicKey, limit int) ([]provider.TradeRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	trades := p.Trades[address.String()]
	if limit > 0 && len(trades) > limit {
		trades = trades[:limit]
	}
	return append([]provider.TradeRecord{}, trades...), nil
}

func (p *Provider) OpenOrders(_ context.Context, owner string, address solana.PublicKey) ([]provider.OrderRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []provider.OrderRecord
	for _, record := range p.Open[owner] {
		if !address.IsZero() && !record.MarketAddress.Equals(address) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (p *Provider) FilledOrders(_ context.Context, owner string, address solana.PublicKey, limit int) ([]provider.FillRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []provider.FillRecord
	for _, fill := range p.Fills[owner] {
		if !address.IsZero() && !fill.MarketAddress.Equals(address) {
			continue
		}
		out = append(out, fill)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (p *Provider) SubmitOrder(ctx context.Context, req provider.SubmitOrderRequest) (provider.SubmitReceipt, error) {
	if p.SubmitDelay > 0 {
		select {
		case <-time.After(p.SubmitDelay):
		case <-ctx.Done():
			return provider.SubmitReceipt{}, ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.SubmitCalls++
	if p.FailSubmit != nil {
		return provider.SubmitReceipt{}, p.FailSubmit
	}

	p.seq++
	exchangeID := "mock-" + strconv.Itoa(p.seq)
	p.Open[req.Owner] = append(p.Open[req.Owner], provider.OrderRecord{
		ExchangeID:    exchangeID,
		ClientID:      req.ClientID,
		Owner:         req.Owner,
		MarketAddress: req.MarketAddress,
		Price:         req.Price,
		Size:          req.Amount,
		Side:          req.Side,
	})
	return provider.SubmitReceipt{
		Signature:  "sig-" + exchangeID,
		ExchangeID: exchangeID,
	}, nil
}

func (p *Provider) CancelOrder(_ context.Context, req provider.CancelOrderRequest) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.CancelCalls++
	if p.KeepOnBook {
		return "sig-cancel-unconfirmed", nil
	}

	remaining := p.Open[req.Owner][:0]
	for _, record := range p.Open[req.Owner] {
		matched := (req.ExchangeID != "" && record.ExchangeID == req.ExchangeID) ||
			(req.ClientID != "" && record.ClientID == req.ClientID)
		if !matched {
			remaining = append(remaining, record)
		}
	}
	p.Open[req.Owner] = remaining
	return "sig-cancel", nil
}
