package provider

import (
	"context"

	"serumgw/pkg/market"
	"serumgw/pkg/solana"
	"serumgw/pkg/types"
)

// Provider is the adapter boundary to the venue SDK/data node. Domain
// entities never hold provider objects; the connector converts these records
// at read time and drops them.
type Provider interface {
	// ListMarkets returns the venue's raw market listing, entries in either
	// the plain or the fat descriptor flavor.
	ListMarkets(ctx context.Context) ([]market.BasicMarket, error)

	// LoadMarket fetches the on-chain numeric parameters of one market.
	LoadMarket(ctx context.Context, address solana.PublicKey) (market.Attributes, error)

	// FetchBook returns one consistent snapshot of both book sides; bids and
	// asks always come from the same slot.
	FetchBook(ctx context.Context, address solana.PublicKey) (*BookSnapshot, error)

	// RecentTrades returns the latest trades for a market, newest first.
	RecentTrades(ctx context.Context, address solana.PublicKey, limit int) ([]TradeRecord, error)

	// OpenOrders lists the owner's resting orders; a zero address means all
	// markets.
	OpenOrders(ctx context.Context, owner string, address solana.PublicKey) ([]OrderRecord, error)

	// FilledOrders lists the owner's recent fills; a zero address means all
	// markets.
	FilledOrders(ctx context.Context, owner string, address solana.PublicKey, limit int) ([]FillRecord, error)

	SubmitOrder(ctx context.Context, req SubmitOrderRequest) (SubmitReceipt, error)
	CancelOrder(ctx context.Context, req CancelOrderRequest) (signature string, err error)
}

// OrderRecord is one resting order as the venue reports it.
type OrderRecord struct {
	ExchangeID    string
	ClientID      string
	Owner         string
	MarketAddress solana.PublicKey
	Price         float64
	Size          float64
	Side          types.OrderSide
}

// BookSnapshot is a single consistent read of one market's book.
type BookSnapshot struct {
	Slot uint64
	Bids []OrderRecord
	Asks []OrderRecord
}

type TradeRecord struct {
	Price     float64
	Size      float64
	Side      types.OrderSide
	Fee       float64
	Timestamp int64 // unix ms
}

type FillRecord struct {
	OrderRecord
	Fee       float64
	Timestamp int64 // unix ms
}

type SubmitOrderRequest struct {
	MarketAddress solana.PublicKey
	Owner         string
	Payer         string
	ClientID      string
	Side          types.OrderSide
	Price         float64
	Amount        float64
	Type          types.OrderType
}

// SubmitReceipt is the venue acknowledgment: the transaction signature and,
// when already assigned, the venue-side order id.
type SubmitReceipt struct {
	Signature  string
	ExchangeID string
}

type CancelOrderRequest struct {
	MarketAddress solana.PublicKey
	Owner         string
	ExchangeID    string
	ClientID      string
}
