package serum

import (
	"time"

	"serumgw/pkg/connector"
	"serumgw/pkg/market"
	"serumgw/pkg/provider"
	"serumgw/pkg/snapshot"
	"serumgw/pkg/solana"
	"serumgw/pkg/types"
)

const (
	DEFAULT_ACK_TIMEOUT_MS = 10000
	FILLS_QUERY_LIMIT      = 1000
)

type Options struct {
	// AckTimeout bounds how long a single submission or cancellation waits
	// for venue acknowledgment before the order is marked TIMED_OUT.
	AckTimeout time.Duration

	// Snapshots, when set, caches the market listing so the gateway can boot
	// while the venue listing endpoint is down.
	Snapshots   snapshot.Store
	SnapshotKey string

	// WsURL enables StreamOrderBooks when set.
	WsURL string
}

// SerumConnector normalizes the Serum DEX into the venue-agnostic connector
// surface. All market reads go through the in-memory registry; the provider
// is only hit for live book/order/trade state and submissions.
type SerumConnector struct {
	provider provider.Provider
	registry *market.Registry

	ackTimeout  time.Duration
	snapshots   snapshot.Store
	snapshotKey string
	wsURL       string
}

var _ connector.Connector = (*SerumConnector)(nil)

func New(p provider.Provider, opts Options) *SerumConnector {
	ackTimeout := opts.AckTimeout
	if ackTimeout <= 0 {
		ackTimeout = DEFAULT_ACK_TIMEOUT_MS * time.Millisecond
	}
	snapshotKey := opts.SnapshotKey
	if snapshotKey == "" {
		snapshotKey = "serum-markets.bin"
	}
	return &SerumConnector{
		provider:    p,
		registry:    market.NewRegistry(),
		ackTimeout:  ackTimeout,
		snapshots:   opts.Snapshots,
		snapshotKey: snapshotKey,
		wsURL:       opts.WsURL,
	}
}

func (c *SerumConnector) Name() types.ConnectorName {
	return types.ConnectorSerum
}

// resolveMarket looks a market up by canonical name.
func (c *SerumConnector) resolveMarket(name string) (*market.Market, error) {
	m, ok := c.registry.ByName(name)
	if !ok {
		return nil, connector.MarketNotFound(name)
	}
	return m, nil
}

// marketByAddress maps a venue-reported market address back to the canonical
// market.
func (c *SerumConnector) marketByAddress(address solana.PublicKey) (*market.Market, bool) {
	for _, m := range c.registry.All() {
		if m.Address.Equals(address) {
			return m, true
		}
	}
	return nil, false
}
