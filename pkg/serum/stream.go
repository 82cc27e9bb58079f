package serum

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"serumgw/pkg/book"
	"serumgw/pkg/market"
	"serumgw/pkg/order"
	"serumgw/pkg/provider"
)

// StreamOrderBooks subscribes to one market's live book feed. Every event is
// a whole snapshot; onBook receives the rebuilt typed book per event and
// never a patched one. The returned stop channel closes the stream; done
// closes once the stream winds down.
func (c *SerumConnector) StreamOrderBooks(ctx context.Context, marketName string, onBook func(*book.OrderBook)) (doneC chan struct{}, stopC chan struct{}, err error) {
	if c.wsURL == "" {
		return nil, nil, fmt.Errorf("no websocket url configured for connector %v", c.Name())
	}
	m, err := c.resolveMarket(marketName)
	if err != nil {
		return nil, nil, err
	}

	stream, err := provider.NewBookStream(ctx, c.wsURL, m.Address,
		func(*provider.BookStream) {
			log.Infof("🔌 book stream connected: %v", m.Name)
		},
		func(*provider.BookStream) {
			log.Infof("🔌 book stream closed: %v", m.Name)
		},
	)
	if err != nil {
		return nil, nil, err
	}

	return stream.ConnectAndSubscribe(func(snap *provider.BookSnapshot) {
		b, err := bookFromSnapshot(m, snap)
		if err != nil {
			log.Errorf("🚩 dropping malformed book snapshot for %v: %v", m.Name, err)
			return
		}
		onBook(b)
	})
}

func bookFromSnapshot(m *market.Market, snap *provider.BookSnapshot) (*book.OrderBook, error) {
	bids := make([]*order.Order, 0, len(snap.Bids))
	for _, rec := range snap.Bids {
		bids = append(bids, openOrderFromRecord(rec, m.Name))
	}
	asks := make([]*order.Order, 0, len(snap.Asks))
	for _, rec := range snap.Asks {
		asks = append(asks, openOrderFromRecord(rec, m.Name))
	}
	return book.Build(m, bids, asks)
}
