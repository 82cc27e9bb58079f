package book

import (
	"fmt"
	"serumgw/pkg/market"
	"serumgw/pkg/order"
	"serumgw/pkg/types"
)

// OrderBook is a typed view over one provider snapshot: resting orders for a
// single market partitioned by side and keyed by order identity. It is built
// wholesale per snapshot and never patched in place.
type OrderBook struct {
	Market *market.Market          `json:"market"`
	Bids   map[string]*order.Order `json:"bids"`
	Asks   map[string]*order.Order `json:"asks"`
}

// Build assembles the two sides from orders taken out of a single snapshot.
// Every bid must be a BUY and every ask a SELL; identity keys must be unique
// within a side.
func Build(m *market.Market, bids []*order.Order, asks []*order.Order) (*OrderBook, error) {
	bidMap, err := sideMap(m.Name, bids, types.OrderSideBuy)
	if err != nil {
		return nil, err
	}
	askMap, err := sideMap(m.Name, asks, types.OrderSideSell)
	if err != nil {
		return nil, err
	}
	return &OrderBook{Market: m, Bids: bidMap, Asks: askMap}, nil
}

func sideMap(marketName string, orders []*order.Order, side types.OrderSide) (map[string]*order.Order, error) {
	mapped := make(map[string]*order.Order, len(orders))
	for _, o := range orders {
		if o.Side != side {
			return nil, fmt.Errorf("order %v on %v has side %v, want %v", o.Key(), marketName, o.Side, side)
		}
		key := o.Key()
		if key == "" {
			return nil, fmt.Errorf("order without identity on %v", marketName)
		}
		if _, dup := mapped[key]; dup {
			return nil, fmt.Errorf("duplicate order identity %v on %v", key, marketName)
		}
		mapped[key] = o
	}
	return mapped, nil
}
