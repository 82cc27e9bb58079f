package order

import (
	"fmt"
	"serumgw/pkg/types"
)

// Order is one order on a single market. ID is the client-assigned identity,
// ExchangeID the venue-assigned one; after submission at least one of the two
// is set, and a lookup by either must resolve the same order.
type Order struct {
	ID           string `json:"id,omitempty"`
	ExchangeID   string `json:"exchangeId,omitempty"`
	MarketName   string `json:"marketName"`
	OwnerAddress string `json:"ownerAddress,omitempty"`

	Price  float64         `json:"price"`
	Amount float64         `json:"amount"`
	Side   types.OrderSide `json:"side"`

	Status types.OrderStatus `json:"status,omitempty"`
	Type   types.OrderType   `json:"type,omitempty"`
	Fee    float64           `json:"fee,omitempty"`

	// FillmentTimestamp is unix milliseconds, set exactly once when the order
	// transitions into FILLED.
	FillmentTimestamp int64  `json:"fillmentTimestamp,omitempty"`
	Signature         string `json:"signature,omitempty"`
}

func New(id string, marketName string) *Order {
	return &Order{
		ID:         id,
		MarketName: marketName,
		Status:     types.OrderStatusPending,
	}
}

// Key is the identity under which the order is stored in mappings: the
// venue-assigned id when known, the client id otherwise.
func (o *Order) Key() string {
	if o.ExchangeID != "" {
		return o.ExchangeID
	}
	return o.ID
}

// MatchesID reports whether k equals either identity key.
func (o *Order) MatchesID(k string) bool {
	if k == "" {
		return false
	}
	return k == o.ID || k == o.ExchangeID
}

func IsTerminal(s types.OrderStatus) bool {
	switch s {
	case types.OrderStatusFilled,
		types.OrderStatusCanceled,
		types.OrderStatusFailed,
		types.OrderStatusExpired,
		types.OrderStatusTimedOut:
		return true
	}
	return false
}

func canTransition(from, to types.OrderStatus) bool {
	if from == to {
		return true
	}
	if IsTerminal(from) {
		return false
	}
	// an unconfirmable venue state can be entered from any live state and
	// resolves to anything once re-polled
	if to == types.OrderStatusUnknown || from == types.OrderStatusUnknown {
		return true
	}
	if from == "" {
		return true
	}
	switch from {
	case types.OrderStatusPending:
		switch to {
		case types.OrderStatusOpen,
			types.OrderStatusCanceled,
			types.OrderStatusFailed,
			types.OrderStatusTimedOut:
			return true
		}
	case types.OrderStatusOpen:
		switch to {
		case types.OrderStatusFilled,
			types.OrderStatusCanceled,
			types.OrderStatusFailed,
			types.OrderStatusExpired:
			return true
		}
	}
	return false
}

// Transition moves the order to the next status, rejecting any move out of a
// terminal state or outside the defined partial order.
func (o *Order) Transition(next types.OrderStatus) error {
	if !canTransition(o.Status, next) {
		return fmt.Errorf("invalid order status transition %v -> %v (order %v)", o.Status, next, o.Key())
	}
	o.Status = next
	return nil
}

// Fill transitions the order into FILLED, recording the fill timestamp and
// the computed fee. The timestamp is never overwritten.
func (o *Order) Fill(timestamp int64, fee float64) error {
	if o.FillmentTimestamp != 0 {
		return fmt.Errorf("order %v already has a fillment timestamp", o.Key())
	}
	if err := o.Transition(types.OrderStatusFilled); err != nil {
		return err
	}
	o.FillmentTimestamp = timestamp
	o.Fee = fee
	return nil
}
