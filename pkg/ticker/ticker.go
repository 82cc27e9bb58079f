package ticker

import "serumgw/pkg/types"

// Ticker is a point-in-time trade snapshot for one market; immutable once
// constructed and independent of any live order state.
type Ticker struct {
	Price     float64         `json:"price"`
	Amount    float64         `json:"amount"`
	Side      types.OrderSide `json:"side"`
	Fee       float64         `json:"fee"`
	Timestamp int64           `json:"timestamp"`
}
