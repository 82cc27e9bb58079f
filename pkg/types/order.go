package types

type OrderSide string

const (
	OrderSideBuy  = OrderSide("BUY")
	OrderSideSell = OrderSide("SELL")
)

type OrderType string

const (
	OrderTypeLimit    = OrderType("LIMIT")
	OrderTypeIOC      = OrderType("IOC") // Immediate or Cancel
	OrderTypePostOnly = OrderType("POST_ONLY")
)

type OrderStatus string

const (
	OrderStatusPending  = OrderStatus("PENDING")
	OrderStatusOpen     = OrderStatus("OPEN")
	OrderStatusFilled   = OrderStatus("FILLED")
	OrderStatusCanceled = OrderStatus("CANCELED")
	OrderStatusFailed   = OrderStatus("FAILED")
	OrderStatusExpired  = OrderStatus("EXPIRED")
	OrderStatusTimedOut = OrderStatus("TIMED_OUT")
	OrderStatusUnknown  = OrderStatus("UNKNOWN")
)
