package connector

import "fmt"

// ErrorKind is the closed set of connector failure categories.
type ErrorKind string

const (
	KindMarketNotFound = ErrorKind("MARKET_NOT_FOUND")
	KindTickerNotFound = ErrorKind("TICKER_NOT_FOUND")
	KindOrderNotFound  = ErrorKind("ORDER_NOT_FOUND")
	KindValidation     = ErrorKind("VALIDATION")
	KindTimeout        = ErrorKind("TIMEOUT")
)

// Error is the connector-domain error. Not-found and validation errors are
// raised at the lowest layer that detects them and propagated unwrapped.
type Error struct {
	Kind     ErrorKind
	Entity   string
	Selector string
	Message  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Selector != "" {
		return fmt.Sprintf("%v '%v' not found", e.Entity, e.Selector)
	}
	return string(e.Kind)
}

// Is matches any connector error of the same kind, so callers can
// discriminate with errors.Is against the exported sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrMarketNotFound = &Error{Kind: KindMarketNotFound, Entity: "market"}
	ErrTickerNotFound = &Error{Kind: KindTickerNotFound, Entity: "ticker"}
	ErrOrderNotFound  = &Error{Kind: KindOrderNotFound, Entity: "order"}
	ErrValidation     = &Error{Kind: KindValidation}
	ErrTimeout        = &Error{Kind: KindTimeout}
)

func MarketNotFound(name string) *Error {
	return &Error{Kind: KindMarketNotFound, Entity: "market", Selector: name}
}

func TickerNotFound(marketName string) *Error {
	return &Error{Kind: KindTickerNotFound, Entity: "ticker", Selector: marketName}
}

func OrderNotFound(selector string) *Error {
	return &Error{Kind: KindOrderNotFound, Entity: "order", Selector: selector}
}

func ValidationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func TimeoutError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindTimeout, Message: fmt.Sprintf(format, args...)}
}
