package connector

import (
	"context"
	"serumgw/pkg/types"
)

// Connector is the venue-agnostic surface a routing layer programs against.
// Every operation family takes a selector of cardinality none/one/many and
// answers with the shape that cardinality implies (see cardinality.go).
type Connector interface {
	Name() types.ConnectorName

	// RefreshMarkets re-lists the venue's markets and atomically replaces
	// the canonical registry.
	RefreshMarkets(ctx context.Context) error

	GetMarkets(ctx context.Context, req GetMarketsRequest) (*GetMarketsResponse, error)
	GetOrderBooks(ctx context.Context, req GetOrderBooksRequest) (*GetOrderBooksResponse, error)
	GetTickers(ctx context.Context, req GetTickersRequest) (*GetTickersResponse, error)

	GetOrders(ctx context.Context, req GetOrdersRequest) (*GetOrdersResponse, error)
	GetOpenOrders(ctx context.Context, req GetOpenOrdersRequest) (*GetOpenOrdersResponse, error)
	GetFilledOrders(ctx context.Context, req GetFilledOrdersRequest) (*GetFilledOrdersResponse, error)

	CreateOrders(ctx context.Context, req CreateOrdersRequest) (*CreateOrdersResponse, error)
	CancelOrders(ctx context.Context, req CancelOrdersRequest) (*CancelOrdersResponse, error)
	CancelOpenOrders(ctx context.Context, req CancelOpenOrdersRequest) (*CancelOpenOrdersResponse, error)
}
