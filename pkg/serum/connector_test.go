package serum

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"serumgw/pkg/connector"
	"serumgw/pkg/market"
	"serumgw/pkg/provider"
	"serumgw/pkg/provider/mock"
	"serumgw/pkg/snapshot"
	"serumgw/pkg/solana"
	"serumgw/pkg/types"
)

const (
	solUsdcName    = "SOL/USDC"
	solUsdcAddress = "9wFFyRfZBsuAha4YcuxcXLKwMxJR43S7fPfQLusDBzvT"
	rayUsdcName    = "RAY/USDC"
	rayUsdcAddress = "2xiv8A5xrJ7RnGdxXB42uFEkYHJjszEhaJyKKt4WaLep"
	serumProgram   = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"

	ownerAddress = "ownerWallet1111111111111111111111111111111"
	payerAddress = "payerWallet1111111111111111111111111111111"
)

func seedProvider() *mock.Provider {
	p := mock.New()
	p.Listings = []market.BasicMarket{
		market.PlainBasicMarket{Name: solUsdcName, Address: solUsdcAddress, ProgramID: serumProgram},
		market.PlainBasicMarket{Name: rayUsdcName, Address: rayUsdcAddress, ProgramID: serumProgram},
	}
	p.Attrs[solUsdcAddress] = market.Attributes{
		MinimumOrderSize:     0.1,
		TickSize:             0.001,
		MinimumBaseIncrement: decimal.RequireFromString("0.1"),
		Fees:                 market.Fee{Maker: -0.0003, Taker: 0.0004},
	}
	p.Attrs[rayUsdcAddress] = market.Attributes{
		MinimumOrderSize: 0.5,
		TickSize:         0.01,
		Fees:             market.Fee{Maker: -0.0003, Taker: 0.0004},
	}
	return p
}

func newTestConnector(t *testing.T, p provider.Provider, opts Options) *SerumConnector {
	t.Helper()
	c := New(p, opts)
	if err := c.RefreshMarkets(context.Background()); err != nil {
		t.Fatalf("RefreshMarkets: %v", err)
	}
	return c
}

func TestGetMarketsCardinality(t *testing.T) {
	c := newTestConnector(t, seedProvider(), Options{})
	ctx := context.Background()

	res, err := c.GetMarkets(ctx, connector.GetMarketsRequest{})
	if err != nil {
		t.Fatalf("none selector: %v", err)
	}
	if res.Kind != connector.ResponseFlat || len(res.Markets) != 2 || res.Market != nil {
		t.Fatalf("none selector: kind=%v markets=%d", res.Kind, len(res.Markets))
	}

	res, err = c.GetMarkets(ctx, connector.GetMarketsRequest{Name: solUsdcName})
	if err != nil {
		t.Fatalf("one selector: %v", err)
	}
	if res.Kind != connector.ResponseSingle || res.Market == nil || res.Market.Name != solUsdcName {
		t.Fatalf("one selector: kind=%v market=%+v", res.Kind, res.Market)
	}
	if res.Market.TickSize != 0.001 {
		t.Errorf("tick size = %v, want 0.001", res.Market.TickSize)
	}

	res, err = c.GetMarkets(ctx, connector.GetMarketsRequest{Names: []string{solUsdcName, rayUsdcName}})
	if err != nil {
		t.Fatalf("many selector: %v", err)
	}
	if res.Kind != connector.ResponseFlat || len(res.Markets) != 2 {
		t.Fatalf("many selector: kind=%v markets=%d", res.Kind, len(res.Markets))
	}

	_, err = c.GetMarkets(ctx, connector.GetMarketsRequest{Name: "FAKE/USDC"})
	if !errors.Is(err, connector.ErrMarketNotFound) {
		t.Fatalf("unknown market: err = %v, want market-not-found", err)
	}

	_, err = c.GetMarkets(ctx, connector.GetMarketsRequest{Name: solUsdcName, Names: []string{rayUsdcName}})
	if !errors.Is(err, connector.ErrValidation) {
		t.Fatalf("mixed selector: err = %v, want validation", err)
	}
}

func TestRefreshMarketsSnapshotFallback(t *testing.T) {
	store := &snapshot.FileStore{Dir: t.TempDir()}

	// a healthy refresh populates the snapshot
	newTestConnector(t, seedProvider(), Options{Snapshots: store})

	// with the listing endpoint down the registry restores from cache
	broken := &brokenListings{Provider: seedProvider()}
	c := New(broken, Options{Snapshots: store})
	if err := c.RefreshMarkets(context.Background()); err != nil {
		t.Fatalf("RefreshMarkets with snapshot fallback: %v", err)
	}

	m, err := c.resolveMarket(solUsdcName)
	if err != nil {
		t.Fatalf("resolveMarket after fallback: %v", err)
	}
	if m.TickSize != 0.001 || !m.MinimumBaseIncrement.Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("restored market lost attributes: %+v", m)
	}

	// without a store the listing failure propagates
	bare := New(&brokenListings{Provider: seedProvider()}, Options{})
	if err := bare.RefreshMarkets(context.Background()); err == nil {
		t.Fatal("expected error without snapshot store")
	}
}

type brokenListings struct {
	*mock.Provider
}

func (p *brokenListings) ListMarkets(context.Context) ([]market.BasicMarket, error) {
	return nil, fmt.Errorf("listing endpoint down")
}

func TestGetOrderBooks(t *testing.T) {
	p := seedProvider()
	c := newTestConnector(t, p, Options{})
	addr := solana.MustPublicKeyFromBase58(solUsdcAddress)

	p.Books[solUsdcAddress] = &provider.BookSnapshot{
		Slot: 1042,
		Bids: []provider.OrderRecord{
			{ExchangeID: "bid-1", Owner: "other", MarketAddress: addr, Price: 20.4, Size: 3, Side: types.OrderSideBuy},
			{ExchangeID: "bid-2", Owner: "other", MarketAddress: addr, Price: 20.3, Size: 1, Side: types.OrderSideBuy},
		},
		Asks: []provider.OrderRecord{
			{ExchangeID: "ask-1", Owner: "other", MarketAddress: addr, Price: 20.6, Size: 2, Side: types.OrderSideSell},
		},
	}
	res, err := c.GetOrderBooks(context.Background(), connector.GetOrderBooksRequest{MarketName: solUsdcName})
	if err != nil {
		t.Fatalf("GetOrderBooks: %v", err)
	}
	if res.Kind != connector.ResponseSingle || res.Book == nil {
		t.Fatalf("kind=%v book=%v", res.Kind, res.Book)
	}
	if len(res.Book.Bids) != 2 || len(res.Book.Asks) != 1 {
		t.Fatalf("bids=%d asks=%d, want 2/1", len(res.Book.Bids), len(res.Book.Asks))
	}
	bid, exists := res.Book.Bids["bid-1"]
	if !exists {
		t.Fatal("bid-1 missing from bids")
	}
	if bid.Status != types.OrderStatusOpen || bid.MarketName != solUsdcName {
		t.Errorf("bid = %+v", bid)
	}

	// none selector answers with the flat mapping, empty books included
	all, err := c.GetOrderBooks(context.Background(), connector.GetOrderBooksRequest{})
	if err != nil {
		t.Fatalf("GetOrderBooks all: %v", err)
	}
	if all.Kind != connector.ResponseFlat || len(all.Books) != 2 {
		t.Fatalf("kind=%v books=%d", all.Kind, len(all.Books))
	}
}

func TestGetTickers(t *testing.T) {
	p := seedProvider()
	c := newTestConnector(t, p, Options{})

	p.Trades[solUsdcAddress] = []provider.TradeRecord{
		{Price: 20.5, Size: 1.5, Side: types.OrderSideBuy, Timestamp: 1700000000000},
		{Price: 20.4, Size: 2, Side: types.OrderSideSell, Timestamp: 1699999990000},
	}
	res, err := c.GetTickers(context.Background(), connector.GetTickersRequest{MarketName: solUsdcName})
	if err != nil {
		t.Fatalf("GetTickers: %v", err)
	}
	if res.Kind != connector.ResponseSingle || res.Ticker == nil {
		t.Fatalf("kind=%v ticker=%v", res.Kind, res.Ticker)
	}
	if res.Ticker.Price != 20.5 || res.Ticker.Fee != 0.0004 {
		t.Errorf("ticker = %+v", res.Ticker)
	}

	_, err = c.GetTickers(context.Background(), connector.GetTickersRequest{MarketName: rayUsdcName})
	if !errors.Is(err, connector.ErrTickerNotFound) {
		t.Fatalf("tradeless market: err = %v, want ticker-not-found", err)
	}
}

func TestCreateOrderSingular(t *testing.T) {
	p := seedProvider()
	c := newTestConnector(t, p, Options{})

	res, err := c.CreateOrders(context.Background(), connector.CreateOrdersRequest{
		Order: &connector.CreateOrder{
			ID:           "client-1",
			MarketName:   solUsdcName,
			OwnerAddress: ownerAddress,
			PayerAddress: payerAddress,
			Side:         types.OrderSideBuy,
			Price:        20.5,
			Amount:       1.5,
		},
	})
	if err != nil {
		t.Fatalf("CreateOrders: %v", err)
	}
	if res.Kind != connector.ResponseSingle || res.Order == nil {
		t.Fatalf("kind=%v order=%v", res.Kind, res.Order)
	}
	o := res.Order
	if o.Status != types.OrderStatusOpen {
		t.Errorf("status = %v, want OPEN", o.Status)
	}
	if o.ExchangeID == "" || o.Signature == "" {
		t.Errorf("missing venue identity: %+v", o)
	}
	if o.Type != types.OrderTypeLimit {
		t.Errorf("type = %v, want LIMIT default", o.Type)
	}
}

func TestCreateOrderValidationBeforeSubmission(t *testing.T) {
	p := seedProvider()
	c := newTestConnector(t, p, Options{})

	cases := []connector.CreateOrder{
		// off-tick price
		{MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.0005, Amount: 1.5},
		// below minimum size
		{MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 0.05},
		// off base increment
		{MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 1.55},
		// bad side
		{MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: "HOLD", Price: 20.5, Amount: 1.5},
		// no payer
		{MarketName: solUsdcName, OwnerAddress: ownerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 1.5},
		// off size step on a market without a base increment
		{MarketName: rayUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideSell, Price: 3.01, Amount: 0.75},
	}
	for i, entry := range cases {
		entry := entry
		_, err := c.CreateOrders(context.Background(), connector.CreateOrdersRequest{Order: &entry})
		if !errors.Is(err, connector.ErrValidation) {
			t.Errorf("case %d: err = %v, want validation", i, err)
		}
	}
	if p.SubmitCalls != 0 {
		t.Fatalf("SubmitCalls = %d, invalid entries must never reach the venue", p.SubmitCalls)
	}
}

func TestCreateOrdersBatchPartialFailure(t *testing.T) {
	p := seedProvider()
	c := newTestConnector(t, p, Options{})

	res, err := c.CreateOrders(context.Background(), connector.CreateOrdersRequest{
		Orders: []connector.CreateOrder{
			{ID: "ok-1", MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 1.5},
			{ID: "bad-1", MarketName: "FAKE/USDC", OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 1, Amount: 1},
			{ID: "ok-2", MarketName: rayUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideSell, Price: 3.01, Amount: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrders: %v", err)
	}
	if res.Kind != connector.ResponseFlat || len(res.Results) != 3 {
		t.Fatalf("kind=%v results=%d", res.Kind, len(res.Results))
	}

	for _, id := range []string{"ok-1", "ok-2"} {
		r := res.Results[id]
		if r.Err != nil {
			t.Errorf("%v: unexpected error %v", id, r.Err)
			continue
		}
		if r.Order.Status != types.OrderStatusOpen || r.Order.ExchangeID == "" {
			t.Errorf("%v: order = %+v", id, r.Order)
		}
	}

	bad := res.Results["bad-1"]
	if !errors.Is(bad.Err, connector.ErrMarketNotFound) {
		t.Errorf("bad-1: err = %v, want market-not-found", bad.Err)
	}
	if bad.Order.Status != types.OrderStatusFailed {
		t.Errorf("bad-1: status = %v, want FAILED", bad.Order.Status)
	}
	if p.SubmitCalls != 2 {
		t.Errorf("SubmitCalls = %d, want 2", p.SubmitCalls)
	}
}

func TestCreateOrderTimeout(t *testing.T) {
	p := seedProvider()
	p.SubmitDelay = 50 * time.Millisecond
	c := newTestConnector(t, p, Options{AckTimeout: 5 * time.Millisecond})

	res, err := c.CreateOrders(context.Background(), connector.CreateOrdersRequest{
		Orders: []connector.CreateOrder{
			{ID: "slow-1", MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 1.5},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrders: %v", err)
	}
	r := res.Results["slow-1"]
	if !errors.Is(r.Err, connector.ErrTimeout) {
		t.Fatalf("err = %v, want timeout", r.Err)
	}
	if r.Order.Status != types.OrderStatusTimedOut {
		t.Fatalf("status = %v, want TIMED_OUT", r.Order.Status)
	}

	// singular flavor surfaces the timeout as the operation error
	_, err = c.CreateOrders(context.Background(), connector.CreateOrdersRequest{
		Order: &connector.CreateOrder{MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 1.5},
	})
	if !errors.Is(err, connector.ErrTimeout) {
		t.Fatalf("singular err = %v, want timeout", err)
	}
}

func TestGetOrdersDualKeyLookup(t *testing.T) {
	p := seedProvider()
	c := newTestConnector(t, p, Options{})

	created, err := c.CreateOrders(context.Background(), connector.CreateOrdersRequest{
		Order: &connector.CreateOrder{ID: "client-7", MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 1.5},
	})
	if err != nil {
		t.Fatalf("CreateOrders: %v", err)
	}
	exchangeID := created.Order.ExchangeID

	byClient, err := c.GetOrders(context.Background(), connector.GetOrdersRequest{ID: "client-7", OwnerAddress: ownerAddress})
	if err != nil {
		t.Fatalf("lookup by client id: %v", err)
	}
	byVenue, err := c.GetOrders(context.Background(), connector.GetOrdersRequest{ExchangeID: exchangeID, OwnerAddress: ownerAddress})
	if err != nil {
		t.Fatalf("lookup by exchange id: %v", err)
	}
	if byClient.Order.ExchangeID != byVenue.Order.ExchangeID || byClient.Order.ID != byVenue.Order.ID {
		t.Fatalf("dual-key lookup disagrees: %+v vs %+v", byClient.Order, byVenue.Order)
	}

	_, err = c.GetOrders(context.Background(), connector.GetOrdersRequest{ID: "no-such-order", OwnerAddress: ownerAddress})
	if !errors.Is(err, connector.ErrOrderNotFound) {
		t.Fatalf("unknown order: err = %v, want order-not-found", err)
	}
}

func TestGetOrdersNested(t *testing.T) {
	p := seedProvider()
	c := newTestConnector(t, p, Options{})
	ctx := context.Background()

	for _, e := range []connector.CreateOrder{
		{ID: "sol-1", MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 1.5},
		{ID: "ray-1", MarketName: rayUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideSell, Price: 3.01, Amount: 1},
	} {
		e := e
		if _, err := c.CreateOrders(ctx, connector.CreateOrdersRequest{Order: &e}); err != nil {
			t.Fatalf("CreateOrders %v: %v", e.ID, err)
		}
	}
	rayAddr := solana.MustPublicKeyFromBase58(rayUsdcAddress)
	p.Fills[ownerAddress] = []provider.FillRecord{
		{
			OrderRecord: provider.OrderRecord{
				ExchangeID:    "fill-1",
				Owner:         ownerAddress,
				MarketAddress: rayAddr,
				Price:         3.02,
				Size:          1,
				Side:          types.OrderSideSell,
			},
			Fee:       0.0012,
			Timestamp: 1700000005000,
		},
	}

	res, err := c.GetOrders(ctx, connector.GetOrdersRequest{OwnerAddress: ownerAddress})
	if err != nil {
		t.Fatalf("GetOrders: %v", err)
	}
	if res.Kind != connector.ResponseNested {
		t.Fatalf("kind = %v, want NESTED", res.Kind)
	}
	if len(res.OrdersByMarket[solUsdcName]) != 1 || len(res.OrdersByMarket[rayUsdcName]) != 2 {
		t.Fatalf("grouping = %v", res.OrdersByMarket)
	}

	open, err := c.GetOpenOrders(ctx, connector.GetOpenOrdersRequest{OwnerAddress: ownerAddress, MarketName: rayUsdcName})
	if err != nil {
		t.Fatalf("GetOpenOrders: %v", err)
	}
	if len(open.OrdersByMarket) != 1 || len(open.OrdersByMarket[rayUsdcName]) != 1 {
		t.Fatalf("open grouping = %v", open.OrdersByMarket)
	}

	filled, err := c.GetFilledOrders(ctx, connector.GetFilledOrdersRequest{OwnerAddress: ownerAddress})
	if err != nil {
		t.Fatalf("GetFilledOrders: %v", err)
	}
	f := filled.OrdersByMarket[rayUsdcName]["fill-1"]
	if f == nil || f.Status != types.OrderStatusFilled || f.FillmentTimestamp == 0 {
		t.Fatalf("fill = %+v", f)
	}
}

func TestCancelOrdersBatch(t *testing.T) {
	p := seedProvider()
	c := newTestConnector(t, p, Options{})
	ctx := context.Background()

	ids := []string{"c-1", "c-2"}
	for _, id := range ids {
		req := connector.CreateOrdersRequest{
			Order: &connector.CreateOrder{ID: id, MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 1.5},
		}
		if _, err := c.CreateOrders(ctx, req); err != nil {
			t.Fatalf("CreateOrders %v: %v", id, err)
		}
	}

	res, err := c.CancelOrders(ctx, connector.CancelOrdersRequest{
		IDs:          []string{"c-1", "c-2", "ghost"},
		MarketName:   solUsdcName,
		OwnerAddress: ownerAddress,
	})
	if err != nil {
		t.Fatalf("CancelOrders: %v", err)
	}
	if res.Kind != connector.ResponseFlat || len(res.Results) != 3 {
		t.Fatalf("kind=%v results=%d", res.Kind, len(res.Results))
	}
	for _, id := range ids {
		r := res.Results[id]
		if r.Err != nil || r.Order.Status != types.OrderStatusCanceled {
			t.Errorf("%v: result = %+v err = %v", id, r.Order, r.Err)
		}
	}
	if !errors.Is(res.Results["ghost"].Err, connector.ErrOrderNotFound) {
		t.Errorf("ghost: err = %v, want order-not-found", res.Results["ghost"].Err)
	}
	if p.CancelCalls != 2 {
		t.Errorf("CancelCalls = %d, want 2", p.CancelCalls)
	}

	// selector-less cancel is rejected up front
	_, err = c.CancelOrders(ctx, connector.CancelOrdersRequest{MarketName: solUsdcName, OwnerAddress: ownerAddress})
	if !errors.Is(err, connector.ErrValidation) {
		t.Fatalf("selector-less cancel: err = %v, want validation", err)
	}
}

func TestCancelUnconfirmedStaysUnknown(t *testing.T) {
	p := seedProvider()
	c := newTestConnector(t, p, Options{})
	ctx := context.Background()

	req := connector.CreateOrdersRequest{
		Order: &connector.CreateOrder{ID: "sticky", MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 1.5},
	}
	if _, err := c.CreateOrders(ctx, req); err != nil {
		t.Fatalf("CreateOrders: %v", err)
	}

	p.KeepOnBook = true
	res, err := c.CancelOrders(ctx, connector.CancelOrdersRequest{ID: "sticky", MarketName: solUsdcName, OwnerAddress: ownerAddress})
	if err != nil {
		t.Fatalf("CancelOrders: %v", err)
	}
	if res.Order.Status != types.OrderStatusUnknown {
		t.Fatalf("status = %v, want UNKNOWN while the venue still lists the order", res.Order.Status)
	}
}

func TestStreamOrderBooksRequiresConfig(t *testing.T) {
	c := newTestConnector(t, seedProvider(), Options{})
	if _, _, err := c.StreamOrderBooks(context.Background(), solUsdcName, nil); err == nil {
		t.Fatal("expected error without a websocket url")
	}

	c = newTestConnector(t, seedProvider(), Options{WsURL: "ws://localhost:9/ws"})
	_, _, err := c.StreamOrderBooks(context.Background(), "FAKE/USDC", nil)
	if !errors.Is(err, connector.ErrMarketNotFound) {
		t.Fatalf("unknown market: err = %v, want market-not-found", err)
	}
}

func TestCancelOpenOrdersSweep(t *testing.T) {
	p := seedProvider()
	c := newTestConnector(t, p, Options{})
	ctx := context.Background()

	for _, e := range []connector.CreateOrder{
		{ID: "sol-1", MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 1.5},
		{ID: "sol-2", MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideSell, Price: 21.5, Amount: 0.5},
		{ID: "ray-1", MarketName: rayUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideSell, Price: 3.01, Amount: 1},
	} {
		e := e
		if _, err := c.CreateOrders(ctx, connector.CreateOrdersRequest{Order: &e}); err != nil {
			t.Fatalf("CreateOrders %v: %v", e.ID, err)
		}
	}

	// single-market sweep answers flat
	flat, err := c.CancelOpenOrders(ctx, connector.CancelOpenOrdersRequest{MarketName: rayUsdcName, OwnerAddress: ownerAddress})
	if err != nil {
		t.Fatalf("CancelOpenOrders one market: %v", err)
	}
	if flat.Kind != connector.ResponseFlat || len(flat.Results) != 1 {
		t.Fatalf("kind=%v results=%d, want FLAT/1", flat.Kind, len(flat.Results))
	}

	res, err := c.CancelOpenOrders(ctx, connector.CancelOpenOrdersRequest{OwnerAddress: ownerAddress})
	if err != nil {
		t.Fatalf("CancelOpenOrders: %v", err)
	}
	if res.Kind != connector.ResponseNested {
		t.Fatalf("kind = %v, want NESTED", res.Kind)
	}
	if len(res.ResultsByMarket[solUsdcName]) != 2 || len(res.ResultsByMarket[rayUsdcName]) != 0 {
		t.Fatalf("grouping = %v", res.ResultsByMarket)
	}
	for name, byKey := range res.ResultsByMarket {
		for key, r := range byKey {
			if r.Err != nil || r.Order.Status != types.OrderStatusCanceled {
				t.Errorf("%v/%v: order = %+v err = %v", name, key, r.Order, r.Err)
			}
		}
	}

	remaining, err := p.OpenOrders(ctx, ownerAddress, solana.PublicKey{})
	if err != nil {
		t.Fatalf("OpenOrders: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("venue still lists %d orders after sweep", len(remaining))
	}
}

type brokenMarketOpenOrders struct {
	*mock.Provider
	failAddress solana.PublicKey
}

func (p *brokenMarketOpenOrders) OpenOrders(ctx context.Context, owner string, address solana.PublicKey) ([]provider.OrderRecord, error) {
	if address.Equals(p.failAddress) {
		return nil, fmt.Errorf("open orders endpoint down")
	}
	return p.Provider.OpenOrders(ctx, owner, address)
}

func TestCancelOpenOrdersIsolatesMarketFailure(t *testing.T) {
	seed := seedProvider()
	broken := &brokenMarketOpenOrders{Provider: seed, failAddress: solana.MustPublicKeyFromBase58(rayUsdcAddress)}
	c := newTestConnector(t, broken, Options{})
	ctx := context.Background()

	for _, e := range []connector.CreateOrder{
		{ID: "sol-1", MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 1.5},
		{ID: "sol-2", MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideSell, Price: 21.5, Amount: 0.5},
	} {
		e := e
		if _, err := c.CreateOrders(ctx, connector.CreateOrdersRequest{Order: &e}); err != nil {
			t.Fatalf("CreateOrders %v: %v", e.ID, err)
		}
	}

	res, err := c.CancelOpenOrders(ctx, connector.CancelOpenOrdersRequest{
		MarketNames:  []string{solUsdcName, rayUsdcName},
		OwnerAddress: ownerAddress,
	})
	if err != nil {
		t.Fatalf("CancelOpenOrders: %v", err)
	}

	// both sibling cancels ran and their outcomes came back
	sol := res.ResultsByMarket[solUsdcName]
	if len(sol) != 2 {
		t.Fatalf("sol results = %v, want 2 entries", sol)
	}
	for key, r := range sol {
		if r.Err != nil || r.Order.Status != types.OrderStatusCanceled {
			t.Errorf("%v: order = %+v err = %v", key, r.Order, r.Err)
		}
	}
	if seed.CancelCalls != 2 {
		t.Fatalf("CancelCalls = %d, want 2", seed.CancelCalls)
	}

	// the unlistable market surfaces as a whole-market error entry
	ray := res.ResultsByMarket[rayUsdcName]
	if len(ray) != 1 {
		t.Fatalf("ray results = %v, want the market error entry alone", ray)
	}
	marketErr := ray[connector.MarketErrorKey]
	if marketErr.Err == nil || marketErr.Order != nil {
		t.Fatalf("market error entry = %+v", marketErr)
	}
}

func TestGetOrdersPluralFlat(t *testing.T) {
	p := seedProvider()
	c := newTestConnector(t, p, Options{})
	ctx := context.Background()

	for _, e := range []connector.CreateOrder{
		{ID: "sol-1", MarketName: solUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideBuy, Price: 20.5, Amount: 1.5},
		{ID: "ray-1", MarketName: rayUsdcName, OwnerAddress: ownerAddress, PayerAddress: payerAddress, Side: types.OrderSideSell, Price: 3.01, Amount: 1},
	} {
		e := e
		if _, err := c.CreateOrders(ctx, connector.CreateOrdersRequest{Order: &e}); err != nil {
			t.Fatalf("CreateOrders %v: %v", e.ID, err)
		}
	}

	res, err := c.GetOrders(ctx, connector.GetOrdersRequest{IDs: []string{"sol-1", "ray-1"}, OwnerAddress: ownerAddress})
	if err != nil {
		t.Fatalf("GetOrders by ids: %v", err)
	}
	if res.Kind != connector.ResponseFlat {
		t.Fatalf("kind = %v, want FLAT", res.Kind)
	}
	if len(res.Orders) != 2 || res.OrdersByMarket != nil {
		t.Fatalf("orders = %v byMarket = %v", res.Orders, res.OrdersByMarket)
	}
	if res.Orders["sol-1"].MarketName != solUsdcName || res.Orders["ray-1"].MarketName != rayUsdcName {
		t.Fatalf("orders keyed wrong: %v", res.Orders)
	}

	// venue ids key the flat map when they are what the caller asked by
	xid := res.Orders["sol-1"].ExchangeID
	byVenue, err := c.GetOrders(ctx, connector.GetOrdersRequest{ExchangeIDs: []string{xid}, OwnerAddress: ownerAddress})
	if err != nil {
		t.Fatalf("GetOrders by exchange ids: %v", err)
	}
	if byVenue.Kind != connector.ResponseFlat || byVenue.Orders[xid] == nil {
		t.Fatalf("kind = %v orders = %v", byVenue.Kind, byVenue.Orders)
	}

	_, err = c.GetOrders(ctx, connector.GetOrdersRequest{IDs: []string{"sol-1", "ghost"}, OwnerAddress: ownerAddress})
	if !errors.Is(err, connector.ErrOrderNotFound) {
		t.Fatalf("missing id: err = %v, want order-not-found", err)
	}
}
