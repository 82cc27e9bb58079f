package serum

import (
	"context"

	"serumgw/pkg/book"
	"serumgw/pkg/connector"
	"serumgw/pkg/market"
	"serumgw/pkg/ticker"
)

// orderBookFor builds one market's book from a single provider snapshot, so
// both sides reflect the same slot.
func (c *SerumConnector) orderBookFor(ctx context.Context, m *market.Market) (*book.OrderBook, error) {
	snap, err := c.provider.FetchBook(ctx, m.Address)
	if err != nil {
		return nil, err
	}
	return bookFromSnapshot(m, snap)
}

func (c *SerumConnector) GetOrderBooks(ctx context.Context, req connector.GetOrderBooksRequest) (*connector.GetOrderBooksResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	markets, err := c.resolveMarketSelector(req.MarketName, req.MarketNames)
	if err != nil {
		return nil, err
	}

	card := req.Cardinality()
	res := &connector.GetOrderBooksResponse{Kind: connector.KindFor(card, false)}

	if card == connector.CardinalityOne {
		b, err := c.orderBookFor(ctx, markets[0])
		if err != nil {
			return nil, err
		}
		res.Book = b
		return res, nil
	}

	res.Books = make(map[string]*book.OrderBook, len(markets))
	for _, m := range markets {
		b, err := c.orderBookFor(ctx, m)
		if err != nil {
			return nil, err
		}
		res.Books[m.Name] = b
	}
	return res, nil
}

func (c *SerumConnector) tickerFor(ctx context.Context, m *market.Market) (*ticker.Ticker, error) {
	trades, err := c.provider.RecentTrades(ctx, m.Address, 1)
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		return nil, connector.TickerNotFound(m.Name)
	}
	return tickerFromTrade(trades[0], m), nil
}

func (c *SerumConnector) GetTickers(ctx context.Context, req connector.GetTickersRequest) (*connector.GetTickersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	markets, err := c.resolveMarketSelector(req.MarketName, req.MarketNames)
	if err != nil {
		return nil, err
	}

	card := req.Cardinality()
	res := &connector.GetTickersResponse{Kind: connector.KindFor(card, false)}

	if card == connector.CardinalityOne {
		t, err := c.tickerFor(ctx, markets[0])
		if err != nil {
			return nil, err
		}
		res.Ticker = t
		return res, nil
	}

	res.Tickers = make(map[string]*ticker.Ticker, len(markets))
	for _, m := range markets {
		t, err := c.tickerFor(ctx, m)
		if err != nil {
			return nil, err
		}
		res.Tickers[m.Name] = t
	}
	return res, nil
}
