package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"serumgw/pkg/http"
	"serumgw/pkg/market"
	"serumgw/pkg/solana"
	"serumgw/pkg/utils"
)

// Client talks to a serum data node over JSON POST requests. It implements
// Provider; all venue specifics stay behind this boundary.
type Client struct {
	dataURL string
	token   string
}

func NewClient(dataURL string, token string) *Client {
	return &Client{dataURL: dataURL, token: token}
}

func (c *Client) post(ctx context.Context, req dataRequest, out any) error {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return err
	}
	status, resBody, err := http.PostRequest(ctx, fmt.Sprintf("%s/info", c.dataURL), c.token, reqBody)
	if err != nil {
		return err
	}
	if status != "200 OK" {
		return fmt.Errorf("status: %v: %v", status, string(resBody))
	}
	return json.Unmarshal(resBody, out)
}

// Ping asks the data node's health endpoint whether it is up. Registration
// tolerates a failed ping since the market snapshot can still cover boot.
func (c *Client) Ping(ctx context.Context) error {
	status, resBody, err := http.GetRequest(ctx, fmt.Sprintf("%s/health", c.dataURL), c.token)
	if err != nil {
		return err
	}
	if status != "200 OK" {
		return fmt.Errorf("status: %v: %v", status, string(resBody))
	}
	return nil
}

func (c *Client) ListMarkets(ctx context.Context) ([]market.BasicMarket, error) {
	var entries []marketEntryResponse
	if err := c.post(ctx, dataRequest{Type: "markets"}, &entries); err != nil {
		return nil, err
	}
	listings := make([]market.BasicMarket, 0, len(entries))
	for _, e := range entries {
		listings = append(listings, parseMarketEntry(e))
	}
	return listings, nil
}

func (c *Client) LoadMarket(ctx context.Context, address solana.PublicKey) (market.Attributes, error) {
	var res marketAttrsResponse
	if err := c.post(ctx, dataRequest{Type: "market", Market: address.String()}, &res); err != nil {
		return market.Attributes{}, err
	}
	return parseMarketAttrs(res)
}

func (c *Client) FetchBook(ctx context.Context, address solana.PublicKey) (*BookSnapshot, error) {
	var res bookSnapshotResponse
	if err := c.post(ctx, dataRequest{Type: "orderbook", Market: address.String()}, &res); err != nil {
		return nil, err
	}
	return parseBookSnapshot(res, address)
}

func (c *Client) RecentTrades(ctx context.Context, address solana.PublicKey, limit int) ([]TradeRecord, error) {
	var res []tradeResponse
	if err := c.post(ctx, dataRequest{Type: "trades", Market: address.String(), Limit: limit}, &res); err != nil {
		return nil, err
	}
	trades := make([]TradeRecord, 0, len(res))
	for _, t := range res {
		trade, err := parseTrade(t)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

func (c *Client) OpenOrders(ctx context.Context, owner string, address solana.PublicKey) ([]OrderRecord, error) {
	req := dataRequest{Type: "openOrders", Owner: owner}
	if !address.IsZero() {
		req.Market = address.String()
	}
	var res []bookLevelResponse
	if err := c.post(ctx, req, &res); err != nil {
		return nil, err
	}
	orders := make([]OrderRecord, 0, len(res))
	for _, level := range res {
		record, err := parseBookLevel(level, address)
		if err != nil {
			return nil, err
		}
		orders = append(orders, record)
	}
	return orders, nil
}

func (c *Client) FilledOrders(ctx context.Context, owner string, address solana.PublicKey, limit int) ([]FillRecord, error) {
	req := dataRequest{Type: "fills", Owner: owner, Limit: limit}
	if !address.IsZero() {
		req.Market = address.String()
	}
	var res []fillResponse
	if err := c.post(ctx, req, &res); err != nil {
		return nil, err
	}
	fills := make([]FillRecord, 0, len(res))
	for _, f := range res {
		fill, err := parseFill(f, address)
		if err != nil {
			return nil, err
		}
		fills = append(fills, fill)
	}
	return fills, nil
}

func (c *Client) SubmitOrder(ctx context.Context, req SubmitOrderRequest) (SubmitReceipt, error) {
	wire := submitOrderWire{
		Market:   req.MarketAddress.String(),
		Owner:    req.Owner,
		Payer:    req.Payer,
		ClientID: req.ClientID,
		Side:     string(req.Side),
		Price:    utils.FloatToStr(req.Price),
		Size:     utils.FloatToStr(req.Amount),
		Type:     string(req.Type),
	}
	var res submitReceiptResponse
	if err := c.post(ctx, dataRequest{Type: "placeOrder", Payload: wire}, &res); err != nil {
		return SubmitReceipt{}, err
	}
	if res.Signature == "" {
		return SubmitReceipt{}, fmt.Errorf("signature is missing from the response")
	}
	return SubmitReceipt{Signature: res.Signature, ExchangeID: res.OrderID}, nil
}

func (c *Client) CancelOrder(ctx context.Context, req CancelOrderRequest) (string, error) {
	wire := cancelOrderWire{
		Market:   req.MarketAddress.String(),
		Owner:    req.Owner,
		OrderID:  req.ExchangeID,
		ClientID: req.ClientID,
	}
	var res cancelReceiptResponse
	if err := c.post(ctx, dataRequest{Type: "cancelOrder", Payload: wire}, &res); err != nil {
		return "", err
	}
	if res.Signature == "" {
		return "", fmt.Errorf("signature is missing from the response")
	}
	return res.Signature, nil
}
