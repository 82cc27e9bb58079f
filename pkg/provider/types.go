package provider

import "encoding/json"

// wire types of the data node; numeric fields arrive as strings to keep
// on-chain precision out of float json

type dataRequest struct {
	Type    string `json:"type"`
	Market  string `json:"market,omitempty"`
	Owner   string `json:"owner,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

type marketEntryResponse struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	ProgramID  string `json:"programId"`
	Deprecated bool   `json:"deprecated"`
}

type marketAttrsResponse struct {
	MinOrderSize  string `json:"minOrderSize"`
	TickSize      string `json:"tickSize"`
	BaseIncrement string `json:"baseIncrement,omitempty"`
	MakerFee      string `json:"makerFee"`
	TakerFee      string `json:"takerFee"`
}

type bookLevelResponse struct {
	OrderID  string `json:"orderId"`
	ClientID string `json:"clientId,omitempty"`
	Owner    string `json:"openOrdersOwner"`
	Price    string `json:"price"`
	Size     string `json:"size"`
	Side     string `json:"side"`
	Market   string `json:"market,omitempty"`
}

type bookSnapshotResponse struct {
	Slot uint64              `json:"slot"`
	Bids []bookLevelResponse `json:"bids"`
	Asks []bookLevelResponse `json:"asks"`
}

type tradeResponse struct {
	Price     string `json:"price"`
	Size      string `json:"size"`
	Side      string `json:"side"`
	Fee       string `json:"fee"`
	Timestamp int64  `json:"timestamp"`
}

type fillResponse struct {
	bookLevelResponse
	Fee       string `json:"fee"`
	Timestamp int64  `json:"timestamp"`
}

type submitOrderWire struct {
	Market   string `json:"market"`
	Owner    string `json:"owner"`
	Payer    string `json:"payer"`
	ClientID string `json:"clientId"`
	Side     string `json:"side"`
	Price    string `json:"price"`
	Size     string `json:"size"`
	Type     string `json:"orderType"`
}

type submitReceiptResponse struct {
	Signature string `json:"signature"`
	OrderID   string `json:"orderId,omitempty"`
}

type cancelOrderWire struct {
	Market   string `json:"market"`
	Owner    string `json:"owner"`
	OrderID  string `json:"orderId,omitempty"`
	ClientID string `json:"clientId,omitempty"`
}

type cancelReceiptResponse struct {
	Signature string `json:"signature"`
}

type wsGenericResponse struct {
	Channel string          `json:"channel"`
	Market  string          `json:"market,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
