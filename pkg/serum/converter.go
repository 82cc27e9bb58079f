package serum

import (
	"serumgw/pkg/market"
	"serumgw/pkg/order"
	"serumgw/pkg/provider"
	"serumgw/pkg/ticker"
	"serumgw/pkg/types"
)

// convert a resting venue record into an OPEN order
func openOrderFromRecord(rec provider.OrderRecord, marketName string) *order.Order {
	return &order.Order{
		ID:           rec.ClientID,
		ExchangeID:   rec.ExchangeID,
		MarketName:   marketName,
		OwnerAddress: rec.Owner,
		Price:        rec.Price,
		Amount:       rec.Size,
		Side:         rec.Side,
		Status:       types.OrderStatusOpen,
	}
}

// convert a fill record into a FILLED order
func filledOrderFromRecord(rec provider.FillRecord, marketName string) *order.Order {
	return &order.Order{
		ID:                rec.ClientID,
		ExchangeID:        rec.ExchangeID,
		MarketName:        marketName,
		OwnerAddress:      rec.Owner,
		Price:             rec.Price,
		Amount:            rec.Size,
		Side:              rec.Side,
		Status:            types.OrderStatusFilled,
		Fee:               rec.Fee,
		FillmentTimestamp: rec.Timestamp,
	}
}

// convert the most recent trade into a ticker; the market's taker fee fills
// in when the venue omits the trade fee
func tickerFromTrade(trade provider.TradeRecord, m *market.Market) *ticker.Ticker {
	fee := trade.Fee
	if fee == 0 {
		fee = m.Fees.Taker
	}
	return &ticker.Ticker{
		Price:     trade.Price,
		Amount:    trade.Size,
		Side:      trade.Side,
		Fee:       fee,
		Timestamp: trade.Timestamp,
	}
}
