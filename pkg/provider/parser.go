package provider

import (
	"fmt"
	"strings"

	"serumgw/pkg/market"
	"serumgw/pkg/solana"
	"serumgw/pkg/types"
	"serumgw/pkg/utils"
)

func parseOrderSide(side string) (types.OrderSide, error) {
	switch strings.ToUpper(side) {
	case "BUY", "B", "BID":
		return types.OrderSideBuy, nil
	case "SELL", "A", "S", "ASK":
		return types.OrderSideSell, nil
	default:
		return "", fmt.Errorf("unknown order side: %v", side)
	}
}

func parseMarketEntry(e marketEntryResponse) market.BasicMarket {
	// the listing endpoint reports base58 strings; keep the plain flavor and
	// let normalization decode it
	return market.PlainBasicMarket{
		Name:       e.Name,
		Address:    e.Address,
		ProgramID:  e.ProgramID,
		Deprecated: e.Deprecated,
	}
}

func parseMarketAttrs(res marketAttrsResponse) (market.Attributes, error) {
	minOrderSize, err := utils.StrToFloat(res.MinOrderSize)
	if err != nil {
		return market.Attributes{}, fmt.Errorf("bad minOrderSize '%v': %w", res.MinOrderSize, err)
	}
	tickSize, err := utils.StrToFloat(res.TickSize)
	if err != nil {
		return market.Attributes{}, fmt.Errorf("bad tickSize '%v': %w", res.TickSize, err)
	}
	makerFee, err := utils.StrToFloat(res.MakerFee)
	if err != nil {
		return market.Attributes{}, fmt.Errorf("bad makerFee '%v': %w", res.MakerFee, err)
	}
	takerFee, err := utils.StrToFloat(res.TakerFee)
	if err != nil {
		return market.Attributes{}, fmt.Errorf("bad takerFee '%v': %w", res.TakerFee, err)
	}

	attrs := market.Attributes{
		MinimumOrderSize: minOrderSize,
		TickSize:         tickSize,
		Fees:             market.Fee{Maker: makerFee, Taker: takerFee},
	}
	if res.BaseIncrement != "" {
		increment, err := utils.StrToDecimal(res.BaseIncrement)
		if err != nil {
			return market.Attributes{}, fmt.Errorf("bad baseIncrement '%v': %w", res.BaseIncrement, err)
		}
		attrs.MinimumBaseIncrement = increment
	}
	return attrs, nil
}

func parseBookLevel(level bookLevelResponse, fallbackMarket solana.PublicKey) (OrderRecord, error) {
	price, err := utils.StrToFloat(level.Price)
	if err != nil {
		return OrderRecord{}, fmt.Errorf("bad price '%v': %w", level.Price, err)
	}
	size, err := utils.StrToFloat(level.Size)
	if err != nil {
		return OrderRecord{}, fmt.Errorf("bad size '%v': %w", level.Size, err)
	}
	side, err := parseOrderSide(level.Side)
	if err != nil {
		return OrderRecord{}, err
	}

	marketAddress := fallbackMarket
	if level.Market != "" {
		marketAddress, err = solana.PublicKeyFromBase58(level.Market)
		if err != nil {
			return OrderRecord{}, err
		}
	}
	return OrderRecord{
		ExchangeID:    level.OrderID,
		ClientID:      level.ClientID,
		Owner:         level.Owner,
		MarketAddress: marketAddress,
		Price:         price,
		Size:          size,
		Side:          side,
	}, nil
}

func parseBookSnapshot(res bookSnapshotResponse, address solana.PublicKey) (*BookSnapshot, error) {
	snapshot := &BookSnapshot{
		Slot: res.Slot,
		Bids: make([]OrderRecord, 0, len(res.Bids)),
		Asks: make([]OrderRecord, 0, len(res.Asks)),
	}
	for _, level := range res.Bids {
		record, err := parseBookLevel(level, address)
		if err != nil {
			return nil, err
		}
		snapshot.Bids = append(snapshot.Bids, record)
	}
	for _, level := range res.Asks {
		record, err := parseBookLevel(level, address)
		if err != nil {
			return nil, err
		}
		snapshot.Asks = append(snapshot.Asks, record)
	}
	return snapshot, nil
}

func parseTrade(res tradeResponse) (TradeRecord, error) {
	price, err := utils.StrToFloat(res.Price)
	if err != nil {
		return TradeRecord{}, fmt.Errorf("bad trade price '%v': %w", res.Price, err)
	}
	size, err := utils.StrToFloat(res.Size)
	if err != nil {
		return TradeRecord{}, fmt.Errorf("bad trade size '%v': %w", res.Size, err)
	}
	side, err := parseOrderSide(res.Side)
	if err != nil {
		return TradeRecord{}, err
	}
	fee := 0.0
	if res.Fee != "" {
		if fee, err = utils.StrToFloat(res.Fee); err != nil {
			return TradeRecord{}, fmt.Errorf("bad trade fee '%v': %w", res.Fee, err)
		}
	}
	return TradeRecord{
		Price:     price,
		Size:      size,
		Side:      side,
		Fee:       fee,
		Timestamp: res.Timestamp,
	}, nil
}

func parseFill(res fillResponse, fallbackMarket solana.PublicKey) (FillRecord, error) {
	record, err := parseBookLevel(res.bookLevelResponse, fallbackMarket)
	if err != nil {
		return FillRecord{}, err
	}
	fee := 0.0
	if res.Fee != "" {
		if fee, err = utils.StrToFloat(res.Fee); err != nil {
			return FillRecord{}, fmt.Errorf("bad fill fee '%v': %w", res.Fee, err)
		}
	}
	return FillRecord{OrderRecord: record, Fee: fee, Timestamp: res.Timestamp}, nil
}
