package serum

import (
	"github.com/shopspring/decimal"

	"serumgw/pkg/connector"
	"serumgw/pkg/market"
	"serumgw/pkg/types"
	"serumgw/pkg/utils"
)

// validateCreate checks one submission entry against the market's trading
// parameters. A violating entry never reaches the venue.
func validateCreate(m *market.Market, e connector.CreateOrder) error {
	if e.OwnerAddress == "" {
		return connector.ValidationError("ownerAddress is required to create an order on %v", m.Name)
	}
	if e.PayerAddress == "" {
		return connector.ValidationError("payerAddress is required to create an order on %v", m.Name)
	}
	if e.Side != types.OrderSideBuy && e.Side != types.OrderSideSell {
		return connector.ValidationError("invalid order side %q", e.Side)
	}
	switch e.Type {
	case "", types.OrderTypeLimit, types.OrderTypeIOC, types.OrderTypePostOnly:
	default:
		return connector.ValidationError("invalid order type %q", e.Type)
	}
	if e.Price <= 0 {
		return connector.ValidationError("price must be positive, got %v", e.Price)
	}
	if e.Amount <= 0 {
		return connector.ValidationError("amount must be positive, got %v", e.Amount)
	}
	if !utils.IsAligned(e.Price, m.TickSize) {
		return connector.ValidationError("price %v is not aligned to tick size %v on %v", e.Price, m.TickSize, m.Name)
	}
	if e.Amount < m.MinimumOrderSize {
		return connector.ValidationError("amount %v is below minimum order size %v on %v", e.Amount, m.MinimumOrderSize, m.Name)
	}
	// the exact base increment takes precedence over the float minimum order
	// size as the amount step when the market carries one
	if !m.MinimumBaseIncrement.IsZero() {
		if !decimal.NewFromFloat(e.Amount).Mod(m.MinimumBaseIncrement).IsZero() {
			return connector.ValidationError("amount %v is not a multiple of base increment %v on %v", e.Amount, m.MinimumBaseIncrement, m.Name)
		}
	} else if !utils.IsAligned(e.Amount, m.MinimumOrderSize) {
		return connector.ValidationError("amount %v is not a multiple of minimum order size %v on %v", e.Amount, m.MinimumOrderSize, m.Name)
	}
	return nil
}
