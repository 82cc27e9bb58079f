package market

import (
	"fmt"
	"serumgw/pkg/solana"

	"github.com/shopspring/decimal"
)

// Fee holds the per-market fractional fee rates, both in [0,1).
type Fee struct {
	Maker float64 `json:"maker"`
	Taker float64 `json:"taker"`
}

// Market is the canonical descriptor for a listed pair. TickSize and
// MinimumOrderSize are venue-wide constants for the lifetime of the market;
// Deprecated only ever flips from false to true.
type Market struct {
	Name       string           `json:"name"`
	Address    solana.PublicKey `json:"address"`
	ProgramID  solana.PublicKey `json:"programId"`
	Deprecated bool             `json:"deprecated"`

	MinimumOrderSize float64 `json:"minimumOrderSize"`
	TickSize         float64 `json:"tickSize"`
	// MinimumBaseIncrement is the exact base-unit step; zero when the venue
	// does not expose it, in which case MinimumOrderSize is the granularity.
	MinimumBaseIncrement decimal.Decimal `json:"minimumBaseIncrement"`

	Fees Fee `json:"fees"`
}

// Descriptor is the address-decoded form shared by both basic market flavors.
type Descriptor struct {
	Name       string
	Address    solana.PublicKey
	ProgramID  solana.PublicKey
	Deprecated bool
}

// BasicMarket is a raw market listing entry as the venue publishes it,
// in either the plain (base58 string) or fat (decoded key) flavor.
type BasicMarket interface {
	Canonical() (Descriptor, error)
}

type PlainBasicMarket struct {
	Name       string `json:"name" msgpack:"name"`
	Address    string `json:"address" msgpack:"address"`
	ProgramID  string `json:"programId" msgpack:"programId"`
	Deprecated bool   `json:"deprecated" msgpack:"deprecated"`
}

func (m PlainBasicMarket) Canonical() (Descriptor, error) {
	address, err := solana.PublicKeyFromBase58(m.Address)
	if err != nil {
		return Descriptor{}, fmt.Errorf("market '%v': %w", m.Name, err)
	}
	programID, err := solana.PublicKeyFromBase58(m.ProgramID)
	if err != nil {
		return Descriptor{}, fmt.Errorf("market '%v': %w", m.Name, err)
	}
	return Descriptor{
		Name:       m.Name,
		Address:    address,
		ProgramID:  programID,
		Deprecated: m.Deprecated,
	}, nil
}

type FatBasicMarket struct {
	Name       string
	Address    solana.PublicKey
	ProgramID  solana.PublicKey
	Deprecated bool
}

func (m FatBasicMarket) Canonical() (Descriptor, error) {
	if m.Address.IsZero() {
		return Descriptor{}, fmt.Errorf("market '%v': zero address", m.Name)
	}
	return Descriptor{
		Name:       m.Name,
		Address:    m.Address,
		ProgramID:  m.ProgramID,
		Deprecated: m.Deprecated,
	}, nil
}

// Attributes are the venue-loaded numeric parameters of a market.
type Attributes struct {
	MinimumOrderSize     float64
	TickSize             float64
	MinimumBaseIncrement decimal.Decimal
	Fees                 Fee
}

// Normalize merges a basic listing entry (either flavor) with its loaded
// attributes into one canonical Market. Plain and fat entries with the same
// decoded address produce identical markets.
func Normalize(basic BasicMarket, attrs Attributes) (*Market, error) {
	desc, err := basic.Canonical()
	if err != nil {
		return nil, err
	}
	return &Market{
		Name:                 desc.Name,
		Address:              desc.Address,
		ProgramID:            desc.ProgramID,
		Deprecated:           desc.Deprecated,
		MinimumOrderSize:     attrs.MinimumOrderSize,
		TickSize:             attrs.TickSize,
		MinimumBaseIncrement: attrs.MinimumBaseIncrement,
		Fees:                 attrs.Fees,
	}, nil
}
