package market

import (
	"reflect"
	"testing"

	"serumgw/pkg/solana"

	"github.com/shopspring/decimal"
)

const (
	solUsdcAddress = "9wFFyRfZBsuAha4YcuxcXLKwMxJR43S7fPfQLusDBzvT"
	serumProgram   = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
)

func testAttrs() Attributes {
	return Attributes{
		MinimumOrderSize:     0.1,
		TickSize:             0.001,
		MinimumBaseIncrement: decimal.NewFromInt(100000),
		Fees:                 Fee{Maker: 0.0002, Taker: 0.0004},
	}
}

func TestNormalizePlainFatIdentical(t *testing.T) {
	plain := PlainBasicMarket{
		Name:      "SOL/USDC",
		Address:   solUsdcAddress,
		ProgramID: serumProgram,
	}
	fat := FatBasicMarket{
		Name:      "SOL/USDC",
		Address:   solana.MustPublicKeyFromBase58(solUsdcAddress),
		ProgramID: solana.MustPublicKeyFromBase58(serumProgram),
	}

	fromPlain, err := Normalize(plain, testAttrs())
	if err != nil {
		t.Fatalf("normalize plain: %v", err)
	}
	fromFat, err := Normalize(fat, testAttrs())
	if err != nil {
		t.Fatalf("normalize fat: %v", err)
	}
	if !reflect.DeepEqual(fromPlain, fromFat) {
		t.Fatalf("plain and fat normalization diverge:\n%+v\n%+v", fromPlain, fromFat)
	}
}

func TestNormalizeBadAddress(t *testing.T) {
	plain := PlainBasicMarket{Name: "BAD/USDC", Address: "garbage", ProgramID: serumProgram}
	if _, err := Normalize(plain, testAttrs()); err == nil {
		t.Fatal("expected error for undecodable address")
	}
}

func TestRegistryReplaceAndLookup(t *testing.T) {
	r := NewRegistry()
	if _, exists := r.ByName("SOL/USDC"); exists {
		t.Fatal("empty registry resolved a market")
	}

	m, err := Normalize(PlainBasicMarket{Name: "SOL/USDC", Address: solUsdcAddress, ProgramID: serumProgram}, testAttrs())
	if err != nil {
		t.Fatal(err)
	}
	r.Replace(map[string]*Market{m.Name: m})

	got, exists := r.ByName("SOL/USDC")
	if !exists {
		t.Fatal("market not found after replace")
	}
	if got.TickSize != 0.001 {
		t.Fatalf("unexpected tick size: %v", got.TickSize)
	}
	if r.Len() != 1 {
		t.Fatalf("unexpected registry size: %v", r.Len())
	}
}

func TestRegistryDeprecatedMonotonic(t *testing.T) {
	r := NewRegistry()
	m, err := Normalize(PlainBasicMarket{Name: "SOL/USDC", Address: solUsdcAddress, ProgramID: serumProgram, Deprecated: true}, testAttrs())
	if err != nil {
		t.Fatal(err)
	}
	r.Replace(map[string]*Market{m.Name: m})

	// refresh claims the market is live again
	fresh := *m
	fresh.Deprecated = false
	r.Replace(map[string]*Market{fresh.Name: &fresh})

	got, _ := r.ByName("SOL/USDC")
	if !got.Deprecated {
		t.Fatal("deprecated flag reverted on refresh")
	}
}
