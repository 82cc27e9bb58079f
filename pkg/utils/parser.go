package utils

import (
	"strconv"

	"github.com/shopspring/decimal"
)

func StrToFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err
}

func FloatToStr(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// StrToDecimal parses arbitrary-precision integers/decimals the venue
// reports as strings (lot sizes, base increments) without float rounding.
func StrToDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// IsAligned reports whether value is an exact multiple of step. A zero step
// aligns everything.
func IsAligned(value float64, step float64) bool {
	if step == 0 {
		return true
	}
	v := decimal.NewFromFloat(value)
	s := decimal.NewFromFloat(step)
	return v.Mod(s).IsZero()
}
