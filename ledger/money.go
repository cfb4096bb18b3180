package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MilliunitsPerUnit is the fixed-point scale of every stored amount.
const MilliunitsPerUnit = 1000

var milliScale = decimal.NewFromInt(MilliunitsPerUnit)

// ToMilliunits converts a currency amount to milliunits, rounding half away from zero.
func ToMilliunits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(milliScale).Round(0).IntPart()
}

// FromMilliunits converts milliunits back to a currency amount.
func FromMilliunits(amount int64) float64 {
	f, _ := decimal.NewFromInt(amount).Div(milliScale).Float64()
	return f
}

// ParseAmount parses a decimal string such as "-12.50" or "1,234.5" into milliunits.
func ParseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d.Mul(milliScale).Round(0).IntPart(), nil
}
