package summary

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentageChange is the relative change from previous to current in percent.
// A zero previous value yields 0 when current is also zero and 100 otherwise,
// whatever the sign of current.
func PercentageChange(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	cur := decimal.NewFromInt(current)
	prev := decimal.NewFromInt(previous)
	f, _ := cur.Sub(prev).Div(prev).Mul(hundred).Float64()
	return f
}
