package report

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money rounds an amount to cents for display. Engine figures stay float64;
// rounding happens only at the output edge. ok is false for NaN and ±Inf,
// which have no decimal form.
func Money(x float64) (m decimal.Decimal, ok bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(x).Round(2), true
}

// FormatMoney renders an amount with exactly two decimals. Non-finite amounts
// are rendered as Go formats them ("NaN", "+Inf").
func FormatMoney(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return formatNonFinite(x)
	}
	m, _ := Money(x)
	return m.StringFixed(2)
}

func formatNonFinite(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "+Inf"
	default:
		return "-Inf"
	}
}
