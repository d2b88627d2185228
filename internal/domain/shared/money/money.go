package money

import "math"

// Amounts stay in decimal currency units across the engine; conversion to
// integer minor units belongs to the payment boundary.

// Round2 rounds to two decimal places, the granularity every stored amount
// uses.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundUnit rounds to whole currency units. Percentage promo discounts are
// computed at this granularity.
func RoundUnit(v float64) float64 {
	return math.Round(v)
}

// Min returns the smaller amount; used to cap fixed discounts at the total.
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
