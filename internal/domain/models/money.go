package models

import "github.com/shopspring/decimal"

// round2 rounds a float through decimal arithmetic so that derived money
// fields do not accumulate binary floating-point drift across recalculations.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// mul2 returns a*b rounded to two decimal places.
func mul2(a, b float64) float64 {
	return decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Round(2).InexactFloat64()
}
