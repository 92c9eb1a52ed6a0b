// Package money handles the boundary between the exact rational pricing
// pipeline and fixed-precision currency values.
package money

import (
	"math/big"
	"strconv"
)

// FromFloat converts a configured price into an exact rational using its
// shortest decimal representation, so 0.28 becomes exactly 28/100 rather
// than the nearest binary float. Configuration stores prices and rates as
// decimal numbers; this is how they enter the rational pipeline.
func FromFloat(f float64) *big.Rat {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'f', -1, 64))
	if !ok {
		// FormatFloat never produces a string SetString rejects for finite
		// inputs; NaN/Inf fall back to zero.
		return new(big.Rat)
	}
	return r
}

// RoundRat returns r rounded to currency precision (two decimals, halves
// away from zero) as an exact rational.
func RoundRat(r *big.Rat) *big.Rat {
	rounded, _ := new(big.Rat).SetString(r.FloatString(2))
	return rounded
}

// Round returns r rounded to currency precision as a float64. This is the
// single exit point from rational arithmetic into output values.
func Round(r *big.Rat) float64 {
	f, _ := strconv.ParseFloat(r.FloatString(2), 64)
	return f
}
