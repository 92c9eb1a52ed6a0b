// Package measurement provides exact rational inch measurements; it parses
// and formats the mixed numbers, fractions, and decimals used on glass work
// orders.
package measurement

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/paneworks/glass-quote/pkg/constants"
)

// ParseError indicates a malformed measurement string.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid measurement %q: %s", e.Input, e.Reason)
}

// Value is an exact rational inch measurement. The zero Value is 0". Values
// are immutable once constructed; accessors return copies.
type Value struct {
	rat *big.Rat
}

// FromRat constructs a Value from a rational. The input is copied.
func FromRat(r *big.Rat) Value {
	return Value{rat: new(big.Rat).Set(r)}
}

// Parse parses a measurement string. Accepted shapes are whole numbers
// ("24"), decimals ("24.5"), simple fractions ("3/4"), and mixed numbers
// with a single space ("24 1/2"). A leading "-" on the whole part of a mixed
// number propagates onto the fractional part. Anything else is a ParseError.
func Parse(text string) (Value, error) {
	tokens := strings.Split(text, " ")
	switch len(tokens) {
	case 1:
		if tokens[0] == "" {
			return Value{}, &ParseError{Input: text, Reason: "empty string"}
		}
		if strings.Contains(tokens[0], "/") {
			r, ok := parseFraction(tokens[0])
			if !ok {
				return Value{}, &ParseError{Input: text, Reason: "malformed fraction"}
			}
			return Value{rat: r}, nil
		}
		r, ok := parseNumber(tokens[0])
		if !ok {
			return Value{}, &ParseError{Input: text, Reason: "malformed number"}
		}
		return Value{rat: r}, nil
	case 2:
		whole, ok := parseInt(tokens[0])
		if !ok {
			return Value{}, &ParseError{Input: text, Reason: "malformed whole part"}
		}
		frac, ok := parseFraction(tokens[1])
		if !ok || frac.Sign() < 0 {
			return Value{}, &ParseError{Input: text, Reason: "malformed fractional part"}
		}
		negative := strings.HasPrefix(tokens[0], "-")
		r := new(big.Rat).SetInt(whole)
		if negative {
			// The sign on the whole part covers the fraction too.
			r.Sub(r, frac)
		} else {
			r.Add(r, frac)
		}
		return Value{rat: r}, nil
	default:
		return Value{}, &ParseError{Input: text, Reason: "too many tokens"}
	}
}

// MustParse parses a measurement string and panics on error. This is
// intended for use in tests where the string is known to be valid.
func MustParse(text string) Value {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// parseInt parses an optionally negative base-10 integer.
func parseInt(text string) (*big.Int, bool) {
	digits := strings.TrimPrefix(text, "-")
	if !isDigits(digits) {
		return nil, false
	}
	n, ok := new(big.Int).SetString(text, 10)
	return n, ok
}

// parseNumber parses a whole number or a decimal. Decimals convert exactly
// to rationals (e.g. "24.5" -> 49/2) and are not reduced further beyond the
// normal form big.Rat maintains.
func parseNumber(text string) (*big.Rat, bool) {
	body := strings.TrimPrefix(text, "-")
	intPart, decPart, hasDot := strings.Cut(body, ".")
	if !isDigits(intPart) {
		return nil, false
	}
	if hasDot && !isDigits(decPart) {
		return nil, false
	}
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		return nil, false
	}
	return r, true
}

// parseFraction parses a simple fraction with a positive denominator. The
// numerator may carry a sign; mixed-number callers reject signed numerators
// themselves.
func parseFraction(text string) (*big.Rat, bool) {
	numText, denText, found := strings.Cut(text, "/")
	if !found {
		return nil, false
	}
	num, ok := parseInt(numText)
	if !ok {
		return nil, false
	}
	if !isDigits(denText) {
		return nil, false
	}
	den, ok := new(big.Int).SetString(denText, 10)
	if !ok || den.Sign() <= 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

func isDigits(text string) bool {
	if text == "" {
		return false
	}
	for _, c := range text {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Rat returns a copy of the underlying rational.
func (v Value) Rat() *big.Rat {
	if v.rat == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(v.rat)
}

// Float64 returns the nearest float64. This is for display-only contexts;
// the pricing pipeline stays in exact rational arithmetic.
func (v Value) Float64() float64 {
	f, _ := v.Rat().Float64()
	return f
}

// Sign returns -1, 0, or +1 depending on the sign of the value.
func (v Value) Sign() int {
	if v.rat == nil {
		return 0
	}
	return v.rat.Sign()
}

// Format renders the value at the standard glass-shop granularity of
// sixteenths of an inch.
func (v Value) Format() string {
	return v.FormatWithDenominator(constants.FractionDenominator)
}

// FormatWithDenominator reduces the value to the nearest fraction with
// denominator <= maxDenominator and renders it as a whole number, a pure
// fraction ("3/4"), or a mixed number ("24 1/2"). Negative values render the
// sign once on the whole part.
func (v Value) FormatWithDenominator(maxDenominator int) string {
	abs := new(big.Rat).Abs(v.Rat())
	best := approximate(abs, maxDenominator)

	num := best.Num()
	den := best.Denom()
	whole := new(big.Int).Quo(num, den)
	rem := new(big.Int).Mod(num, den)

	sign := ""
	if v.Sign() < 0 && best.Sign() != 0 {
		sign = "-"
	}

	switch {
	case rem.Sign() == 0:
		return sign + whole.String()
	case whole.Sign() == 0:
		return fmt.Sprintf("%s%s/%s", sign, rem.String(), den.String())
	default:
		return fmt.Sprintf("%s%s %s/%s", sign, whole.String(), rem.String(), den.String())
	}
}

// approximate returns the closest fraction to abs with a denominator no
// greater than maxDenominator, preferring the smaller denominator on ties.
func approximate(abs *big.Rat, maxDenominator int) *big.Rat {
	if maxDenominator < 1 {
		maxDenominator = 1
	}
	var best *big.Rat
	var bestDiff *big.Rat
	for d := 1; d <= maxDenominator; d++ {
		scaled := new(big.Rat).Mul(abs, new(big.Rat).SetInt64(int64(d)))
		// Round half up to the nearest integer numerator.
		rounded := new(big.Rat).Add(scaled, big.NewRat(1, 2))
		n := new(big.Int).Quo(rounded.Num(), rounded.Denom())
		candidate := new(big.Rat).SetFrac(n, big.NewInt(int64(d)))
		diff := new(big.Rat).Sub(abs, candidate)
		diff.Abs(diff)
		if best == nil || diff.Cmp(bestDiff) < 0 {
			best = candidate
			bestDiff = diff
		}
		if bestDiff.Sign() == 0 {
			break
		}
	}
	return best
}
