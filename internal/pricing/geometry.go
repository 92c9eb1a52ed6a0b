package pricing

import (
	"math/big"

	"github.com/paneworks/glass-quote/pkg/constants"
	"github.com/paneworks/glass-quote/pkg/measurement"
)

// pi enters the pipeline only here, as a fixed-precision rational. This is
// the single controlled precision-loss point between the exact dimension
// input and circular areas and perimeters.
var pi = mustRat("3.14159265358979323846")

var squareInchesPerSquareFoot = big.NewRat(constants.SquareInchesPerSquareFoot, 1)

func mustRat(text string) *big.Rat {
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		panic("invalid rational literal: " + text)
	}
	return r
}

// geometry holds the billable area and perimeter for one piece, all in
// exact rationals (square feet and inches).
type geometry struct {
	actualSqft   *big.Rat
	billableSqft *big.Rat
	perimeter    *big.Rat
}

// computeGeometry derives area and perimeter for the requested shape and
// applies the minimum billable area floor. The floor is on area, not on
// price; both the actual and billed figures are retained so callers can show
// "billed as X" when the minimum applies.
//
// Non-rectangular pieces are billed by their bounding box, the shop's
// measuring convention for irregular templates; only the shape markup
// distinguishes them from rectangles.
func computeGeometry(shape string, width, height, diameter measurement.Value, minimumBillableSqft *big.Rat) geometry {
	var areaSquareInches, perimeter *big.Rat

	if shape == constants.ShapeCircular {
		d := diameter.Rat()
		radius := new(big.Rat).Mul(d, big.NewRat(1, 2))
		areaSquareInches = new(big.Rat).Mul(pi, new(big.Rat).Mul(radius, radius))
		perimeter = new(big.Rat).Mul(pi, d)
	} else {
		w := width.Rat()
		h := height.Rat()
		areaSquareInches = new(big.Rat).Mul(w, h)
		perimeter = new(big.Rat).Mul(big.NewRat(2, 1), new(big.Rat).Add(w, h))
	}

	actualSqft := new(big.Rat).Quo(areaSquareInches, squareInchesPerSquareFoot)
	billableSqft := actualSqft
	if actualSqft.Cmp(minimumBillableSqft) < 0 {
		billableSqft = new(big.Rat).Set(minimumBillableSqft)
	}

	return geometry{
		actualSqft:   actualSqft,
		billableSqft: billableSqft,
		perimeter:    perimeter,
	}
}
