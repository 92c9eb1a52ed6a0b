package pricing

import (
	"math/big"
	"strings"

	"github.com/paneworks/glass-quote/internal/config"
	"github.com/paneworks/glass-quote/pkg/constants"
	"github.com/paneworks/glass-quote/pkg/measurement"
)

// oneEighthInch is the thinnest stocked glass. It supports no tempering and
// no edge work at all.
var oneEighthInch = big.NewRat(1, 8)

// validateRules re-enforces the manufacturing constraints the UI toggles
// pre-emptively, so a stale or bypassed UI cannot produce an invalid quote.
// Every rule is checked; violations are collected, never short-circuited.
func validateRules(req QuoteRequest, material *config.MaterialEntry) *ValidationError {
	var violations []Violation

	shape := strings.ToLower(req.Shape)
	switch shape {
	case constants.ShapeRectangular, constants.ShapeCircular, constants.ShapeNonRectangular:
	default:
		violations = append(violations, ViolationUnsupportedShape)
	}

	isEighth := false
	if thickness, err := measurement.Parse(req.Thickness); err == nil {
		isEighth = thickness.Rat().Cmp(oneEighthInch) == 0
	}

	if req.Tempered && (material.NeverTempered || isEighth) {
		violations = append(violations, ViolationTemperedNotAllowed)
	}
	if !req.Tempered && material.OnlyTempered {
		violations = append(violations, ViolationTemperedRequired)
	}
	if req.Beveled && isEighth {
		violations = append(violations, ViolationBeveledNotAllowed)
	}

	isMirror := strings.EqualFold(req.GlassType, constants.GlassTypeMirror)
	if req.ClippedCorners > 0 && (isMirror || shape == constants.ShapeCircular) {
		violations = append(violations, ViolationClippedCornersNotAllowed)
	}
	if req.ClippedCorners < 0 || req.ClippedCorners > 4 {
		violations = append(violations, ViolationInvalidClippedCornerCount)
	}

	if req.Quantity < 1 {
		violations = append(violations, ViolationInvalidQuantity)
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}
