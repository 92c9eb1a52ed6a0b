package pricing

import (
	"fmt"
	"strings"
)

// Violation identifies one manufacturing-rule conflict between a quote
// request and the resolved material.
type Violation string

const (
	// ViolationTemperedNotAllowed is returned when tempering is requested
	// for 1/8" glass or a material flagged neverTempered.
	ViolationTemperedNotAllowed Violation = "tempered_not_allowed"

	// ViolationTemperedRequired is returned when a material flagged
	// onlyTempered is requested untempered.
	ViolationTemperedRequired Violation = "tempered_required"

	// ViolationBeveledNotAllowed is returned when beveling is requested for
	// 1/8" glass, which supports no edge work at all.
	ViolationBeveledNotAllowed Violation = "beveled_not_allowed"

	// ViolationClippedCornersNotAllowed is returned when clipped corners are
	// requested for a mirror or a circular piece.
	ViolationClippedCornersNotAllowed Violation = "clipped_corners_not_allowed"

	// ViolationInvalidClippedCornerCount is returned when the corner count
	// is outside 0-4.
	ViolationInvalidClippedCornerCount Violation = "invalid_clipped_corner_count"

	// ViolationInvalidQuantity is returned for quantities below 1.
	ViolationInvalidQuantity Violation = "invalid_quantity"

	// ViolationUnsupportedShape is returned for an unrecognized shape kind.
	ViolationUnsupportedShape Violation = "unsupported_shape"
)

// ValidationError aggregates every violation found for a request. All rules
// are checked independently so the caller can report everything wrong at
// once rather than one problem at a time.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = string(v)
	}
	return "request violates manufacturing rules: " + strings.Join(parts, ", ")
}

// Has reports whether the error contains a specific violation.
func (e *ValidationError) Has(v Violation) bool {
	for _, violation := range e.Violations {
		if violation == v {
			return true
		}
	}
	return false
}

// ConfigErrorKind classifies configuration-integrity failures.
type ConfigErrorKind string

const (
	// ConfigUnsupportedConfiguration means no material row exists for the
	// requested thickness and glass type. This is a data problem, not a
	// user input problem.
	ConfigUnsupportedConfiguration ConfigErrorKind = "unsupported_configuration"

	// ConfigMissingPriceEntry means a beveled, clipped-corner, or markup
	// lookup missed after validation passed, indicating an inconsistent
	// config snapshot.
	ConfigMissingPriceEntry ConfigErrorKind = "missing_price_entry"
)

// ConfigError indicates an inconsistent or incomplete pricing snapshot.
// Fatal for the request; nothing is retried inside the calculator.
type ConfigError struct {
	Kind   ConfigErrorKind
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error (%s): %s", e.Kind, e.Detail)
}

// FormulaErrorKind classifies formula evaluation failures.
type FormulaErrorKind string

const (
	// FormulaDivideByZero is returned instead of propagating infinity when
	// the divisor is zero, or when a custom expression divides by zero.
	FormulaDivideByZero FormulaErrorKind = "divide_by_zero"

	// FormulaInvalidExpression is returned for custom expressions that do
	// not fit the restricted arithmetic grammar.
	FormulaInvalidExpression FormulaErrorKind = "invalid_expression"
)

// FormulaError indicates the active formula could not be evaluated.
type FormulaError struct {
	Kind   FormulaErrorKind
	Detail string
}

func (e *FormulaError) Error() string {
	return fmt.Sprintf("formula error (%s): %s", e.Kind, e.Detail)
}

// ParseError wraps a measurement parse failure with the name of the
// offending request field so it can be surfaced verbatim to the caller.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
