// Package output provides utilities for formatting and displaying quote
// breakdowns.
package output

import (
	"fmt"
	"io"

	"github.com/paneworks/glass-quote/internal/pricing"
	"github.com/paneworks/glass-quote/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ValidateFormat checks if the output format is one of the supported formats.
func ValidateFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

type line struct {
	label string
	value float64
	money bool
}

func lines(result *pricing.QuoteResult) []line {
	return []line{
		{"Actual sq ft", result.ActualSqft, false},
		{"Billable sq ft", result.BillableSqft, false},
		{"Perimeter (in)", result.Perimeter, false},
		{"Base price", result.BasePrice, true},
		{"Polish", result.PolishPrice, true},
		{"Beveled edges", result.BeveledPrice, true},
		{"Clipped corners", result.ClippedCornersPrice, true},
		{"Before markups", result.BeforeMarkups, true},
		{"Tempered markup", result.TemperedPrice, true},
		{"Shape markup", result.ShapePrice, true},
		{"Subtotal", result.Subtotal, true},
		{"Contractor discount", result.ContractorDiscount, true},
		{"Discounted subtotal", result.DiscountedSubtotal, true},
		{"Quote price (each)", result.QuotePrice, true},
		{"Total", result.Total, true},
	}
}

// PrettyFormat writes a human-readable rather than machine-readable
// breakdown of one quote.
func PrettyFormat(w io.Writer, result *pricing.QuoteResult) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "--- Quote breakdown ---\n")
	if result.BillableSqft > result.ActualSqft {
		fmt.Fprintf(w, "(billed at the %.2f sq ft minimum)\n", result.BillableSqft)
	}
	for _, l := range lines(result) {
		if l.money {
			_, _ = p.Fprintf(w, "%-20s | $%.2f\n", l.label, l.value)
		} else {
			_, _ = p.Fprintf(w, "%-20s | %.4f\n", l.label, l.value)
		}
	}
}

// CsvFormat writes the breakdown in comma-separated value format, one header
// row and one value row.
func CsvFormat(w io.Writer, result *pricing.QuoteResult) {
	items := lines(result)
	for i, l := range items {
		if i > 0 {
			fmt.Fprintf(w, ",")
		}
		fmt.Fprintf(w, "%q", l.label)
	}
	fmt.Fprintf(w, "\n")
	for i, l := range items {
		if i > 0 {
			fmt.Fprintf(w, ",")
		}
		if l.money {
			fmt.Fprintf(w, `"%.2f"`, l.value)
		} else {
			fmt.Fprintf(w, `"%.4f"`, l.value)
		}
	}
	fmt.Fprintf(w, "\n")
}
