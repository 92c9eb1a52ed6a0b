package pricing

import (
	"testing"

	"github.com/paneworks/glass-quote/internal/config"
)

func TestValidateRules(t *testing.T) {
	clear := &config.MaterialEntry{Thickness: "1/4", GlassType: "clear"}
	eighth := &config.MaterialEntry{Thickness: "1/8", GlassType: "clear"}
	mirror := &config.MaterialEntry{Thickness: "1/4", GlassType: "mirror", NeverTempered: true}
	temperedOnly := &config.MaterialEntry{Thickness: "3/8", GlassType: "lowiron", OnlyTempered: true}

	tests := []struct {
		name     string
		request  QuoteRequest
		material *config.MaterialEntry
		expected []Violation
	}{
		{
			name:     "Valid rectangular request",
			request:  QuoteRequest{Shape: "rectangular", Thickness: "1/4", GlassType: "clear", Quantity: 1},
			material: clear,
			expected: nil,
		},
		{
			name:     "Eighth inch cannot be tempered",
			request:  QuoteRequest{Shape: "rectangular", Thickness: "1/8", GlassType: "clear", Quantity: 1, Tempered: true},
			material: eighth,
			expected: []Violation{ViolationTemperedNotAllowed},
		},
		{
			name:     "Eighth inch cannot be beveled",
			request:  QuoteRequest{Shape: "rectangular", Thickness: "1/8", GlassType: "clear", Quantity: 1, Beveled: true},
			material: eighth,
			expected: []Violation{ViolationBeveledNotAllowed},
		},
		{
			name:     "Never tempered material",
			request:  QuoteRequest{Shape: "rectangular", Thickness: "1/4", GlassType: "mirror", Quantity: 1, Tempered: true},
			material: mirror,
			expected: []Violation{ViolationTemperedNotAllowed},
		},
		{
			name:     "Only tempered material requested untempered",
			request:  QuoteRequest{Shape: "rectangular", Thickness: "3/8", GlassType: "lowiron", Quantity: 1},
			material: temperedOnly,
			expected: []Violation{ViolationTemperedRequired},
		},
		{
			name:     "Mirror cannot have clipped corners",
			request:  QuoteRequest{Shape: "rectangular", Thickness: "1/4", GlassType: "mirror", Quantity: 1, ClippedCorners: 2, ClipSize: "under_1"},
			material: mirror,
			expected: []Violation{ViolationClippedCornersNotAllowed},
		},
		{
			name:     "Circle cannot have clipped corners",
			request:  QuoteRequest{Shape: "circular", Thickness: "1/4", GlassType: "clear", Quantity: 1, ClippedCorners: 1, ClipSize: "under_1"},
			material: clear,
			expected: []Violation{ViolationClippedCornersNotAllowed},
		},
		{
			name:     "Too many corners",
			request:  QuoteRequest{Shape: "rectangular", Thickness: "1/4", GlassType: "clear", Quantity: 1, ClippedCorners: 5, ClipSize: "under_1"},
			material: clear,
			expected: []Violation{ViolationInvalidClippedCornerCount},
		},
		{
			name:     "Quantity below one",
			request:  QuoteRequest{Shape: "rectangular", Thickness: "1/4", GlassType: "clear", Quantity: 0},
			material: clear,
			expected: []Violation{ViolationInvalidQuantity},
		},
		{
			name:     "Unknown shape",
			request:  QuoteRequest{Shape: "trapezoid", Thickness: "1/4", GlassType: "clear", Quantity: 1},
			material: clear,
			expected: []Violation{ViolationUnsupportedShape},
		},
		{
			name:     "All violations collected at once",
			request:  QuoteRequest{Shape: "rectangular", Thickness: "1/8", GlassType: "clear", Quantity: 0, Tempered: true, Beveled: true},
			material: eighth,
			expected: []Violation{ViolationTemperedNotAllowed, ViolationBeveledNotAllowed, ViolationInvalidQuantity},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRules(tt.request, tt.material)
			if len(tt.expected) == 0 {
				if err != nil {
					t.Fatalf("validateRules returned %v, expected no violations", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("validateRules returned nil, expected violations %v", tt.expected)
			}
			if len(err.Violations) != len(tt.expected) {
				t.Fatalf("validateRules returned %v, expected %v", err.Violations, tt.expected)
			}
			for _, v := range tt.expected {
				if !err.Has(v) {
					t.Errorf("expected violation %s missing from %v", v, err.Violations)
				}
			}
		})
	}
}
