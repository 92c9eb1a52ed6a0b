package pricing

import (
	"errors"
	"testing"

	"github.com/paneworks/glass-quote/internal/config"
)

func testConfig() *config.PricingConfig {
	return &config.PricingConfig{
		Materials: []config.MaterialEntry{
			{Thickness: "1/4", GlassType: "clear", WholesaleBasePricePerSqft: 12.50, WholesalePolishPricePerInch: 0.35},
			{Thickness: "1/8", GlassType: "clear", WholesaleBasePricePerSqft: 8.00, WholesalePolishPricePerInch: 0.25},
			{Thickness: "1/4", GlassType: "mirror", WholesaleBasePricePerSqft: 10.00, WholesalePolishPricePerInch: 0.40, NeverTempered: true},
			{Thickness: "3/8", GlassType: "lowiron", WholesaleBasePricePerSqft: 20.00, WholesalePolishPricePerInch: 0.50, OnlyTempered: true},
		},
		Markups: []config.MarkupEntry{
			{Name: "tempered", Percentage: 0.35},
			{Name: "shape", Percentage: 0.25},
		},
		BeveledPrices: []config.BeveledPriceEntry{
			{Thickness: "1/4", PricePerInch: 1.10},
		},
		ClippedCornerPrices: []config.ClippedCornerPriceEntry{
			{Thickness: "1/4", ClipSize: "under_1", PricePerCorner: 2.50},
			{Thickness: "1/4", ClipSize: "over_1", PricePerCorner: 4.00},
		},
		Settings: config.CalculatorSettings{
			MinimumBillableSqft:    3.0,
			ContractorDiscountRate: 0.15,
			FlatMirrorPolishRate:   0.27,
		},
		Formula: config.FormulaConfig{
			Mode:                     "divisor",
			DivisorValue:             0.28,
			MultiplierValue:          3.5714,
			EnableBasePrice:          true,
			EnablePolish:             true,
			EnableBeveled:            true,
			EnableClippedCorners:     true,
			EnableTemperedMarkup:     true,
			EnableShapeMarkup:        true,
			EnableContractorDiscount: true,
		},
	}
}

func baseRequest() QuoteRequest {
	return QuoteRequest{
		Shape:     "rectangular",
		Width:     "24",
		Height:    "36",
		Thickness: "1/4",
		GlassType: "clear",
		Quantity:  1,
	}
}

func TestCalculateQuoteWorkedExample(t *testing.T) {
	result, err := CalculateQuote(baseRequest(), testConfig())
	if err != nil {
		t.Fatalf("CalculateQuote returned error: %v", err)
	}

	checks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"ActualSqft", result.ActualSqft, 6.0},
		{"BillableSqft", result.BillableSqft, 6.0},
		{"Perimeter", result.Perimeter, 120.0},
		{"BasePrice", result.BasePrice, 75.00},
		{"PolishPrice", result.PolishPrice, 0},
		{"BeveledPrice", result.BeveledPrice, 0},
		{"ClippedCornersPrice", result.ClippedCornersPrice, 0},
		{"BeforeMarkups", result.BeforeMarkups, 75.00},
		{"TemperedPrice", result.TemperedPrice, 0},
		{"ShapePrice", result.ShapePrice, 0},
		{"Subtotal", result.Subtotal, 75.00},
		{"ContractorDiscount", result.ContractorDiscount, 0},
		{"DiscountedSubtotal", result.DiscountedSubtotal, 75.00},
		{"QuotePrice", result.QuotePrice, 267.86},
		{"Total", result.Total, 267.86},
	}

	for _, check := range checks {
		if check.got != check.expected {
			t.Errorf("%s = %v, expected %v", check.name, check.got, check.expected)
		}
	}
}

func TestCalculateQuoteMinimumAreaFloor(t *testing.T) {
	req := baseRequest()
	req.Width = "18"
	req.Height = "18"

	result, err := CalculateQuote(req, testConfig())
	if err != nil {
		t.Fatalf("CalculateQuote returned error: %v", err)
	}
	if result.ActualSqft != 2.25 {
		t.Errorf("ActualSqft = %v, expected 2.25", result.ActualSqft)
	}
	if result.BillableSqft != 3.0 {
		t.Errorf("BillableSqft = %v, expected 3.0", result.BillableSqft)
	}
	// 12.50/sqft on the 3.0 sqft floor, not the 2.25 actual.
	if result.BasePrice != 37.50 {
		t.Errorf("BasePrice = %v, expected 37.50", result.BasePrice)
	}
}

func TestCalculateQuoteDeterminism(t *testing.T) {
	req := baseRequest()
	req.Polish = true
	req.Tempered = true
	cfg := testConfig()

	first, err := CalculateQuote(req, cfg)
	if err != nil {
		t.Fatalf("CalculateQuote returned error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := CalculateQuote(req, cfg)
		if err != nil {
			t.Fatalf("CalculateQuote returned error on repeat: %v", err)
		}
		if *again != *first {
			t.Fatalf("CalculateQuote is not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestCalculateQuoteLinearityInQuantity(t *testing.T) {
	for _, quantity := range []int{1, 2, 3, 7, 100} {
		req := baseRequest()
		req.Quantity = quantity
		result, err := CalculateQuote(req, testConfig())
		if err != nil {
			t.Fatalf("CalculateQuote(quantity=%d) returned error: %v", quantity, err)
		}
		expected := float64(quantity) * 267.86
		// The total is an exact cent multiple of the rounded unit price.
		if diff := result.Total - expected; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Total(quantity=%d) = %v, expected %v", quantity, result.Total, expected)
		}
	}
}

func TestCalculateQuoteFormulaToggleKeepsBreakdown(t *testing.T) {
	req := baseRequest()
	req.Tempered = true
	cfg := testConfig()
	cfg.Formula.EnableTemperedMarkup = false

	result, err := CalculateQuote(req, cfg)
	if err != nil {
		t.Fatalf("CalculateQuote returned error: %v", err)
	}
	// The markup is still reported as a line item for transparency.
	if result.TemperedPrice != 26.25 {
		t.Errorf("TemperedPrice = %v, expected 26.25", result.TemperedPrice)
	}
	if result.Subtotal != 101.25 {
		t.Errorf("Subtotal = %v, expected 101.25", result.Subtotal)
	}
	// But the sum fed into the formula excludes it: 75 / 0.28.
	if result.QuotePrice != 267.86 {
		t.Errorf("QuotePrice = %v, expected 267.86", result.QuotePrice)
	}
}

func TestCalculateQuoteMirrorFlatPolish(t *testing.T) {
	req := baseRequest()
	req.GlassType = "mirror"
	req.Polish = true

	result, err := CalculateQuote(req, testConfig())
	if err != nil {
		t.Fatalf("CalculateQuote returned error: %v", err)
	}
	// Mirrors polish at the flat 0.27/inch rate, not the 0.40/inch material
	// rate: 0.27 * 120 = 32.40.
	if result.PolishPrice != 32.40 {
		t.Errorf("PolishPrice = %v, expected 32.40", result.PolishPrice)
	}
}

func TestCalculateQuoteNoPolishMaterial(t *testing.T) {
	cfg := testConfig()
	cfg.Materials[0].NoPolish = true
	req := baseRequest()
	req.Polish = true

	result, err := CalculateQuote(req, cfg)
	if err != nil {
		t.Fatalf("CalculateQuote returned error: %v", err)
	}
	if result.PolishPrice != 0 {
		t.Errorf("PolishPrice = %v, expected 0 for a noPolish material", result.PolishPrice)
	}
}

func TestCalculateQuoteContractorDiscount(t *testing.T) {
	req := baseRequest()
	req.ContractorDiscount = true

	result, err := CalculateQuote(req, testConfig())
	if err != nil {
		t.Fatalf("CalculateQuote returned error: %v", err)
	}
	if result.ContractorDiscount != 11.25 {
		t.Errorf("ContractorDiscount = %v, expected 11.25", result.ContractorDiscount)
	}
	if result.DiscountedSubtotal != 63.75 {
		t.Errorf("DiscountedSubtotal = %v, expected 63.75", result.DiscountedSubtotal)
	}
	// 63.75 / 0.28 = 227.678... -> 227.68
	if result.QuotePrice != 227.68 {
		t.Errorf("QuotePrice = %v, expected 227.68", result.QuotePrice)
	}
}

func TestCalculateQuoteClippedCorners(t *testing.T) {
	req := baseRequest()
	req.ClippedCorners = 2
	req.ClipSize = "under_1"

	result, err := CalculateQuote(req, testConfig())
	if err != nil {
		t.Fatalf("CalculateQuote returned error: %v", err)
	}
	if result.ClippedCornersPrice != 5.00 {
		t.Errorf("ClippedCornersPrice = %v, expected 5.00", result.ClippedCornersPrice)
	}
	if result.BeforeMarkups != 80.00 {
		t.Errorf("BeforeMarkups = %v, expected 80.00", result.BeforeMarkups)
	}
}

func TestCalculateQuoteShapeMarkup(t *testing.T) {
	req := QuoteRequest{
		Shape:     "circular",
		Diameter:  "36",
		Thickness: "1/4",
		GlassType: "clear",
		Quantity:  1,
	}

	result, err := CalculateQuote(req, testConfig())
	if err != nil {
		t.Fatalf("CalculateQuote returned error: %v", err)
	}
	if result.ShapePrice == 0 {
		t.Errorf("ShapePrice = 0, expected the 25%% shape markup to apply")
	}
	expected := 0.25 * result.BeforeMarkups
	if diff := result.ShapePrice - expected; diff > 0.01 || diff < -0.01 {
		t.Errorf("ShapePrice = %v, expected ~%v", result.ShapePrice, expected)
	}
}

func TestCalculateQuoteErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*QuoteRequest, *config.PricingConfig)
		check   func(error) bool
		details string
	}{
		{
			name:    "Malformed width",
			mutate:  func(req *QuoteRequest, cfg *config.PricingConfig) { req.Width = "24  1/2" },
			check:   func(err error) bool { var e *ParseError; return errors.As(err, &e) && e.Field == "width" },
			details: "ParseError on width",
		},
		{
			name:    "Non-positive height",
			mutate:  func(req *QuoteRequest, cfg *config.PricingConfig) { req.Height = "0" },
			check:   func(err error) bool { var e *ParseError; return errors.As(err, &e) && e.Field == "height" },
			details: "ParseError on height",
		},
		{
			name:   "Missing diameter on a circle",
			mutate: func(req *QuoteRequest, cfg *config.PricingConfig) { req.Shape = "circular" },
			check: func(err error) bool {
				var e *ParseError
				return errors.As(err, &e) && e.Field == "diameter"
			},
			details: "ParseError on diameter",
		},
		{
			name:   "Unsupported material",
			mutate: func(req *QuoteRequest, cfg *config.PricingConfig) { req.Thickness = "7/8" },
			check: func(err error) bool {
				var e *ConfigError
				return errors.As(err, &e) && e.Kind == ConfigUnsupportedConfiguration
			},
			details: "ConfigError unsupported configuration",
		},
		{
			name:   "Tempered eighth inch",
			mutate: func(req *QuoteRequest, cfg *config.PricingConfig) { req.Thickness = "1/8"; req.Tempered = true },
			check: func(err error) bool {
				var e *ValidationError
				return errors.As(err, &e) && e.Has(ViolationTemperedNotAllowed)
			},
			details: "ValidationError tempered not allowed",
		},
		{
			name: "Beveled price entry missing",
			mutate: func(req *QuoteRequest, cfg *config.PricingConfig) {
				req.Beveled = true
				cfg.BeveledPrices = nil
			},
			check: func(err error) bool {
				var e *ConfigError
				return errors.As(err, &e) && e.Kind == ConfigMissingPriceEntry
			},
			details: "ConfigError missing price entry",
		},
		{
			name: "Markup row missing",
			mutate: func(req *QuoteRequest, cfg *config.PricingConfig) {
				req.Tempered = true
				cfg.Markups = nil
			},
			check: func(err error) bool {
				var e *ConfigError
				return errors.As(err, &e) && e.Kind == ConfigMissingPriceEntry
			},
			details: "ConfigError missing markup",
		},
		{
			name:   "Zero divisor fails closed",
			mutate: func(req *QuoteRequest, cfg *config.PricingConfig) { cfg.Formula.DivisorValue = 0 },
			check: func(err error) bool {
				var e *FormulaError
				return errors.As(err, &e) && e.Kind == FormulaDivideByZero
			},
			details: "FormulaError divide by zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			cfg := testConfig()
			tt.mutate(&req, cfg)
			result, err := CalculateQuote(req, cfg)
			if err == nil {
				t.Fatalf("CalculateQuote succeeded (%+v), expected %s", result, tt.details)
			}
			if !tt.check(err) {
				t.Errorf("CalculateQuote error = %v (%T), expected %s", err, err, tt.details)
			}
		})
	}
}
