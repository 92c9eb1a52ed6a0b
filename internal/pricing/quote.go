// Package pricing implements the glass pricing calculator: a pure function
// of a quote request and one immutable configuration snapshot, producing a
// fully itemized retail quote. It performs no I/O, holds no state, and is
// safe to invoke concurrently.
package pricing

import (
	"math/big"
	"strings"

	"github.com/paneworks/glass-quote/internal/config"
	"github.com/paneworks/glass-quote/pkg/constants"
	"github.com/paneworks/glass-quote/pkg/measurement"
	"github.com/paneworks/glass-quote/pkg/money"
)

// CalculateQuote runs the full pipeline: dimension parsing, rule validation,
// geometry, edge-treatment pricing, markups, contractor discount, and the
// retail formula, then scales by quantity. The first validation or config
// error aborts the calculation; there are no partial results.
func CalculateQuote(req QuoteRequest, cfg *config.PricingConfig) (*QuoteResult, error) {
	width, height, diameter, err := parseDimensions(req)
	if err != nil {
		return nil, err
	}

	material, ok := cfg.Material(req.Thickness, req.GlassType)
	if !ok {
		return nil, &ConfigError{
			Kind:   ConfigUnsupportedConfiguration,
			Detail: "no material for thickness " + req.Thickness + " glass type " + req.GlassType,
		}
	}

	if verr := validateRules(req, material); verr != nil {
		return nil, verr
	}

	shape := strings.ToLower(req.Shape)
	geo := computeGeometry(shape, width, height, diameter, money.FromFloat(cfg.Settings.MinimumBillableSqft))

	items, err := priceEdgeTreatments(req, material, geo, cfg)
	if err != nil {
		return nil, err
	}
	if err := applyMarkups(req, &items, cfg); err != nil {
		return nil, err
	}
	applyContractorDiscount(req, &items, cfg)

	quotePrice, err := applyFormula(cfg.Formula, items)
	if err != nil {
		return nil, err
	}

	// Round the per-unit price to currency precision first so the total is
	// an exact multiple of the price the customer sees.
	roundedPrice := money.RoundRat(quotePrice)
	total := new(big.Rat).Mul(roundedPrice, new(big.Rat).SetInt64(int64(req.Quantity)))

	return &QuoteResult{
		ActualSqft:   ratFloat(geo.actualSqft),
		BillableSqft: ratFloat(geo.billableSqft),
		Perimeter:    ratFloat(geo.perimeter),

		BasePrice:           money.Round(items.basePrice),
		PolishPrice:         money.Round(items.polishPrice),
		BeveledPrice:        money.Round(items.beveledPrice),
		ClippedCornersPrice: money.Round(items.clippedCornersPrice),
		BeforeMarkups:       money.Round(items.beforeMarkups),

		TemperedPrice: money.Round(items.temperedPrice),
		ShapePrice:    money.Round(items.shapePrice),
		Subtotal:      money.Round(items.subtotal),

		ContractorDiscount: money.Round(items.contractorDiscount),
		DiscountedSubtotal: money.Round(items.discountedSubtotal),

		QuotePrice: money.Round(roundedPrice),
		Total:      money.Round(total),
	}, nil
}

// parseDimensions parses the raw dimension strings the shape requires and
// rejects non-positive values. Errors carry the offending field name.
func parseDimensions(req QuoteRequest) (width, height, diameter measurement.Value, err error) {
	shape := strings.ToLower(req.Shape)
	if shape == constants.ShapeCircular {
		diameter, err = parseDimension("diameter", req.Diameter)
		return width, height, diameter, err
	}

	width, err = parseDimension("width", req.Width)
	if err != nil {
		return width, height, diameter, err
	}
	height, err = parseDimension("height", req.Height)
	return width, height, diameter, err
}

func parseDimension(field, raw string) (measurement.Value, error) {
	v, err := measurement.Parse(raw)
	if err != nil {
		return v, &ParseError{Field: field, Err: err}
	}
	if v.Sign() <= 0 {
		return v, &ParseError{Field: field, Err: &measurement.ParseError{Input: raw, Reason: "measurement must be positive"}}
	}
	return v, nil
}

// ratFloat converts a geometric rational for display. Monetary values go
// through money.Round instead.
func ratFloat(r *big.Rat) float64 {
	f, _ := r.Float64()
	return f
}
