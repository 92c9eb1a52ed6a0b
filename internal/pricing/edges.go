package pricing

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/paneworks/glass-quote/internal/config"
	"github.com/paneworks/glass-quote/pkg/constants"
	"github.com/paneworks/glass-quote/pkg/money"
)

// lineItems carries every wholesale-basis dollar amount through the
// pipeline, all as exact rationals until the assembler rounds for output.
type lineItems struct {
	basePrice           *big.Rat
	polishPrice         *big.Rat
	beveledPrice        *big.Rat
	clippedCornersPrice *big.Rat
	beforeMarkups       *big.Rat

	temperedPrice *big.Rat
	shapePrice    *big.Rat
	subtotal      *big.Rat

	contractorDiscount *big.Rat
	discountedSubtotal *big.Rat
}

// priceEdgeTreatments prices the base glass, polish, beveled edges, and
// clipped corners from the geometry. Lookup misses here are config-integrity
// errors, not user errors: validation already passed for this request.
func priceEdgeTreatments(req QuoteRequest, material *config.MaterialEntry, geo geometry, cfg *config.PricingConfig) (lineItems, error) {
	items := lineItems{
		basePrice:           new(big.Rat),
		polishPrice:         new(big.Rat),
		beveledPrice:        new(big.Rat),
		clippedCornersPrice: new(big.Rat),
	}

	items.basePrice.Mul(money.FromFloat(material.WholesaleBasePricePerSqft), geo.billableSqft)

	if req.Polish && !material.NoPolish {
		if strings.EqualFold(req.GlassType, constants.GlassTypeMirror) {
			// Mirrors use the system-wide flat polish rate instead of the
			// material's per-inch price.
			items.polishPrice.Mul(money.FromFloat(cfg.Settings.FlatMirrorPolishRate), geo.perimeter)
		} else {
			items.polishPrice.Mul(money.FromFloat(material.WholesalePolishPricePerInch), geo.perimeter)
		}
	}

	if req.Beveled {
		pricePerInch, ok := cfg.BeveledPricePerInch(req.Thickness)
		if !ok {
			return items, &ConfigError{
				Kind:   ConfigMissingPriceEntry,
				Detail: fmt.Sprintf("no beveled price for thickness %s", req.Thickness),
			}
		}
		items.beveledPrice.Mul(money.FromFloat(pricePerInch), geo.perimeter)
	}

	if req.ClippedCorners > 0 {
		pricePerCorner, ok := cfg.ClippedCornerPrice(req.Thickness, req.ClipSize)
		if !ok {
			return items, &ConfigError{
				Kind:   ConfigMissingPriceEntry,
				Detail: fmt.Sprintf("no clipped corner price for thickness %s clip size %q", req.Thickness, req.ClipSize),
			}
		}
		corners := new(big.Rat).SetInt64(int64(req.ClippedCorners))
		items.clippedCornersPrice.Mul(money.FromFloat(pricePerCorner), corners)
	}

	items.beforeMarkups = new(big.Rat).Add(items.basePrice, items.polishPrice)
	items.beforeMarkups.Add(items.beforeMarkups, items.beveledPrice)
	items.beforeMarkups.Add(items.beforeMarkups, items.clippedCornersPrice)

	return items, nil
}
