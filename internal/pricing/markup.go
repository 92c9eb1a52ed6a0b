package pricing

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/paneworks/glass-quote/internal/config"
	"github.com/paneworks/glass-quote/pkg/constants"
	"github.com/paneworks/glass-quote/pkg/money"
)

// applyMarkups adds the tempered and irregular-shape markups on top of the
// wholesale edge-treatment total. The validator already guaranteed tempering
// is allowed when requested.
func applyMarkups(req QuoteRequest, items *lineItems, cfg *config.PricingConfig) error {
	items.temperedPrice = new(big.Rat)
	items.shapePrice = new(big.Rat)

	if req.Tempered {
		percentage, ok := cfg.MarkupPercentage(constants.MarkupTempered)
		if !ok {
			return &ConfigError{
				Kind:   ConfigMissingPriceEntry,
				Detail: fmt.Sprintf("no %q markup configured", constants.MarkupTempered),
			}
		}
		items.temperedPrice.Mul(items.beforeMarkups, money.FromFloat(percentage))
	}

	shape := strings.ToLower(req.Shape)
	if shape == constants.ShapeCircular || shape == constants.ShapeNonRectangular {
		percentage, ok := cfg.MarkupPercentage(constants.MarkupShape)
		if !ok {
			return &ConfigError{
				Kind:   ConfigMissingPriceEntry,
				Detail: fmt.Sprintf("no %q markup configured", constants.MarkupShape),
			}
		}
		items.shapePrice.Mul(items.beforeMarkups, money.FromFloat(percentage))
	}

	items.subtotal = new(big.Rat).Add(items.beforeMarkups, items.temperedPrice)
	items.subtotal.Add(items.subtotal, items.shapePrice)

	return nil
}

// applyContractorDiscount subtracts the contractor discount from the
// subtotal when the contractor flag is set.
func applyContractorDiscount(req QuoteRequest, items *lineItems, cfg *config.PricingConfig) {
	items.contractorDiscount = new(big.Rat)
	if req.ContractorDiscount {
		items.contractorDiscount.Mul(items.subtotal, money.FromFloat(cfg.Settings.ContractorDiscountRate))
	}
	items.discountedSubtotal = new(big.Rat).Sub(items.subtotal, items.contractorDiscount)
}
