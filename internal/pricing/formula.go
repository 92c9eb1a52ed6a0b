package pricing

import (
	"fmt"
	"math/big"

	"github.com/paneworks/glass-quote/internal/config"
	"github.com/paneworks/glass-quote/pkg/constants"
	"github.com/paneworks/glass-quote/pkg/money"
)

// formulaTotal builds the sum fed into the formula. Each component flag
// gates whether that line item's dollar amount is included; disabled items
// are excluded here but still reported in the breakdown for transparency.
func formulaTotal(f config.FormulaConfig, items lineItems) *big.Rat {
	total := new(big.Rat)
	if f.EnableBasePrice {
		total.Add(total, items.basePrice)
	}
	if f.EnablePolish {
		total.Add(total, items.polishPrice)
	}
	if f.EnableBeveled {
		total.Add(total, items.beveledPrice)
	}
	if f.EnableClippedCorners {
		total.Add(total, items.clippedCornersPrice)
	}
	if f.EnableTemperedMarkup {
		total.Add(total, items.temperedPrice)
	}
	if f.EnableShapeMarkup {
		total.Add(total, items.shapePrice)
	}
	if f.EnableContractorDiscount {
		total.Sub(total, items.contractorDiscount)
	}
	return total
}

// applyFormula converts the wholesale-basis total into the customer-facing
// quote price per the active formula mode. Fails closed on a zero divisor
// rather than propagating infinity.
func applyFormula(f config.FormulaConfig, items lineItems) (*big.Rat, error) {
	total := formulaTotal(f, items)

	switch f.Mode {
	case constants.FormulaModeDivisor:
		divisor := money.FromFloat(f.DivisorValue)
		if divisor.Sign() == 0 {
			return nil, &FormulaError{Kind: FormulaDivideByZero, Detail: "formula divisor is zero"}
		}
		return new(big.Rat).Quo(total, divisor), nil
	case constants.FormulaModeMultiplier:
		return new(big.Rat).Mul(total, money.FromFloat(f.MultiplierValue)), nil
	case constants.FormulaModeCustom:
		return evaluateExpression(f.CustomExpression, map[string]*big.Rat{
			"base_price":            items.basePrice,
			"polish_price":          items.polishPrice,
			"beveled_price":         items.beveledPrice,
			"clipped_corners_price": items.clippedCornersPrice,
			"tempered_price":        items.temperedPrice,
			"shape_price":           items.shapePrice,
			"contractor_discount":   items.contractorDiscount,
			"total":                 total,
		})
	default:
		return nil, &FormulaError{Kind: FormulaInvalidExpression, Detail: fmt.Sprintf("unknown formula mode %q", f.Mode)}
	}
}
