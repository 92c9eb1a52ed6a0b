package config

import (
	"fmt"
	"strings"

	"github.com/paneworks/glass-quote/pkg/constants"
)

// Validate checks a snapshot once at the provider boundary. It returns
// non-fatal inconsistencies as warnings and a fatal error for a snapshot the
// calculator cannot run against at all. Per-request integrity problems
// (missing price-table rows for a particular quote) are caught during
// calculation instead.
func (c *PricingConfig) Validate() ([]string, error) {
	var warnings []string

	switch c.Formula.Mode {
	case constants.FormulaModeDivisor:
		if c.Formula.DivisorValue == 0 {
			warnings = append(warnings, "formula divisor is 0; every quote will fail closed with a divide-by-zero error")
		}
	case constants.FormulaModeMultiplier:
		if c.Formula.MultiplierValue == 0 {
			warnings = append(warnings, "formula multiplier is 0; every quote will price at zero")
		}
	case constants.FormulaModeCustom:
		if strings.TrimSpace(c.Formula.CustomExpression) == "" {
			return warnings, fmt.Errorf("formula mode is custom but no custom expression is configured")
		}
	default:
		return warnings, fmt.Errorf("unknown formula mode %q", c.Formula.Mode)
	}

	if len(c.Materials) == 0 {
		warnings = append(warnings, "no materials configured; every quote will be rejected as unsupported")
	}

	seen := make(map[string]bool)
	for _, m := range c.Materials {
		key := m.Thickness + "|" + strings.ToLower(m.GlassType)
		if seen[key] {
			warnings = append(warnings, fmt.Sprintf("duplicate material entry for thickness %s glass type %s; the first entry wins", m.Thickness, m.GlassType))
		}
		seen[key] = true
		if m.OnlyTempered && m.NeverTempered {
			warnings = append(warnings, fmt.Sprintf("material %s %s is flagged both onlyTempered and neverTempered", m.Thickness, m.GlassType))
		}
		if m.WholesaleBasePricePerSqft < 0 || m.WholesalePolishPricePerInch < 0 {
			warnings = append(warnings, fmt.Sprintf("material %s %s has a negative wholesale price", m.Thickness, m.GlassType))
		}
	}

	for _, name := range []string{constants.MarkupTempered, constants.MarkupShape} {
		if _, ok := c.MarkupPercentage(name); !ok {
			warnings = append(warnings, fmt.Sprintf("no %q markup configured; quotes needing it will fail with a missing price entry", name))
		}
	}

	for _, entry := range c.ClippedCornerPrices {
		if entry.ClipSize != constants.ClipSizeUnderOneInch && entry.ClipSize != constants.ClipSizeOverOneInch {
			warnings = append(warnings, fmt.Sprintf("clipped corner entry for thickness %s has unknown clip size %q", entry.Thickness, entry.ClipSize))
		}
	}

	if c.Settings.MinimumBillableSqft < 0 {
		warnings = append(warnings, "minimum billable square footage is negative; no floor will apply")
	}
	if c.Settings.ContractorDiscountRate < 0 || c.Settings.ContractorDiscountRate > 1 {
		warnings = append(warnings, "contractor discount rate is outside [0, 1]")
	}

	return warnings, nil
}
