// Package config defines the pricing configuration snapshot consumed by the
// calculator and includes the providers that load it.
package config

import (
	"fmt"
	"strings"

	"github.com/paneworks/glass-quote/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for glass-quote: the pricing
// snapshot plus operational settings for the binary.
type Configuration struct {
	Logging  LoggingConfig
	Database DatabaseConfig
	Pricing  PricingConfig
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputFile string // optional file output
}

// PricingConfig is one immutable snapshot of everything a single quote
// calculation needs: the material matrix, markup percentages, edge-treatment
// price tables, system settings, and the active formula. The calculator
// never mutates it; a fresh snapshot is fetched per request by the caller.
type PricingConfig struct {
	Materials           []MaterialEntry
	Markups             []MarkupEntry
	BeveledPrices       []BeveledPriceEntry
	ClippedCornerPrices []ClippedCornerPriceEntry
	Settings            CalculatorSettings
	Formula             FormulaConfig
}

// MaterialEntry is one row of the material matrix, keyed by thickness and
// glass type. Prices are supplier cost, never the retail figure.
type MaterialEntry struct {
	Thickness                   string
	GlassType                   string
	WholesaleBasePricePerSqft   float64
	WholesalePolishPricePerInch float64
	OnlyTempered                bool
	NoPolish                    bool
	NeverTempered               bool
}

// MarkupEntry maps a markup name ("tempered", "shape") to a percentage
// expressed as a fraction (0.35 = 35%).
type MarkupEntry struct {
	Name       string
	Percentage float64
}

// BeveledPriceEntry is the wholesale beveled-edge price per inch of
// perimeter for one thickness.
type BeveledPriceEntry struct {
	Thickness    string
	PricePerInch float64
}

// ClippedCornerPriceEntry is the wholesale price per clipped corner, keyed
// by thickness and clip-size bucket ("under_1" / "over_1").
type ClippedCornerPriceEntry struct {
	Thickness      string
	ClipSize       string
	PricePerCorner float64
}

// CalculatorSettings holds system-wide pricing constants.
type CalculatorSettings struct {
	MinimumBillableSqft    float64
	ContractorDiscountRate float64
	FlatMirrorPolishRate   float64
}

// FormulaConfig is the single active formula row: the mode converting the
// wholesale-basis total into a retail quote, plus per-component flags gating
// which line items feed into that total.
type FormulaConfig struct {
	Mode             string // divisor, multiplier, custom
	DivisorValue     float64
	MultiplierValue  float64
	CustomExpression string

	EnableBasePrice          bool
	EnablePolish             bool
	EnableBeveled            bool
	EnableClippedCorners     bool
	EnableTemperedMarkup     bool
	EnableShapeMarkup        bool
	EnableContractorDiscount bool
}

// Provider supplies one internally consistent PricingConfig snapshot per
// call. Implementations fetch atomically; the calculator treats the result
// as immutable.
type Provider interface {
	Snapshot() (*PricingConfig, error)
}

// StaticProvider serves a fixed snapshot, e.g. one loaded from a YAML file.
type StaticProvider struct {
	Config PricingConfig
}

// Snapshot returns a copy of the fixed configuration.
func (p *StaticProvider) Snapshot() (*PricingConfig, error) {
	snapshot := p.Config
	return &snapshot, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Omitted settings and formula values fall back to the
// documented defaults; component flags default to enabled.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	viper.SetDefault("pricing.settings.minimumbillablesqft", constants.DefaultMinimumBillableSqft)
	viper.SetDefault("pricing.settings.contractordiscountrate", constants.DefaultContractorDiscountRate)
	viper.SetDefault("pricing.settings.flatmirrorpolishrate", constants.DefaultFlatMirrorPolishRate)
	viper.SetDefault("pricing.formula.mode", constants.FormulaModeDivisor)
	viper.SetDefault("pricing.formula.divisorvalue", constants.DefaultDivisorValue)
	viper.SetDefault("pricing.formula.multipliervalue", constants.DefaultMultiplierValue)
	for _, flag := range []string{
		"enablebaseprice", "enablepolish", "enablebeveled", "enableclippedcorners",
		"enabletemperedmarkup", "enableshapemarkup", "enablecontractordiscount",
	} {
		viper.SetDefault("pricing.formula."+flag, true)
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Material finds the material matrix entry for a thickness and glass type.
// Glass type matching is case-insensitive; thickness must match the
// configured key verbatim.
func (c *PricingConfig) Material(thickness, glassType string) (*MaterialEntry, bool) {
	for i := range c.Materials {
		if c.Materials[i].Thickness == thickness && strings.EqualFold(c.Materials[i].GlassType, glassType) {
			return &c.Materials[i], true
		}
	}
	return nil, false
}

// MarkupPercentage returns the percentage for a named markup.
func (c *PricingConfig) MarkupPercentage(name string) (float64, bool) {
	for i := range c.Markups {
		if strings.EqualFold(c.Markups[i].Name, name) {
			return c.Markups[i].Percentage, true
		}
	}
	return 0, false
}

// BeveledPricePerInch returns the beveled-edge price for a thickness.
func (c *PricingConfig) BeveledPricePerInch(thickness string) (float64, bool) {
	for i := range c.BeveledPrices {
		if c.BeveledPrices[i].Thickness == thickness {
			return c.BeveledPrices[i].PricePerInch, true
		}
	}
	return 0, false
}

// ClippedCornerPrice returns the per-corner price for a thickness and
// clip-size bucket.
func (c *PricingConfig) ClippedCornerPrice(thickness, clipSize string) (float64, bool) {
	for i := range c.ClippedCornerPrices {
		if c.ClippedCornerPrices[i].Thickness == thickness && c.ClippedCornerPrices[i].ClipSize == clipSize {
			return c.ClippedCornerPrices[i].PricePerCorner, true
		}
	}
	return 0, false
}
