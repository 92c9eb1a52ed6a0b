// Package constants provides shared constants for the glass-quote application.
package constants

// Geometry constants
const (
	// SquareInchesPerSquareFoot converts square inches to square feet.
	SquareInchesPerSquareFoot = 144

	// FractionDenominator is the standard glass-shop fraction granularity
	// used when formatting measurements (sixteenths of an inch).
	FractionDenominator = 16
)

// Pricing defaults applied when the configuration omits a value
const (
	// DefaultMinimumBillableSqft is the floor on billable area.
	DefaultMinimumBillableSqft = 3.0

	// DefaultContractorDiscountRate is the contractor discount rate.
	DefaultContractorDiscountRate = 0.15

	// DefaultFlatMirrorPolishRate is the flat per-inch polish rate used for
	// mirrors instead of the material's per-inch polish price.
	DefaultFlatMirrorPolishRate = 0.27

	// DefaultDivisorValue is the divisor for the shop's historical pricing
	// formula (a markup of roughly 3.57x).
	DefaultDivisorValue = 0.28

	// DefaultMultiplierValue is the reciprocal-convention multiplier default.
	DefaultMultiplierValue = 3.5714
)

// Shape identifiers
const (
	ShapeRectangular    = "rectangular"
	ShapeCircular       = "circular"
	ShapeNonRectangular = "non_rectangular"
)

// Formula modes
const (
	FormulaModeDivisor    = "divisor"
	FormulaModeMultiplier = "multiplier"
	FormulaModeCustom     = "custom"
)

// Clip size buckets used to key clipped-corner pricing
const (
	ClipSizeUnderOneInch = "under_1"
	ClipSizeOverOneInch  = "over_1"
)

// Markup table keys
const (
	MarkupTempered = "tempered"
	MarkupShape    = "shape"
)

// GlassTypeMirror is the glass type that uses the flat polish rate and can
// never be tempered or corner-clipped.
const GlassTypeMirror = "mirror"

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the quote API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)
