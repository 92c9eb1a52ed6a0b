package pricing

// QuoteRequest is a customer's raw dimension input plus the options chosen
// for one piece of glass. Dimensions stay raw strings here; parsing happens
// inside the calculator so the caller gets field-specific parse errors.
type QuoteRequest struct {
	Shape     string `json:"shape" yaml:"shape"`
	Width     string `json:"width,omitempty" yaml:"width,omitempty"`
	Height    string `json:"height,omitempty" yaml:"height,omitempty"`
	Diameter  string `json:"diameter,omitempty" yaml:"diameter,omitempty"`
	Thickness string `json:"thickness" yaml:"thickness"`
	GlassType string `json:"glass_type" yaml:"glassType"`
	Quantity  int    `json:"quantity" yaml:"quantity"`

	Polish             bool `json:"polish" yaml:"polish"`
	Beveled            bool `json:"beveled" yaml:"beveled"`
	Tempered           bool `json:"tempered" yaml:"tempered"`
	ContractorDiscount bool `json:"contractor_discount" yaml:"contractorDiscount"`

	ClippedCorners int    `json:"clipped_corners" yaml:"clippedCorners"`
	ClipSize       string `json:"clip_size,omitempty" yaml:"clipSize,omitempty"`
}

// QuoteResult is the fully itemized outcome of one calculation. Every field
// is always populated; zero means "not applicable", never "unknown". It is a
// pure derived value with no identity beyond the call that produced it.
type QuoteResult struct {
	ActualSqft   float64 `json:"actual_sqft" yaml:"actualSqft"`
	BillableSqft float64 `json:"billable_sqft" yaml:"billableSqft"`
	Perimeter    float64 `json:"perimeter" yaml:"perimeter"`

	BasePrice           float64 `json:"base_price" yaml:"basePrice"`
	PolishPrice         float64 `json:"polish_price" yaml:"polishPrice"`
	BeveledPrice        float64 `json:"beveled_price" yaml:"beveledPrice"`
	ClippedCornersPrice float64 `json:"clipped_corners_price" yaml:"clippedCornersPrice"`
	BeforeMarkups       float64 `json:"before_markups" yaml:"beforeMarkups"`

	TemperedPrice float64 `json:"tempered_price" yaml:"temperedPrice"`
	ShapePrice    float64 `json:"shape_price" yaml:"shapePrice"`
	Subtotal      float64 `json:"subtotal" yaml:"subtotal"`

	ContractorDiscount float64 `json:"contractor_discount" yaml:"contractorDiscount"`
	DiscountedSubtotal float64 `json:"discounted_subtotal" yaml:"discountedSubtotal"`

	QuotePrice float64 `json:"quote_price" yaml:"quotePrice"`
	Total      float64 `json:"total" yaml:"total"`
}
