package bill

// Rounding policies a restaurant can configure for bill totals.
const (
	RoundUp      = "round-up"
	RoundDown    = "round-down"
	RoundNearest = "round-up-down"
	RoundDefault = "default"
)

// Config is the restaurant billing configuration the calculator works from.
type Config struct {
	ServiceChargeEnabled bool    `json:"service_charge_enabled"`
	ServiceChargePercent float64 `json:"service_charge_percent"`
	GSTIncluded          bool    `json:"gst_included"`
	HouseDiscountEnabled bool    `json:"house_discount_enabled"`
	RoundingType         string  `json:"rounding_type"`
}

// Breakdown is the canonical bill shape. Both the native calculator and the
// external-POS normalizer produce it, so callers never branch on provenance.
// Currency values are rounded to two decimals at the boundary.
type Breakdown struct {
	Subtotal               float64 `json:"subtotal"`
	ServiceCharge          float64 `json:"serviceCharge"`
	Tax                    float64 `json:"tax"`
	Discount               float64 `json:"discount"`
	TotalRoundOff          float64 `json:"totalRoundOff"`
	DiscountRoundOff       float64 `json:"discountRoundOff"`
	Total                  float64 `json:"total"`
	DiscountedTotal        float64 `json:"discountedTotal"`
	HouseDiscount          float64 `json:"houseDiscount"`
	ServiceChargeWaivedOff float64 `json:"serviceChargeWaivedOff"`
}

// ExternalBreakdown is the raw bill payload received from a third-party POS.
// The POS sends combined* fields for split bills and plain fields otherwise;
// the normalizer coalesces in that order.
type ExternalBreakdown struct {
	CombinedCorePrice     *float64 `json:"combinedCorePrice,omitempty"`
	Subtotal              *float64 `json:"subtotal,omitempty"`
	CombinedServiceCharge *float64 `json:"combinedServiceCharge,omitempty"`
	ServiceCharge         *float64 `json:"serviceCharge,omitempty"`
	CombinedTax           *float64 `json:"combinedTax,omitempty"`
	Tax                   *float64 `json:"tax,omitempty"`
	CombinedDiscount      *float64 `json:"combinedDiscount,omitempty"`
	CombinedRoundOff      *float64 `json:"combinedRoundOff,omitempty"`
	CombinedTotal         *float64 `json:"combinedTotal,omitempty"`
	OriginalCombinedTotal *float64 `json:"originalCombinedTotal,omitempty"`
	DiscountedTotal       *float64 `json:"discountedTotal,omitempty"`
	Total                 *float64 `json:"total,omitempty"`
	HouseDiscounts        *float64 `json:"houseDiscounts,omitempty"`
	HouseDiscount         *float64 `json:"houseDiscount,omitempty"`
	ServiceChargeWaived   *float64 `json:"serviceChargeWaivedOff,omitempty"`
}
