package restaurant

import "time"

// Restaurant carries the per-restaurant ordering and billing configuration
// every other domain reads: service charge, GST inclusion, rounding policy,
// external POS integration and the open-item prefix.
type Restaurant struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	ServiceChargeEnabled bool      `json:"service_charge_enabled"`
	ServiceChargePercent float64   `json:"service_charge_percent"`
	GSTIncluded          bool      `json:"gst_included"`
	HouseDiscountEnabled bool      `json:"house_discount_enabled"`
	RoundingType         string    `json:"rounding_type"`
	ExternalPOSEnabled   bool      `json:"external_pos_enabled"`
	OpenItemPrefix       string    `json:"open_item_prefix"`
	SendPhoneNumber      bool      `json:"send_phone_number"`
	CreatedAt            time.Time `json:"created_at"`
}

// BillingUpdate is the mutable subset of the configuration exposed over HTTP.
// Nil fields are left untouched.
type BillingUpdate struct {
	ServiceChargeEnabled *bool    `json:"service_charge_enabled,omitempty"`
	ServiceChargePercent *float64 `json:"service_charge_percent,omitempty"`
	GSTIncluded          *bool    `json:"gst_included,omitempty"`
	RoundingType         *string  `json:"rounding_type,omitempty"`
}
