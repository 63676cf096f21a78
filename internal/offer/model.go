package offer

import "time"

// OfferItem is one entry of the basket an offer requires.
type OfferItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// PriceRange is the menu price band an offer was generated from.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Offer is a course-based promotional bundle generated for a table.
type Offer struct {
	ID              string      `json:"id"`
	RestaurantID    string      `json:"restaurant_id"`
	TableID         string      `json:"table_id"`
	Course          string      `json:"course"`
	Items           []OfferItem `json:"items"`
	PriceRange      PriceRange  `json:"price_range"`
	Qty             int         `json:"qty"`
	AvgPrice        float64     `json:"avg_price"`
	TotalPrice      float64     `json:"total_price"`
	Discount        float64     `json:"discount"`
	DiscountedPrice float64     `json:"discounted_price"`
	Active          bool        `json:"active"`
	OfferType       string      `json:"offer_type"`
	CreatedAt       time.Time   `json:"created_at"`
}

// RequiredQty is the total basket quantity the offer demands: the sum of the
// per-item quantities. Generated offers also carry the band quantity in Qty,
// but availment is always measured against the item sum, so a generated
// offer over n items requires Qty×n.
func (o Offer) RequiredQty() int {
	total := 0
	for _, item := range o.Items {
		total += item.Qty
	}
	return total
}

// Outcome reports how far an offer's basket requirement was satisfied.
// The two flags are mutually exclusive; both are false when nothing from the
// offer's course is in the order.
type Outcome struct {
	FullyAvailed     bool `json:"offerFullyAvailed"`
	PartiallyAvailed bool `json:"offerPartiallyAvailed"`
}

// Availed reports whether the offer was used at all.
func (o Outcome) Availed() bool {
	return o.FullyAvailed || o.PartiallyAvailed
}

// Settings drive dynamic offer generation for a restaurant.
type Settings struct {
	OfferType          string  `json:"offer_type"`
	MaxOfferPercentage float64 `json:"max_offer_percentage"`
	UpsellRequired     bool    `json:"upsell_required"`
}

// Discount is the limited-use house-pay discount accompanying generated
// offers.
type Discount struct {
	ID            string  `json:"id"`
	RestaurantID  string  `json:"restaurant_id"`
	TableID       string  `json:"table_id"`
	Name          string  `json:"name"`
	Scope         string  `json:"scope"`
	Method        string  `json:"method"`
	Value         float64 `json:"value"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	UsageLimit    int     `json:"usage_limit"`
	UsedCount     int     `json:"used_count"`
	Active        bool    `json:"active"`
	Code          string  `json:"code"`
	MinOrderValue float64 `json:"min_order_value"`
}
