package order

import (
	"time"

	"github.com/Noel-auki/order-engine/internal/menu"
)

// Order is a table's live order session.
type Order struct {
	ID                    string    `json:"id"`
	RestaurantID          string    `json:"restaurant_id"`
	TableID               string    `json:"table_id"`
	Items                 Items     `json:"items"`
	Instructions          []string  `json:"instructions,omitempty"`
	GuestCount            int       `json:"guest_count"`
	OrderType             string    `json:"order_type"`
	OfferAvailed          bool      `json:"offer_availed"`
	OfferPartiallyAvailed bool      `json:"offer_partially_availed"`
	PaymentThirdParty     bool      `json:"is_payment_thirdparty"`
	ServiceChargeWaived   bool      `json:"service_charge_waived"`
	Active                bool      `json:"active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TempOrder holds items a captain has staged for a table but not yet sent to
// the kitchen. Promoting a temp order merges it into the live order.
type TempOrder struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	TableID      string    `json:"table_id"`
	Items        Items     `json:"items"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompletedOrder is the archived form of a settled order.
type CompletedOrder struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"order_id"`
	RestaurantID  string    `json:"restaurant_id"`
	TableID       string    `json:"table_id"`
	Items         Items     `json:"items"`
	Instructions  []string  `json:"instructions,omitempty"`
	GuestCount    int       `json:"guest_count"`
	InvoiceNumber string    `json:"invoice_number"`
	Bill          []byte    `json:"-"`
	CompletedAt   time.Time `json:"completed_at"`
}

// CombinedView is the captain-facing snapshot of a table: the live order plus
// any staged temp items, merged the same way a promotion would merge them.
type CombinedView struct {
	Order     *Order          `json:"order,omitempty"`
	TempOrder *TempOrder      `json:"tempOrder,omitempty"`
	Combined  Items           `json:"combined"`
	Cart      []menu.CartItem `json:"cart,omitempty"`
}
