package notification

import "time"

// Notification types raised from the guest and captain flows.
const (
	TypeOrder      = "order"
	TypeCallWaiter = "call-waiter"
	TypeAskForBill = "ask-for-bill"
)

// Notification is one row on the captain's notification feed. Order
// notifications carry a KOT number and the submission delta as payload;
// action notifications (call waiter, ask for bill) carry neither.
type Notification struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	TableID      string    `json:"table_id"`
	OrderID      string    `json:"order_id,omitempty"`
	Type         string    `json:"type"`
	KOTNumber    int       `json:"kot_number,omitempty"`
	Payload      []byte    `json:"payload,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Delivery is one customization-level line of an order notification, tracked
// so the kitchen can tick off what has reached the table.
type Delivery struct {
	ID             string `json:"id"`
	NotificationID string `json:"notification_id"`
	ItemID         string `json:"item_id"`
	Name           string `json:"name"`
	QtyChange      int    `json:"qty_change"`
	Delivered      bool   `json:"delivered"`
}
