package offer

import "context"

// Repository persists per-table dynamic offers, their companion discounts and
// the restaurant's generation settings.
type Repository interface {
	// ActiveByTable returns the active dynamic offers for a table, newest
	// first.
	ActiveByTable(ctx context.Context, restaurantID, tableID string) ([]Offer, error)

	// InsertOffers stores a batch of freshly generated offers.
	InsertOffers(ctx context.Context, offers []Offer) error

	// InsertDiscount stores the house-pay discount accompanying a batch of
	// generated offers.
	InsertDiscount(ctx context.Context, d Discount) error

	// Deactivate retires a single dynamic offer.
	Deactivate(ctx context.Context, offerID string) error

	// DeactivateTable retires every active dynamic offer and house-pay
	// discount for the table, typically when the session ends.
	DeactivateTable(ctx context.Context, restaurantID, tableID string) error

	// ApplyOutcome records an availed offer on the order and retires the
	// competing offers and the table's house-pay discount in one
	// transaction. On a partial avail the selected offer stays active so
	// the guest can still complete it.
	ApplyOutcome(ctx context.Context, restaurantID, tableID, orderID, offerID string, outcome Outcome) error

	// Settings returns the restaurant's offer generation settings.
	Settings(ctx context.Context, restaurantID string) (Settings, error)
}
