package restaurant

import "context"

// Repository defines the data-access contract for restaurant configuration.
type Repository interface {
	GetByID(ctx context.Context, restaurantID string) (*Restaurant, error)
	UpdateBilling(ctx context.Context, restaurantID string, update BillingUpdate) (*Restaurant, error)
}
