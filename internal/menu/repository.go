package menu

import "context"

// Repository defines the read-side lookups other domains need from the menu.
type Repository interface {
	// NamesByRestaurant returns the id→name mapping of the whole catalog.
	NamesByRestaurant(ctx context.Context, restaurantID string) (map[string]string, error)

	// ItemsByIDs batch-fetches menu details for the given item ids.
	ItemsByIDs(ctx context.Context, ids []string) (map[string]Item, error)

	// ItemsByRestaurant returns the whole catalog keyed by item id, meal
	// types included, for offer eligibility checks.
	ItemsByRestaurant(ctx context.Context, restaurantID string) (map[string]Item, error)

	// ItemDetails fetches a single item scoped to a restaurant.
	ItemDetails(ctx context.Context, restaurantID, itemID string) (*Item, error)
}
