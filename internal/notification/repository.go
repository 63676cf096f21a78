package notification

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("notification not found")

// Repository persists notifications and their delivery lines.
type Repository interface {
	// NextKOTNumber returns one more than the restaurant's highest KOT
	// number of the current day; the sequence restarts every day.
	NextKOTNumber(ctx context.Context, restaurantID string) (int, error)

	// Insert stores a notification with its delivery lines atomically.
	Insert(ctx context.Context, n *Notification, deliveries []Delivery) error

	// DeactivateSimilar retires active notifications of the same type for
	// the table, so repeated call-waiter taps collapse into one row.
	DeactivateSimilar(ctx context.Context, restaurantID, tableID, notificationType string) error

	// ActiveByRestaurant lists the restaurant's active notifications,
	// newest first.
	ActiveByRestaurant(ctx context.Context, restaurantID string) ([]Notification, error)

	// Deactivate retires a single notification.
	Deactivate(ctx context.Context, notificationID string) error

	// MarkDelivered ticks off one delivery line.
	MarkDelivered(ctx context.Context, deliveryID string) error
}
