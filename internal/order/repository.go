package order

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrTempNotFound = errors.New("temp order not found")
)

// Repository persists live, staged and completed orders.
type Repository interface {
	// ActiveByTable returns the table's live order, ErrNotFound when the
	// table has none.
	ActiveByTable(ctx context.Context, restaurantID, tableID string) (*Order, error)

	// GetByID returns a live order by id, ErrNotFound when missing or
	// already completed.
	GetByID(ctx context.Context, orderID string) (*Order, error)

	Create(ctx context.Context, o *Order) error

	// UpdateItems replaces the order's items and instructions.
	UpdateItems(ctx context.Context, orderID string, items Items, instructions []string) error

	// MergeSubmit locks the live order row, merges the incoming items into
	// the latest persisted snapshot and stores the result in one
	// transaction. Concurrent submissions for the same table serialize on
	// the row lock, so neither can drop the other's items. It returns the
	// pre-merge items alongside the updated order.
	MergeSubmit(ctx context.Context, orderID string, incoming Items, instructions []string) (Items, *Order, error)

	SetGuestCount(ctx context.Context, orderID string, count int) error
	SetServiceChargeWaived(ctx context.Context, orderID string, waived bool) error

	// TempByTable returns the staged order for a table, ErrTempNotFound
	// when nothing is staged.
	TempByTable(ctx context.Context, restaurantID, tableID string) (*TempOrder, error)
	CreateTemp(ctx context.Context, t *TempOrder) error
	UpdateTempItems(ctx context.Context, tempID string, items Items) error
	DeleteTemp(ctx context.Context, tempID string) error

	// Complete settles the table's live order in one transaction: the order
	// row is locked, the next invoice number for the restaurant's year is
	// claimed, the order is copied into completed_orders with the rendered
	// bill attached, and the live and staged rows are removed.
	Complete(ctx context.Context, restaurantID, tableID string, bill []byte) (*CompletedOrder, error)

	// NextInvoiceNumber claims the next invoice sequence value for the
	// restaurant and year.
	NextInvoiceNumber(ctx context.Context, restaurantID string, year int) (int, error)
}
