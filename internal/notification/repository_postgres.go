package notification

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// KOT sequence
// --------------------------------------------------
func (r *PostgresRepository) NextKOTNumber(
	ctx context.Context,
	restaurantID string,
) (int, error) {

	var next int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(kot_number), 0) + 1
		FROM notifications
		WHERE restaurant_id = $1
		  AND created_at::date = CURRENT_DATE
	`, restaurantID).Scan(&next)
	return next, err
}

// --------------------------------------------------
// Insert with delivery lines
// --------------------------------------------------
func (r *PostgresRepository) Insert(
	ctx context.Context,
	n *Notification,
	deliveries []Delivery,
) error {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO notifications (
			id, restaurant_id, table_id, order_id,
			type, kot_number, payload, active
		)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
	`,
		n.ID,
		n.RestaurantID,
		n.TableID,
		n.OrderID,
		n.Type,
		n.KOTNumber,
		n.Payload,
		n.Active,
	); err != nil {
		return err
	}

	for _, d := range deliveries {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_customization_deliveries (
				id, notification_id, item_id, name, qty_change, delivered
			)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, d.ID, d.NotificationID, d.ItemID, d.Name, d.QtyChange, d.Delivered); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Retire similar notifications
// --------------------------------------------------
func (r *PostgresRepository) DeactivateSimilar(
	ctx context.Context,
	restaurantID, tableID, notificationType string,
) error {

	_, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET active = false
		WHERE restaurant_id = $1
		  AND table_id = $2
		  AND type = $3
		  AND active = true
	`, restaurantID, tableID, notificationType)
	return err
}

// --------------------------------------------------
// Feed
// --------------------------------------------------
func (r *PostgresRepository) ActiveByRestaurant(
	ctx context.Context,
	restaurantID string,
) ([]Notification, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			id, restaurant_id, table_id, COALESCE(order_id, ''),
			type, kot_number, payload, active, created_at
		FROM notifications
		WHERE restaurant_id = $1 AND active = true
		ORDER BY created_at DESC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(
			&n.ID,
			&n.RestaurantID,
			&n.TableID,
			&n.OrderID,
			&n.Type,
			&n.KOTNumber,
			&n.Payload,
			&n.Active,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *PostgresRepository) Deactivate(ctx context.Context, notificationID string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE notifications SET active = false WHERE id = $1
	`, notificationID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) MarkDelivered(ctx context.Context, deliveryID string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE order_customization_deliveries
		SET delivered = true
		WHERE id = $1
	`, deliveryID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
