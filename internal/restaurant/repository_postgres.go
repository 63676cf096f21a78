package restaurant

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("restaurant not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Fetch configuration
// --------------------------------------------------
func (r *PostgresRepository) GetByID(
	ctx context.Context,
	restaurantID string,
) (*Restaurant, error) {

	var rest Restaurant
	err := r.db.QueryRow(ctx, `
		SELECT
			id,
			name,
			is_service_charge,
			service_charge_percent,
			is_gst_included,
			is_house_discount,
			rounding_type,
			is_external_pos_enabled,
			open_item_id,
			send_phone_number,
			created_at
		FROM restaurants
		WHERE id = $1
	`, restaurantID).Scan(
		&rest.ID,
		&rest.Name,
		&rest.ServiceChargeEnabled,
		&rest.ServiceChargePercent,
		&rest.GSTIncluded,
		&rest.HouseDiscountEnabled,
		&rest.RoundingType,
		&rest.ExternalPOSEnabled,
		&rest.OpenItemPrefix,
		&rest.SendPhoneNumber,
		&rest.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &rest, nil
}

// --------------------------------------------------
// Update billing configuration (partial)
// --------------------------------------------------
func (r *PostgresRepository) UpdateBilling(
	ctx context.Context,
	restaurantID string,
	update BillingUpdate,
) (*Restaurant, error) {

	cmd, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET is_service_charge      = COALESCE($1, is_service_charge),
		    service_charge_percent = COALESCE($2, service_charge_percent),
		    is_gst_included        = COALESCE($3, is_gst_included),
		    rounding_type          = COALESCE($4, rounding_type)
		WHERE id = $5
	`,
		update.ServiceChargeEnabled,
		update.ServiceChargePercent,
		update.GSTIncluded,
		update.RoundingType,
		restaurantID,
	)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, restaurantID)
}
