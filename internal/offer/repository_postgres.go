package offer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSettingsNotFound = errors.New("offer settings not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Active offers for a table
// --------------------------------------------------
func (r *PostgresRepository) ActiveByTable(
	ctx context.Context,
	restaurantID, tableID string,
) ([]Offer, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			restaurant_id,
			table_id,
			course,
			items,
			price_range,
			qty,
			avg_price,
			total_price,
			discount,
			discounted_price,
			active,
			offer_type,
			created_at
		FROM dynamic_offers
		WHERE restaurant_id = $1
		  AND table_id = $2
		  AND active = true
		ORDER BY created_at DESC
	`, restaurantID, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		var (
			o         Offer
			itemsJSON []byte
			rangeJSON []byte
		)
		if err := rows.Scan(
			&o.ID,
			&o.RestaurantID,
			&o.TableID,
			&o.Course,
			&itemsJSON,
			&rangeJSON,
			&o.Qty,
			&o.AvgPrice,
			&o.TotalPrice,
			&o.Discount,
			&o.DiscountedPrice,
			&o.Active,
			&o.OfferType,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("decode offer %s items: %w", o.ID, err)
		}
		if err := json.Unmarshal(rangeJSON, &o.PriceRange); err != nil {
			return nil, fmt.Errorf("decode offer %s price range: %w", o.ID, err)
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// --------------------------------------------------
// Insert generated offers
// --------------------------------------------------
func (r *PostgresRepository) InsertOffers(
	ctx context.Context,
	offers []Offer,
) error {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, o := range offers {
		itemsJSON, err := json.Marshal(o.Items)
		if err != nil {
			return err
		}
		rangeJSON, err := json.Marshal(o.PriceRange)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO dynamic_offers (
				id, restaurant_id, table_id, course,
				items, price_range, qty,
				avg_price, total_price, discount, discounted_price,
				active, offer_type
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`,
			o.ID,
			o.RestaurantID,
			o.TableID,
			o.Course,
			itemsJSON,
			rangeJSON,
			o.Qty,
			o.AvgPrice,
			o.TotalPrice,
			o.Discount,
			o.DiscountedPrice,
			o.Active,
			o.OfferType,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Insert the companion house-pay discount
// --------------------------------------------------
func (r *PostgresRepository) InsertDiscount(
	ctx context.Context,
	d Discount,
) error {

	_, err := r.db.Exec(ctx, `
		INSERT INTO discounts (
			id, restaurant_id, table_id, name, scope, method, value,
			start_date, end_date, start_time, end_time,
			usage_limit, used_count, active, code, min_order_value
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		d.ID,
		d.RestaurantID,
		d.TableID,
		d.Name,
		d.Scope,
		d.Method,
		d.Value,
		d.StartDate,
		d.EndDate,
		d.StartTime,
		d.EndTime,
		d.UsageLimit,
		d.UsedCount,
		d.Active,
		d.Code,
		d.MinOrderValue,
	)
	return err
}

// --------------------------------------------------
// Retire a single offer
// --------------------------------------------------
func (r *PostgresRepository) Deactivate(ctx context.Context, offerID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE dynamic_offers
		SET active = false
		WHERE id = $1
	`, offerID)
	return err
}

// --------------------------------------------------
// Retire a table's offers and discount
// --------------------------------------------------
func (r *PostgresRepository) DeactivateTable(
	ctx context.Context,
	restaurantID, tableID string,
) error {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE dynamic_offers
		SET active = false
		WHERE restaurant_id = $1 AND table_id = $2 AND active = true
	`, restaurantID, tableID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE discounts
		SET active = false
		WHERE restaurant_id = $1 AND table_id = $2 AND active = true
	`, restaurantID, tableID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Record an availed offer on the order
// --------------------------------------------------
// The order flags, the competing offers and the house-pay discount all change
// together or not at all. A partially availed offer is left active; every
// other offer for the table is retired either way.
func (r *PostgresRepository) ApplyOutcome(
	ctx context.Context,
	restaurantID, tableID, orderID, offerID string,
	outcome Outcome,
) error {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
		UPDATE orders
		SET offer_availed = $1,
		    offer_partially_availed = $2,
		    is_payment_thirdparty = false
		WHERE id = $3 AND restaurant_id = $4
	`, outcome.FullyAvailed, outcome.PartiallyAvailed, orderID, restaurantID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", orderID)
	}

	keepID := ""
	if outcome.PartiallyAvailed {
		keepID = offerID
	}
	if _, err := tx.Exec(ctx, `
		UPDATE dynamic_offers
		SET active = false
		WHERE restaurant_id = $1
		  AND table_id = $2
		  AND active = true
		  AND id <> $3
	`, restaurantID, tableID, keepID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE discounts
		SET active = false
		WHERE restaurant_id = $1 AND table_id = $2 AND active = true
	`, restaurantID, tableID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Generation settings
// --------------------------------------------------
func (r *PostgresRepository) Settings(
	ctx context.Context,
	restaurantID string,
) (Settings, error) {

	var s Settings
	err := r.db.QueryRow(ctx, `
		SELECT offer_type, max_offer_percentage, upsell_required
		FROM offer_settings
		WHERE restaurant_id = $1
	`, restaurantID).Scan(&s.OfferType, &s.MaxOfferPercentage, &s.UpsellRequired)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Settings{}, ErrSettingsNotFound
		}
		return Settings{}, err
	}
	return s, nil
}
