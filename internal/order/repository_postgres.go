package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `
	id,
	restaurant_id,
	table_id,
	items,
	instructions,
	guest_count,
	order_type,
	offer_availed,
	offer_partially_availed,
	is_payment_thirdparty,
	service_charge_waived,
	active,
	created_at,
	updated_at
`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o                Order
		itemsJSON        []byte
		instructionsJSON []byte
	)
	err := row.Scan(
		&o.ID,
		&o.RestaurantID,
		&o.TableID,
		&itemsJSON,
		&instructionsJSON,
		&o.GuestCount,
		&o.OrderType,
		&o.OfferAvailed,
		&o.OfferPartiallyAvailed,
		&o.PaymentThirdParty,
		&o.ServiceChargeWaived,
		&o.Active,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order %s items: %w", o.ID, err)
	}
	if len(instructionsJSON) > 0 {
		if err := json.Unmarshal(instructionsJSON, &o.Instructions); err != nil {
			return nil, fmt.Errorf("decode order %s instructions: %w", o.ID, err)
		}
	}
	return &o, nil
}

// --------------------------------------------------
// Live orders
// --------------------------------------------------
func (r *PostgresRepository) ActiveByTable(
	ctx context.Context,
	restaurantID, tableID string,
) (*Order, error) {

	row := r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE restaurant_id = $1 AND table_id = $2 AND active = true
		ORDER BY created_at DESC
		LIMIT 1
	`, restaurantID, tableID)
	return scanOrder(row)
}

func (r *PostgresRepository) GetByID(
	ctx context.Context,
	orderID string,
) (*Order, error) {

	row := r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1 AND active = true
	`, orderID)
	return scanOrder(row)
}

func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	instructionsJSON, err := json.Marshal(o.Instructions)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (
			id, restaurant_id, table_id, items, instructions,
			guest_count, order_type,
			offer_availed, offer_partially_availed,
			is_payment_thirdparty, service_charge_waived, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		o.ID,
		o.RestaurantID,
		o.TableID,
		itemsJSON,
		instructionsJSON,
		o.GuestCount,
		o.OrderType,
		o.OfferAvailed,
		o.OfferPartiallyAvailed,
		o.PaymentThirdParty,
		o.ServiceChargeWaived,
		o.Active,
	)
	return err
}

func (r *PostgresRepository) UpdateItems(
	ctx context.Context,
	orderID string,
	items Items,
	instructions []string,
) error {

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return err
	}
	instructionsJSON, err := json.Marshal(instructions)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE orders
		SET items = $1, instructions = $2, updated_at = now()
		WHERE id = $3 AND active = true
	`, itemsJSON, instructionsJSON, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) MergeSubmit(
	ctx context.Context,
	orderID string,
	incoming Items,
	instructions []string,
) (Items, *Order, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1 AND active = true
		FOR UPDATE
	`, orderID)
	o, err := scanOrder(row)
	if err != nil {
		return nil, nil, err
	}

	previous := o.Items
	merged := Merge(previous, incoming)
	combined := append(o.Instructions, instructions...)

	itemsJSON, err := json.Marshal(merged)
	if err != nil {
		return nil, nil, err
	}
	instructionsJSON, err := json.Marshal(combined)
	if err != nil {
		return nil, nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE orders
		SET items = $1, instructions = $2, updated_at = now()
		WHERE id = $3
	`, itemsJSON, instructionsJSON, orderID); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	o.Items = merged
	o.Instructions = combined
	return previous, o, nil
}

func (r *PostgresRepository) SetGuestCount(
	ctx context.Context,
	orderID string,
	count int,
) error {

	cmd, err := r.db.Exec(ctx, `
		UPDATE orders
		SET guest_count = $1, updated_at = now()
		WHERE id = $2 AND active = true
	`, count, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetServiceChargeWaived(
	ctx context.Context,
	orderID string,
	waived bool,
) error {

	cmd, err := r.db.Exec(ctx, `
		UPDATE orders
		SET service_charge_waived = $1, updated_at = now()
		WHERE id = $2 AND active = true
	`, waived, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Staged (temp) orders
// --------------------------------------------------
func (r *PostgresRepository) TempByTable(
	ctx context.Context,
	restaurantID, tableID string,
) (*TempOrder, error) {

	var (
		t         TempOrder
		itemsJSON []byte
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, restaurant_id, table_id, items, created_at, updated_at
		FROM temp_orders
		WHERE restaurant_id = $1 AND table_id = $2
	`, restaurantID, tableID).Scan(
		&t.ID,
		&t.RestaurantID,
		&t.TableID,
		&itemsJSON,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTempNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &t.Items); err != nil {
		return nil, fmt.Errorf("decode temp order %s items: %w", t.ID, err)
	}
	return &t, nil
}

func (r *PostgresRepository) CreateTemp(ctx context.Context, t *TempOrder) error {
	itemsJSON, err := json.Marshal(t.Items)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO temp_orders (id, restaurant_id, table_id, items)
		VALUES ($1, $2, $3, $4)
	`, t.ID, t.RestaurantID, t.TableID, itemsJSON)
	return err
}

func (r *PostgresRepository) UpdateTempItems(
	ctx context.Context,
	tempID string,
	items Items,
) error {

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `
		UPDATE temp_orders
		SET items = $1, updated_at = now()
		WHERE id = $2
	`, itemsJSON, tempID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTempNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteTemp(ctx context.Context, tempID string) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM temp_orders WHERE id = $1
	`, tempID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTempNotFound
	}
	return nil
}

// --------------------------------------------------
// Settlement
// --------------------------------------------------
// Complete locks the live order row so two captains settling the same table
// cannot both archive it, then claims an invoice number, copies the order into
// completed_orders and clears the live and staged rows.
func (r *PostgresRepository) Complete(
	ctx context.Context,
	restaurantID, tableID string,
	bill []byte,
) (*CompletedOrder, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE restaurant_id = $1 AND table_id = $2 AND active = true
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE
	`, restaurantID, tableID)
	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}

	year := time.Now().Year()
	seq, err := nextInvoiceNumberTx(ctx, tx, restaurantID, year)
	if err != nil {
		return nil, err
	}

	completed := &CompletedOrder{
		ID:            uuid.NewString(),
		OrderID:       o.ID,
		RestaurantID:  o.RestaurantID,
		TableID:       o.TableID,
		Items:         o.Items,
		Instructions:  o.Instructions,
		GuestCount:    o.GuestCount,
		InvoiceNumber: fmt.Sprintf("INV-%d-%04d", year, seq),
		Bill:          bill,
		CompletedAt:   time.Now(),
	}

	itemsJSON, err := json.Marshal(completed.Items)
	if err != nil {
		return nil, err
	}
	instructionsJSON, err := json.Marshal(completed.Instructions)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO completed_orders (
			id, order_id, restaurant_id, table_id,
			items, instructions, guest_count, invoice_number, bill, completed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		completed.ID,
		completed.OrderID,
		completed.RestaurantID,
		completed.TableID,
		itemsJSON,
		instructionsJSON,
		completed.GuestCount,
		completed.InvoiceNumber,
		completed.Bill,
		completed.CompletedAt,
	); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM orders WHERE id = $1
	`, o.ID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM temp_orders WHERE restaurant_id = $1 AND table_id = $2
	`, restaurantID, tableID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return completed, nil
}

func (r *PostgresRepository) NextInvoiceNumber(
	ctx context.Context,
	restaurantID string,
	year int,
) (int, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	seq, err := nextInvoiceNumberTx(ctx, tx, restaurantID, year)
	if err != nil {
		return 0, err
	}
	return seq, tx.Commit(ctx)
}

func nextInvoiceNumberTx(
	ctx context.Context,
	tx pgx.Tx,
	restaurantID string,
	year int,
) (int, error) {

	var seq int
	err := tx.QueryRow(ctx, `
		INSERT INTO invoice_counters (restaurant_id, year, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (restaurant_id, year)
		DO UPDATE SET value = invoice_counters.value + 1
		RETURNING value
	`, restaurantID, year).Scan(&seq)
	return seq, err
}
