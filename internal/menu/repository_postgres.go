package menu

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrItemNotFound = errors.New("menu item not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Full id→name mapping for a restaurant
// --------------------------------------------------
func (r *PostgresRepository) NamesByRestaurant(
	ctx context.Context,
	restaurantID string,
) (map[string]string, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, name
		FROM menu_items
		WHERE restaurant_id = $1
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}

	return names, rows.Err()
}

// --------------------------------------------------
// Batch fetch by item ids
// --------------------------------------------------
func (r *PostgresRepository) ItemsByIDs(
	ctx context.Context,
	ids []string,
) (map[string]Item, error) {

	if len(ids) == 0 {
		return map[string]Item{}, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, price
		FROM menu_items
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string]Item, len(ids))
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price); err != nil {
			return nil, err
		}
		items[item.ID] = item
	}

	return items, rows.Err()
}

// --------------------------------------------------
// Whole catalog with meal types (offer eligibility)
// --------------------------------------------------
func (r *PostgresRepository) ItemsByRestaurant(
	ctx context.Context,
	restaurantID string,
) (map[string]Item, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, name, price, meal_type
		FROM menu_items
		WHERE restaurant_id = $1
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string]Item)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.MealTypes); err != nil {
			return nil, err
		}
		items[item.ID] = item
	}

	return items, rows.Err()
}

// --------------------------------------------------
// Single item lookup
// --------------------------------------------------
func (r *PostgresRepository) ItemDetails(
	ctx context.Context,
	restaurantID, itemID string,
) (*Item, error) {

	var item Item
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, price, is_veg
		FROM menu_items
		WHERE id = $1 AND restaurant_id = $2
	`, itemID, restaurantID).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.IsVeg,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return &item, nil
}
