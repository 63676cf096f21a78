package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStaffRepository struct {
	db *pgxpool.Pool
}

func NewPostgresStaffRepository(db *pgxpool.Pool) *PostgresStaffRepository {
	return &PostgresStaffRepository{db: db}
}

func (r *PostgresStaffRepository) Save(staff *Staff) error {
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}

	query := `
		INSERT INTO staff (id, name, email, password, role, restaurant_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(context.Background(), query,
		staff.ID, staff.Name, staff.Email, staff.Password, staff.Role, staff.RestaurantID,
	)
	return err
}

func (r *PostgresStaffRepository) ExistsByEmail(email string) (bool, error) {
	query := `SELECT 1 FROM staff WHERE email=$1 LIMIT 1`
	row := r.db.QueryRow(context.Background(), query, email)

	var exists int
	if err := row.Scan(&exists); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *PostgresStaffRepository) FindByEmail(email string) (*Staff, error) {
	query := `
		SELECT id, name, email, password, role, restaurant_id
		FROM staff WHERE email=$1
	`
	row := r.db.QueryRow(context.Background(), query, email)

	staff := &Staff{}
	if err := row.Scan(
		&staff.ID, &staff.Name, &staff.Email,
		&staff.Password, &staff.Role, &staff.RestaurantID,
	); err != nil {
		return nil, errors.New("staff not found")
	}
	return staff, nil
}
