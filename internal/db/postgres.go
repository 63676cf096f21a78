package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// schemaStatements is the idempotent bootstrap schema; every statement must
// be safe to re-run on an already initialized database.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			is_service_charge BOOLEAN NOT NULL DEFAULT false,
			service_charge_percent NUMERIC NOT NULL DEFAULT 0,
			is_gst_included BOOLEAN NOT NULL DEFAULT false,
			is_house_discount BOOLEAN NOT NULL DEFAULT false,
			rounding_type VARCHAR(20) NOT NULL DEFAULT 'default',
			is_external_pos_enabled BOOLEAN NOT NULL DEFAULT false,
			open_item_id VARCHAR(100) NOT NULL DEFAULT '',
			send_phone_number BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

	`CREATE TABLE IF NOT EXISTS staff (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'CAPTAIN',
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

	`CREATE TABLE IF NOT EXISTS menu_items (
			id VARCHAR(100) PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC NOT NULL DEFAULT 0,
			is_veg BOOLEAN NOT NULL DEFAULT false,
			meal_types JSONB NOT NULL DEFAULT '[]'
		)`,

	`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			table_id VARCHAR(100) NOT NULL,
			items JSONB NOT NULL DEFAULT '{}',
			instructions JSONB NOT NULL DEFAULT '[]',
			guest_count INT NOT NULL DEFAULT 0,
			order_type VARCHAR(50) NOT NULL DEFAULT 'guest',
			offer_availed BOOLEAN NOT NULL DEFAULT false,
			offer_partially_availed BOOLEAN NOT NULL DEFAULT false,
			is_payment_thirdparty BOOLEAN NOT NULL DEFAULT false,
			service_charge_waived BOOLEAN NOT NULL DEFAULT false,
			active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

	`CREATE TABLE IF NOT EXISTS temp_orders (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			table_id VARCHAR(100) NOT NULL,
			items JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (restaurant_id, table_id)
		)`,

	`CREATE TABLE IF NOT EXISTS completed_orders (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			table_id VARCHAR(100) NOT NULL,
			items JSONB NOT NULL DEFAULT '{}',
			instructions JSONB NOT NULL DEFAULT '[]',
			guest_count INT NOT NULL DEFAULT 0,
			invoice_number VARCHAR(50) NOT NULL,
			bill JSONB,
			completed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

	`CREATE TABLE IF NOT EXISTS invoice_counters (
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			year INT NOT NULL,
			value INT NOT NULL DEFAULT 0,
			PRIMARY KEY (restaurant_id, year)
		)`,

	`CREATE TABLE IF NOT EXISTS dynamic_offers (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			table_id VARCHAR(100) NOT NULL,
			course VARCHAR(100) NOT NULL,
			items JSONB NOT NULL DEFAULT '[]',
			price_range JSONB NOT NULL DEFAULT '{}',
			qty INT NOT NULL DEFAULT 0,
			avg_price NUMERIC NOT NULL DEFAULT 0,
			total_price NUMERIC NOT NULL DEFAULT 0,
			discount NUMERIC NOT NULL DEFAULT 0,
			discounted_price NUMERIC NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT true,
			offer_type VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

	`CREATE TABLE IF NOT EXISTS offer_settings (
			restaurant_id UUID PRIMARY KEY REFERENCES restaurants(id),
			offer_type VARCHAR(50) NOT NULL DEFAULT 'dynamic',
			max_offer_percentage NUMERIC NOT NULL DEFAULT 10,
			upsell_required BOOLEAN NOT NULL DEFAULT false
		)`,

	`CREATE TABLE IF NOT EXISTS discounts (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			table_id VARCHAR(100) NOT NULL,
			name VARCHAR(255) NOT NULL,
			scope VARCHAR(50) NOT NULL,
			method VARCHAR(50) NOT NULL,
			value NUMERIC NOT NULL DEFAULT 0,
			start_date VARCHAR(10) NOT NULL,
			end_date VARCHAR(10) NOT NULL,
			start_time VARCHAR(5) NOT NULL,
			end_time VARCHAR(5) NOT NULL,
			usage_limit INT NOT NULL DEFAULT 0,
			used_count INT NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT true,
			code VARCHAR(50) NOT NULL,
			min_order_value NUMERIC NOT NULL DEFAULT 0
		)`,

	`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			table_id VARCHAR(100) NOT NULL,
			order_id UUID,
			type VARCHAR(50) NOT NULL,
			kot_number INT NOT NULL DEFAULT 0,
			payload JSONB,
			active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

	`CREATE TABLE IF NOT EXISTS order_customization_deliveries (
			id UUID PRIMARY KEY,
			notification_id UUID NOT NULL REFERENCES notifications(id),
			item_id VARCHAR(100) NOT NULL,
			name VARCHAR(255) NOT NULL DEFAULT '',
			qty_change INT NOT NULL DEFAULT 0,
			delivered BOOLEAN NOT NULL DEFAULT false
		)`,
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
