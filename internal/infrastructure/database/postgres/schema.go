package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Dependent rows are removed by explicit deletes in the use cases, so no
// foreign key cascades.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		external_id TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL UNIQUE,
		avatar TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		brand TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
		seller_id BIGINT NOT NULL REFERENCES users(id),
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted', 'rejected')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS products_status_created_idx ON products (status, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS product_images (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id),
		path TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS carts (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity INT NOT NULL DEFAULT 1 CHECK (quantity >= 1),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		product_id BIGINT NOT NULL REFERENCES products(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		content TEXT NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users(id),
		product_id BIGINT NOT NULL REFERENCES products(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
