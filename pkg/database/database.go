package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied statement by statement on startup
var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		address    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		seq        BIGSERIAL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                     TEXT PRIMARY KEY,
		customer_id            TEXT NOT NULL REFERENCES customers(id),
		customer_name          TEXT NOT NULL DEFAULT '',
		status                 TEXT NOT NULL,
		order_discount_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
		subtotal               DOUBLE PRECISION NOT NULL,
		discount_total         DOUBLE PRECISION NOT NULL,
		total                  DOUBLE PRECISION NOT NULL,
		created_at             TIMESTAMPTZ NOT NULL,
		seq                    BIGSERIAL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id         TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		position         INTEGER NOT NULL,
		name             TEXT NOT NULL,
		quantity         INTEGER NOT NULL,
		unit_price       DOUBLE PRECISION NOT NULL,
		discount_percent DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (order_id, position)
	)`,
	`ALTER TABLE customers ADD COLUMN IF NOT EXISTS seq BIGSERIAL`,
	`ALTER TABLE orders ADD COLUMN IF NOT EXISTS seq BIGSERIAL`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC, seq DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_created_at ON customers(created_at DESC, seq DESC)`,
}

// NewPool connects to Postgres and verifies the connection
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// Execer runs a statement; *pgxpool.Pool satisfies it
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Migrate creates the tables used by the order desk if they do not exist
func Migrate(ctx context.Context, db Execer) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
