package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las tablas si no existen. Idempotente: se ejecuta en cada
// arranque. El libro de movimientos y las ventas son append-only a nivel de
// aplicación; aquí solo se modela la forma.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			barcode     TEXT,
			qr_code     TEXT,
			price       NUMERIC(12,2) NOT NULL DEFAULT 0,
			stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
			category    TEXT NOT NULL DEFAULT '',
			supplier    TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image_url   TEXT NOT NULL DEFAULT '',
			tags        TEXT[] NOT NULL DEFAULT '{}',
			rating      DOUBLE PRECISION NOT NULL DEFAULT 0,
			reviews     INTEGER NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS products_barcode_uq ON products (barcode) WHERE barcode <> ''`,
		`CREATE TABLE IF NOT EXISTS members (
			id          TEXT PRIMARY KEY,
			phone       TEXT NOT NULL UNIQUE,
			name        TEXT NOT NULL,
			points      INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0),
			total_spent NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL,
			last_visit  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id              TEXT PRIMARY KEY,
			subtotal        NUMERIC(12,2) NOT NULL,
			discount        NUMERIC(12,2) NOT NULL DEFAULT 0,
			total           NUMERIC(12,2) NOT NULL,
			payment_method  TEXT NOT NULL,
			cashier_id      TEXT NOT NULL DEFAULT '',
			cashier_name    TEXT NOT NULL DEFAULT '',
			member_id       TEXT NOT NULL DEFAULT '',
			member_phone    TEXT NOT NULL DEFAULT '',
			points_used     INTEGER NOT NULL DEFAULT 0,
			points_earned   INTEGER NOT NULL DEFAULT 0,
			cash_received   NUMERIC(12,2),
			change          NUMERIC(12,2),
			idempotency_key TEXT,
			created_at      TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS sales_idempotency_uq ON sales (idempotency_key) WHERE idempotency_key IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS sales_created_at_idx ON sales (created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			sale_id    TEXT NOT NULL REFERENCES sales(id),
			position   INTEGER NOT NULL,
			product_id TEXT NOT NULL,
			name       TEXT NOT NULL,
			quantity   INTEGER NOT NULL CHECK (quantity > 0),
			unit_price NUMERIC(12,2) NOT NULL,
			PRIMARY KEY (sale_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS stock_ledger (
			id         TEXT PRIMARY KEY,
			product_id TEXT NOT NULL,
			type       TEXT NOT NULL,
			quantity   INTEGER NOT NULL,
			balance    INTEGER NOT NULL,
			reference  TEXT NOT NULL DEFAULT '',
			created_by TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS stock_ledger_product_idx ON stock_ledger (product_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS stock_in_documents (
			id              TEXT PRIMARY KEY,
			document_number TEXT NOT NULL,
			supplier_id     TEXT NOT NULL DEFAULT '',
			status          TEXT NOT NULL,
			created_by      TEXT NOT NULL DEFAULT '',
			created_at      TIMESTAMPTZ NOT NULL,
			completed_at    TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS stock_in_items (
			document_id TEXT NOT NULL REFERENCES stock_in_documents(id),
			position    INTEGER NOT NULL,
			product_id  TEXT NOT NULL,
			quantity    INTEGER NOT NULL CHECK (quantity > 0),
			unit_cost   NUMERIC(12,2) NOT NULL DEFAULT 0,
			PRIMARY KEY (document_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS suppliers (
			id      TEXT PRIMARY KEY,
			name    TEXT NOT NULL,
			contact TEXT NOT NULL DEFAULT '',
			phone   TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL,
			name          TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
