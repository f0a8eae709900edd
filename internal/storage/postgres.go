// internal/storage/postgres.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Postgres error codes the repositories care about.
const (
	codeUniqueViolation   = "23505"
	codeCheckViolation    = "23514"
	codeNumericOutOfRange = "22003"
)

// Options configures the connection pool.
type Options struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to Postgres and verifies the connection. The caller owns the
// returned handle and must Close it on shutdown.
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	db, err := sql.Open("postgres", opts.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// Migrate creates the tables and constraints if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}

// IsCheckViolation reports whether err is a CHECK constraint violation.
func IsCheckViolation(err error) bool {
	return pqCode(err) == codeCheckViolation
}

// IsNumericOutOfRange reports whether a value overflowed its column type.
func IsNumericOutOfRange(err error) bool {
	return pqCode(err) == codeNumericOutOfRange
}

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// cart_items.book_id and favorites.book_id carry no foreign key: a deleted
// book must not remove or block the records that reference it.
const schema = `
CREATE TABLE IF NOT EXISTS books (
	id          UUID PRIMARY KEY,
	name        VARCHAR(100) NOT NULL,
	author      VARCHAR(100) NOT NULL,
	genre       VARCHAR(50) NOT NULL,
	image_url   TEXT NOT NULL DEFAULT '',
	year        INT NOT NULL,
	description VARCHAR(1000) NOT NULL,
	price       NUMERIC(12,2) NOT NULL CHECK (price >= 0),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS cart_items (
	id         UUID PRIMARY KEY,
	email      TEXT NOT NULL,
	book_id    UUID NOT NULL,
	book_name  TEXT NOT NULL,
	image_url  TEXT NOT NULL,
	price      NUMERIC(12,2) NOT NULL CHECK (price > 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT cart_items_email_book_key UNIQUE (email, book_id)
);

CREATE TABLE IF NOT EXISTS favorites (
	id         UUID PRIMARY KEY,
	email      TEXT NOT NULL,
	book_id    UUID NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS favorites_email_idx ON favorites (email);

CREATE TABLE IF NOT EXISTS orders (
	id             UUID PRIMARY KEY,
	book_id        UUID NOT NULL,
	book_name      TEXT NOT NULL,
	user_email     TEXT NOT NULL,
	user_name      TEXT NOT NULL DEFAULT '',
	user_address   TEXT NOT NULL DEFAULT '',
	user_contact   TEXT NOT NULL DEFAULT '',
	quantity       BIGINT NOT NULL CHECK (quantity >= 1),
	total_price    NUMERIC NOT NULL CHECK (total_price >= 0),
	payment_method TEXT NOT NULL,
	order_time     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS orders_user_email_idx ON orders (user_email);
`
