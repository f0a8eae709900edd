// internal/storage/storagetest/storagetest.go
// Package storagetest provides a Postgres handle for repository tests.
package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"bookstore/internal/storage"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OpenTestDB connects to the Postgres instance described by the standard PG*
// environment variables and returns a handle bound to a fresh schema with the
// tables applied. Each call gets its own schema, dropped on cleanup, so tests
// in different packages can run against the same database at once. The test
// is skipped when no database is reachable.
func OpenTestDB(t testing.TB) *sql.DB {
	t.Helper()

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOr("PGHOST", "localhost"),
		envOr("PGPORT", "5432"),
		envOr("PGUSER", "user"),
		envOr("PGPASSWORD", "password"),
		envOr("PGDATABASE", "testdb"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	admin, err := storage.Open(ctx, storage.Options{URL: connStr, MaxOpenConns: 1})
	if err != nil {
		t.Skipf("skipping postgres tests: %v", err)
	}

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA "+pq.QuoteIdentifier(schema)); err != nil {
		admin.Close()
		t.Fatalf("failed to create schema %s: %v", schema, err)
	}

	t.Cleanup(func() {
		if _, err := admin.Exec("DROP SCHEMA " + pq.QuoteIdentifier(schema) + " CASCADE"); err != nil {
			t.Logf("failed to drop schema %s: %v", schema, err)
		}
		admin.Close()
	})

	// lib/pq passes unknown keys through as run-time parameters, so every
	// pooled connection starts with this search_path.
	db, err := storage.Open(ctx, storage.Options{URL: connStr + " search_path=" + schema})
	if err != nil {
		t.Fatalf("failed to connect to schema %s: %v", schema, err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.Migrate(ctx, db); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}
	return db
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
