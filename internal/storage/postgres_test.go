package storage_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bookstore/internal/storage"
	"bookstore/internal/storage/storagetest"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
	check := &pq.Error{Code: "23514"}
	overflow := fmt.Errorf("insert: %w", &pq.Error{Code: "22003"})

	assert.True(t, storage.IsUniqueViolation(unique))
	assert.False(t, storage.IsUniqueViolation(check))
	assert.True(t, storage.IsCheckViolation(check))
	assert.False(t, storage.IsUniqueViolation(errors.New("plain")))
	assert.False(t, storage.IsUniqueViolation(nil))
	assert.True(t, storage.IsNumericOutOfRange(overflow))
	assert.False(t, storage.IsNumericOutOfRange(check))
}

func TestCartUniqueConstraint(t *testing.T) {
	db := storagetest.OpenTestDB(t)
	ctx := context.Background()

	bookID := uuid.New()
	insert := `INSERT INTO cart_items (id, email, book_id, book_name, image_url, price) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := db.ExecContext(ctx, insert, uuid.New(), "a@x.com", bookID, "Dune", "dune.png", "9.99")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, uuid.New(), "a@x.com", bookID, "Dune", "dune.png", "9.99")
	require.Error(t, err)
	assert.True(t, storage.IsUniqueViolation(err))

	_, err = db.ExecContext(ctx, insert, uuid.New(), "b@x.com", bookID, "Dune", "dune.png", "9.99")
	require.NoError(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := storagetest.OpenTestDB(t)

	require.NoError(t, storage.Migrate(context.Background(), db))
	require.NoError(t, storage.Migrate(context.Background(), db))
}

func TestOrderColumnsHoldLargeTotals(t *testing.T) {
	db := storagetest.OpenTestDB(t)
	insert := `
		INSERT INTO orders (id, book_id, book_name, user_email, quantity, total_price, payment_method, order_time)
		VALUES ($1, $2, 'Dune', 'a@x.com', $3, $4, 'Credit Card', NOW())
	`

	_, err := db.ExecContext(context.Background(), insert, uuid.New(), uuid.New(), int64(5_000_000_000), "49999999995000000000.00")
	require.NoError(t, err)

	var quantity int64
	var total string
	require.NoError(t, db.QueryRow(`SELECT quantity, total_price FROM orders`).Scan(&quantity, &total))
	assert.Equal(t, int64(5_000_000_000), quantity)
	assert.Equal(t, "49999999995000000000.00", total)
}

func TestOpenTestDBIsolatesSchemas(t *testing.T) {
	first := storagetest.OpenTestDB(t)
	second := storagetest.OpenTestDB(t)

	_, err := first.Exec(`INSERT INTO favorites (id, email, book_id) VALUES ($1, 'a@x.com', $2)`, uuid.New(), uuid.New())
	require.NoError(t, err)

	var n int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM favorites`).Scan(&n))
	assert.Zero(t, n)
}
