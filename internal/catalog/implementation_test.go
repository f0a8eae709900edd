package catalog

import (
	"context"
	"testing"

	"bookstore/internal/apperror"
	"bookstore/internal/storage/storagetest"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLifecycle(t *testing.T) {
	db := storagetest.OpenTestDB(t)
	svc := NewService(db, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, validInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, decimal.RequireFromString("12.50").Equal(created.Price))

	got, err := svc.GetBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Hobbit", got.Name)

	in := validInput()
	in.Price = decimal.NewNullDecimal(decimal.NewFromInt(15))
	updated, err := svc.UpdateBook(ctx, created.ID, in)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(15).Equal(updated.Price))

	books, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)

	require.NoError(t, svc.DeleteBook(ctx, created.ID))

	_, err = svc.GetBook(ctx, created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteBook(ctx, created.ID), apperror.ErrNotFound)

	_, err = svc.UpdateBook(ctx, uuid.New(), validInput())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSearchMatchesNameOrAuthor(t *testing.T) {
	db := storagetest.OpenTestDB(t)
	svc := NewService(db, zerolog.Nop())
	ctx := context.Background()

	for _, b := range []struct{ name, author string }{
		{"The Hobbit", "J. R. R. Tolkien"},
		{"Dune", "Frank Herbert"},
		{"100% Pure", "Anon"},
	} {
		in := validInput()
		in.Name, in.Author = b.name, b.author
		_, err := svc.CreateBook(ctx, in)
		require.NoError(t, err)
	}

	books, err := svc.Search(ctx, "HOBBIT", 0)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Hobbit", books[0].Name)

	books, err = svc.Search(ctx, "herbert", 0)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Name)

	books, err = svc.Search(ctx, "%", 0)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "100% Pure", books[0].Name)

	_, err = svc.Search(ctx, " ", 0)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
