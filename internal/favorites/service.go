// internal/favorites/service.go
package favorites

import (
	"context"

	"bookstore/internal/catalog"
)

// Service defines the interface for the favorites service.
type Service interface {
	AddFavorite(ctx context.Context, email, bookID string) (*Item, error)
	ListFavorites(ctx context.Context, email string) ([]*catalog.Book, error)
}

// Repository persists favorites and resolves them to catalog books.
type Repository interface {
	Insert(ctx context.Context, item *Item) error
	ListBooks(ctx context.Context, email string) ([]*catalog.Book, error)
}
