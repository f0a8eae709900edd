// internal/catalog/service.go
package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Reader is the read side other workflows depend on.
type Reader interface {
	GetBook(ctx context.Context, id uuid.UUID) (*Book, error)
}

// Service defines the interface for the catalog service.
type Service interface {
	Reader
	ListBooks(ctx context.Context) ([]*Book, error)
	Search(ctx context.Context, query string, limit int) ([]*Book, error)
	CreateBook(ctx context.Context, in BookInput) (*Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, in BookInput) (*Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}
