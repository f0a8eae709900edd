// internal/cart/service.go
package cart

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the cart service.
type Service interface {
	AddItem(ctx context.Context, req AddItemRequest) (*Item, error)
	ListItems(ctx context.Context, email string) ([]Entry, error)
	RemoveItem(ctx context.Context, email, bookName string) error
	RemoveItemByBook(ctx context.Context, email string, bookID uuid.UUID) error
}

// Repository persists cart items. Insert must fail with a Conflict error when
// the (email, book) pair already exists; the check belongs to the store, not
// to the caller.
type Repository interface {
	Insert(ctx context.Context, item *Item) error
	ListWithBooks(ctx context.Context, email string) ([]ItemWithBook, error)
	DeleteByName(ctx context.Context, email, bookName string) (int64, error)
	DeleteByBook(ctx context.Context, email string, bookID uuid.UUID) (int64, error)
}
