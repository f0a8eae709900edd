// internal/cart/domain.go
package cart

import (
	"time"

	"bookstore/internal/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fallbackText stands in for the fields of a book that no longer exists.
const fallbackText = "Unknown"

// Item is a pending selection. BookName, ImageURL and Price are captured when
// the item is added and are not refreshed from the catalog.
type Item struct {
	ID        uuid.UUID       `json:"_id"`
	Email     string          `json:"email"`
	BookID    uuid.UUID       `json:"bookId"`
	BookName  string          `json:"bookName"`
	ImageURL  string          `json:"imageUrl"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Entry is a cart item resolved against the current catalog.
type Entry struct {
	BookID      uuid.UUID       `json:"bookId"`
	Name        string          `json:"name"`
	Author      string          `json:"author"`
	Genre       string          `json:"genre"`
	Year        int             `json:"year,omitempty"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Price       decimal.Decimal `json:"price"`
}

// ItemWithBook pairs a stored item with the book it references. Book is nil
// when the book has been deleted from the catalog.
type ItemWithBook struct {
	Item Item
	Book *catalog.Book
}

// AddItemRequest is the client payload for adding a book to a cart.
type AddItemRequest struct {
	Email    string          `json:"email"`
	BookID   string          `json:"bookId"`
	BookName string          `json:"bookName"`
	ImageURL string          `json:"imageUrl"`
	Price    decimal.Decimal `json:"price"`
}

// newEntry builds the listing view. A missing book yields the fallback view
// instead of dropping the item.
func newEntry(iwb ItemWithBook) Entry {
	b := iwb.Book
	if b == nil {
		return Entry{
			BookID: iwb.Item.BookID,
			Name:   fallbackText,
			Author: fallbackText,
			Genre:  fallbackText,
			Price:  decimal.Zero,
		}
	}
	return Entry{
		BookID:      b.ID,
		Name:        b.Name,
		Author:      b.Author,
		Genre:       b.Genre,
		Year:        b.Year,
		Description: b.Description,
		ImageURL:    b.ImageURL,
		Price:       b.Price,
	}
}
