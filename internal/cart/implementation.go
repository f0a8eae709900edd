// internal/cart/implementation.go
package cart

import (
	"context"
	"strings"
	"time"

	"bookstore/internal/apperror"
	"bookstore/internal/catalog"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	msgMissingFields    = "Missing required fields"
	msgMissingRemoval   = "Book name or email is missing."
	msgNotInCart        = "Book not found in cart."
	msgEmailRequired    = "Email is required"
	msgInvalidBookID    = "invalid bookId"
	msgNonPositivePrice = "price must be greater than zero"
)

// service implements the Service interface.
type service struct {
	repo   Repository
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a new cart service instance.
func NewService(repo Repository, logger zerolog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With().Str("component", "cart").Logger(),
		now:    time.Now,
	}
}

// AddItem stores a new cart item. A duplicate (email, book) is rejected by the
// repository in the same statement that inserts.
func (s *service) AddItem(ctx context.Context, req AddItemRequest) (*Item, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.BookID == "" || req.BookName == "" || req.ImageURL == "" || req.Price.IsZero() {
		return nil, apperror.InvalidInput(msgMissingFields)
	}
	if req.Price.IsNegative() {
		return nil, apperror.InvalidInput(msgNonPositivePrice)
	}
	// The stored price must equal the one echoed back to the client.
	if err := catalog.ValidatePriceScale(req.Price); err != nil {
		return nil, err
	}
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, apperror.InvalidInput(msgInvalidBookID)
	}

	item := &Item{
		ID:        uuid.New(),
		Email:     email,
		BookID:    bookID,
		BookName:  req.BookName,
		ImageURL:  req.ImageURL,
		Price:     req.Price,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("email", email).
		Str("book_id", bookID.String()).
		Msg("item added to cart")
	return item, nil
}

// ListItems returns the user's cart resolved against the catalog.
func (s *service) ListItems(ctx context.Context, email string) ([]Entry, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.InvalidInput(msgEmailRequired)
	}

	rows, err := s.repo.ListWithBooks(ctx, email)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, newEntry(row))
	}
	return entries, nil
}

// RemoveItem deletes the user's cart items carrying bookName.
func (s *service) RemoveItem(ctx context.Context, email, bookName string) error {
	email = strings.TrimSpace(email)
	if email == "" || bookName == "" {
		return apperror.InvalidInput(msgMissingRemoval)
	}

	n, err := s.repo.DeleteByName(ctx, email, bookName)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound(msgNotInCart)
	}
	return nil
}

// RemoveItemByBook deletes the user's cart item for bookID.
func (s *service) RemoveItemByBook(ctx context.Context, email string, bookID uuid.UUID) error {
	email = strings.TrimSpace(email)
	if email == "" || bookID == uuid.Nil {
		return apperror.InvalidInput(msgMissingRemoval)
	}

	n, err := s.repo.DeleteByBook(ctx, email, bookID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound(msgNotInCart)
	}
	return nil
}
