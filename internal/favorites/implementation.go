// internal/favorites/implementation.go
package favorites

import (
	"context"
	"strings"
	"time"

	"bookstore/internal/apperror"
	"bookstore/internal/catalog"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type service struct {
	repo   Repository
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a new favorites service instance.
func NewService(repo Repository, logger zerolog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With().Str("component", "favorites").Logger(),
		now:    time.Now,
	}
}

// AddFavorite inserts the pair unconditionally.
func (s *service) AddFavorite(ctx context.Context, email, bookID string) (*Item, error) {
	email = strings.TrimSpace(email)
	if email == "" || bookID == "" {
		return nil, apperror.InvalidInput("email and bookId are required")
	}
	id, err := uuid.Parse(bookID)
	if err != nil {
		return nil, apperror.InvalidInput("invalid bookId")
	}

	item := &Item{
		ID:        uuid.New(),
		Email:     email,
		BookID:    id,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("email", email).Str("book_id", id.String()).Msg("favorite added")
	return item, nil
}

// ListFavorites returns the books the user saved, oldest first.
func (s *service) ListFavorites(ctx context.Context, email string) ([]*catalog.Book, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.InvalidInput("Email is required")
	}
	return s.repo.ListBooks(ctx, email)
}
