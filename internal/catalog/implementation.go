// internal/catalog/implementation.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore/internal/apperror"
	"bookstore/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultSearchLimit = 5
	maxSearchLimit     = 50
)

const bookColumns = `id, name, author, genre, image_url, year, description, price, created_at, updated_at`

// service implements the Service interface on Postgres.
type service struct {
	db     *sql.DB
	logger zerolog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewService creates a new catalog service instance.
func NewService(db *sql.DB, logger zerolog.Logger) Service {
	return &service{
		db:     db,
		logger: logger.With().Str("component", "catalog").Logger(),
		tracer: otel.Tracer("bookstore/catalog"),
		now:    time.Now,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*Book, error) {
	b := &Book{}
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Author,
		&b.Genre,
		&b.ImageURL,
		&b.Year,
		&b.Description,
		&b.Price,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetBook retrieves a book from the catalog by its ID.
func (s *service) GetBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.get",
		trace.WithAttributes(attribute.String("book.id", id.String())),
	)
	defer span.End()

	row := s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Book not found")
		}
		return nil, s.internal(span, "failed to fetch book", err)
	}
	return book, nil
}

// ListBooks returns every book ordered by name.
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.list")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY name, id`)
	if err != nil {
		return nil, s.internal(span, "Error fetching books", err)
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, s.internal(span, "Error fetching books", err)
	}

	span.SetAttributes(attribute.Int("books.count", len(books)))
	return books, nil
}

// Search finds books whose name or author contains query, ignoring case.
func (s *service) Search(ctx context.Context, query string, limit int) ([]*Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.InvalidInput("missing search query")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	ctx, span := s.tracer.Start(ctx, "catalog.search",
		trace.WithAttributes(
			attribute.String("search.query", query),
			attribute.Int("search.limit", limit),
		),
	)
	defer span.End()

	dbQuery := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE name ILIKE $1 OR author ILIKE $1
		ORDER BY name, id
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, dbQuery, "%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, s.internal(span, "database search failed", err)
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, s.internal(span, "database search failed", err)
	}
	return books, nil
}

// CreateBook validates and stores a new book.
func (s *service) CreateBook(ctx context.Context, in BookInput) (*Book, error) {
	if err := in.Validate(s.now()); err != nil {
		return nil, err
	}

	id := uuid.New()
	ctx, span := s.tracer.Start(ctx, "catalog.create",
		trace.WithAttributes(attribute.String("book.id", id.String())),
	)
	defer span.End()

	query := `
		INSERT INTO books (id, name, author, genre, image_url, year, description, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookColumns
	row := s.db.QueryRowContext(ctx, query, id, in.Name, in.Author, in.Genre, in.ImageURL, in.Year, in.Description, in.Price.Decimal)
	book, err := scanBook(row)
	if err != nil {
		if storage.IsCheckViolation(err) || storage.IsNumericOutOfRange(err) {
			return nil, apperror.InvalidInput("Error adding new book")
		}
		return nil, s.internal(span, "Error adding new book", err)
	}
	return book, nil
}

// UpdateBook replaces the editable fields of an existing book.
func (s *service) UpdateBook(ctx context.Context, id uuid.UUID, in BookInput) (*Book, error) {
	if err := in.Validate(s.now()); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "catalog.update",
		trace.WithAttributes(attribute.String("book.id", id.String())),
	)
	defer span.End()

	query := `
		UPDATE books
		SET name = $2, author = $3, genre = $4, image_url = $5, year = $6, description = $7, price = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bookColumns
	row := s.db.QueryRowContext(ctx, query, id, in.Name, in.Author, in.Genre, in.ImageURL, in.Year, in.Description, in.Price.Decimal)
	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Book not found")
		}
		if storage.IsCheckViolation(err) || storage.IsNumericOutOfRange(err) {
			return nil, apperror.InvalidInput("Error updating book")
		}
		return nil, s.internal(span, "Error updating book", err)
	}
	return book, nil
}

// DeleteBook removes a book. Cart items, favorites and orders that reference
// it are left alone.
func (s *service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "catalog.delete",
		trace.WithAttributes(attribute.String("book.id", id.String())),
	)
	defer span.End()

	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return s.internal(span, "Error deleting book", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return s.internal(span, "Error deleting book", err)
	}
	if n == 0 {
		return apperror.NotFound("Book not found")
	}
	return nil
}

func (s *service) internal(span trace.Span, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.logger.Error().Err(err).Msg(msg)
	return apperror.Internal(msg, err)
}

func collectBooks(rows *sql.Rows) ([]*Book, error) {
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
