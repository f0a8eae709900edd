// internal/favorites/postgres.go
package favorites

import (
	"context"
	"database/sql"
	"fmt"

	"bookstore/internal/apperror"
	"bookstore/internal/catalog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type postgresRepository struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgresRepository returns a Repository backed by the favorites table.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{
		db:     db,
		tracer: otel.Tracer("bookstore/favorites"),
	}
}

func (r *postgresRepository) Insert(ctx context.Context, item *Item) error {
	ctx, span := r.tracer.Start(ctx, "favorites.insert",
		trace.WithAttributes(attribute.String("book.id", item.BookID.String())),
	)
	defer span.End()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (id, email, book_id, created_at) VALUES ($1, $2, $3, $4)`,
		item.ID, item.Email, item.BookID, item.CreatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert favorite")
		return apperror.Internal("Error adding to favorites", err)
	}
	return nil
}

// ListBooks joins favorites to books; favorites whose book was deleted are skipped.
func (r *postgresRepository) ListBooks(ctx context.Context, email string) ([]*catalog.Book, error) {
	ctx, span := r.tracer.Start(ctx, "favorites.list")
	defer span.End()

	query := `
		SELECT b.id, b.name, b.author, b.genre, b.image_url, b.year, b.description, b.price, b.created_at, b.updated_at
		FROM favorites f
		JOIN books b ON b.id = f.book_id
		WHERE f.email = $1
		ORDER BY f.created_at, f.id
	`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.Internal("Error fetching favorites", err)
	}
	defer rows.Close()

	books := []*catalog.Book{}
	for rows.Next() {
		b := &catalog.Book{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Author, &b.Genre, &b.ImageURL, &b.Year, &b.Description, &b.Price, &b.CreatedAt, &b.UpdatedAt); err != nil {
			span.RecordError(err)
			return nil, apperror.Internal("Error fetching favorites", fmt.Errorf("scan favorite: %w", err))
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, apperror.Internal("Error fetching favorites", err)
	}

	span.SetAttributes(attribute.Int("favorites.count", len(books)))
	return books, nil
}
