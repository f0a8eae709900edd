// internal/cart/postgres.go
package cart

import (
	"context"
	"database/sql"
	"fmt"

	"bookstore/internal/apperror"
	"bookstore/internal/catalog"
	"bookstore/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type postgresRepository struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgresRepository returns a Repository backed by the cart_items table.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{
		db:     db,
		tracer: otel.Tracer("bookstore/cart"),
	}
}

// Insert relies on the cart_items (email, book_id) unique constraint, so two
// concurrent inserts for the same pair leave exactly one row.
func (r *postgresRepository) Insert(ctx context.Context, item *Item) error {
	ctx, span := r.tracer.Start(ctx, "cart.insert",
		trace.WithAttributes(attribute.String("book.id", item.BookID.String())),
	)
	defer span.End()

	query := `
		INSERT INTO cart_items (id, email, book_id, book_name, image_url, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, item.ID, item.Email, item.BookID, item.BookName, item.ImageURL, item.Price, item.CreatedAt)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			span.SetAttributes(attribute.Bool("conflict.detected", true))
			return apperror.Conflict("Item already in cart")
		}
		if storage.IsCheckViolation(err) {
			return apperror.InvalidInput(msgNonPositivePrice)
		}
		if storage.IsNumericOutOfRange(err) {
			return apperror.InvalidInput("price is too large")
		}
		return fail(span, "Failed to add to cart", err)
	}
	return nil
}

func (r *postgresRepository) ListWithBooks(ctx context.Context, email string) ([]ItemWithBook, error) {
	ctx, span := r.tracer.Start(ctx, "cart.list")
	defer span.End()

	query := `
		SELECT c.id, c.email, c.book_id, c.book_name, c.image_url, c.price, c.created_at,
		       b.id, b.name, b.author, b.genre, b.image_url, b.year, b.description, b.price
		FROM cart_items c
		LEFT JOIN books b ON b.id = c.book_id
		WHERE c.email = $1
		ORDER BY c.created_at, c.id
	`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fail(span, "Error fetching cart items", err)
	}
	defer rows.Close()

	var out []ItemWithBook
	for rows.Next() {
		var (
			it       Item
			bookID   uuid.NullUUID
			name     sql.NullString
			author   sql.NullString
			genre    sql.NullString
			imageURL sql.NullString
			year     sql.NullInt64
			desc     sql.NullString
			price    decimal.NullDecimal
		)
		err := rows.Scan(
			&it.ID, &it.Email, &it.BookID, &it.BookName, &it.ImageURL, &it.Price, &it.CreatedAt,
			&bookID, &name, &author, &genre, &imageURL, &year, &desc, &price,
		)
		if err != nil {
			return nil, fail(span, "Error fetching cart items", fmt.Errorf("scan cart item: %w", err))
		}

		row := ItemWithBook{Item: it}
		if bookID.Valid {
			row.Book = &catalog.Book{
				ID:          bookID.UUID,
				Name:        name.String,
				Author:      author.String,
				Genre:       genre.String,
				ImageURL:    imageURL.String,
				Year:        int(year.Int64),
				Description: desc.String,
				Price:       price.Decimal,
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fail(span, "Error fetching cart items", fmt.Errorf("iterate cart items: %w", err))
	}

	span.SetAttributes(attribute.Int("cart.items", len(out)))
	return out, nil
}

func (r *postgresRepository) DeleteByName(ctx context.Context, email, bookName string) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "cart.delete_by_name")
	defer span.End()

	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE email = $1 AND book_name = $2`, email, bookName)
	if err != nil {
		return 0, fail(span, "Internal server error.", err)
	}
	return rowsAffected(span, res)
}

func (r *postgresRepository) DeleteByBook(ctx context.Context, email string, bookID uuid.UUID) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "cart.delete_by_book",
		trace.WithAttributes(attribute.String("book.id", bookID.String())),
	)
	defer span.End()

	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE email = $1 AND book_id = $2`, email, bookID)
	if err != nil {
		return 0, fail(span, "Internal server error.", err)
	}
	return rowsAffected(span, res)
}

func rowsAffected(span trace.Span, res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fail(span, "Internal server error.", err)
	}
	span.SetAttributes(attribute.Int64("rows.deleted", n))
	return n, nil
}

func fail(span trace.Span, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	return apperror.Internal(msg, err)
}
