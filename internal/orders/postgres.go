// internal/orders/postgres.go
package orders

import (
	"context"
	"database/sql"
	"fmt"

	"bookstore/internal/apperror"
	"bookstore/internal/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const orderColumns = `id, book_id, book_name, user_email, user_name, user_address, user_contact, quantity, total_price, payment_method, order_time`

type postgresRepository struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgresRepository returns a Repository backed by the orders table.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{
		db:     db,
		tracer: otel.Tracer("bookstore/orders"),
	}
}

// Insert writes one order row; it is the only write the workflow performs.
func (r *postgresRepository) Insert(ctx context.Context, o *Order) error {
	ctx, span := r.tracer.Start(ctx, "orders.insert",
		trace.WithAttributes(
			attribute.String("order.id", o.ID.String()),
			attribute.String("book.id", o.BookID.String()),
			attribute.Int("order.quantity", o.Quantity),
		),
	)
	defer span.End()

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.BookID, o.BookName, o.UserEmail, o.UserName, o.UserAddress, o.UserContact,
		o.Quantity, o.TotalPrice, string(o.PaymentMethod), o.OrderTime,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert order")
		if storage.IsNumericOutOfRange(err) {
			return apperror.InvalidInput("quantity is too large")
		}
		return apperror.Internal("Failed to place order", err)
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*Order, error) {
	ctx, span := r.tracer.Start(ctx, "orders.list")
	defer span.End()

	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY order_time DESC, id`)
	return r.collect(span, rows, err)
}

func (r *postgresRepository) ListByEmail(ctx context.Context, email string) ([]*Order, error) {
	ctx, span := r.tracer.Start(ctx, "orders.list_by_email")
	defer span.End()

	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_email = $1 ORDER BY order_time DESC, id`, email)
	return r.collect(span, rows, err)
}

func (r *postgresRepository) collect(span trace.Span, rows *sql.Rows, err error) ([]*Order, error) {
	if err != nil {
		span.RecordError(err)
		return nil, apperror.Internal("Error fetching orders", err)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o := &Order{}
		var method string
		err := rows.Scan(
			&o.ID, &o.BookID, &o.BookName, &o.UserEmail, &o.UserName, &o.UserAddress, &o.UserContact,
			&o.Quantity, &o.TotalPrice, &method, &o.OrderTime,
		)
		if err != nil {
			span.RecordError(err)
			return nil, apperror.Internal("Error fetching orders", fmt.Errorf("scan order: %w", err))
		}
		o.PaymentMethod = PaymentMethod(method)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, apperror.Internal("Error fetching orders", err)
	}

	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}
