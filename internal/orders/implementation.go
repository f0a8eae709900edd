// internal/orders/implementation.go
package orders

import (
	"context"
	"strings"
	"time"

	"bookstore/internal/apperror"
	"bookstore/internal/catalog"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const defaultQuantity = 1

// service implements the order workflow on top of a catalog reader and an
// order repository.
type service struct {
	books  catalog.Reader
	repo   Repository
	logger zerolog.Logger
	now    func() time.Time
	placed metric.Int64Counter
}

// NewService creates a new order service instance. Placed orders are counted
// on the global meter provider installed by telemetry.Setup.
func NewService(books catalog.Reader, repo Repository, logger zerolog.Logger) Service {
	return newService(books, repo, logger, otel.Meter("bookstore/orders"))
}

func newService(books catalog.Reader, repo Repository, logger zerolog.Logger, meter metric.Meter) *service {
	logger = logger.With().Str("component", "orders").Logger()

	placed, err := meter.Int64Counter("bookstore.orders.placed",
		metric.WithDescription("Orders persisted by the order workflow"),
	)
	if err != nil {
		logger.Warn().Err(err).Msg("orders counter unavailable")
		placed = noop.Int64Counter{}
	}

	return &service{
		books:  books,
		repo:   repo,
		logger: logger,
		now:    time.Now,
		placed: placed,
	}
}

// PlaceOrder resolves the book, prices the order from the catalog and stores
// the snapshot. It does not touch the cart. There is no idempotency key, so a
// resubmitted request stores a second order.
func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if strings.TrimSpace(req.BookID) == "" {
		return nil, apperror.InvalidInput("bookId is required")
	}
	email := strings.TrimSpace(req.UserEmail)
	if email == "" {
		return nil, apperror.InvalidInput("userEmail is required")
	}
	if !req.PaymentMethod.Valid() {
		return nil, apperror.InvalidInput("paymentMethod must be one of Credit Card, Debit Card, Cash on Delivery")
	}
	quantity := int(req.Quantity)
	if quantity == 0 {
		quantity = defaultQuantity
	}
	if quantity < 0 {
		return nil, apperror.InvalidInput("quantity must be at least 1")
	}

	// No stored book carries a malformed id.
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, apperror.NotFound("Book not found")
	}
	book, err := s.books.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// The display name is the client's; it only falls back to the catalog.
	bookName := req.BookName
	if bookName == "" {
		bookName = book.Name
	}

	order := &Order{
		ID:            uuid.New(),
		BookID:        book.ID,
		BookName:      bookName,
		UserEmail:     email,
		UserName:      req.UserName,
		UserAddress:   req.UserAddress,
		UserContact:   req.UserContact,
		Quantity:      quantity,
		TotalPrice:    book.Price.Mul(decimal.NewFromInt(int64(quantity))),
		PaymentMethod: req.PaymentMethod,
		OrderTime:     s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, order); err != nil {
		if apperror.KindOf(err) != apperror.KindInternal {
			return nil, err
		}
		return nil, apperror.Internal("Failed to place order", err)
	}

	s.placed.Add(ctx, 1, metric.WithAttributes(attribute.String("payment.method", string(order.PaymentMethod))))
	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("book_id", order.BookID.String()).
		Str("email", order.UserEmail).
		Int("quantity", order.Quantity).
		Str("total_price", order.TotalPrice.StringFixed(2)).
		Msg("order placed")

	return order, nil
}

// ListOrders returns every order, newest first.
func (s *service) ListOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.List(ctx)
}

// ListOrdersByUser returns the user's orders, newest first.
func (s *service) ListOrdersByUser(ctx context.Context, email string) ([]*Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.InvalidInput("Email is required")
	}
	return s.repo.ListByEmail(ctx, email)
}
