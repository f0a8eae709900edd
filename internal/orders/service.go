// internal/orders/service.go
package orders

import "context"

// Service defines the interface for the order workflow.
type Service interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)
	ListOrdersByUser(ctx context.Context, email string) ([]*Order, error)
}

// Repository persists orders. Orders are never updated or deleted.
type Repository interface {
	Insert(ctx context.Context, order *Order) error
	List(ctx context.Context) ([]*Order, error)
	ListByEmail(ctx context.Context, email string) ([]*Order, error)
}
