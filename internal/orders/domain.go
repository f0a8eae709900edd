// internal/orders/domain.go
package orders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer pays on delivery or at checkout.
type PaymentMethod string

const (
	CreditCard     PaymentMethod = "Credit Card"
	DebitCard      PaymentMethod = "Debit Card"
	CashOnDelivery PaymentMethod = "Cash on Delivery"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case CreditCard, DebitCard, CashOnDelivery:
		return true
	}
	return false
}

// Order is an append-only purchase record. BookName and TotalPrice are
// snapshots taken when the order is placed.
type Order struct {
	ID            uuid.UUID       `json:"_id"`
	BookID        uuid.UUID       `json:"bookId"`
	BookName      string          `json:"bookName"`
	UserEmail     string          `json:"userEmail"`
	UserName      string          `json:"userName"`
	UserAddress   string          `json:"userAddress"`
	UserContact   string          `json:"userContact"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	OrderTime     time.Time       `json:"orderTime"`
}

// PlaceOrderRequest is the client payload. It has no total: the price always
// comes from the catalog.
type PlaceOrderRequest struct {
	BookID        string        `json:"bookId"`
	BookName      string        `json:"bookName"`
	UserEmail     string        `json:"userEmail"`
	UserName      string        `json:"userName"`
	UserAddress   string        `json:"userAddress"`
	UserContact   string        `json:"userContact"`
	Quantity      Quantity      `json:"quantity"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// Quantity accepts a JSON number or a numeric string, since form inputs post
// their values as text. An empty string decodes to zero.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}

	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*q = 0
			return nil
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("quantity must be an integer: %w", err)
	}
	*q = Quantity(n)
	return nil
}
