// internal/catalog/domain.go
package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"bookstore/internal/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, as the browser client expects.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	minYear           = 1000
	maxNameLen        = 100
	maxAuthorLen      = 100
	maxGenreLen       = 50
	maxDescriptionLen = 1000
	priceDecimals     = 2
)

// MaxPrice is the exclusive upper bound of a stored price: prices are kept
// with ten integer and two fractional digits.
var MaxPrice = decimal.New(1, 10)

// Book is a catalog record. It is the authoritative source of a book's price.
type Book struct {
	ID          uuid.UUID       `json:"_id"`
	Name        string          `json:"name"`
	Author      string          `json:"author"`
	Genre       string          `json:"genre"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Year        int             `json:"year"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// BookInput carries the editable fields of a book. Price is nullable so a
// request without one can be told apart from a free book.
type BookInput struct {
	Name        string              `json:"name"`
	Author      string              `json:"author"`
	Genre       string              `json:"genre"`
	ImageURL    string              `json:"imageUrl"`
	Year        int                 `json:"year"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
}

// Validate checks the field rules against the calendar year of now.
func (in BookInput) Validate(now time.Time) error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"name", in.Name, maxNameLen},
		{"author", in.Author, maxAuthorLen},
		{"genre", in.Genre, maxGenreLen},
		{"description", in.Description, maxDescriptionLen},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return apperror.InvalidInput(c.field + " is required")
		}
		if utf8.RuneCountInString(c.value) > c.max {
			return apperror.InvalidInput(c.field + " is too long")
		}
	}

	if in.Year < minYear {
		return apperror.InvalidInput("Year must be after 1000")
	}
	if in.Year > now.Year() {
		return apperror.InvalidInput("Year cannot be in the future")
	}
	if !in.Price.Valid {
		return apperror.InvalidInput("price is required")
	}
	if in.Price.Decimal.IsNegative() {
		return apperror.InvalidInput("price must not be negative")
	}
	return ValidatePriceScale(in.Price.Decimal)
}

// ValidatePriceScale rejects prices the price columns cannot hold exactly:
// more than two decimal places, or MaxPrice and above.
func ValidatePriceScale(p decimal.Decimal) error {
	if !p.Equal(p.Round(priceDecimals)) {
		return apperror.InvalidInput("price must have at most two decimal places")
	}
	if p.Abs().GreaterThanOrEqual(MaxPrice) {
		return apperror.InvalidInput("price is too large")
	}
	return nil
}
