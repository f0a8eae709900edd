package catalog

import (
	"strings"
	"testing"
	"time"

	"bookstore/internal/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validInput() BookInput {
	return BookInput{
		Name:        "The Hobbit",
		Author:      "J. R. R. Tolkien",
		Genre:       "Fantasy",
		Year:        1937,
		Description: "There and back again.",
		Price:       decimal.NewNullDecimal(decimal.RequireFromString("12.50")),
	}
}

func TestBookInputValidate(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*BookInput)
		wantErr string
	}{
		{"valid", func(*BookInput) {}, ""},
		{"missing name", func(in *BookInput) { in.Name = "  " }, "name is required"},
		{"missing author", func(in *BookInput) { in.Author = "" }, "author is required"},
		{"missing genre", func(in *BookInput) { in.Genre = "" }, "genre is required"},
		{"missing description", func(in *BookInput) { in.Description = "" }, "description is required"},
		{"long name", func(in *BookInput) { in.Name = strings.Repeat("a", 101) }, "name is too long"},
		{"long genre", func(in *BookInput) { in.Genre = strings.Repeat("g", 51) }, "genre is too long"},
		{"year too old", func(in *BookInput) { in.Year = 999 }, "Year must be after 1000"},
		{"lower bound", func(in *BookInput) { in.Year = 1000 }, ""},
		{"current year", func(in *BookInput) { in.Year = 2026 }, ""},
		{"future year", func(in *BookInput) { in.Year = 2027 }, "Year cannot be in the future"},
		{"free book", func(in *BookInput) { in.Price = decimal.NewNullDecimal(decimal.Zero) }, ""},
		{"missing price", func(in *BookInput) { in.Price = decimal.NullDecimal{} }, "price is required"},
		{"negative price", func(in *BookInput) { in.Price = decimal.NewNullDecimal(decimal.NewFromInt(-1)) }, "price must not be negative"},
		{"sub-cent price", func(in *BookInput) { in.Price = decimal.NewNullDecimal(decimal.RequireFromString("0.004")) }, "price must have at most two decimal places"},
		{"trailing zeros", func(in *BookInput) { in.Price = decimal.NewNullDecimal(decimal.RequireFromString("9.990")) }, ""},
		{"largest price", func(in *BookInput) { in.Price = decimal.NewNullDecimal(decimal.RequireFromString("9999999999.99")) }, ""},
		{"price overflow", func(in *BookInput) { in.Price = decimal.NewNullDecimal(MaxPrice) }, "price is too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate(now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
	assert.Equal(t, "tolkien", escapeLike("tolkien"))
}
