package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	SKU           string          `validate:"required,max=64"`
	Name          string          `validate:"required,max=255"`
	Cost          decimal.Decimal `validate:"-"`
	Price         decimal.Decimal `validate:"-"`
	SerialTracked bool
	UserID        string
}

// UpdateProductInput never carries stock; stock only moves through the
// ledger.
type UpdateProductInput struct {
	ID            string          `validate:"required"`
	SKU           string          `validate:"required,max=64"`
	Name          string          `validate:"required,max=255"`
	Cost          decimal.Decimal `validate:"-"`
	Price         decimal.Decimal `validate:"-"`
	SerialTracked bool
	IsActive      bool
	UserID        string
}
