package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type LineInput struct {
	ProductID string `validate:"required"`
	Quantity  int64  `validate:"gt=0"`
	// Price overrides the catalog price when set.
	Price *decimal.Decimal `validate:"-"`
}

type CreateSalesOrderInput struct {
	CustomerID   string `validate:"required"`
	OrderDate    time.Time
	ShipmentDate *time.Time
	Lines        []LineInput `validate:"required,min=1,dive"`
	DiscountIDs  []string
	TaxIDs       []string
	ShippingCost decimal.Decimal `validate:"-"`
	UserID       string
}
