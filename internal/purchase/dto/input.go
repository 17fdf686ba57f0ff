package dto

import (
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/shopspring/decimal"
)

type ItemInput struct {
	ProductID string          `validate:"required"`
	Quantity  int64           `validate:"gt=0"`
	UnitCost  decimal.Decimal `validate:"-"`
}

type CreatePurchaseOrderInput struct {
	VendorID     string      `validate:"required"`
	OrderDate    time.Time   // defaults to now
	Items        []ItemInput `validate:"required,min=1,dive"`
	DiscountIDs  []string
	TaxIDs       []string
	ShippingCost decimal.Decimal `validate:"-"`
	UserID       string
}

// EditPurchaseOrderInput replaces every line of a pending order.
type EditPurchaseOrderInput struct {
	ID           string      `validate:"required"`
	VendorID     string      `validate:"required"`
	OrderDate    time.Time   // keeps the current date when zero
	Items        []ItemInput `validate:"required,min=1,dive"`
	DiscountIDs  []string
	TaxIDs       []string
	ShippingCost decimal.Decimal `validate:"-"`
	UserID       string
}

type DeliverPurchaseOrderInput struct {
	ID            string `validate:"required"`
	DeliveredDate time.Time
	UserID        string
}

// PurchaseOrderDetail pairs an order with the live unregistered quantity
// of each line, keyed by item id.
type PurchaseOrderDetail struct {
	Order        *model.PurchaseOrder
	Unregistered map[string]int64
}
