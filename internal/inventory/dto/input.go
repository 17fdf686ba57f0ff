package dto

import "time"

type ReceivePurchaseInput struct {
	PurchaseOrderID string `validate:"required"`
	// DeliveredDate defaults to now when zero.
	DeliveredDate time.Time
	UserID        string
}

type StockLine struct {
	ProductID string `validate:"required"`
	Quantity  int64  `validate:"gt=0"`
}

type ReserveInput struct {
	Lines         []StockLine `validate:"required,min=1,dive"`
	ReferenceType string      `validate:"required"`
	ReferenceID   string      `validate:"required"`
	UserID        string
}
