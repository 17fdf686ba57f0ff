package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseOrderStatus string

const (
	PurchaseOrderPending   PurchaseOrderStatus = "PENDING"
	PurchaseOrderDelivered PurchaseOrderStatus = "DELIVERED"
	PurchaseOrderCancelled PurchaseOrderStatus = "CANCELLED"
)

type PurchaseOrder struct {
	BaseModel
	VendorID       string              `db:"vendor_id" json:"vendor_id"`
	OrderDate      time.Time           `db:"order_date" json:"order_date"`
	DeliveredDate  *time.Time          `db:"delivered_date" json:"delivered_date"`
	Status         PurchaseOrderStatus `db:"status" json:"status"`
	Subtotal       decimal.Decimal     `db:"subtotal" json:"subtotal"`
	DiscountAmount decimal.Decimal     `db:"discount_amount" json:"discount_amount"`
	TaxAmount      decimal.Decimal     `db:"tax_amount" json:"tax_amount"`
	ShippingCost   decimal.Decimal     `db:"shipping_cost" json:"shipping_cost"`
	GrandTotal     decimal.Decimal     `db:"grand_total" json:"grand_total"`
	UpdatedBy      *string             `db:"updated_by" json:"updated_by"`
	Items          []PurchaseOrderItem `db:"-" json:"items"`
}

type PurchaseOrderItem struct {
	ID              string          `db:"id" json:"id"`
	PurchaseOrderID string          `db:"purchase_order_id" json:"purchase_order_id"`
	ProductID       string          `db:"product_id" json:"product_id"`
	Quantity        int64           `db:"quantity" json:"quantity"`
	UnitCost        decimal.Decimal `db:"unit_cost" json:"unit_cost"`
	TotalPrice      decimal.Decimal `db:"total_price" json:"total_price"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
