package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesOrder struct {
	BaseModel
	CustomerID     string           `db:"customer_id" json:"customer_id"`
	OrderDate      time.Time        `db:"order_date" json:"order_date"`
	ShipmentDate   *time.Time       `db:"shipment_date" json:"shipment_date"`
	Subtotal       decimal.Decimal  `db:"subtotal" json:"subtotal"`
	DiscountAmount decimal.Decimal  `db:"discount_amount" json:"discount_amount"`
	TaxAmount      decimal.Decimal  `db:"tax_amount" json:"tax_amount"`
	ShippingCost   decimal.Decimal  `db:"shipping_cost" json:"shipping_cost"`
	GrandTotal     decimal.Decimal  `db:"grand_total" json:"grand_total"`
	UpdatedBy      *string          `db:"updated_by" json:"updated_by"`
	Items          []SalesOrderItem `db:"-" json:"items"`
}

type SalesOrderItem struct {
	ID           string          `db:"id" json:"id"`
	SalesOrderID string          `db:"sales_order_id" json:"sales_order_id"`
	ProductID    string          `db:"product_id" json:"product_id"`
	Quantity     int64           `db:"quantity" json:"quantity"`
	Price        decimal.Decimal `db:"price" json:"price"`
	TotalPrice   decimal.Decimal `db:"total_price" json:"total_price"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	Units        []ProductUnit   `db:"-" json:"units"`
}
