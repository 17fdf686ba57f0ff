package model

import "time"

// ProductUnit is one physical, serialized item.
type ProductUnit struct {
	ID                  string     `db:"id" json:"id"`
	ProductID           string     `db:"product_id" json:"product_id"`
	PurchaseOrderItemID string     `db:"purchase_order_item_id" json:"purchase_order_item_id"`
	SalesOrderItemID    *string    `db:"sales_order_item_id" json:"sales_order_item_id"`
	SerialNumber        string     `db:"serial_number" json:"serial_number"`
	DateOfPurchase      time.Time  `db:"date_of_purchase" json:"date_of_purchase"`
	DateOfSale          *time.Time `db:"date_of_sale" json:"date_of_sale"`
	IsSold              bool       `db:"is_sold" json:"is_sold"`
	WarrantyID          *string    `db:"warranty_id" json:"warranty_id"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}
