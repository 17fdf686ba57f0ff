package dto

import "time"

type RegisterUnitsInput struct {
	PurchaseOrderItemID string   `validate:"required"`
	Serials             []string `validate:"required,min=1,dive,required,max=128"`
}

type BindUnitsInput struct {
	ProductID        string `validate:"required"`
	Quantity         int64  `validate:"gt=0"`
	SalesOrderItemID string `validate:"required"`
	SoldAt           time.Time
}

// UnitSummary is the per-product reconciliation between aggregate stock and
// serialized units.
type UnitSummary struct {
	ProductID     string `json:"product_id"`
	StockQuantity int64  `json:"stock_quantity"`
	Registered    int64  `json:"registered"`
	Unsold        int64  `json:"unsold"`
	Sold          int64  `json:"sold"`
}

// UnitDocument is the search index shape of a unit.
type UnitDocument struct {
	ID                  string    `json:"id"`
	ProductID           string    `json:"product_id"`
	PurchaseOrderItemID string    `json:"purchase_order_item_id"`
	SerialNumber        string    `json:"serial_number"`
	DateOfPurchase      time.Time `json:"date_of_purchase"`
	IsSold              bool      `json:"is_sold"`
}
