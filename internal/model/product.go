package model

import "github.com/shopspring/decimal"

// Product is a catalog entry. StockQuantity is owned by the Stock Ledger and
// is never written through the catalog.
type Product struct {
	BaseModel
	SKU           string          `db:"sku" json:"sku"`
	Name          string          `db:"name" json:"name"`
	StockQuantity int64           `db:"stock_quantity" json:"stock_quantity"`
	Cost          decimal.Decimal `db:"cost" json:"cost"`
	Price         decimal.Decimal `db:"price" json:"price"`
	SerialTracked bool            `db:"serial_tracked" json:"serial_tracked"`
	IsActive      bool            `db:"is_active" json:"is_active"`
	UpdatedBy     *string         `db:"updated_by" json:"updated_by"`
}
