package model

import "time"

type MovementType string

const (
	MovementPurchaseReceipt MovementType = "purchase_receipt"
	MovementSale            MovementType = "sale"
)

// StockMovement is one journal line of a stock_quantity change.
type StockMovement struct {
	ID             string       `db:"id" json:"id"`
	ProductID      string       `db:"product_id" json:"product_id"`
	MovementType   MovementType `db:"movement_type" json:"movement_type"`
	QuantityChange int64        `db:"quantity_change" json:"quantity_change"`
	QuantityBefore int64        `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int64        `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string      `db:"reference_type" json:"reference_type"`
	ReferenceID    *string      `db:"reference_id" json:"reference_id"`
	CreatedBy      *string      `db:"created_by" json:"created_by"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}
