package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventSalesOrderCreated = "SalesOrderCreated"

type SalesOrderCreatedEvent struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Payload   SalesOrderPayload `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

type SalesOrderPayload struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customer_id"`
	GrandTotal decimal.Decimal    `json:"grand_total"`
	Items      []SalesItemPayload `json:"items"`
}

type SalesItemPayload struct {
	ProductID string   `json:"product_id"`
	Quantity  int64    `json:"quantity"`
	UnitIDs   []string `json:"unit_ids"`
}
