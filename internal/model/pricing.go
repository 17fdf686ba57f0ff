package model

import "github.com/shopspring/decimal"

// Tax and Discount rates are percentages: 6 means 6%.
type Tax struct {
	ID   string          `db:"id" json:"id"`
	Name string          `db:"name" json:"name"`
	Rate decimal.Decimal `db:"rate" json:"rate"`
}

type Discount struct {
	ID   string          `db:"id" json:"id"`
	Name string          `db:"name" json:"name"`
	Rate decimal.Decimal `db:"rate" json:"rate"`
}
