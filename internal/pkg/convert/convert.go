// Package convert maps between domain models and stockv1 messages where
// more than one handler needs the same mapping.
package convert

import (
	"strings"
	"time"

	stockv1 "github.com/fekuna/omnipos-stock-service/api/stockv1"
	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/shopspring/decimal"
)

// Money parses a decimal amount. Empty means zero.
func Money(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperror.Validation("%s is not a valid amount", field).With("field", field)
	}
	return d, nil
}

func Time(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func Unit(u *model.ProductUnit) *stockv1.ProductUnit {
	return &stockv1.ProductUnit{
		ID:                  u.ID,
		ProductID:           u.ProductID,
		PurchaseOrderItemID: u.PurchaseOrderItemID,
		SalesOrderItemID:    Deref(u.SalesOrderItemID),
		SerialNumber:        u.SerialNumber,
		DateOfPurchase:      u.DateOfPurchase,
		DateOfSale:          u.DateOfSale,
		IsSold:              u.IsSold,
		WarrantyID:          Deref(u.WarrantyID),
	}
}

func Units(units []model.ProductUnit) []*stockv1.ProductUnit {
	out := make([]*stockv1.ProductUnit, len(units))
	for i := range units {
		out[i] = Unit(&units[i])
	}
	return out
}
