package pricing

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/model"
)

// RateRepository reads tax and discount records. Rows for unknown ids are
// simply absent from the result.
type RateRepository interface {
	FindTaxesByIDs(ctx context.Context, ids []string) ([]model.Tax, error)
	FindDiscountsByIDs(ctx context.Context, ids []string) ([]model.Discount, error)
}
