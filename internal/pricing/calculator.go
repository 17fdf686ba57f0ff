package pricing

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/shopspring/decimal"
)

type Calculator interface {
	Calculate(ctx context.Context, lines []Line, discountIDs, taxIDs []string, shipping decimal.Decimal) (Totals, error)
}

type RateCalculator struct {
	rates RateRepository
}

func NewRateCalculator(rates RateRepository) *RateCalculator {
	return &RateCalculator{rates: rates}
}

// Calculate resolves the referenced rate records and computes totals. An id
// that does not resolve is NOT_FOUND.
func (c *RateCalculator) Calculate(ctx context.Context, lines []Line, discountIDs, taxIDs []string, shipping decimal.Decimal) (Totals, error) {
	discountRates := []decimal.Decimal{}
	if len(discountIDs) > 0 {
		discounts, err := c.rates.FindDiscountsByIDs(ctx, discountIDs)
		if err != nil {
			return Totals{}, err
		}
		found := make(map[string]model.Discount, len(discounts))
		for _, d := range discounts {
			found[d.ID] = d
		}
		for _, id := range discountIDs {
			d, ok := found[id]
			if !ok {
				return Totals{}, apperror.NotFound("discount", id)
			}
			discountRates = append(discountRates, d.Rate)
		}
	}

	taxRates := []decimal.Decimal{}
	if len(taxIDs) > 0 {
		taxes, err := c.rates.FindTaxesByIDs(ctx, taxIDs)
		if err != nil {
			return Totals{}, err
		}
		found := make(map[string]model.Tax, len(taxes))
		for _, t := range taxes {
			found[t.ID] = t
		}
		for _, id := range taxIDs {
			t, ok := found[id]
			if !ok {
				return Totals{}, apperror.NotFound("tax", id)
			}
			taxRates = append(taxRates, t.Rate)
		}
	}

	return ComputeTotals(lines, discountRates, taxRates, shipping)
}
