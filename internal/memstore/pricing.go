package memstore

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type RateRepository struct {
	s *Store
}

func (s *Store) Rates() *RateRepository {
	return &RateRepository{s: s}
}

// PutTax inserts or replaces a tax record. Tax administration lives outside
// this service; the memory store is seeded directly.
func (r *RateRepository) PutTax(ctx context.Context, t model.Tax) error {
	return r.s.do(ctx, func(d *data) error {
		d.taxes[t.ID] = t
		return nil
	})
}

func (r *RateRepository) PutDiscount(ctx context.Context, dc model.Discount) error {
	return r.s.do(ctx, func(d *data) error {
		d.discounts[dc.ID] = dc
		return nil
	})
}

func (r *RateRepository) FindTaxesByIDs(ctx context.Context, ids []string) ([]model.Tax, error) {
	out := []model.Tax{}
	err := r.s.do(ctx, func(d *data) error {
		for _, id := range ids {
			if t, ok := d.taxes[id]; ok {
				out = append(out, t)
			}
		}
		return nil
	})
	return out, err
}

func (r *RateRepository) FindDiscountsByIDs(ctx context.Context, ids []string) ([]model.Discount, error) {
	out := []model.Discount{}
	err := r.s.do(ctx, func(d *data) error {
		for _, id := range ids {
			if dc, ok := d.discounts[id]; ok {
				out = append(out, dc)
			}
		}
		return nil
	})
	return out, err
}
