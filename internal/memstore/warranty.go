package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type WarrantyRepository struct {
	s *Store
}

func (s *Store) Warranties() *WarrantyRepository {
	return &WarrantyRepository{s: s}
}

func (r *WarrantyRepository) CreateTemplate(ctx context.Context, w *model.Warranty) error {
	return r.s.do(ctx, func(d *data) error {
		if _, ok := d.warranties[w.ID]; ok {
			return fmt.Errorf("warranty %s already exists", w.ID)
		}
		d.warranties[w.ID] = *w
		return nil
	})
}

func (r *WarrantyRepository) FindTemplateByID(ctx context.Context, id string) (*model.Warranty, error) {
	var out *model.Warranty
	err := r.s.do(ctx, func(d *data) error {
		if w, ok := d.warranties[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarrantyRepository) UpdateTemplate(ctx context.Context, w *model.Warranty) error {
	return r.s.do(ctx, func(d *data) error {
		existing, ok := d.warranties[w.ID]
		if !ok {
			return nil
		}
		updated := *w
		updated.WarrantyType = existing.WarrantyType
		updated.CreatedAt = existing.CreatedAt
		d.warranties[w.ID] = updated
		return nil
	})
}

func (r *WarrantyRepository) LinkProduct(ctx context.Context, productID, warrantyID string) error {
	return r.s.do(ctx, func(d *data) error {
		if _, ok := d.products[productID]; !ok {
			return fkError("product", productID)
		}
		if _, ok := d.warranties[warrantyID]; !ok {
			return fkError("warranty", warrantyID)
		}
		for _, pw := range d.productWarranties {
			if pw.ProductID == productID && pw.WarrantyID == warrantyID {
				return nil
			}
		}
		d.productWarranties = append(d.productWarranties, productWarranty{ProductID: productID, WarrantyID: warrantyID})
		return nil
	})
}

func (r *WarrantyRepository) FindTemplatesByProduct(ctx context.Context, productID string) ([]model.Warranty, error) {
	out := []model.Warranty{}
	err := r.s.do(ctx, func(d *data) error {
		for _, pw := range d.productWarranties {
			if pw.ProductID == productID {
				out = append(out, d.warranties[pw.WarrantyID])
			}
		}
		return nil
	})
	return out, err
}

func (r *WarrantyRepository) CreateWarrantyUnit(ctx context.Context, wu *model.WarrantyUnit) error {
	return r.s.do(ctx, func(d *data) error {
		found := false
		for _, u := range d.units {
			if u.ID == wu.ProductUnitID {
				found = true
				break
			}
		}
		if !found {
			return fkError("product_unit", wu.ProductUnitID)
		}
		for _, existing := range d.warrantyUnits {
			if existing.ProductUnitID == wu.ProductUnitID && existing.WarrantyType == wu.WarrantyType {
				return apperror.Validation("duplicate value violates warranty_units_unit_type_key")
			}
		}
		d.warrantyUnits = append(d.warrantyUnits, *wu)
		return nil
	})
}

func (r *WarrantyRepository) FindWarrantyUnitsByUnit(ctx context.Context, productUnitID string) ([]model.WarrantyUnit, error) {
	out := []model.WarrantyUnit{}
	err := r.s.do(ctx, func(d *data) error {
		for _, wu := range d.warrantyUnits {
			if wu.ProductUnitID == productUnitID {
				out = append(out, wu)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].WarrantyType < out[j].WarrantyType })
	return out, err
}

func (r *WarrantyRepository) CreateClaim(ctx context.Context, c *model.WarrantyClaim) error {
	return r.s.do(ctx, func(d *data) error {
		if _, ok := d.warranties[c.WarrantyID]; !ok {
			return fkError("warranty", c.WarrantyID)
		}
		d.claims = append(d.claims, *c)
		return nil
	})
}

func (r *WarrantyRepository) FindClaimsByUnit(ctx context.Context, productUnitID string) ([]model.WarrantyClaim, error) {
	out := []model.WarrantyClaim{}
	err := r.s.do(ctx, func(d *data) error {
		for i := len(d.claims) - 1; i >= 0; i-- {
			if d.claims[i].ProductUnitID == productUnitID {
				out = append(out, d.claims[i])
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}
