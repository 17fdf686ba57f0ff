package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	invdto "github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/product/dto"
)

type ProductRepository struct {
	s *Store
}

func (s *Store) Products() *ProductRepository {
	return &ProductRepository{s: s}
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	return r.s.do(ctx, func(d *data) error {
		if _, ok := d.products[p.ID]; ok {
			return fmt.Errorf("product %s already exists", p.ID)
		}
		for _, existing := range d.products {
			if existing.SKU == p.SKU {
				return apperror.Validation("duplicate value violates products_sku_key")
			}
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var out *model.Product
	err := r.s.do(ctx, func(d *data) error {
		if p, ok := d.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var out []model.Product
	var count int
	err := r.s.do(ctx, func(d *data) error {
		query := strings.ToLower(f.SearchQuery)
		for _, p := range d.products {
			if f.IsActive != nil && p.IsActive != *f.IsActive {
				continue
			}
			if f.SerialTracked != nil && p.SerialTracked != *f.SerialTracked {
				continue
			}
			if query != "" && !strings.Contains(strings.ToLower(p.Name), query) && !strings.Contains(strings.ToLower(p.SKU), query) {
				continue
			}
			out = append(out, p)
		}

		asc := strings.ToLower(f.SortOrder) == "asc"
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			var less, equal bool
			switch f.SortBy {
			case "name":
				less, equal = a.Name < b.Name, a.Name == b.Name
			case "price":
				less, equal = a.Price.LessThan(b.Price), a.Price.Equal(b.Price)
			case "stock":
				less, equal = a.StockQuantity < b.StockQuantity, a.StockQuantity == b.StockQuantity
			default:
				less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
			}
			if equal {
				return a.ID < b.ID
			}
			if f.SortBy == "" || !asc {
				return !less
			}
			return less
		})

		count = len(out)
		out = paginate(out, f.Page, f.PageSize)
		return nil
	})
	return out, count, err
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	return r.s.do(ctx, func(d *data) error {
		existing, ok := d.products[p.ID]
		if !ok {
			return nil
		}
		for _, other := range d.products {
			if other.ID != p.ID && other.SKU == p.SKU {
				return apperror.Validation("duplicate value violates products_sku_key")
			}
		}
		updated := *p
		updated.StockQuantity = existing.StockQuantity
		d.products[p.ID] = updated
		return nil
	})
}

func (r *ProductRepository) IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error) {
	unique := true
	err := r.s.do(ctx, func(d *data) error {
		for _, p := range d.products {
			if p.SKU == sku && p.ID != excludeID {
				unique = false
			}
		}
		return nil
	})
	return unique, err
}

type InventoryRepository struct {
	s *Store
}

func (s *Store) Inventory() *InventoryRepository {
	return &InventoryRepository{s: s}
}

// LockProduct is a plain read; transactions are already exclusive.
func (r *InventoryRepository) LockProduct(ctx context.Context, productID string) (*model.Product, error) {
	return r.s.Products().FindByID(ctx, productID)
}

func (r *InventoryRepository) AdjustStock(ctx context.Context, productID string, delta int64, at time.Time) (int64, bool, error) {
	var after int64
	var ok bool
	err := r.s.do(ctx, func(d *data) error {
		p, found := d.products[productID]
		if !found || p.StockQuantity+delta < 0 {
			return nil
		}
		p.StockQuantity += delta
		p.UpdatedAt = at
		d.products[productID] = p
		after, ok = p.StockQuantity, true
		return nil
	})
	return after, ok, err
}

func (r *InventoryRepository) LogMovement(ctx context.Context, m *model.StockMovement) error {
	return r.s.do(ctx, func(d *data) error {
		if _, ok := d.products[m.ProductID]; !ok {
			return fkError("product", m.ProductID)
		}
		d.movements = append(d.movements, *m)
		return nil
	})
}

func (r *InventoryRepository) ListMovements(ctx context.Context, f *invdto.MovementFilters) ([]model.StockMovement, int, error) {
	var out []model.StockMovement
	var count int
	err := r.s.do(ctx, func(d *data) error {
		for _, m := range d.movements {
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.MovementType != "" && string(m.MovementType) != f.MovementType {
				continue
			}
			if f.ReferenceType != "" && (m.ReferenceType == nil || *m.ReferenceType != f.ReferenceType) {
				continue
			}
			if f.ReferenceID != "" && (m.ReferenceID == nil || *m.ReferenceID != f.ReferenceID) {
				continue
			}
			out = append(out, m)
		}
		// newest first, journal order breaks ties
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

		count = len(out)
		out = paginate(out, f.Page, f.PageSize)
		return nil
	})
	return out, count, err
}
