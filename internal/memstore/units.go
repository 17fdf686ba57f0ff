package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type UnitRepository struct {
	s *Store
}

func (s *Store) Units() *UnitRepository {
	return &UnitRepository{s: s}
}

func (r *UnitRepository) CreateBatch(ctx context.Context, units []model.ProductUnit) error {
	return r.s.do(ctx, func(d *data) error {
		taken := map[[2]string]bool{}
		for _, u := range d.units {
			taken[[2]string{u.ProductID, u.SerialNumber}] = true
		}
		for _, u := range units {
			if !hasPurchaseItem(d, u.PurchaseOrderItemID) {
				return fkError("purchase_order_item", u.PurchaseOrderItemID)
			}
			key := [2]string{u.ProductID, u.SerialNumber}
			if taken[key] {
				return apperror.New(apperror.KindDuplicateSerial, "serial number already registered").With("serial", u.SerialNumber)
			}
			taken[key] = true
		}
		d.units = append(d.units, units...)
		return nil
	})
}

func hasPurchaseItem(d *data, id string) bool {
	for _, item := range d.purchaseItems {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (r *UnitRepository) find(ctx context.Context, match func(u *model.ProductUnit) bool) (*model.ProductUnit, error) {
	var out *model.ProductUnit
	err := r.s.do(ctx, func(d *data) error {
		for i := range d.units {
			if match(&d.units[i]) {
				u := d.units[i]
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UnitRepository) filter(ctx context.Context, match func(u *model.ProductUnit) bool) ([]model.ProductUnit, error) {
	out := []model.ProductUnit{}
	err := r.s.do(ctx, func(d *data) error {
		for i := range d.units {
			if match(&d.units[i]) {
				out = append(out, d.units[i])
			}
		}
		return nil
	})
	return out, err
}

func (r *UnitRepository) FindByID(ctx context.Context, id string) (*model.ProductUnit, error) {
	return r.find(ctx, func(u *model.ProductUnit) bool { return u.ID == id })
}

func (r *UnitRepository) FindBySerial(ctx context.Context, productID, serial string) (*model.ProductUnit, error) {
	return r.find(ctx, func(u *model.ProductUnit) bool {
		return u.ProductID == productID && u.SerialNumber == serial
	})
}

func (r *UnitRepository) FindByItem(ctx context.Context, purchaseOrderItemID string) ([]model.ProductUnit, error) {
	return r.filter(ctx, func(u *model.ProductUnit) bool { return u.PurchaseOrderItemID == purchaseOrderItemID })
}

func (r *UnitRepository) FindBySalesItem(ctx context.Context, salesOrderItemID string) ([]model.ProductUnit, error) {
	units, err := r.filter(ctx, func(u *model.ProductUnit) bool {
		return u.SalesOrderItemID != nil && *u.SalesOrderItemID == salesOrderItemID
	})
	sortFIFO(units)
	return units, err
}

func (r *UnitRepository) SearchBySerialPrefix(ctx context.Context, prefix string, limit int) ([]model.ProductUnit, error) {
	prefix = strings.ToLower(prefix)
	units, err := r.filter(ctx, func(u *model.ProductUnit) bool {
		return strings.HasPrefix(strings.ToLower(u.SerialNumber), prefix)
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(units, func(i, j int) bool { return units[i].SerialNumber < units[j].SerialNumber })
	if limit > 0 && len(units) > limit {
		units = units[:limit]
	}
	return units, nil
}

func (r *UnitRepository) CountByItem(ctx context.Context, purchaseOrderItemID string) (int64, error) {
	units, err := r.FindByItem(ctx, purchaseOrderItemID)
	return int64(len(units)), err
}

func (r *UnitRepository) ExistingSerials(ctx context.Context, productID string, serials []string) ([]string, error) {
	wanted := make(map[string]bool, len(serials))
	for _, s := range serials {
		wanted[s] = true
	}
	units, err := r.filter(ctx, func(u *model.ProductUnit) bool { return u.ProductID == productID && wanted[u.SerialNumber] })
	if err != nil {
		return nil, err
	}
	existing := make([]string, len(units))
	for i, u := range units {
		existing[i] = u.SerialNumber
	}
	sort.Strings(existing)
	return existing, nil
}

func (r *UnitRepository) Summary(ctx context.Context, productID string) (int64, int64, error) {
	units, err := r.filter(ctx, func(u *model.ProductUnit) bool { return u.ProductID == productID })
	var sold int64
	for _, u := range units {
		if u.IsSold {
			sold++
		}
	}
	return int64(len(units)), sold, err
}

func (r *UnitRepository) LockUnsold(ctx context.Context, productID string, limit int64) ([]model.ProductUnit, error) {
	units, err := r.filter(ctx, func(u *model.ProductUnit) bool { return u.ProductID == productID && !u.IsSold })
	if err != nil {
		return nil, err
	}
	sortFIFO(units)
	if int64(len(units)) > limit {
		units = units[:limit]
	}
	return units, nil
}

func sortFIFO(units []model.ProductUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		a, b := units[i], units[j]
		if !a.DateOfPurchase.Equal(b.DateOfPurchase) {
			return a.DateOfPurchase.Before(b.DateOfPurchase)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func (r *UnitRepository) MarkSold(ctx context.Context, unitIDs []string, salesOrderItemID string, soldAt time.Time) error {
	return r.s.do(ctx, func(d *data) error {
		ids := make(map[string]bool, len(unitIDs))
		for _, id := range unitIDs {
			ids[id] = true
		}

		marked := 0
		for i := range d.units {
			u := &d.units[i]
			if !ids[u.ID] {
				continue
			}
			if u.IsSold {
				return fmt.Errorf("product unit %s was sold concurrently", u.ID)
			}
			itemID := salesOrderItemID
			at := soldAt
			u.IsSold = true
			u.DateOfSale = &at
			u.SalesOrderItemID = &itemID
			u.UpdatedAt = soldAt
			marked++
		}
		if marked != len(unitIDs) {
			return fmt.Errorf("marked %d of %d product units", marked, len(unitIDs))
		}
		return nil
	})
}

func (r *UnitRepository) SetWarranty(ctx context.Context, unitID, warrantyID string, at time.Time) error {
	return r.s.do(ctx, func(d *data) error {
		if _, ok := d.warranties[warrantyID]; !ok {
			return fkError("warranty", warrantyID)
		}
		for i := range d.units {
			if d.units[i].ID == unitID {
				id := warrantyID
				d.units[i].WarrantyID = &id
				d.units[i].UpdatedAt = at
			}
		}
		return nil
	})
}
