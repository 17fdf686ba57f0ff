package memstore

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type PurchaseRepository struct {
	s *Store
}

func (s *Store) Purchases() *PurchaseRepository {
	return &PurchaseRepository{s: s}
}

func (r *PurchaseRepository) Create(ctx context.Context, po *model.PurchaseOrder) error {
	return r.s.do(ctx, func(d *data) error {
		if _, ok := d.purchaseOrders[po.ID]; ok {
			return fmt.Errorf("purchase order %s already exists", po.ID)
		}
		if err := checkPurchaseItems(d, po.Items); err != nil {
			return err
		}
		header := *po
		header.Items = nil
		d.purchaseOrders[po.ID] = header
		d.purchaseItems = append(d.purchaseItems, po.Items...)
		return nil
	})
}

func checkPurchaseItems(d *data, items []model.PurchaseOrderItem) error {
	for _, item := range items {
		if _, ok := d.products[item.ProductID]; !ok {
			return fkError("product", item.ProductID)
		}
	}
	return nil
}

func (r *PurchaseRepository) FindByID(ctx context.Context, id string) (*model.PurchaseOrder, error) {
	var out *model.PurchaseOrder
	err := r.s.do(ctx, func(d *data) error {
		po, ok := d.purchaseOrders[id]
		if !ok {
			return nil
		}
		po.Items = []model.PurchaseOrderItem{}
		for _, item := range d.purchaseItems {
			if item.PurchaseOrderID == id {
				po.Items = append(po.Items, item)
			}
		}
		out = &po
		return nil
	})
	return out, err
}

func (r *PurchaseRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.PurchaseOrder, error) {
	return r.FindByID(ctx, id)
}

func (r *PurchaseRepository) Update(ctx context.Context, po *model.PurchaseOrder) error {
	return r.s.do(ctx, func(d *data) error {
		if _, ok := d.purchaseOrders[po.ID]; !ok {
			return nil
		}
		header := *po
		header.Items = nil
		d.purchaseOrders[po.ID] = header
		return nil
	})
}

func (r *PurchaseRepository) ReplaceItems(ctx context.Context, purchaseOrderID string, items []model.PurchaseOrderItem) error {
	return r.s.do(ctx, func(d *data) error {
		if err := checkPurchaseItems(d, items); err != nil {
			return err
		}
		kept := d.purchaseItems[:0:0]
		for _, item := range d.purchaseItems {
			if item.PurchaseOrderID != purchaseOrderID {
				kept = append(kept, item)
				continue
			}
			for _, u := range d.units {
				if u.PurchaseOrderItemID == item.ID {
					return fkError("purchase_order_item", item.ID)
				}
			}
		}
		d.purchaseItems = append(kept, items...)
		return nil
	})
}

func (r *PurchaseRepository) FindItemByID(ctx context.Context, itemID string) (*model.PurchaseOrderItem, error) {
	var out *model.PurchaseOrderItem
	err := r.s.do(ctx, func(d *data) error {
		for _, item := range d.purchaseItems {
			if item.ID == itemID {
				item := item
				out = &item
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepository) FindItemByIDForUpdate(ctx context.Context, itemID string) (*model.PurchaseOrderItem, error) {
	return r.FindItemByID(ctx, itemID)
}

type SalesRepository struct {
	s *Store
}

func (s *Store) Sales() *SalesRepository {
	return &SalesRepository{s: s}
}

func (r *SalesRepository) Create(ctx context.Context, so *model.SalesOrder) error {
	return r.s.do(ctx, func(d *data) error {
		if _, ok := d.salesOrders[so.ID]; ok {
			return fmt.Errorf("sales order %s already exists", so.ID)
		}
		for _, item := range so.Items {
			if _, ok := d.products[item.ProductID]; !ok {
				return fkError("product", item.ProductID)
			}
		}
		header := *so
		header.Items = nil
		d.salesOrders[so.ID] = header
		for _, item := range so.Items {
			item.Units = nil
			d.salesItems = append(d.salesItems, item)
		}
		return nil
	})
}

func (r *SalesRepository) FindByID(ctx context.Context, id string) (*model.SalesOrder, error) {
	var out *model.SalesOrder
	err := r.s.do(ctx, func(d *data) error {
		so, ok := d.salesOrders[id]
		if !ok {
			return nil
		}
		so.Items = []model.SalesOrderItem{}
		for _, item := range d.salesItems {
			if item.SalesOrderID == id {
				so.Items = append(so.Items, item)
			}
		}
		out = &so
		return nil
	})
	return out, err
}
