package purchase

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type Repository interface {
	// Create inserts the order and its items.
	Create(ctx context.Context, po *model.PurchaseOrder) error

	// FindByID and FindByIDForUpdate load the order with its items and
	// return nil when it does not exist. The ForUpdate variant locks the
	// order row.
	FindByID(ctx context.Context, id string) (*model.PurchaseOrder, error)
	FindByIDForUpdate(ctx context.Context, id string) (*model.PurchaseOrder, error)

	// Update writes header fields: status, dates, totals, audit.
	Update(ctx context.Context, po *model.PurchaseOrder) error
	ReplaceItems(ctx context.Context, purchaseOrderID string, items []model.PurchaseOrderItem) error

	FindItemByID(ctx context.Context, itemID string) (*model.PurchaseOrderItem, error)
	FindItemByIDForUpdate(ctx context.Context, itemID string) (*model.PurchaseOrderItem, error)
}

// UnitCounter reports how many units are registered against an item.
type UnitCounter interface {
	CountByItem(ctx context.Context, purchaseOrderItemID string) (int64, error)
}
