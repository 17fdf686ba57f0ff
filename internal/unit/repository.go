package unit

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type Repository interface {
	CreateBatch(ctx context.Context, units []model.ProductUnit) error
	FindByID(ctx context.Context, id string) (*model.ProductUnit, error)
	FindBySerial(ctx context.Context, productID, serial string) (*model.ProductUnit, error)
	FindByItem(ctx context.Context, purchaseOrderItemID string) ([]model.ProductUnit, error)
	FindBySalesItem(ctx context.Context, salesOrderItemID string) ([]model.ProductUnit, error)
	SearchBySerialPrefix(ctx context.Context, prefix string, limit int) ([]model.ProductUnit, error)

	CountByItem(ctx context.Context, purchaseOrderItemID string) (int64, error)
	// ExistingSerials returns the subset of serials already registered for
	// the product.
	ExistingSerials(ctx context.Context, productID string, serials []string) ([]string, error)
	Summary(ctx context.Context, productID string) (registered, sold int64, err error)

	// LockUnsold locks up to limit unsold units of the product, oldest
	// date_of_purchase first.
	LockUnsold(ctx context.Context, productID string, limit int64) ([]model.ProductUnit, error)
	MarkSold(ctx context.Context, unitIDs []string, salesOrderItemID string, soldAt time.Time) error
	SetWarranty(ctx context.Context, unitID, warrantyID string, at time.Time) error
}
