package inventory

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type Repository interface {
	// LockProduct reads the product row and holds it until the transaction
	// ends. Returns nil when the product does not exist.
	LockProduct(ctx context.Context, productID string) (*model.Product, error)

	// AdjustStock applies delta to stock_quantity unless the result would go
	// negative, in which case ok is false and nothing is written.
	AdjustStock(ctx context.Context, productID string, delta int64, at time.Time) (after int64, ok bool, err error)

	LogMovement(ctx context.Context, movement *model.StockMovement) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
