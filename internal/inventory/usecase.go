package inventory

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
)

// UseCase is the Stock Ledger: the only writer of Product.StockQuantity.
type UseCase interface {
	// ReceivePurchase marks a purchase order DELIVERED and adds its item
	// quantities to stock. Receiving an already delivered order is a no-op.
	ReceivePurchase(ctx context.Context, input *dto.ReceivePurchaseInput) (*model.PurchaseOrder, error)

	// ReserveForSale takes stock for every line or for none of them. It joins
	// the caller's transaction when there is one. The returned products carry
	// the post-reservation quantities keyed by id.
	ReserveForSale(ctx context.Context, input *dto.ReserveInput) (map[string]model.Product, error)

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
