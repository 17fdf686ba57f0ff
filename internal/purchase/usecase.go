package purchase

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/purchase/dto"
)

type UseCase interface {
	CreatePurchaseOrder(ctx context.Context, input *dto.CreatePurchaseOrderInput) (*model.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id string) (*dto.PurchaseOrderDetail, error)
	EditPurchaseOrder(ctx context.Context, input *dto.EditPurchaseOrderInput) (*model.PurchaseOrder, error)
	CancelPurchaseOrder(ctx context.Context, id, userID string) error
	DeliverPurchaseOrder(ctx context.Context, input *dto.DeliverPurchaseOrderInput) (*model.PurchaseOrder, error)
}
