package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/inventory"
	"github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/validate"
	"github.com/fekuna/omnipos-stock-service/internal/purchase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const referencePurchaseOrder = "purchase_order"

type inventoryUseCase struct {
	tx        database.Transactor
	repo      inventory.Repository
	purchases purchase.Repository
	logger    logger.ZapLogger
}

func NewInventoryUseCase(tx database.Transactor, repo inventory.Repository, purchases purchase.Repository, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		tx:        tx,
		repo:      repo,
		purchases: purchases,
		logger:    log,
	}
}

func (uc *inventoryUseCase) ReceivePurchase(ctx context.Context, input *dto.ReceivePurchaseInput) (*model.PurchaseOrder, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var result *model.PurchaseOrder
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		po, err := uc.purchases.FindByIDForUpdate(ctx, input.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return apperror.NotFound("purchase_order", input.PurchaseOrderID)
		}

		switch po.Status {
		case model.PurchaseOrderDelivered:
			// the status guard makes redelivery harmless
			uc.logger.Debug("purchase order already delivered", zap.String("purchase_order_id", po.ID))
			result = po
			return nil
		case model.PurchaseOrderCancelled:
			return apperror.Validation("purchase order %s is cancelled", po.ID)
		}

		now := time.Now()
		delivered := input.DeliveredDate
		if delivered.IsZero() {
			delivered = now
		}

		totals := map[string]int64{}
		for _, item := range po.Items {
			totals[item.ProductID] += item.Quantity
		}
		for _, productID := range sortedKeys(totals) {
			if err := uc.move(ctx, productID, totals[productID], model.MovementPurchaseReceipt, referencePurchaseOrder, po.ID, input.UserID, now); err != nil {
				return err
			}
		}

		po.Status = model.PurchaseOrderDelivered
		po.DeliveredDate = &delivered
		po.UpdatedBy = userPtr(input.UserID)
		po.UpdatedAt = now
		if err := uc.purchases.Update(ctx, po); err != nil {
			return err
		}

		result = po
		return nil
	})
	if err != nil {
		uc.logFailure("receive purchase failed", err, zap.String("purchase_order_id", input.PurchaseOrderID))
		return nil, err
	}

	uc.logger.Info("purchase order received",
		zap.String("purchase_order_id", result.ID),
		zap.Int("items", len(result.Items)),
	)
	return result, nil
}

func (uc *inventoryUseCase) ReserveForSale(ctx context.Context, input *dto.ReserveInput) (map[string]model.Product, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	requested := map[string]int64{}
	for _, line := range input.Lines {
		requested[line.ProductID] += line.Quantity
	}

	products := make(map[string]model.Product, len(requested))
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		// fixed lock order so concurrent orders over the same products
		// cannot deadlock
		ids := sortedKeys(requested)
		for _, id := range ids {
			p, err := uc.repo.LockProduct(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return apperror.NotFound("product", id)
			}
			if requested[id] > p.StockQuantity {
				return apperror.New(apperror.KindInsufficientStock, "product %s has %d in stock, %d requested", id, p.StockQuantity, requested[id]).
					With("product_id", id).
					With("available", p.StockQuantity).
					With("requested", requested[id])
			}
			products[id] = *p
		}

		now := time.Now()
		for _, id := range ids {
			if err := uc.move(ctx, id, -requested[id], model.MovementSale, input.ReferenceType, input.ReferenceID, input.UserID, now); err != nil {
				return err
			}
			p := products[id]
			p.StockQuantity -= requested[id]
			products[id] = p
		}
		return nil
	})
	if err != nil {
		uc.logFailure("stock reservation failed", err, zap.String("reference_id", input.ReferenceID))
		return nil, err
	}

	return products, nil
}

// move applies one stock change and journals it.
func (uc *inventoryUseCase) move(ctx context.Context, productID string, delta int64, kind model.MovementType, refType, refID, userID string, at time.Time) error {
	after, ok, err := uc.repo.AdjustStock(ctx, productID, delta, at)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.New(apperror.KindInsufficientStock, "product %s cannot go below zero stock", productID).
			With("product_id", productID)
	}

	return uc.repo.LogMovement(ctx, &model.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		MovementType:   kind,
		QuantityChange: delta,
		QuantityBefore: after - delta,
		QuantityAfter:  after,
		ReferenceType:  &refType,
		ReferenceID:    &refID,
		CreatedBy:      userPtr(userID),
		CreatedAt:      at,
	})
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	items, count, err := uc.repo.ListMovements(ctx, filters)
	if err != nil {
		return nil, 0, apperror.Ensure(err)
	}
	return items, count, nil
}

func (uc *inventoryUseCase) logFailure(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("kind", string(apperror.KindOf(err))), zap.Error(err))
	if apperror.KindOf(err) == apperror.KindInternal {
		uc.logger.Error(msg, fields...)
		return
	}
	uc.logger.Warn(msg, fields...)
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func userPtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
