package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/inventory"
	invdto "github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/retry"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/validate"
	"github.com/fekuna/omnipos-stock-service/internal/pricing"
	"github.com/fekuna/omnipos-stock-service/internal/product"
	"github.com/fekuna/omnipos-stock-service/internal/purchase"
	"github.com/fekuna/omnipos-stock-service/internal/purchase/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type purchaseUseCase struct {
	tx       database.Transactor
	repo     purchase.Repository
	products product.Repository
	units    purchase.UnitCounter
	ledger   inventory.UseCase
	pricing  pricing.Calculator
	policy   retry.Policy
	logger   logger.ZapLogger
}

func NewPurchaseUseCase(
	tx database.Transactor,
	repo purchase.Repository,
	products product.Repository,
	units purchase.UnitCounter,
	ledger inventory.UseCase,
	calc pricing.Calculator,
	policy retry.Policy,
	log logger.ZapLogger,
) purchase.UseCase {
	return &purchaseUseCase{
		tx:       tx,
		repo:     repo,
		products: products,
		units:    units,
		ledger:   ledger,
		pricing:  calc,
		policy:   policy,
		logger:   log,
	}
}

func (uc *purchaseUseCase) CreatePurchaseOrder(ctx context.Context, input *dto.CreatePurchaseOrderInput) (*model.PurchaseOrder, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	now := time.Now()
	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	po := &model.PurchaseOrder{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		VendorID:  input.VendorID,
		OrderDate: orderDate,
		Status:    model.PurchaseOrderPending,
		UpdatedBy: userPtr(input.UserID),
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.price(ctx, po, input.Items, input.DiscountIDs, input.TaxIDs, input.ShippingCost, now); err != nil {
			return err
		}
		return uc.repo.Create(ctx, po)
	})
	if err != nil {
		uc.logFailure("create purchase order failed", err, zap.String("vendor_id", input.VendorID))
		return nil, err
	}

	uc.logger.Info("purchase order created", zap.String("purchase_order_id", po.ID), zap.Int("items", len(po.Items)))
	return po, nil
}

// price builds the order lines from input and fills in the totals.
func (uc *purchaseUseCase) price(ctx context.Context, po *model.PurchaseOrder, items []dto.ItemInput, discountIDs, taxIDs []string, shipping decimal.Decimal, now time.Time) error {
	lines := make([]pricing.Line, len(items))
	po.Items = make([]model.PurchaseOrderItem, len(items))
	for i, in := range items {
		p, err := uc.products.FindByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperror.NotFound("product", in.ProductID)
		}

		lines[i] = pricing.Line{UnitPrice: in.UnitCost, Quantity: in.Quantity}
		po.Items[i] = model.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			ProductID:       in.ProductID,
			Quantity:        in.Quantity,
			UnitCost:        in.UnitCost,
			TotalPrice:      lines[i].Total(),
			CreatedAt:       now,
		}
	}

	totals, err := uc.pricing.Calculate(ctx, lines, discountIDs, taxIDs, shipping)
	if err != nil {
		return err
	}
	po.Subtotal = totals.Subtotal
	po.DiscountAmount = totals.DiscountAmount
	po.TaxAmount = totals.TaxAmount
	po.ShippingCost = totals.ShippingCost
	po.GrandTotal = totals.GrandTotal
	return nil
}

func (uc *purchaseUseCase) GetPurchaseOrder(ctx context.Context, id string) (*dto.PurchaseOrderDetail, error) {
	po, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Ensure(err)
	}
	if po == nil {
		return nil, apperror.NotFound("purchase_order", id)
	}

	unregistered := make(map[string]int64, len(po.Items))
	for _, item := range po.Items {
		registered, err := uc.units.CountByItem(ctx, item.ID)
		if err != nil {
			return nil, apperror.Ensure(err)
		}
		unregistered[item.ID] = item.Quantity - registered
	}

	return &dto.PurchaseOrderDetail{Order: po, Unregistered: unregistered}, nil
}

func (uc *purchaseUseCase) EditPurchaseOrder(ctx context.Context, input *dto.EditPurchaseOrderInput) (*model.PurchaseOrder, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var po *model.PurchaseOrder
	err := retry.OnConflict(ctx, uc.policy, func(ctx context.Context) error {
		return uc.tx.WithinTx(ctx, func(ctx context.Context) error {
			var err error
			po, err = uc.lockPending(ctx, input.ID)
			if err != nil {
				return err
			}

			now := time.Now()
			po.VendorID = input.VendorID
			if !input.OrderDate.IsZero() {
				po.OrderDate = input.OrderDate
			}
			if err := uc.price(ctx, po, input.Items, input.DiscountIDs, input.TaxIDs, input.ShippingCost, now); err != nil {
				return err
			}
			po.UpdatedBy = userPtr(input.UserID)
			po.UpdatedAt = now

			if err := uc.repo.ReplaceItems(ctx, po.ID, po.Items); err != nil {
				return err
			}
			return uc.repo.Update(ctx, po)
		})
	})
	if err != nil {
		uc.logFailure("edit purchase order failed", err, zap.String("purchase_order_id", input.ID))
		return nil, err
	}
	return po, nil
}

func (uc *purchaseUseCase) CancelPurchaseOrder(ctx context.Context, id, userID string) error {
	if id == "" {
		return apperror.Validation("purchase order id is required")
	}

	err := retry.OnConflict(ctx, uc.policy, func(ctx context.Context) error {
		return uc.tx.WithinTx(ctx, func(ctx context.Context) error {
			po, err := uc.lockPending(ctx, id)
			if err != nil {
				return err
			}
			po.Status = model.PurchaseOrderCancelled
			po.UpdatedBy = userPtr(userID)
			po.UpdatedAt = time.Now()
			return uc.repo.Update(ctx, po)
		})
	})
	if err != nil {
		uc.logFailure("cancel purchase order failed", err, zap.String("purchase_order_id", id))
		return err
	}
	return nil
}

func (uc *purchaseUseCase) lockPending(ctx context.Context, id string) (*model.PurchaseOrder, error) {
	po, err := uc.repo.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NotFound("purchase_order", id)
	}
	if po.Status != model.PurchaseOrderPending {
		return nil, apperror.Validation("purchase order %s is %s", id, po.Status).With("status", string(po.Status))
	}
	return po, nil
}

func (uc *purchaseUseCase) DeliverPurchaseOrder(ctx context.Context, input *dto.DeliverPurchaseOrderInput) (*model.PurchaseOrder, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var po *model.PurchaseOrder
	err := retry.OnConflict(ctx, uc.policy, func(ctx context.Context) error {
		var err error
		po, err = uc.ledger.ReceivePurchase(ctx, &invdto.ReceivePurchaseInput{
			PurchaseOrderID: input.ID,
			DeliveredDate:   input.DeliveredDate,
			UserID:          input.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

func (uc *purchaseUseCase) logFailure(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("kind", string(apperror.KindOf(err))), zap.Error(err))
	if apperror.KindOf(err) == apperror.KindInternal {
		uc.logger.Error(msg, fields...)
		return
	}
	uc.logger.Warn(msg, fields...)
}

func userPtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
