package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/retry"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/validate"
	"github.com/fekuna/omnipos-stock-service/internal/product"
	"github.com/fekuna/omnipos-stock-service/internal/purchase"
	"github.com/fekuna/omnipos-stock-service/internal/unit"
	"github.com/fekuna/omnipos-stock-service/internal/unit/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	unitIndex   = "product_units"
	lockTTL     = 10 * time.Second
	lockRetries = 3

	defaultSearchLimit = 20
)

const unitMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "keyword" },
			"product_id": { "type": "keyword" },
			"purchase_order_item_id": { "type": "keyword" },
			"serial_number": { "type": "keyword" },
			"date_of_purchase": { "type": "date" },
			"is_sold": { "type": "boolean" }
		}
	}
}`

type Option func(*unitUseCase)

func WithClock(now func() time.Time) Option {
	return func(uc *unitUseCase) { uc.now = now }
}

// WithLocker serializes registrations per purchase order line across
// instances before they reach the database.
func WithLocker(l cache.Locker) Option {
	return func(uc *unitUseCase) { uc.locker = l }
}

func WithSearchIndex(idx unit.SearchIndex) Option {
	return func(uc *unitUseCase) { uc.es = idx }
}

type unitUseCase struct {
	tx        database.Transactor
	repo      unit.Repository
	purchases purchase.Repository
	products  product.Repository
	warranty  unit.WarrantyAttacher
	policy    retry.Policy
	locker    cache.Locker
	es        unit.SearchIndex
	now       func() time.Time
	logger    logger.ZapLogger
}

func NewUnitUseCase(
	tx database.Transactor,
	repo unit.Repository,
	purchases purchase.Repository,
	products product.Repository,
	warranty unit.WarrantyAttacher,
	policy retry.Policy,
	log logger.ZapLogger,
	opts ...Option,
) unit.UseCase {
	uc := &unitUseCase{
		tx:        tx,
		repo:      repo,
		purchases: purchases,
		products:  products,
		warranty:  warranty,
		policy:    policy,
		now:       time.Now,
		logger:    log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *unitUseCase) RegisterUnits(ctx context.Context, input *dto.RegisterUnitsInput) ([]model.ProductUnit, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	serials := make([]string, len(input.Serials))
	seen := make(map[string]struct{}, len(input.Serials))
	for i, s := range input.Serials {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, apperror.Validation("serial number cannot be blank")
		}
		if _, dup := seen[s]; dup {
			return nil, apperror.New(apperror.KindDuplicateSerial, "serial %s appears twice in the batch", s).With("serial", s)
		}
		seen[s] = struct{}{}
		serials[i] = s
	}

	release, err := uc.lock(ctx, "lock:purchase-order-item:"+input.PurchaseOrderItemID)
	if err != nil {
		return nil, err
	}
	defer release()

	var units []model.ProductUnit
	err = retry.OnConflict(ctx, uc.policy, func(ctx context.Context) error {
		return uc.tx.WithinTx(ctx, func(ctx context.Context) error {
			var err error
			units, err = uc.register(ctx, input.PurchaseOrderItemID, serials)
			return err
		})
	})
	if err != nil {
		uc.logFailure("unit registration failed", err,
			zap.String("purchase_order_item_id", input.PurchaseOrderItemID),
			zap.Int("serial_count", len(serials)),
		)
		return nil, err
	}

	uc.logger.Info("units registered",
		zap.String("purchase_order_item_id", input.PurchaseOrderItemID),
		zap.Int("serial_count", len(units)),
	)

	if uc.es != nil {
		go uc.indexUnits(context.Background(), units)
	}

	return units, nil
}

// register runs inside the transaction. The item row lock makes the cap
// check see every committed registration for the line.
func (uc *unitUseCase) register(ctx context.Context, itemID string, serials []string) ([]model.ProductUnit, error) {
	item, err := uc.purchases.FindItemByIDForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound("purchase_order_item", itemID)
	}

	po, err := uc.purchases.FindByID(ctx, item.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NotFound("purchase_order", item.PurchaseOrderID)
	}
	if po.Status != model.PurchaseOrderDelivered || po.DeliveredDate == nil {
		return nil, apperror.Validation("purchase order %s is not delivered", po.ID)
	}

	existing, err := uc.repo.ExistingSerials(ctx, item.ProductID, serials)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperror.New(apperror.KindDuplicateSerial, "serial %s is already registered", existing[0]).
			With("serial", existing[0]).
			With("product_id", item.ProductID)
	}

	registered, err := uc.repo.CountByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if registered+int64(len(serials)) > item.Quantity {
		return nil, apperror.New(apperror.KindQuantityExceeded, "%d serial(s) requested, %d unregistered", len(serials), item.Quantity-registered).
			With("requested", len(serials)).
			With("available", item.Quantity-registered)
	}

	now := uc.now()
	units := make([]model.ProductUnit, len(serials))
	for i, s := range serials {
		units[i] = model.ProductUnit{
			ID:                  uuid.New().String(),
			ProductID:           item.ProductID,
			PurchaseOrderItemID: item.ID,
			SerialNumber:        s,
			DateOfPurchase:      *po.DeliveredDate,
			IsSold:              false,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
	}

	if err := uc.repo.CreateBatch(ctx, units); err != nil {
		return nil, err
	}
	return units, nil
}

// lock takes the optional distributed lock. A Redis outage degrades to the
// database row lock alone; contention is reported as CONFLICT.
func (uc *unitUseCase) lock(ctx context.Context, key string) (func(), error) {
	if uc.locker == nil {
		return func() {}, nil
	}

	value := uuid.New().String()
	for i := 0; i < lockRetries; i++ {
		ok, err := uc.locker.AcquireLock(ctx, key, value, lockTTL)
		if err != nil {
			uc.logger.Warn("redis lock unavailable, relying on row lock", zap.String("key", key), zap.Error(err))
			return func() {}, nil
		}
		if ok {
			return func() {
				if err := uc.locker.ReleaseLock(context.Background(), key, value); err != nil {
					uc.logger.Warn("failed to release lock", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, apperror.Conflict(ctx.Err())
		case <-time.After(100 * time.Millisecond):
		}
	}

	return nil, apperror.Conflict(fmt.Errorf("lock %s is held", key))
}

func (uc *unitUseCase) UnregisteredQuantity(ctx context.Context, purchaseOrderItemID string) (int64, error) {
	item, err := uc.purchases.FindItemByID(ctx, purchaseOrderItemID)
	if err != nil {
		return 0, apperror.Ensure(err)
	}
	if item == nil {
		return 0, apperror.NotFound("purchase_order_item", purchaseOrderItemID)
	}

	registered, err := uc.repo.CountByItem(ctx, purchaseOrderItemID)
	if err != nil {
		return 0, apperror.Ensure(err)
	}
	return item.Quantity - registered, nil
}

func (uc *unitUseCase) ListUnits(ctx context.Context, purchaseOrderItemID string) ([]model.ProductUnit, error) {
	item, err := uc.purchases.FindItemByID(ctx, purchaseOrderItemID)
	if err != nil {
		return nil, apperror.Ensure(err)
	}
	if item == nil {
		return nil, apperror.NotFound("purchase_order_item", purchaseOrderItemID)
	}

	units, err := uc.repo.FindByItem(ctx, purchaseOrderItemID)
	if err != nil {
		return nil, apperror.Ensure(err)
	}
	return units, nil
}

func (uc *unitUseCase) UnitSummary(ctx context.Context, productID string) (*dto.UnitSummary, error) {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return nil, apperror.Ensure(err)
	}
	if p == nil {
		return nil, apperror.NotFound("product", productID)
	}

	registered, sold, err := uc.repo.Summary(ctx, productID)
	if err != nil {
		return nil, apperror.Ensure(err)
	}

	return &dto.UnitSummary{
		ProductID:     productID,
		StockQuantity: p.StockQuantity,
		Registered:    registered,
		Unsold:        registered - sold,
		Sold:          sold,
	}, nil
}

func (uc *unitUseCase) SearchUnits(ctx context.Context, query string, limit int) ([]model.ProductUnit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.Validation("search query is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if uc.es != nil {
		units, err := uc.searchIndex(ctx, query, limit)
		if err == nil {
			return units, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	units, err := uc.repo.SearchBySerialPrefix(ctx, query, limit)
	if err != nil {
		return nil, apperror.Ensure(err)
	}
	return units, nil
}

// searchIndex matches serials in the index and reloads the rows so sold
// state comes from the store, not from a possibly stale document.
func (uc *unitUseCase) searchIndex(ctx context.Context, query string, limit int) ([]model.ProductUnit, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"prefix": map[string]interface{}{
				"serial_number": map[string]interface{}{
					"value":            query,
					"case_insensitive": true,
				},
			},
		},
		"size": limit,
	}

	res, err := uc.es.Search(ctx, unitIndex, q)
	if err != nil {
		return nil, err
	}

	units := make([]model.ProductUnit, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc dto.UnitDocument
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			continue
		}
		u, err := uc.repo.FindByID(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		if u != nil {
			units = append(units, *u)
		}
	}
	return units, nil
}

func (uc *unitUseCase) indexUnits(ctx context.Context, units []model.ProductUnit) {
	_ = uc.es.CreateIndex(ctx, unitIndex, unitMapping)

	for _, u := range units {
		doc := dto.UnitDocument{
			ID:                  u.ID,
			ProductID:           u.ProductID,
			PurchaseOrderItemID: u.PurchaseOrderItemID,
			SerialNumber:        u.SerialNumber,
			DateOfPurchase:      u.DateOfPurchase,
			IsSold:              u.IsSold,
		}
		if err := uc.es.Index(ctx, unitIndex, u.ID, doc); err != nil {
			uc.logger.Error("failed to index unit", zap.String("unit_id", u.ID), zap.Error(err))
		}
	}
}

func (uc *unitUseCase) BindUnitsToSale(ctx context.Context, input *dto.BindUnitsInput) ([]model.ProductUnit, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	soldAt := input.SoldAt
	if soldAt.IsZero() {
		soldAt = uc.now()
	}

	var bound []model.ProductUnit
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := uc.products.FindByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperror.NotFound("product", input.ProductID)
		}
		if !p.SerialTracked {
			return nil
		}

		units, err := uc.repo.LockUnsold(ctx, input.ProductID, input.Quantity)
		if err != nil {
			return err
		}
		if int64(len(units)) < input.Quantity {
			return apperror.New(apperror.KindInsufficientSerializedUnits, "product %s has %d registered unsold unit(s), %d requested", input.ProductID, len(units), input.Quantity).
				With("product_id", input.ProductID).
				With("available", len(units)).
				With("requested", input.Quantity)
		}

		ids := make([]string, len(units))
		for i := range units {
			ids[i] = units[i].ID
		}
		if err := uc.repo.MarkSold(ctx, ids, input.SalesOrderItemID, soldAt); err != nil {
			return err
		}

		for i := range units {
			u := &units[i]
			itemID := input.SalesOrderItemID
			u.IsSold = true
			u.DateOfSale = &soldAt
			u.SalesOrderItemID = &itemID
			u.UpdatedAt = soldAt

			if uc.warranty == nil {
				continue
			}
			attached, err := uc.warranty.AttachProductWarranties(ctx, u, soldAt)
			if err != nil {
				return err
			}
			for _, wu := range attached {
				if wu.WarrantyType == model.WarrantyConsumer {
					warrantyID := wu.WarrantyID
					u.WarrantyID = &warrantyID
				}
			}
		}

		bound = units
		return nil
	})
	if err != nil {
		uc.logFailure("sale binding failed", err,
			zap.String("product_id", input.ProductID),
			zap.Int64("quantity", input.Quantity),
		)
		return nil, err
	}

	return bound, nil
}

func (uc *unitUseCase) logFailure(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("kind", string(apperror.KindOf(err))), zap.Error(err))
	if apperror.KindOf(err) == apperror.KindInternal {
		uc.logger.Error(msg, fields...)
		return
	}
	uc.logger.Warn(msg, fields...)
}
