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
	"github.com/fekuna/omnipos-stock-service/internal/sales"
	"github.com/fekuna/omnipos-stock-service/internal/sales/dto"
	"github.com/fekuna/omnipos-stock-service/internal/unit"
	unitdto "github.com/fekuna/omnipos-stock-service/internal/unit/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const referenceSalesOrder = "sales_order"

type Option func(*salesUseCase)

func WithClock(now func() time.Time) Option {
	return func(uc *salesUseCase) { uc.now = now }
}

// WithPublisher enables SalesOrderCreated events.
func WithPublisher(p sales.Publisher) Option {
	return func(uc *salesUseCase) { uc.publisher = p }
}

type salesUseCase struct {
	tx        database.Transactor
	repo      sales.Repository
	products  product.Repository
	ledger    inventory.UseCase
	binder    unit.UseCase
	units     unit.Repository
	pricing   pricing.Calculator
	policy    retry.Policy
	publisher sales.Publisher
	now       func() time.Time
	logger    logger.ZapLogger
}

func NewSalesUseCase(
	tx database.Transactor,
	repo sales.Repository,
	products product.Repository,
	ledger inventory.UseCase,
	binder unit.UseCase,
	units unit.Repository,
	calc pricing.Calculator,
	policy retry.Policy,
	log logger.ZapLogger,
	opts ...Option,
) sales.UseCase {
	uc := &salesUseCase{
		tx:       tx,
		repo:     repo,
		products: products,
		ledger:   ledger,
		binder:   binder,
		units:    units,
		pricing:  calc,
		policy:   policy,
		now:      time.Now,
		logger:   log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *salesUseCase) CreateSalesOrder(ctx context.Context, input *dto.CreateSalesOrderInput) (*model.SalesOrder, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var so *model.SalesOrder
	err := retry.OnConflict(ctx, uc.policy, func(ctx context.Context) error {
		return uc.tx.WithinTx(ctx, func(ctx context.Context) error {
			var err error
			so, err = uc.create(ctx, input)
			return err
		})
	})
	if err != nil {
		fields := []zap.Field{
			zap.String("customer_id", input.CustomerID),
			zap.Int("lines", len(input.Lines)),
			zap.String("kind", string(apperror.KindOf(err))),
			zap.Error(err),
		}
		if apperror.KindOf(err) == apperror.KindInternal {
			uc.logger.Error("sales order failed", fields...)
		} else {
			uc.logger.Warn("sales order rejected", fields...)
		}
		return nil, err
	}

	uc.logger.Info("sales order created",
		zap.String("sales_order_id", so.ID),
		zap.String("grand_total", so.GrandTotal.String()),
	)
	uc.publishCreated(ctx, so)

	return so, nil
}

// create runs inside the transaction: reserve, price, persist, then bind.
func (uc *salesUseCase) create(ctx context.Context, input *dto.CreateSalesOrderInput) (*model.SalesOrder, error) {
	now := uc.now()
	soID := uuid.New().String()

	stockLines := make([]invdto.StockLine, len(input.Lines))
	for i, l := range input.Lines {
		stockLines[i] = invdto.StockLine{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	products, err := uc.ledger.ReserveForSale(ctx, &invdto.ReserveInput{
		Lines:         stockLines,
		ReferenceType: referenceSalesOrder,
		ReferenceID:   soID,
		UserID:        input.UserID,
	})
	if err != nil {
		return nil, err
	}

	priceLines := make([]pricing.Line, len(input.Lines))
	items := make([]model.SalesOrderItem, len(input.Lines))
	for i, l := range input.Lines {
		price := products[l.ProductID].Price
		if l.Price != nil {
			price = *l.Price
		}
		priceLines[i] = pricing.Line{UnitPrice: price, Quantity: l.Quantity}
		items[i] = model.SalesOrderItem{
			ID:           uuid.New().String(),
			SalesOrderID: soID,
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			Price:        price,
			TotalPrice:   priceLines[i].Total(),
			CreatedAt:    now,
		}
	}

	totals, err := uc.pricing.Calculate(ctx, priceLines, input.DiscountIDs, input.TaxIDs, input.ShippingCost)
	if err != nil {
		return nil, err
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	so := &model.SalesOrder{
		BaseModel:      model.BaseModel{ID: soID, CreatedAt: now, UpdatedAt: now},
		CustomerID:     input.CustomerID,
		OrderDate:      orderDate,
		ShipmentDate:   input.ShipmentDate,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		ShippingCost:   totals.ShippingCost,
		GrandTotal:     totals.GrandTotal,
		UpdatedBy:      userPtr(input.UserID),
		Items:          items,
	}
	if err := uc.repo.Create(ctx, so); err != nil {
		return nil, err
	}

	for i := range so.Items {
		item := &so.Items[i]
		units, err := uc.binder.BindUnitsToSale(ctx, &unitdto.BindUnitsInput{
			ProductID:        item.ProductID,
			Quantity:         item.Quantity,
			SalesOrderItemID: item.ID,
			SoldAt:           now,
		})
		if err != nil {
			return nil, err
		}
		item.Units = units
	}

	return so, nil
}

func (uc *salesUseCase) publishCreated(ctx context.Context, so *model.SalesOrder) {
	if uc.publisher == nil {
		return
	}

	payload := dto.SalesOrderPayload{
		ID:         so.ID,
		CustomerID: so.CustomerID,
		GrandTotal: so.GrandTotal,
		Items:      make([]dto.SalesItemPayload, len(so.Items)),
	}
	for i, item := range so.Items {
		unitIDs := make([]string, len(item.Units))
		for j, u := range item.Units {
			unitIDs[j] = u.ID
		}
		payload.Items[i] = dto.SalesItemPayload{ProductID: item.ProductID, Quantity: item.Quantity, UnitIDs: unitIDs}
	}

	event := dto.SalesOrderCreatedEvent{
		EventID:   uuid.New().String(),
		EventType: dto.EventSalesOrderCreated,
		Payload:   payload,
		Timestamp: uc.now(),
	}
	// the order is committed; a lost event must not fail the request
	if err := uc.publisher.PublishJSON(ctx, so.ID, event); err != nil {
		uc.logger.Error("failed to publish sales order event", zap.String("sales_order_id", so.ID), zap.Error(err))
	}
}

func (uc *salesUseCase) GetSalesOrder(ctx context.Context, id string) (*model.SalesOrder, error) {
	so, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Ensure(err)
	}
	if so == nil {
		return nil, apperror.NotFound("sales_order", id)
	}

	for i := range so.Items {
		units, err := uc.units.FindBySalesItem(ctx, so.Items[i].ID)
		if err != nil {
			return nil, apperror.Ensure(err)
		}
		so.Items[i].Units = units
	}
	return so, nil
}

func (uc *salesUseCase) QuoteSalesOrder(ctx context.Context, input *dto.CreateSalesOrderInput) (*pricing.Totals, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	lines := make([]pricing.Line, len(input.Lines))
	for i, l := range input.Lines {
		var price decimal.Decimal
		if l.Price != nil {
			price = *l.Price
		} else {
			p, err := uc.products.FindByID(ctx, l.ProductID)
			if err != nil {
				return nil, apperror.Ensure(err)
			}
			if p == nil {
				return nil, apperror.NotFound("product", l.ProductID)
			}
			price = p.Price
		}
		lines[i] = pricing.Line{UnitPrice: price, Quantity: l.Quantity}
	}

	totals, err := uc.pricing.Calculate(ctx, lines, input.DiscountIDs, input.TaxIDs, input.ShippingCost)
	if err != nil {
		return nil, apperror.Ensure(err)
	}
	return &totals, nil
}

func userPtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
