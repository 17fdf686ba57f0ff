package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/app"
	"github.com/fekuna/omnipos-stock-service/internal/app/apptest"
	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	invdto "github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/sales/dto"
	unitdto "github.com/fekuna/omnipos-stock-service/internal/unit/dto"
	warrantydto "github.com/fekuna/omnipos-stock-service/internal/warranty/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(lines ...dto.LineInput) *dto.CreateSalesOrderInput {
	return &dto.CreateSalesOrderInput{CustomerID: "customer-1", Lines: lines}
}

func TestCreateSalesOrder_DeliverRegisterSellClaim(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()

	p := env.Product(t, true, "250")
	tmpl, err := env.Warranty.CreateTemplate(ctx, &warrantydto.CreateTemplateInput{
		WarrantyNumber: "W-12",
		WarrantyType:   model.WarrantyConsumer,
		Duration:       12,
	})
	require.NoError(t, err)
	require.NoError(t, env.Warranty.LinkProduct(ctx, p.ID, tmpl.ID))

	po := env.Deliver(t, p.ID, 5)
	assert.Equal(t, int64(5), env.Stock(t, p.ID))

	env.Register(t, po, "SN-1", "SN-2", "SN-3")
	left, err := env.Units.UnregisteredQuantity(ctx, po.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), left)

	env.Clock.Advance(24 * time.Hour)
	saleDate := env.Clock.Now()
	so, err := env.Sales.CreateSalesOrder(ctx, order(dto.LineInput{ProductID: p.ID, Quantity: 2}))
	require.NoError(t, err)

	assert.Equal(t, int64(3), env.Stock(t, p.ID))
	assert.True(t, so.GrandTotal.Equal(decimal.NewFromInt(500)))

	bound := so.Items[0].Units
	require.Len(t, bound, 2)
	for _, u := range bound {
		lookup, err := env.Warranty.LookupUnitWarranty(ctx, p.ID, u.SerialNumber)
		require.NoError(t, err)
		require.Len(t, lookup.Warranties, 1)

		wu := lookup.Warranties[0].WarrantyUnit
		assert.Equal(t, saleDate, wu.WarrantyStart)
		assert.Equal(t, saleDate.AddDate(0, 12, 0), wu.WarrantyEnd)
		assert.Equal(t, model.WarrantyActive, lookup.Warranties[0].Status)
		require.NotNil(t, lookup.Unit.WarrantyID)
		assert.Equal(t, tmpl.ID, *lookup.Unit.WarrantyID)
	}

	claim := &warrantydto.CreateClaimInput{
		ProductUnitID: bound[0].ID,
		ClaimType:     model.ClaimRepair,
		Priority:      model.PriorityMedium,
	}
	env.Clock.Set(saleDate.AddDate(0, 12, 0).Add(-time.Second))
	created, err := env.Warranty.CreateClaim(ctx, claim)
	require.NoError(t, err)
	assert.Equal(t, tmpl.ID, created.WarrantyID)

	env.Clock.Set(saleDate.AddDate(0, 12, 0))
	_, err = env.Warranty.CreateClaim(ctx, claim)
	assert.ErrorIs(t, err, apperror.ErrNoActiveWarranty)

	fetched, err := env.Sales.GetSalesOrder(ctx, so.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Items[0].Units, 2)

	movements, total, err := env.Ledger.ListMovements(ctx, &invdto.MovementFilters{ProductID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	var sale *model.StockMovement
	for i := range movements {
		if movements[i].MovementType == model.MovementSale {
			sale = &movements[i]
		}
	}
	require.NotNil(t, sale)
	assert.Equal(t, int64(-2), sale.QuantityChange)
	assert.Equal(t, so.ID, *sale.ReferenceID)
}

func TestCreateSalesOrder_InsufficientStockTouchesNothing(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	a := env.Product(t, false, "10")
	b := env.Product(t, false, "10")
	env.Deliver(t, a.ID, 5)
	env.Deliver(t, b.ID, 1)

	_, err := env.Sales.CreateSalesOrder(ctx, order(
		dto.LineInput{ProductID: a.ID, Quantity: 3},
		dto.LineInput{ProductID: b.ID, Quantity: 2},
	))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, b.ID, appErr.Details["product_id"])
	assert.Equal(t, int64(1), appErr.Details["available"])

	assert.Equal(t, int64(5), env.Stock(t, a.ID))
	assert.Equal(t, int64(1), env.Stock(t, b.ID))
}

func TestCreateSalesOrder_LinesForOneProductAreSummed(t *testing.T) {
	env := apptest.New(t)
	p := env.Product(t, false, "10")
	env.Deliver(t, p.ID, 3)

	_, err := env.Sales.CreateSalesOrder(context.Background(), order(
		dto.LineInput{ProductID: p.ID, Quantity: 2},
		dto.LineInput{ProductID: p.ID, Quantity: 2},
	))
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, int64(3), env.Stock(t, p.ID))
}

func TestCreateSalesOrder_InsufficientSerializedUnitsRollsBackStock(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	p := env.Product(t, true, "100")
	po := env.Deliver(t, p.ID, 5)
	env.Register(t, po, "SN-1")

	_, err := env.Sales.CreateSalesOrder(ctx, order(dto.LineInput{ProductID: p.ID, Quantity: 2}))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInsufficientSerializedUnits)

	assert.Equal(t, int64(5), env.Stock(t, p.ID))
	summary, err := env.Units.UnitSummary(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Sold)

	_, total, err := env.Ledger.ListMovements(ctx, &invdto.MovementFilters{ProductID: p.ID, MovementType: string(model.MovementSale)})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateSalesOrder_ConcurrentOrdersNeverOversell(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	p := env.Product(t, true, "100")
	po := env.Deliver(t, p.ID, 5)
	env.Register(t, po, "SN-1", "SN-2", "SN-3", "SN-4", "SN-5")

	var wg sync.WaitGroup
	var mu sync.Mutex
	sold := map[string]int{}
	failures := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			so, err := env.Sales.CreateSalesOrder(ctx, order(dto.LineInput{ProductID: p.ID, Quantity: 1}))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
				failures++
				return
			}
			for _, u := range so.Items[0].Units {
				sold[u.ID]++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, failures)
	assert.Len(t, sold, 5)
	for id, n := range sold {
		assert.Equal(t, 1, n, "unit %s bound twice", id)
	}
	assert.Zero(t, env.Stock(t, p.ID))
}

func TestCreateSalesOrder_PricingAndOverrides(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	require.NoError(t, env.Store.Rates().PutDiscount(ctx, model.Discount{ID: "d-10", Rate: decimal.NewFromInt(10)}))
	require.NoError(t, env.Store.Rates().PutTax(ctx, model.Tax{ID: "t-6", Rate: decimal.NewFromInt(6)}))

	p := env.Product(t, false, "100")
	env.Deliver(t, p.ID, 20)

	override := decimal.NewFromInt(250)
	input := order(
		dto.LineInput{ProductID: p.ID, Quantity: 5},
		dto.LineInput{ProductID: p.ID, Quantity: 2, Price: &override},
	)
	input.DiscountIDs = []string{"d-10"}
	input.TaxIDs = []string{"t-6"}

	quote, err := env.Sales.QuoteSalesOrder(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(20), env.Stock(t, p.ID), "quoting reserves nothing")

	so, err := env.Sales.CreateSalesOrder(ctx, input)
	require.NoError(t, err)

	assert.True(t, so.Subtotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, so.DiscountAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, so.TaxAmount.Equal(decimal.NewFromInt(54)))
	assert.True(t, so.GrandTotal.Equal(decimal.NewFromInt(954)))
	assert.True(t, quote.GrandTotal.Equal(so.GrandTotal))
	assert.True(t, so.Items[1].Price.Equal(override))
	assert.Equal(t, int64(13), env.Stock(t, p.ID))

	input.TaxIDs = []string{"missing"}
	_, err = env.Sales.CreateSalesOrder(ctx, input)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, int64(13), env.Stock(t, p.ID))
}

func TestCreateSalesOrder_Validation(t *testing.T) {
	env := apptest.New(t)
	p := env.Product(t, false, "10")

	tests := []struct {
		name  string
		input *dto.CreateSalesOrderInput
		want  error
	}{
		{name: "no lines", input: &dto.CreateSalesOrderInput{CustomerID: "c-1"}, want: apperror.ErrValidation},
		{name: "zero quantity", input: order(dto.LineInput{ProductID: p.ID}), want: apperror.ErrValidation},
		{name: "no customer", input: &dto.CreateSalesOrderInput{Lines: []dto.LineInput{{ProductID: p.ID, Quantity: 1}}}, want: apperror.ErrValidation},
		{name: "unknown product", input: order(dto.LineInput{ProductID: "missing", Quantity: 1}), want: apperror.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Sales.CreateSalesOrder(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []dto.SalesOrderCreatedEvent
	err    error
}

func (r *recordingPublisher) PublishJSON(ctx context.Context, key string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, payload.(dto.SalesOrderCreatedEvent))
	return r.err
}

func TestCreateSalesOrder_PublishesAfterCommit(t *testing.T) {
	pub := &recordingPublisher{}
	env := apptest.New(t, func(o *app.Options) { o.Publisher = pub })
	ctx := context.Background()
	p := env.Product(t, true, "100")
	env.Register(t, env.Deliver(t, p.ID, 2), "SN-1", "SN-2")

	so, err := env.Sales.CreateSalesOrder(ctx, order(dto.LineInput{ProductID: p.ID, Quantity: 2}))
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, dto.EventSalesOrderCreated, ev.EventType)
	assert.Equal(t, so.ID, ev.Payload.ID)
	assert.Len(t, ev.Payload.Items[0].UnitIDs, 2)

	_, err = env.Sales.CreateSalesOrder(ctx, order(dto.LineInput{ProductID: p.ID, Quantity: 1}))
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Len(t, pub.events, 1, "rejected orders publish nothing")

	pub.err = errors.New("broker down")
	env.Register(t, env.Deliver(t, p.ID, 1), "SN-3")
	_, err = env.Sales.CreateSalesOrder(ctx, order(dto.LineInput{ProductID: p.ID, Quantity: 1}))
	assert.NoError(t, err, "publish failures do not fail a committed order")
}

func TestBindUnitsToSale_ValidatesInput(t *testing.T) {
	env := apptest.New(t)
	_, err := env.Units.BindUnitsToSale(context.Background(), &unitdto.BindUnitsInput{ProductID: "p-1"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
