package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/app/apptest"
	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/purchase/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePurchaseOrder(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	require.NoError(t, env.Store.Rates().PutDiscount(ctx, model.Discount{ID: "d-10", Rate: decimal.NewFromInt(10)}))
	require.NoError(t, env.Store.Rates().PutTax(ctx, model.Tax{ID: "t-6", Rate: decimal.NewFromInt(6)}))
	a := env.Product(t, true, "100")
	b := env.Product(t, false, "10")

	po, err := env.Purchases.CreatePurchaseOrder(ctx, &dto.CreatePurchaseOrderInput{
		VendorID: "vendor-1",
		Items: []dto.ItemInput{
			{ProductID: a.ID, Quantity: 4, UnitCost: decimal.NewFromInt(200)},
			{ProductID: b.ID, Quantity: 20, UnitCost: decimal.NewFromInt(10)},
		},
		DiscountIDs:  []string{"d-10"},
		TaxIDs:       []string{"t-6"},
		ShippingCost: decimal.NewFromInt(15),
		UserID:       "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, model.PurchaseOrderPending, po.Status)
	assert.Nil(t, po.DeliveredDate)
	assert.True(t, po.Subtotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, po.GrandTotal.Equal(decimal.NewFromInt(969)))
	assert.True(t, po.Items[0].TotalPrice.Equal(decimal.NewFromInt(800)))

	assert.Zero(t, env.Stock(t, a.ID), "stock moves on delivery only")

	detail, err := env.Purchases.GetPurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Order.Items, 2)
	assert.Equal(t, int64(4), detail.Unregistered[po.Items[0].ID])
}

func TestCreatePurchaseOrder_Rejections(t *testing.T) {
	env := apptest.New(t)
	p := env.Product(t, false, "10")

	tests := []struct {
		name  string
		input dto.CreatePurchaseOrderInput
		want  error
	}{
		{name: "no items", input: dto.CreatePurchaseOrderInput{VendorID: "v-1"}, want: apperror.ErrValidation},
		{name: "zero quantity", input: dto.CreatePurchaseOrderInput{VendorID: "v-1", Items: []dto.ItemInput{{ProductID: p.ID}}}, want: apperror.ErrValidation},
		{name: "negative cost", input: dto.CreatePurchaseOrderInput{VendorID: "v-1", Items: []dto.ItemInput{{ProductID: p.ID, Quantity: 1, UnitCost: decimal.NewFromInt(-1)}}}, want: apperror.ErrValidation},
		{name: "unknown product", input: dto.CreatePurchaseOrderInput{VendorID: "v-1", Items: []dto.ItemInput{{ProductID: "missing", Quantity: 1}}}, want: apperror.ErrNotFound},
		{name: "unknown tax", input: dto.CreatePurchaseOrderInput{VendorID: "v-1", Items: []dto.ItemInput{{ProductID: p.ID, Quantity: 1}}, TaxIDs: []string{"missing"}}, want: apperror.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Purchases.CreatePurchaseOrder(context.Background(), &tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEditPurchaseOrder(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	a := env.Product(t, false, "10")
	b := env.Product(t, false, "10")

	po, err := env.Purchases.CreatePurchaseOrder(ctx, &dto.CreatePurchaseOrderInput{
		VendorID: "vendor-1",
		Items:    []dto.ItemInput{{ProductID: a.ID, Quantity: 1, UnitCost: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)

	edited, err := env.Purchases.EditPurchaseOrder(ctx, &dto.EditPurchaseOrderInput{
		ID:       po.ID,
		VendorID: "vendor-2",
		Items: []dto.ItemInput{
			{ProductID: a.ID, Quantity: 3, UnitCost: decimal.NewFromInt(5)},
			{ProductID: b.ID, Quantity: 2, UnitCost: decimal.NewFromInt(7)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "vendor-2", edited.VendorID)
	assert.Equal(t, po.OrderDate, edited.OrderDate)
	assert.True(t, edited.GrandTotal.Equal(decimal.NewFromInt(29)))

	detail, err := env.Purchases.GetPurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Order.Items, 2)

	delivered, err := env.Purchases.DeliverPurchaseOrder(ctx, &dto.DeliverPurchaseOrderInput{ID: po.ID})
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseOrderDelivered, delivered.Status)
	assert.Equal(t, int64(3), env.Stock(t, a.ID))
	assert.Equal(t, int64(2), env.Stock(t, b.ID))

	_, err = env.Purchases.EditPurchaseOrder(ctx, &dto.EditPurchaseOrderInput{
		ID:       po.ID,
		VendorID: "vendor-3",
		Items:    []dto.ItemInput{{ProductID: a.ID, Quantity: 9}},
	})
	assert.ErrorIs(t, err, apperror.ErrValidation, "delivered orders are frozen")
}

func TestCancelPurchaseOrder(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	p := env.Product(t, false, "10")

	po, err := env.Purchases.CreatePurchaseOrder(ctx, &dto.CreatePurchaseOrderInput{
		VendorID: "vendor-1",
		Items:    []dto.ItemInput{{ProductID: p.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	require.NoError(t, env.Purchases.CancelPurchaseOrder(ctx, po.ID, "user-1"))

	detail, err := env.Purchases.GetPurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseOrderCancelled, detail.Order.Status)

	_, err = env.Purchases.DeliverPurchaseOrder(ctx, &dto.DeliverPurchaseOrderInput{ID: po.ID})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Zero(t, env.Stock(t, p.ID))

	assert.ErrorIs(t, env.Purchases.CancelPurchaseOrder(ctx, po.ID, "user-1"), apperror.ErrValidation)
	assert.ErrorIs(t, env.Purchases.CancelPurchaseOrder(ctx, "missing", "user-1"), apperror.ErrNotFound)
}

func TestDeliverPurchaseOrder_IsIdempotent(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	p := env.Product(t, true, "10")
	deliveredAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	po, err := env.Purchases.CreatePurchaseOrder(ctx, &dto.CreatePurchaseOrderInput{
		VendorID: "vendor-1",
		Items:    []dto.ItemInput{{ProductID: p.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		delivered, err := env.Purchases.DeliverPurchaseOrder(ctx, &dto.DeliverPurchaseOrderInput{
			ID:            po.ID,
			DeliveredDate: deliveredAt.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		require.NotNil(t, delivered.DeliveredDate)
		assert.Equal(t, deliveredAt, *delivered.DeliveredDate)
	}
	assert.Equal(t, int64(5), env.Stock(t, p.ID))

	units, err := env.Units.RegisterUnits(ctx, registerInput(po.Items[0].ID, "SN-1"))
	require.NoError(t, err)
	assert.Equal(t, deliveredAt, units[0].DateOfPurchase)

	detail, err := env.Purchases.GetPurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), detail.Unregistered[po.Items[0].ID])
}
