package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fekuna/omnipos-stock-service/internal/app/apptest"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	purchasedto "github.com/fekuna/omnipos-stock-service/internal/purchase/dto"
	salesdto "github.com/fekuna/omnipos-stock-service/internal/sales/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func serial(worker, n int) string {
	return fmt.Sprintf("W%d-SN-%d", worker, n)
}

func pendingOrder(productID string) *purchasedto.CreatePurchaseOrderInput {
	return &purchasedto.CreatePurchaseOrderInput{
		VendorID: "vendor-1",
		Items:    []purchasedto.ItemInput{{ProductID: productID, Quantity: 1, UnitCost: decimal.NewFromInt(10)}},
	}
}

func saleOf(t *testing.T, env *apptest.Env, productID string, qty int64) *model.SalesOrder {
	t.Helper()

	so, err := env.Sales.CreateSalesOrder(context.Background(), &salesdto.CreateSalesOrderInput{
		CustomerID: "customer-1",
		Lines:      []salesdto.LineInput{{ProductID: productID, Quantity: qty}},
	})
	require.NoError(t, err)
	return so
}
