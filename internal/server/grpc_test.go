package server

import (
	"context"
	"net"
	"testing"
	"time"

	stockv1 "github.com/fekuna/omnipos-stock-service/api/stockv1"
	"github.com/fekuna/omnipos-stock-service/internal/app/apptest"
	"github.com/fekuna/omnipos-stock-service/internal/auth"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type clients struct {
	catalog   *stockv1.CatalogServiceClient
	inventory *stockv1.InventoryServiceClient
	purchase  *stockv1.PurchaseServiceClient
	unit      *stockv1.UnitServiceClient
	sales     *stockv1.SalesServiceClient
	warranty  *stockv1.WarrantyServiceClient
	health    healthpb.HealthClient
}

func startServer(t *testing.T) (*apptest.Env, *clients) {
	t.Helper()

	env := apptest.New(t)
	tr, err := i18n.NewTranslator("en")
	require.NoError(t, err)

	srv, _ := NewGRPCServer(env.UseCases, tr, logger.NewNop())
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return env, &clients{
		catalog:   stockv1.NewCatalogServiceClient(conn),
		inventory: stockv1.NewInventoryServiceClient(conn),
		purchase:  stockv1.NewPurchaseServiceClient(conn),
		unit:      stockv1.NewUnitServiceClient(conn),
		sales:     stockv1.NewSalesServiceClient(conn),
		warranty:  stockv1.NewWarrantyServiceClient(conn),
		health:    healthpb.NewHealthClient(conn),
	}
}

func TestGRPC_DeliverRegisterSellClaim(t *testing.T) {
	env, c := startServer(t)
	ctx := metadata.AppendToOutgoingContext(context.Background(), auth.UserIDHeader, "clerk-7")

	hc, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, hc.Status)

	prod, err := c.catalog.CreateProduct(ctx, &stockv1.CreateProductRequest{
		SKU: "PHN-1", Name: "Phone", Cost: "150", Price: "200.50", SerialTracked: true,
	})
	require.NoError(t, err)
	productID := prod.Product.ID
	assert.Equal(t, "200.50", prod.Product.Price)

	tmpl, err := c.warranty.CreateWarrantyTemplate(ctx, &stockv1.CreateWarrantyTemplateRequest{
		WarrantyNumber: "W-12", WarrantyType: 1, Duration: 12, Terms: "repair or replace",
	})
	require.NoError(t, err)
	_, err = c.warranty.LinkProductWarranty(ctx, &stockv1.LinkProductWarrantyRequest{ProductID: productID, WarrantyID: tmpl.Warranty.ID})
	require.NoError(t, err)

	po, err := c.purchase.CreatePurchaseOrder(ctx, &stockv1.CreatePurchaseOrderRequest{
		VendorID: "vendor-1",
		Items:    []*stockv1.PurchaseItemInput{{ProductID: productID, Quantity: 5, UnitCost: "150"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "750.00", po.PurchaseOrder.GrandTotal)
	itemID := po.PurchaseOrder.Items[0].ID

	deliveredAt := env.Clock.Now()
	delivered, err := c.purchase.DeliverPurchaseOrder(ctx, &stockv1.DeliverPurchaseOrderRequest{ID: po.PurchaseOrder.ID, DeliveredDate: &deliveredAt})
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", delivered.PurchaseOrder.Status)

	units, err := c.unit.RegisterProductUnits(ctx, &stockv1.RegisterProductUnitsRequest{
		PurchaseOrderItemID: itemID,
		SerialNumbers:       []string{"IMEI-1", "IMEI-2", "IMEI-3"},
	})
	require.NoError(t, err)
	assert.Len(t, units.Units, 3)

	left, err := c.unit.GetUnregisteredQuantity(ctx, &stockv1.GetUnregisteredQuantityRequest{PurchaseOrderItemID: itemID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), left.Value)

	var trailer metadata.MD
	_, err = c.unit.RegisterProductUnits(ctx, &stockv1.RegisterProductUnitsRequest{
		PurchaseOrderItemID: itemID,
		SerialNumbers:       []string{"IMEI-4", "IMEI-5", "IMEI-6"},
	}, grpc.Trailer(&trailer))
	require.Error(t, err)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Equal(t, []string{"QUANTITY_EXCEEDED"}, trailer.Get(middleware.ErrorKindHeader))
	assert.Contains(t, status.Convert(err).Message(), "Only 2 more unit(s)")

	env.Clock.Advance(time.Hour)
	so, err := c.sales.CreateSalesOrder(ctx, &stockv1.CreateSalesOrderRequest{
		CustomerID: "customer-1",
		Lines:      []*stockv1.SalesLineInput{{ProductID: productID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "401.00", so.SalesOrder.GrandTotal)
	bound := so.SalesOrder.Items[0].Units
	require.Len(t, bound, 2)

	got, err := c.catalog.GetProduct(ctx, &stockv1.GetProductRequest{ID: productID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Product.StockQuantity)

	lookup, err := c.warranty.LookupUnitWarranty(ctx, &stockv1.LookupUnitWarrantyRequest{ProductID: productID, SerialNumber: bound[0].SerialNumber})
	require.NoError(t, err)
	require.Len(t, lookup.Warranties, 1)
	assert.True(t, lookup.Eligible)
	assert.Equal(t, "ACTIVE", lookup.Warranties[0].Status)
	assert.True(t, lookup.Warranties[0].WarrantyEnd.Equal(bound[0].DateOfSale.AddDate(0, 12, 0)))

	claim, err := c.warranty.CreateWarrantyClaim(ctx, &stockv1.CreateWarrantyClaimRequest{
		ProductUnitID: bound[0].ID, ClaimType: "REPAIR", Priority: "HIGH",
	})
	require.NoError(t, err)
	assert.Equal(t, "clerk-7", claim.Claim.CreatedBy)

	env.Clock.Set(lookup.Warranties[0].WarrantyEnd)
	_, err = c.warranty.CreateWarrantyClaim(ctx, &stockv1.CreateWarrantyClaimRequest{
		ProductUnitID: bound[0].ID, ClaimType: "REPAIR", Priority: "HIGH",
	})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	movements, err := c.inventory.ListMovements(ctx, &stockv1.ListMovementsRequest{ProductID: productID})
	require.NoError(t, err)
	assert.Equal(t, int32(2), movements.Total)
	for _, m := range movements.Movements {
		assert.Equal(t, "clerk-7", m.CreatedBy)
	}
}

func TestGRPC_ErrorMapping(t *testing.T) {
	_, c := startServer(t)
	ctx := context.Background()

	_, err := c.catalog.GetProduct(ctx, &stockv1.GetProductRequest{ID: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.catalog.CreateProduct(ctx, &stockv1.CreateProductRequest{SKU: "X", Name: "X", Price: "abc"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	prod, err := c.catalog.CreateProduct(ctx, &stockv1.CreateProductRequest{SKU: "X", Name: "X", Price: "1"})
	require.NoError(t, err)

	idCtx := metadata.AppendToOutgoingContext(ctx, middleware.AcceptLanguageHeader, "id")
	_, err = c.sales.CreateSalesOrder(idCtx, &stockv1.CreateSalesOrderRequest{
		CustomerID: "customer-1",
		Lines:      []*stockv1.SalesLineInput{{ProductID: prod.Product.ID, Quantity: 1}},
	})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), prod.Product.ID)
}
