// Package apptest builds a fully wired service on the memory store for use
// case and end to end tests.
package apptest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/app"
	"github.com/fekuna/omnipos-stock-service/internal/memstore"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/retry"
	productdto "github.com/fekuna/omnipos-stock-service/internal/product/dto"
	purchasedto "github.com/fekuna/omnipos-stock-service/internal/purchase/dto"
	unitdto "github.com/fekuna/omnipos-stock-service/internal/unit/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type Env struct {
	Store *memstore.Store
	Clock *Clock
	*app.UseCases
}

// New wires every use case on an empty memory store. Options passed in are
// used as given except for Clock, which is always the Env clock.
func New(t *testing.T, opts ...func(*app.Options)) *Env {
	t.Helper()

	store := memstore.New(2 * time.Second)
	clock := NewClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))

	o := app.Options{Policy: retry.Policy{Attempts: 3, Backoff: time.Millisecond}}
	for _, opt := range opts {
		opt(&o)
	}
	o.Clock = clock.Now

	return &Env{
		Store:    store,
		Clock:    clock,
		UseCases: app.NewUseCases(app.MemoryStores(store), o, logger.NewNop()),
	}
}

// Product creates an active catalog entry with zero stock.
func (e *Env) Product(t *testing.T, serialTracked bool, price string) *model.Product {
	t.Helper()

	sku := "SKU-" + uuid.NewString()[:8]
	p, err := e.Products.CreateProduct(context.Background(), &productdto.CreateProductInput{
		SKU:           sku,
		Name:          "Product " + sku,
		Cost:          decimal.RequireFromString(price).Div(decimal.NewFromInt(2)),
		Price:         decimal.RequireFromString(price),
		SerialTracked: serialTracked,
	})
	require.NoError(t, err)
	return p
}

// Deliver creates a purchase order with one line of qty units of productID,
// delivers it at the current clock time and returns the order.
func (e *Env) Deliver(t *testing.T, productID string, qty int64) *model.PurchaseOrder {
	t.Helper()
	ctx := context.Background()

	po, err := e.Purchases.CreatePurchaseOrder(ctx, &purchasedto.CreatePurchaseOrderInput{
		VendorID: "vendor-1",
		Items: []purchasedto.ItemInput{
			{ProductID: productID, Quantity: qty, UnitCost: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	delivered, err := e.Purchases.DeliverPurchaseOrder(ctx, &purchasedto.DeliverPurchaseOrderInput{
		ID:            po.ID,
		DeliveredDate: e.Clock.Now(),
	})
	require.NoError(t, err)
	return delivered
}

// Register records serials against the first line of po.
func (e *Env) Register(t *testing.T, po *model.PurchaseOrder, serials ...string) []model.ProductUnit {
	t.Helper()

	units, err := e.Units.RegisterUnits(context.Background(), &unitdto.RegisterUnitsInput{
		PurchaseOrderItemID: po.Items[0].ID,
		Serials:             serials,
	})
	require.NoError(t, err)
	return units
}

// Stock reads the current stock quantity of productID.
func (e *Env) Stock(t *testing.T, productID string) int64 {
	t.Helper()

	p, err := e.Products.GetProduct(context.Background(), productID)
	require.NoError(t, err)
	return p.StockQuantity
}
