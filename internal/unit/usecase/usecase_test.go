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
	"github.com/fekuna/omnipos-stock-service/internal/pkg/search"
	"github.com/fekuna/omnipos-stock-service/internal/unit/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUnits_CapsAtOrderedQuantity(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	p := env.Product(t, true, "100")
	po := env.Deliver(t, p.ID, 3)
	itemID := po.Items[0].ID

	units := env.Register(t, po, "SN-1", "SN-2")
	assert.Len(t, units, 2)
	for _, u := range units {
		assert.Equal(t, *po.DeliveredDate, u.DateOfPurchase)
		assert.False(t, u.IsSold)
		assert.Nil(t, u.DateOfSale)
	}

	_, err := env.Units.RegisterUnits(ctx, &dto.RegisterUnitsInput{
		PurchaseOrderItemID: itemID,
		Serials:             []string{"SN-3", "SN-4"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrQuantityExceeded)

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 2, appErr.Details["requested"])
	assert.Equal(t, int64(1), appErr.Details["available"])

	// the rejected batch wrote nothing
	listed, err := env.Units.ListUnits(ctx, itemID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	left, err := env.Units.UnregisteredQuantity(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), left)

	env.Register(t, po, "SN-3")
	left, err = env.Units.UnregisteredQuantity(ctx, itemID)
	require.NoError(t, err)
	assert.Zero(t, left)
}

func TestRegisterUnits_DuplicateSerials(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	p := env.Product(t, true, "100")
	po := env.Deliver(t, p.ID, 5)
	env.Register(t, po, "SN-1")

	tests := []struct {
		name    string
		serials []string
	}{
		{name: "inside the batch", serials: []string{"SN-7", " SN-7 "}},
		{name: "already registered", serials: []string{"SN-8", "SN-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Units.RegisterUnits(ctx, &dto.RegisterUnitsInput{
				PurchaseOrderItemID: po.Items[0].ID,
				Serials:             tt.serials,
			})
			assert.ErrorIs(t, err, apperror.ErrDuplicateSerial)
		})
	}

	left, err := env.Units.UnregisteredQuantity(ctx, po.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), left)
}

func TestRegisterUnits_SameSerialOnAnotherProduct(t *testing.T) {
	env := apptest.New(t)
	a := env.Product(t, true, "100")
	b := env.Product(t, true, "100")

	env.Register(t, env.Deliver(t, a.ID, 1), "SN-1")
	units := env.Register(t, env.Deliver(t, b.ID, 1), "SN-1")

	assert.Equal(t, b.ID, units[0].ProductID)
}

func TestRegisterUnits_Rejections(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	p := env.Product(t, true, "100")
	delivered := env.Deliver(t, p.ID, 2)

	pending, err := env.Purchases.CreatePurchaseOrder(ctx, pendingOrder(p.ID))
	require.NoError(t, err)

	tests := []struct {
		name  string
		input *dto.RegisterUnitsInput
		want  error
	}{
		{name: "empty batch", input: &dto.RegisterUnitsInput{PurchaseOrderItemID: delivered.Items[0].ID}, want: apperror.ErrValidation},
		{name: "blank serial", input: &dto.RegisterUnitsInput{PurchaseOrderItemID: delivered.Items[0].ID, Serials: []string{"  "}}, want: apperror.ErrValidation},
		{name: "unknown line", input: &dto.RegisterUnitsInput{PurchaseOrderItemID: "missing", Serials: []string{"SN-1"}}, want: apperror.ErrNotFound},
		{name: "order not delivered", input: &dto.RegisterUnitsInput{PurchaseOrderItemID: pending.Items[0].ID, Serials: []string{"SN-1"}}, want: apperror.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Units.RegisterUnits(ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegisterUnits_ConcurrentBatchesNeverExceedCap(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	p := env.Product(t, true, "100")
	po := env.Deliver(t, p.ID, 5)

	var wg sync.WaitGroup
	var mu sync.Mutex
	registered := 0
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			units, err := env.Units.RegisterUnits(ctx, &dto.RegisterUnitsInput{
				PurchaseOrderItemID: po.Items[0].ID,
				Serials:             []string{serial(i, 0), serial(i, 1)},
			})
			if err != nil {
				assert.ErrorIs(t, err, apperror.ErrQuantityExceeded)
				return
			}
			mu.Lock()
			registered += len(units)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, registered)
	left, err := env.Units.UnregisteredQuantity(ctx, po.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), left)
}

func TestUnitSummary(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	p := env.Product(t, true, "100")
	po := env.Deliver(t, p.ID, 4)
	env.Register(t, po, "SN-1", "SN-2", "SN-3")

	summary, err := env.Units.UnitSummary(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, &dto.UnitSummary{
		ProductID:     p.ID,
		StockQuantity: 4,
		Registered:    3,
		Unsold:        3,
		Sold:          0,
	}, summary)
}

func TestBindUnitsToSale_OldestFirst(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	p := env.Product(t, true, "100")

	older := env.Deliver(t, p.ID, 2)
	env.Register(t, older, "OLD-1", "OLD-2")
	env.Clock.Advance(48 * time.Hour)
	newer := env.Deliver(t, p.ID, 2)
	env.Register(t, newer, "NEW-1", "NEW-2")

	so := saleOf(t, env, p.ID, 3)
	bound := so.Items[0].Units
	require.Len(t, bound, 3)

	serials := []string{bound[0].SerialNumber, bound[1].SerialNumber, bound[2].SerialNumber}
	assert.ElementsMatch(t, []string{"OLD-1", "OLD-2"}, serials[:2])
	assert.Contains(t, []string{"NEW-1", "NEW-2"}, serials[2])

	for _, u := range bound {
		assert.True(t, u.IsSold)
		require.NotNil(t, u.DateOfSale)
		assert.Equal(t, env.Clock.Now(), *u.DateOfSale)
		require.NotNil(t, u.SalesOrderItemID)
		assert.Equal(t, so.Items[0].ID, *u.SalesOrderItemID)
	}

	summary, err := env.Units.UnitSummary(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Sold)
	assert.Equal(t, int64(1), summary.Unsold)
}

func TestBindUnitsToSale_NotSerialTracked(t *testing.T) {
	env := apptest.New(t)
	p := env.Product(t, false, "5")
	env.Deliver(t, p.ID, 10)

	so := saleOf(t, env, p.ID, 4)
	assert.Empty(t, so.Items[0].Units)
	assert.Equal(t, int64(6), env.Stock(t, p.ID))
}

type fakeIndex struct {
	mu      sync.Mutex
	docs    map[string]dto.UnitDocument
	indexed chan struct{}
	fail    bool
}

func (f *fakeIndex) CreateIndex(ctx context.Context, index, mapping string) error { return nil }

func (f *fakeIndex) Index(ctx context.Context, index, id string, doc any) error {
	f.mu.Lock()
	f.docs[id] = doc.(dto.UnitDocument)
	f.mu.Unlock()
	f.indexed <- struct{}{}
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error) {
	if f.fail {
		return nil, errors.New("cluster unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	res := &search.SearchResponse{}
	for id := range f.docs {
		res.Hits.Hits = append(res.Hits.Hits, search.Hit{ID: id, Source: []byte(`{"id":"` + id + `"}`)})
	}
	res.Hits.Total.Value = len(res.Hits.Hits)
	return res, nil
}

func TestSearchUnits(t *testing.T) {
	idx := &fakeIndex{docs: map[string]dto.UnitDocument{}, indexed: make(chan struct{}, 8)}
	env := apptest.New(t, func(o *app.Options) { o.Search = idx })
	ctx := context.Background()
	p := env.Product(t, true, "100")
	env.Register(t, env.Deliver(t, p.ID, 2), "ABC-1", "XYZ-1")

	for i := 0; i < 2; i++ {
		select {
		case <-idx.indexed:
		case <-time.After(time.Second):
			t.Fatal("units were not indexed")
		}
	}

	units, err := env.Units.SearchUnits(ctx, "ABC", 10)
	require.NoError(t, err)
	assert.Len(t, units, 2, "index hits are reloaded from the store")

	idx.fail = true
	units, err = env.Units.SearchUnits(ctx, "abc", 10)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "ABC-1", units[0].SerialNumber)

	_, err = env.Units.SearchUnits(ctx, " ", 10)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

type fakeLocker struct {
	held bool
	err  error
}

func (f *fakeLocker) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return !f.held, nil
}

func (f *fakeLocker) ReleaseLock(ctx context.Context, key, value string) error { return nil }

func TestRegisterUnits_Locker(t *testing.T) {
	t.Run("outage falls back to the row lock", func(t *testing.T) {
		env := apptest.New(t, func(o *app.Options) { o.Locker = &fakeLocker{err: errors.New("connection refused")} })
		p := env.Product(t, true, "100")
		units := env.Register(t, env.Deliver(t, p.ID, 1), "SN-1")
		assert.Len(t, units, 1)
	})

	t.Run("held lock is a conflict", func(t *testing.T) {
		env := apptest.New(t, func(o *app.Options) { o.Locker = &fakeLocker{held: true} })
		p := env.Product(t, true, "100")
		po := env.Deliver(t, p.ID, 1)

		_, err := env.Units.RegisterUnits(context.Background(), &dto.RegisterUnitsInput{
			PurchaseOrderItemID: po.Items[0].ID,
			Serials:             []string{"SN-1"},
		})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}
