// Package memstore is an in-memory Entity Store. It implements every
// repository interface and database.Transactor so the service can run, and
// be tested, without PostgreSQL.
//
// Transactions are fully serialized: one transaction slot guards the whole
// store, statements outside a transaction take the same slot for their own
// duration, and a failed transaction restores the snapshot taken when it
// began.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type txKey struct{}

type productWarranty struct {
	ProductID  string
	WarrantyID string
}

type data struct {
	products          map[string]model.Product
	purchaseOrders    map[string]model.PurchaseOrder
	purchaseItems     []model.PurchaseOrderItem
	salesOrders       map[string]model.SalesOrder
	salesItems        []model.SalesOrderItem
	units             []model.ProductUnit
	movements         []model.StockMovement
	warranties        map[string]model.Warranty
	productWarranties []productWarranty
	warrantyUnits     []model.WarrantyUnit
	claims            []model.WarrantyClaim
	taxes             map[string]model.Tax
	discounts         map[string]model.Discount
}

func newData() *data {
	return &data{
		products:       map[string]model.Product{},
		purchaseOrders: map[string]model.PurchaseOrder{},
		salesOrders:    map[string]model.SalesOrder{},
		warranties:     map[string]model.Warranty{},
		taxes:          map[string]model.Tax{},
		discounts:      map[string]model.Discount{},
	}
}

func (d *data) clone() *data {
	return &data{
		products:          cloneMap(d.products),
		purchaseOrders:    cloneMap(d.purchaseOrders),
		purchaseItems:     append([]model.PurchaseOrderItem(nil), d.purchaseItems...),
		salesOrders:       cloneMap(d.salesOrders),
		salesItems:        append([]model.SalesOrderItem(nil), d.salesItems...),
		units:             append([]model.ProductUnit(nil), d.units...),
		movements:         append([]model.StockMovement(nil), d.movements...),
		warranties:        cloneMap(d.warranties),
		productWarranties: append([]productWarranty(nil), d.productWarranties...),
		warrantyUnits:     append([]model.WarrantyUnit(nil), d.warrantyUnits...),
		claims:            append([]model.WarrantyClaim(nil), d.claims...),
		taxes:             cloneMap(d.taxes),
		discounts:         cloneMap(d.discounts),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var errLockTimeout = errors.New("memstore: lock wait timed out")

type Store struct {
	slot        chan struct{}
	lockTimeout time.Duration

	mu   sync.Mutex
	data *data
}

// New returns an empty store. A transaction waiting longer than lockTimeout
// for the store fails with CONFLICT; zero waits until the context ends.
func New(lockTimeout time.Duration) *Store {
	return &Store{
		slot:        make(chan struct{}, 1),
		lockTimeout: lockTimeout,
		data:        newData(),
	}
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

func (s *Store) acquire(ctx context.Context) error {
	var timeout <-chan time.Time
	if s.lockTimeout > 0 {
		timer := time.NewTimer(s.lockTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case s.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return translateCtxErr(ctx.Err())
	case <-timeout:
		return apperror.Conflict(errLockTimeout)
	}
}

func (s *Store) release() {
	<-s.slot
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	rollback := func() {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
	}
	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		rollback()
		return apperror.Ensure(err)
	}
	// a request abandoned mid-transaction commits nothing
	if ctxErr := ctx.Err(); ctxErr != nil {
		rollback()
		return translateCtxErr(ctxErr)
	}
	return nil
}

// do runs one statement against the data. Outside a transaction it takes the
// store for the duration of fn.
func (s *Store) do(ctx context.Context, fn func(d *data) error) error {
	if !s.inTx(ctx) {
		if err := s.acquire(ctx); err != nil {
			return err
		}
		defer s.release()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func translateCtxErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.Conflict(err)
	}
	return apperror.Internal(err)
}

func fkError(entity, id string) error {
	return apperror.Wrap(apperror.KindNotFound, fmt.Errorf("%s %s does not exist", entity, id), "referenced record does not exist")
}

func paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
