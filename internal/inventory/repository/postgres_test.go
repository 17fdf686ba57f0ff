package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestAdjustStock_GuardedUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $2 AND stock_quantity + $1 >= 0")).
		WithArgs(int64(-2), "p-1", at).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(3))

	after, ok, err := repo.AdjustStock(context.Background(), "p-1", -2, at)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(3), after)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStock_NoRowMeansRejected(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("UPDATE products").
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))

	_, ok, err := repo.AdjustStock(context.Background(), "p-1", -10, time.Now())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockProduct_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM products WHERE id = $1 FOR UPDATE")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	p, err := repo.LockProduct(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestListMovements_FiltersAndPages(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM stock_movements WHERE product_id = $1")).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id LIMIT 5 OFFSET 5")).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "movement_type", "quantity_change"}).
			AddRow("m-6", "p-1", "sale", -1).
			AddRow("m-7", "p-1", "purchase_receipt", 5))

	items, total, err := repo.ListMovements(context.Background(), &dto.MovementFilters{ProductID: "p-1", Page: 2, PageSize: 5})

	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, items, 2)
	assert.Equal(t, int64(-1), items[0].QuantityChange)
	assert.NoError(t, mock.ExpectationsWereMet())
}
