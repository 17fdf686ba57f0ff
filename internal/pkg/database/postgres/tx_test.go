package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockManager(t *testing.T) (*TxManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewTxManager(sqlx.NewDb(db, "pgx"), 3*time.Second), mock
}

func TestWithinTx_CommitsAndSetsLockTimeout(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL lock_timeout = '3000ms'")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := m.WithinTx(context.Background(), func(ctx context.Context) error {
		_, err := Conn(ctx, m.DB).ExecContext(ctx, "UPDATE products SET stock_quantity = 1")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackAndKeepsTypedError(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	want := apperror.New(apperror.KindQuantityExceeded, "too many serials")
	err := m.WithinTx(context.Background(), func(ctx context.Context) error {
		return want
	})

	assert.Same(t, want, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_NestedCallJoinsOuterTransaction(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	var outer, inner sqlx.ExtContext
	err := m.WithinTx(context.Background(), func(ctx context.Context) error {
		outer = Conn(ctx, m.DB)
		return m.WithinTx(ctx, func(ctx context.Context) error {
			inner = Conn(ctx, m.DB)
			return nil
		})
	})

	require.NoError(t, err)
	assert.Same(t, outer, inner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_LockTimeoutBecomesConflict(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FOR UPDATE").WillReturnError(&pgconn.PgError{Code: PgErrLockNotAvailable})
	mock.ExpectRollback()

	err := m.WithinTx(context.Background(), func(ctx context.Context) error {
		var id string
		return sqlx.GetContext(ctx, Conn(ctx, m.DB), &id, "SELECT id FROM products WHERE id = $1 FOR UPDATE", "p-1")
	})

	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.True(t, apperror.IsRetryable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperror.Kind
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: PgErrSerializationFailure}, want: apperror.KindConflict},
		{name: "deadlock", err: &pgconn.PgError{Code: PgErrDeadlockDetected}, want: apperror.KindConflict},
		{name: "statement timeout", err: &pgconn.PgError{Code: PgErrQueryCanceled}, want: apperror.KindConflict},
		{name: "deadline", err: fmt.Errorf("select: %w", context.DeadlineExceeded), want: apperror.KindConflict},
		{name: "serial unique", err: &pgconn.PgError{Code: PgErrUniqueViolation, ConstraintName: ConstraintUnitSerial}, want: apperror.KindDuplicateSerial},
		{name: "other unique", err: &pgconn.PgError{Code: PgErrUniqueViolation, ConstraintName: "products_sku_key"}, want: apperror.KindValidation},
		{name: "malformed uuid", err: &pgconn.PgError{Code: PgErrInvalidText}, want: apperror.KindNotFound},
		{name: "dangling reference", err: &pgconn.PgError{Code: PgErrForeignKeyViolation}, want: apperror.KindNotFound},
		{name: "negative stock", err: &pgconn.PgError{Code: PgErrCheckViolation, ConstraintName: ConstraintStockNonNegative}, want: apperror.KindInsufficientStock},
		{name: "connectivity", err: errors.New("dial tcp: connection refused"), want: apperror.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperror.KindOf(TranslateError(tt.err)))
		})
	}

	assert.NoError(t, TranslateError(nil))
}
