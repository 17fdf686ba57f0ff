package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// PostgreSQL error codes the stock core reacts to.
const (
	PgErrUniqueViolation      = "23505"
	PgErrForeignKeyViolation  = "23503"
	PgErrCheckViolation       = "23514"
	PgErrInvalidText          = "22P02"
	PgErrSerializationFailure = "40001"
	PgErrDeadlockDetected     = "40P01"
	PgErrLockNotAvailable     = "55P03"
	PgErrQueryCanceled        = "57014"
)

// Constraint names declared in migrations/000001_init.sql.
const (
	ConstraintUnitSerial       = "product_units_product_serial_key"
	ConstraintStockNonNegative = "products_stock_quantity_check"
)

type txKey struct{}

type TxManager struct {
	DB          *sqlx.DB
	LockTimeout time.Duration
}

func NewTxManager(db *sqlx.DB, lockTimeout time.Duration) *TxManager {
	return &TxManager{DB: db, LockTimeout: lockTimeout}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.DB.BeginTxx(ctx, nil)
	if err != nil {
		return TranslateError(err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	// lock waits surface as 55P03 instead of hanging the request
	if m.LockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.LockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return TranslateError(err)
		}
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return TranslateError(err)
	}

	if err := tx.Commit(); err != nil {
		return TranslateError(err)
	}
	return nil
}

// Conn returns the transaction carried by ctx, falling back to db.
func Conn(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// TranslateError maps driver failures onto the apperror taxonomy. Errors that
// are already typed pass through.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.Conflict(err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperror.Internal(err)
	}

	switch pgErr.Code {
	case PgErrLockNotAvailable, PgErrSerializationFailure, PgErrDeadlockDetected, PgErrQueryCanceled:
		return apperror.Conflict(err)
	case PgErrUniqueViolation:
		if pgErr.ConstraintName == ConstraintUnitSerial {
			return apperror.Wrap(apperror.KindDuplicateSerial, err, "serial number already registered")
		}
		return apperror.Wrap(apperror.KindValidation, err, "duplicate value violates %s", pgErr.ConstraintName)
	case PgErrInvalidText:
		return apperror.Wrap(apperror.KindNotFound, err, "malformed identifier")
	case PgErrForeignKeyViolation:
		return apperror.Wrap(apperror.KindNotFound, err, "referenced record does not exist")
	case PgErrCheckViolation:
		if pgErr.ConstraintName == ConstraintStockNonNegative {
			return apperror.Wrap(apperror.KindInsufficientStock, err, "stock quantity cannot go negative")
		}
		return apperror.Wrap(apperror.KindValidation, err, "value violates %s", pgErr.ConstraintName)
	default:
		return apperror.Internal(err)
	}
}
