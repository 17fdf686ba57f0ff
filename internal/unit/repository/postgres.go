package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateBatch(ctx context.Context, units []model.ProductUnit) error {
	if len(units) == 0 {
		return nil
	}
	query := `
        INSERT INTO product_units (
            id, product_id, purchase_order_item_id, sales_order_item_id,
            serial_number, date_of_purchase, date_of_sale, is_sold,
            warranty_id, created_at, updated_at
        )
        VALUES (
            :id, :product_id, :purchase_order_item_id, :sales_order_item_id,
            :serial_number, :date_of_purchase, :date_of_sale, :is_sold,
            :warranty_id, :created_at, :updated_at
        )
    `
	// sqlx expands a slice argument into one multi-row VALUES list
	_, err := sqlx.NamedExecContext(ctx, postgres.Conn(ctx, r.DB), query, units)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.ProductUnit, error) {
	return r.get(ctx, `SELECT * FROM product_units WHERE id = $1`, id)
}

func (r *PGRepository) FindBySerial(ctx context.Context, productID, serial string) (*model.ProductUnit, error) {
	return r.get(ctx, `SELECT * FROM product_units WHERE product_id = $1 AND serial_number = $2`, productID, serial)
}

func (r *PGRepository) get(ctx context.Context, query string, args ...interface{}) (*model.ProductUnit, error) {
	var u model.ProductUnit
	if err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindByItem(ctx context.Context, purchaseOrderItemID string) ([]model.ProductUnit, error) {
	units := []model.ProductUnit{}
	query := `SELECT * FROM product_units WHERE purchase_order_item_id = $1 ORDER BY created_at, serial_number`
	err := sqlx.SelectContext(ctx, postgres.Conn(ctx, r.DB), &units, query, purchaseOrderItemID)
	return units, err
}

func (r *PGRepository) FindBySalesItem(ctx context.Context, salesOrderItemID string) ([]model.ProductUnit, error) {
	units := []model.ProductUnit{}
	query := `SELECT * FROM product_units WHERE sales_order_item_id = $1 ORDER BY date_of_purchase, id`
	err := sqlx.SelectContext(ctx, postgres.Conn(ctx, r.DB), &units, query, salesOrderItemID)
	return units, err
}

func (r *PGRepository) SearchBySerialPrefix(ctx context.Context, prefix string, limit int) ([]model.ProductUnit, error) {
	units := []model.ProductUnit{}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	query := `SELECT * FROM product_units WHERE serial_number ILIKE $1 ORDER BY serial_number LIMIT $2`
	err := sqlx.SelectContext(ctx, postgres.Conn(ctx, r.DB), &units, query, escaped+"%", limit)
	return units, err
}

func (r *PGRepository) CountByItem(ctx context.Context, purchaseOrderItemID string) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM product_units WHERE purchase_order_item_id = $1`
	err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &count, query, purchaseOrderItemID)
	return count, err
}

func (r *PGRepository) ExistingSerials(ctx context.Context, productID string, serials []string) ([]string, error) {
	existing := []string{}
	if len(serials) == 0 {
		return existing, nil
	}
	query, args, err := sqlx.In(`SELECT serial_number FROM product_units WHERE product_id = ? AND serial_number IN (?) ORDER BY serial_number`, productID, serials)
	if err != nil {
		return nil, err
	}
	conn := postgres.Conn(ctx, r.DB)
	err = sqlx.SelectContext(ctx, conn, &existing, conn.Rebind(query), args...)
	return existing, err
}

func (r *PGRepository) Summary(ctx context.Context, productID string) (int64, int64, error) {
	var row struct {
		Registered int64 `db:"registered"`
		Sold       int64 `db:"sold"`
	}
	query := `
		SELECT count(*) AS registered,
		       count(*) FILTER (WHERE is_sold) AS sold
		FROM product_units
		WHERE product_id = $1
	`
	err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &row, query, productID)
	return row.Registered, row.Sold, err
}

func (r *PGRepository) LockUnsold(ctx context.Context, productID string, limit int64) ([]model.ProductUnit, error) {
	units := []model.ProductUnit{}
	query := `
		SELECT * FROM product_units
		WHERE product_id = $1 AND is_sold = false
		ORDER BY date_of_purchase, created_at, id
		LIMIT $2
		FOR UPDATE
	`
	err := sqlx.SelectContext(ctx, postgres.Conn(ctx, r.DB), &units, query, productID, limit)
	return units, err
}

func (r *PGRepository) MarkSold(ctx context.Context, unitIDs []string, salesOrderItemID string, soldAt time.Time) error {
	if len(unitIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`
		UPDATE product_units
		SET is_sold = true, date_of_sale = ?, sales_order_item_id = ?, updated_at = ?
		WHERE id IN (?) AND is_sold = false
	`, soldAt, salesOrderItemID, soldAt, unitIDs)
	if err != nil {
		return err
	}
	conn := postgres.Conn(ctx, r.DB)
	res, err := conn.ExecContext(ctx, conn.Rebind(query), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != int64(len(unitIDs)) {
		return errors.New("product unit was sold concurrently")
	}
	return nil
}

func (r *PGRepository) SetWarranty(ctx context.Context, unitID, warrantyID string, at time.Time) error {
	query := `UPDATE product_units SET warranty_id = $1, updated_at = $2 WHERE id = $3`
	_, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, query, warrantyID, at, unitID)
	return err
}
