package repository

import (
	"context"
	"database/sql"
	"errors"

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

const insertItemQuery = `
    INSERT INTO purchase_order_items (
        id, purchase_order_id, product_id, quantity, unit_cost, total_price, created_at
    )
    VALUES (
        :id, :purchase_order_id, :product_id, :quantity, :unit_cost, :total_price, :created_at
    )
`

func (r *PGRepository) Create(ctx context.Context, po *model.PurchaseOrder) error {
	query := `
        INSERT INTO purchase_orders (
            id, vendor_id, order_date, delivered_date, status, subtotal,
            discount_amount, tax_amount, shipping_cost, grand_total,
            updated_by, created_at, updated_at
        )
        VALUES (
            :id, :vendor_id, :order_date, :delivered_date, :status, :subtotal,
            :discount_amount, :tax_amount, :shipping_cost, :grand_total,
            :updated_by, :created_at, :updated_at
        )
    `
	conn := postgres.Conn(ctx, r.DB)
	if _, err := sqlx.NamedExecContext(ctx, conn, query, po); err != nil {
		return err
	}
	return r.insertItems(ctx, conn, po.Items)
}

func (r *PGRepository) insertItems(ctx context.Context, conn sqlx.ExtContext, items []model.PurchaseOrderItem) error {
	for i := range items {
		if _, err := sqlx.NamedExecContext(ctx, conn, insertItemQuery, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.PurchaseOrder, error) {
	return r.find(ctx, `SELECT * FROM purchase_orders WHERE id = $1`, id)
}

func (r *PGRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.PurchaseOrder, error) {
	return r.find(ctx, `SELECT * FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PGRepository) find(ctx context.Context, query, id string) (*model.PurchaseOrder, error) {
	conn := postgres.Conn(ctx, r.DB)

	var po model.PurchaseOrder
	if err := sqlx.GetContext(ctx, conn, &po, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	itemsQuery := `SELECT * FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY created_at, id`
	if err := sqlx.SelectContext(ctx, conn, &po.Items, itemsQuery, id); err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *PGRepository) Update(ctx context.Context, po *model.PurchaseOrder) error {
	query := `
        UPDATE purchase_orders
        SET vendor_id = :vendor_id,
            order_date = :order_date,
            delivered_date = :delivered_date,
            status = :status,
            subtotal = :subtotal,
            discount_amount = :discount_amount,
            tax_amount = :tax_amount,
            shipping_cost = :shipping_cost,
            grand_total = :grand_total,
            updated_by = :updated_by,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Conn(ctx, r.DB), query, po)
	return err
}

func (r *PGRepository) ReplaceItems(ctx context.Context, purchaseOrderID string, items []model.PurchaseOrderItem) error {
	conn := postgres.Conn(ctx, r.DB)
	if _, err := conn.ExecContext(ctx, `DELETE FROM purchase_order_items WHERE purchase_order_id = $1`, purchaseOrderID); err != nil {
		return err
	}
	return r.insertItems(ctx, conn, items)
}

func (r *PGRepository) FindItemByID(ctx context.Context, itemID string) (*model.PurchaseOrderItem, error) {
	return r.findItem(ctx, `SELECT * FROM purchase_order_items WHERE id = $1`, itemID)
}

func (r *PGRepository) FindItemByIDForUpdate(ctx context.Context, itemID string) (*model.PurchaseOrderItem, error) {
	return r.findItem(ctx, `SELECT * FROM purchase_order_items WHERE id = $1 FOR UPDATE`, itemID)
}

func (r *PGRepository) findItem(ctx context.Context, query, itemID string) (*model.PurchaseOrderItem, error) {
	var item model.PurchaseOrderItem
	if err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &item, query, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}
