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

func (r *PGRepository) Create(ctx context.Context, so *model.SalesOrder) error {
	query := `
        INSERT INTO sales_orders (
            id, customer_id, order_date, shipment_date, subtotal,
            discount_amount, tax_amount, shipping_cost, grand_total,
            updated_by, created_at, updated_at
        )
        VALUES (
            :id, :customer_id, :order_date, :shipment_date, :subtotal,
            :discount_amount, :tax_amount, :shipping_cost, :grand_total,
            :updated_by, :created_at, :updated_at
        )
    `
	itemQuery := `
        INSERT INTO sales_order_items (
            id, sales_order_id, product_id, quantity, price, total_price, created_at
        )
        VALUES (
            :id, :sales_order_id, :product_id, :quantity, :price, :total_price, :created_at
        )
    `
	conn := postgres.Conn(ctx, r.DB)
	if _, err := sqlx.NamedExecContext(ctx, conn, query, so); err != nil {
		return err
	}
	for i := range so.Items {
		if _, err := sqlx.NamedExecContext(ctx, conn, itemQuery, &so.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.SalesOrder, error) {
	conn := postgres.Conn(ctx, r.DB)

	var so model.SalesOrder
	if err := sqlx.GetContext(ctx, conn, &so, `SELECT * FROM sales_orders WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	query := `SELECT * FROM sales_order_items WHERE sales_order_id = $1 ORDER BY created_at, id`
	if err := sqlx.SelectContext(ctx, conn, &so.Items, query, id); err != nil {
		return nil, err
	}
	return &so, nil
}
