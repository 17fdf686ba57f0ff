package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
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

func (r *PGRepository) LockProduct(ctx context.Context, productID string) (*model.Product, error) {
	var p model.Product
	query := `SELECT * FROM products WHERE id = $1 FOR UPDATE`
	err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &p, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) AdjustStock(ctx context.Context, productID string, delta int64, at time.Time) (int64, bool, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $1, updated_at = $3
		WHERE id = $2 AND stock_quantity + $1 >= 0
		RETURNING stock_quantity
	`
	var after int64
	err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &after, query, delta, productID, at)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return after, true, nil
}

func (r *PGRepository) LogMovement(ctx context.Context, m *model.StockMovement) error {
	query := `
        INSERT INTO stock_movements (
            id, product_id, movement_type, quantity_change,
            quantity_before, quantity_after, reference_type, reference_id,
            created_by, created_at
        )
        VALUES (
            :id, :product_id, :movement_type, :quantity_change,
            :quantity_before, :quantity_after, :reference_type, :reference_id,
            :created_by, :created_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Conn(ctx, r.DB), query, m)
	return err
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var items []model.StockMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	if f.ReferenceType != "" {
		conditions = append(conditions, "reference_type = :reference_type")
		args["reference_type"] = f.ReferenceType
	}
	if f.ReferenceID != "" {
		conditions = append(conditions, "reference_id = :reference_id")
		args["reference_id"] = f.ReferenceID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	conn := postgres.Conn(ctx, r.DB)

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM stock_movements"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, conn, &count, conn.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC, id"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	err = sqlx.SelectContext(ctx, conn, &items, conn.Rebind(listQuery), listArgs...)
	return items, count, err
}
