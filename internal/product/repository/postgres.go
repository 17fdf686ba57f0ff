package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database/postgres"
	"github.com/fekuna/omnipos-stock-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, sku, name, stock_quantity, cost, price, serial_tracked,
            is_active, updated_by, created_at, updated_at
        )
        VALUES (
            :id, :sku, :name, :stock_quantity, :cost, :price, :serial_tracked,
            :is_active, :updated_by, :created_at, :updated_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Conn(ctx, r.DB), query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SerialTracked != nil {
		conditions = append(conditions, "serial_tracked = :serial_tracked")
		args["serial_tracked"] = *f.SerialTracked
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	conn := postgres.Conn(ctx, r.DB)

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM products"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, conn, &count, conn.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// whitelist, the column name is interpolated
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "price"
		case "stock":
			orderBy = "stock_quantity"
		default:
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)
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
	if err := sqlx.SelectContext(ctx, conn, &products, conn.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

// Update writes catalog fields only. stock_quantity is left to the ledger.
func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET sku = :sku,
            name = :name,
            cost = :cost,
            price = :price,
            serial_tracked = :serial_tracked,
            is_active = :is_active,
            updated_by = :updated_by,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Conn(ctx, r.DB), query, p)
	return err
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE sku = $1`
	args := []interface{}{sku}
	if excludeID != "" {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}

	err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &count, query, args...)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
