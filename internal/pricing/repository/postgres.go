package repository

import (
	"context"

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

func (r *PGRepository) FindTaxesByIDs(ctx context.Context, ids []string) ([]model.Tax, error) {
	var taxes []model.Tax
	if err := r.selectIn(ctx, &taxes, `SELECT id, name, rate FROM taxes WHERE id IN (?)`, ids); err != nil {
		return nil, err
	}
	return taxes, nil
}

func (r *PGRepository) FindDiscountsByIDs(ctx context.Context, ids []string) ([]model.Discount, error) {
	var discounts []model.Discount
	if err := r.selectIn(ctx, &discounts, `SELECT id, name, rate FROM discounts WHERE id IN (?)`, ids); err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *PGRepository) selectIn(ctx context.Context, dest interface{}, query string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}
	conn := postgres.Conn(ctx, r.DB)
	return sqlx.SelectContext(ctx, conn, dest, conn.Rebind(q), args...)
}
