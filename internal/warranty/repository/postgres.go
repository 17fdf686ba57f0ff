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

func (r *PGRepository) CreateTemplate(ctx context.Context, w *model.Warranty) error {
	query := `
        INSERT INTO warranties (
            id, warranty_number, warranty_type, duration, terms,
            updated_by, created_at, updated_at
        )
        VALUES (
            :id, :warranty_number, :warranty_type, :duration, :terms,
            :updated_by, :created_at, :updated_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Conn(ctx, r.DB), query, w)
	return err
}

func (r *PGRepository) FindTemplateByID(ctx context.Context, id string) (*model.Warranty, error) {
	var w model.Warranty
	err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &w, `SELECT * FROM warranties WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *PGRepository) UpdateTemplate(ctx context.Context, w *model.Warranty) error {
	query := `
        UPDATE warranties
        SET warranty_number = :warranty_number,
            duration = :duration,
            terms = :terms,
            updated_by = :updated_by,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Conn(ctx, r.DB), query, w)
	return err
}

func (r *PGRepository) LinkProduct(ctx context.Context, productID, warrantyID string) error {
	query := `
		INSERT INTO product_warranties (product_id, warranty_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (product_id, warranty_id) DO NOTHING
	`
	_, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, query, productID, warrantyID)
	return err
}

func (r *PGRepository) FindTemplatesByProduct(ctx context.Context, productID string) ([]model.Warranty, error) {
	templates := []model.Warranty{}
	query := `
		SELECT w.* FROM warranties w
		JOIN product_warranties pw ON pw.warranty_id = w.id
		WHERE pw.product_id = $1
		ORDER BY pw.created_at, w.id
	`
	err := sqlx.SelectContext(ctx, postgres.Conn(ctx, r.DB), &templates, query, productID)
	return templates, err
}

func (r *PGRepository) CreateWarrantyUnit(ctx context.Context, wu *model.WarrantyUnit) error {
	query := `
        INSERT INTO warranty_units (
            id, product_unit_id, warranty_id, warranty_type,
            warranty_start, warranty_end, created_at
        )
        VALUES (
            :id, :product_unit_id, :warranty_id, :warranty_type,
            :warranty_start, :warranty_end, :created_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Conn(ctx, r.DB), query, wu)
	return err
}

func (r *PGRepository) FindWarrantyUnitsByUnit(ctx context.Context, productUnitID string) ([]model.WarrantyUnit, error) {
	wus := []model.WarrantyUnit{}
	query := `SELECT * FROM warranty_units WHERE product_unit_id = $1 ORDER BY warranty_type`
	err := sqlx.SelectContext(ctx, postgres.Conn(ctx, r.DB), &wus, query, productUnitID)
	return wus, err
}

func (r *PGRepository) CreateClaim(ctx context.Context, c *model.WarrantyClaim) error {
	query := `
        INSERT INTO warranty_claims (
            id, warranty_id, product_unit_id, claim_type, priority,
            resolution_details, assigned_to, created_by, created_at, updated_at
        )
        VALUES (
            :id, :warranty_id, :product_unit_id, :claim_type, :priority,
            :resolution_details, :assigned_to, :created_by, :created_at, :updated_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Conn(ctx, r.DB), query, c)
	return err
}

func (r *PGRepository) FindClaimsByUnit(ctx context.Context, productUnitID string) ([]model.WarrantyClaim, error) {
	claims := []model.WarrantyClaim{}
	query := `SELECT * FROM warranty_claims WHERE product_unit_id = $1 ORDER BY created_at DESC, id`
	err := sqlx.SelectContext(ctx, postgres.Conn(ctx, r.DB), &claims, query, productUnitID)
	return claims, err
}
