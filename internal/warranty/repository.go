package warranty

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type Repository interface {
	CreateTemplate(ctx context.Context, w *model.Warranty) error
	FindTemplateByID(ctx context.Context, id string) (*model.Warranty, error)
	UpdateTemplate(ctx context.Context, w *model.Warranty) error

	// LinkProduct is idempotent.
	LinkProduct(ctx context.Context, productID, warrantyID string) error
	// FindTemplatesByProduct returns linked templates, oldest link first.
	FindTemplatesByProduct(ctx context.Context, productID string) ([]model.Warranty, error)

	CreateWarrantyUnit(ctx context.Context, wu *model.WarrantyUnit) error
	FindWarrantyUnitsByUnit(ctx context.Context, productUnitID string) ([]model.WarrantyUnit, error)

	CreateClaim(ctx context.Context, claim *model.WarrantyClaim) error
	FindClaimsByUnit(ctx context.Context, productUnitID string) ([]model.WarrantyClaim, error)
}
