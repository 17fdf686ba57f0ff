package warranty

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/warranty/dto"
)

type UseCase interface {
	// Warranty Engine
	CreateTemplate(ctx context.Context, input *dto.CreateTemplateInput) (*model.Warranty, error)
	GetTemplate(ctx context.Context, id string) (*model.Warranty, error)
	// UpdateTemplate affects windows attached afterwards only.
	UpdateTemplate(ctx context.Context, input *dto.UpdateTemplateInput) (*model.Warranty, error)
	LinkProduct(ctx context.Context, productID, warrantyID string) error
	AttachWarranty(ctx context.Context, unitID, warrantyID string, start time.Time) (*model.WarrantyUnit, error)
	AttachProductWarranties(ctx context.Context, unit *model.ProductUnit, start time.Time) ([]model.WarrantyUnit, error)
	LookupUnitWarranty(ctx context.Context, productID, serial string) (*dto.UnitWarranty, error)

	// Claim Validator
	CreateClaim(ctx context.Context, input *dto.CreateClaimInput) (*model.WarrantyClaim, error)
	ListClaims(ctx context.Context, productUnitID string) ([]model.WarrantyClaim, error)
}
