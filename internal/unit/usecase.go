package unit

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/search"
	"github.com/fekuna/omnipos-stock-service/internal/unit/dto"
)

type UseCase interface {
	// Unit Registrar
	RegisterUnits(ctx context.Context, input *dto.RegisterUnitsInput) ([]model.ProductUnit, error)
	UnregisteredQuantity(ctx context.Context, purchaseOrderItemID string) (int64, error)
	ListUnits(ctx context.Context, purchaseOrderItemID string) ([]model.ProductUnit, error)
	UnitSummary(ctx context.Context, productID string) (*dto.UnitSummary, error)
	SearchUnits(ctx context.Context, query string, limit int) ([]model.ProductUnit, error)

	// Sale Binder. Joins the caller's transaction. Products that are not
	// serial tracked bind nothing.
	BindUnitsToSale(ctx context.Context, input *dto.BindUnitsInput) ([]model.ProductUnit, error)
}

// WarrantyAttacher opens warranty windows for a unit that was just sold.
type WarrantyAttacher interface {
	AttachProductWarranties(ctx context.Context, unit *model.ProductUnit, start time.Time) ([]model.WarrantyUnit, error)
}

// SearchIndex is the document index behind SearchUnits. search.Client
// satisfies it.
type SearchIndex interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc any) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error)
}
