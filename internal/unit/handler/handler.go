package handler

import (
	"context"

	stockv1 "github.com/fekuna/omnipos-stock-service/api/stockv1"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/convert"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/unit"
	"github.com/fekuna/omnipos-stock-service/internal/unit/dto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type UnitHandler struct {
	uc     unit.UseCase
	logger logger.ZapLogger
}

func NewUnitHandler(uc unit.UseCase, log logger.ZapLogger) *UnitHandler {
	return &UnitHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *UnitHandler) RegisterProductUnits(ctx context.Context, req *stockv1.RegisterProductUnitsRequest) (*stockv1.UnitsResponse, error) {
	units, err := h.uc.RegisterUnits(ctx, &dto.RegisterUnitsInput{
		PurchaseOrderItemID: req.PurchaseOrderItemID,
		Serials:             req.SerialNumbers,
	})
	if err != nil {
		return nil, err
	}
	return &stockv1.UnitsResponse{Units: convert.Units(units)}, nil
}

func (h *UnitHandler) GetUnregisteredQuantity(ctx context.Context, req *stockv1.GetUnregisteredQuantityRequest) (*wrapperspb.Int64Value, error) {
	n, err := h.uc.UnregisteredQuantity(ctx, req.PurchaseOrderItemID)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Int64(n), nil
}

func (h *UnitHandler) ListUnits(ctx context.Context, req *stockv1.ListUnitsRequest) (*stockv1.UnitsResponse, error) {
	units, err := h.uc.ListUnits(ctx, req.PurchaseOrderItemID)
	if err != nil {
		return nil, err
	}
	return &stockv1.UnitsResponse{Units: convert.Units(units)}, nil
}

func (h *UnitHandler) GetUnitSummary(ctx context.Context, req *stockv1.GetUnitSummaryRequest) (*stockv1.UnitSummary, error) {
	s, err := h.uc.UnitSummary(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	return &stockv1.UnitSummary{
		ProductID:     s.ProductID,
		StockQuantity: s.StockQuantity,
		Registered:    s.Registered,
		Unsold:        s.Unsold,
		Sold:          s.Sold,
	}, nil
}

func (h *UnitHandler) SearchUnits(ctx context.Context, req *stockv1.SearchUnitsRequest) (*stockv1.UnitsResponse, error) {
	units, err := h.uc.SearchUnits(ctx, req.Query, int(req.Limit))
	if err != nil {
		return nil, err
	}
	return &stockv1.UnitsResponse{Units: convert.Units(units)}, nil
}
