package handler

import (
	"context"

	stockv1 "github.com/fekuna/omnipos-stock-service/api/stockv1"
	"github.com/fekuna/omnipos-stock-service/internal/inventory"
	"github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/convert"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) ListMovements(ctx context.Context, req *stockv1.ListMovementsRequest) (*stockv1.ListMovementsResponse, error) {
	filters := &dto.MovementFilters{
		ProductID:     req.ProductID,
		MovementType:  req.MovementType,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Page:          int(req.Page),
		PageSize:      int(req.PageSize),
	}

	movements, count, err := h.uc.ListMovements(ctx, filters)
	if err != nil {
		return nil, err
	}

	protos := make([]*stockv1.StockMovement, len(movements))
	for i := range movements {
		protos[i] = mapMovementToProto(&movements[i])
	}

	return &stockv1.ListMovementsResponse{
		Movements: protos,
		Total:     int32(count),
	}, nil
}

func mapMovementToProto(m *model.StockMovement) *stockv1.StockMovement {
	return &stockv1.StockMovement{
		ID:             m.ID,
		ProductID:      m.ProductID,
		MovementType:   string(m.MovementType),
		QuantityChange: m.QuantityChange,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		ReferenceType:  convert.Deref(m.ReferenceType),
		ReferenceID:    convert.Deref(m.ReferenceID),
		CreatedBy:      convert.Deref(m.CreatedBy),
		CreatedAt:      m.CreatedAt,
	}
}
