package handler

import (
	"context"

	stockv1 "github.com/fekuna/omnipos-stock-service/api/stockv1"
	"github.com/fekuna/omnipos-stock-service/internal/auth"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/convert"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/warranty"
	"github.com/fekuna/omnipos-stock-service/internal/warranty/dto"
	"google.golang.org/protobuf/types/known/emptypb"
)

type WarrantyHandler struct {
	uc     warranty.UseCase
	logger logger.ZapLogger
}

func NewWarrantyHandler(uc warranty.UseCase, log logger.ZapLogger) *WarrantyHandler {
	return &WarrantyHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *WarrantyHandler) CreateWarrantyTemplate(ctx context.Context, req *stockv1.CreateWarrantyTemplateRequest) (*stockv1.WarrantyTemplateResponse, error) {
	w, err := h.uc.CreateTemplate(ctx, &dto.CreateTemplateInput{
		WarrantyNumber: req.WarrantyNumber,
		WarrantyType:   model.WarrantyType(req.WarrantyType),
		Duration:       int(req.Duration),
		Terms:          req.Terms,
		UserID:         auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, err
	}
	return &stockv1.WarrantyTemplateResponse{Warranty: mapTemplateToProto(w)}, nil
}

func (h *WarrantyHandler) UpdateWarrantyTemplate(ctx context.Context, req *stockv1.UpdateWarrantyTemplateRequest) (*stockv1.WarrantyTemplateResponse, error) {
	input := &dto.UpdateTemplateInput{
		ID:             req.ID,
		WarrantyNumber: req.WarrantyNumber,
		Terms:          req.Terms,
		UserID:         auth.GetUserID(ctx),
	}
	if req.Duration != nil {
		d := int(*req.Duration)
		input.Duration = &d
	}

	w, err := h.uc.UpdateTemplate(ctx, input)
	if err != nil {
		return nil, err
	}
	return &stockv1.WarrantyTemplateResponse{Warranty: mapTemplateToProto(w)}, nil
}

func (h *WarrantyHandler) LinkProductWarranty(ctx context.Context, req *stockv1.LinkProductWarrantyRequest) (*emptypb.Empty, error) {
	if err := h.uc.LinkProduct(ctx, req.ProductID, req.WarrantyID); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (h *WarrantyHandler) LookupUnitWarranty(ctx context.Context, req *stockv1.LookupUnitWarrantyRequest) (*stockv1.LookupUnitWarrantyResponse, error) {
	uw, err := h.uc.LookupUnitWarranty(ctx, req.ProductID, req.SerialNumber)
	if err != nil {
		return nil, err
	}

	windows := make([]*stockv1.WarrantyWindow, len(uw.Warranties))
	for i, v := range uw.Warranties {
		windows[i] = &stockv1.WarrantyWindow{
			WarrantyID:    v.WarrantyUnit.WarrantyID,
			WarrantyType:  int32(v.WarrantyUnit.WarrantyType),
			WarrantyStart: v.WarrantyUnit.WarrantyStart,
			WarrantyEnd:   v.WarrantyUnit.WarrantyEnd,
			Status:        string(v.Status),
		}
		if v.Warranty != nil {
			windows[i].Terms = v.Warranty.Terms
		}
	}

	return &stockv1.LookupUnitWarrantyResponse{
		Unit:       convert.Unit(&uw.Unit),
		Warranties: windows,
		Eligible:   uw.Eligible,
		CheckedAt:  uw.CheckedAt,
	}, nil
}

func (h *WarrantyHandler) CreateWarrantyClaim(ctx context.Context, req *stockv1.CreateWarrantyClaimRequest) (*stockv1.WarrantyClaimResponse, error) {
	claim, err := h.uc.CreateClaim(ctx, &dto.CreateClaimInput{
		ProductUnitID:     req.ProductUnitID,
		ClaimType:         model.ClaimType(req.ClaimType),
		Priority:          model.ClaimPriority(req.Priority),
		ResolutionDetails: req.ResolutionDetails,
		AssignedTo:        req.AssignedTo,
		CreatedBy:         auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, err
	}
	return &stockv1.WarrantyClaimResponse{Claim: mapClaimToProto(claim)}, nil
}

func (h *WarrantyHandler) ListClaims(ctx context.Context, req *stockv1.ListClaimsRequest) (*stockv1.ListClaimsResponse, error) {
	claims, err := h.uc.ListClaims(ctx, req.ProductUnitID)
	if err != nil {
		return nil, err
	}

	protos := make([]*stockv1.WarrantyClaim, len(claims))
	for i := range claims {
		protos[i] = mapClaimToProto(&claims[i])
	}
	return &stockv1.ListClaimsResponse{Claims: protos}, nil
}

func mapTemplateToProto(w *model.Warranty) *stockv1.WarrantyTemplate {
	return &stockv1.WarrantyTemplate{
		ID:             w.ID,
		WarrantyNumber: w.WarrantyNumber,
		WarrantyType:   int32(w.WarrantyType),
		Duration:       int32(w.Duration),
		Terms:          w.Terms,
		UpdatedAt:      w.UpdatedAt,
	}
}

func mapClaimToProto(c *model.WarrantyClaim) *stockv1.WarrantyClaim {
	return &stockv1.WarrantyClaim{
		ID:                c.ID,
		WarrantyID:        c.WarrantyID,
		ProductUnitID:     c.ProductUnitID,
		ClaimType:         string(c.ClaimType),
		Priority:          string(c.Priority),
		ResolutionDetails: c.ResolutionDetails,
		AssignedTo:        convert.Deref(c.AssignedTo),
		CreatedBy:         convert.Deref(c.CreatedBy),
		CreatedAt:         c.CreatedAt,
	}
}
