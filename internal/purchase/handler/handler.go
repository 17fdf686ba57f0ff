package handler

import (
	"context"

	stockv1 "github.com/fekuna/omnipos-stock-service/api/stockv1"
	"github.com/fekuna/omnipos-stock-service/internal/auth"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/convert"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/purchase"
	"github.com/fekuna/omnipos-stock-service/internal/purchase/dto"
	"google.golang.org/protobuf/types/known/emptypb"
)

type PurchaseHandler struct {
	uc     purchase.UseCase
	logger logger.ZapLogger
}

func NewPurchaseHandler(uc purchase.UseCase, log logger.ZapLogger) *PurchaseHandler {
	return &PurchaseHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *PurchaseHandler) CreatePurchaseOrder(ctx context.Context, req *stockv1.CreatePurchaseOrderRequest) (*stockv1.PurchaseOrderResponse, error) {
	items, err := mapItems(req.Items)
	if err != nil {
		return nil, err
	}
	shipping, err := convert.Money("shipping_cost", req.ShippingCost)
	if err != nil {
		return nil, err
	}

	po, err := h.uc.CreatePurchaseOrder(ctx, &dto.CreatePurchaseOrderInput{
		VendorID:     req.VendorID,
		OrderDate:    convert.Time(req.OrderDate),
		Items:        items,
		DiscountIDs:  req.DiscountIDs,
		TaxIDs:       req.TaxIDs,
		ShippingCost: shipping,
		UserID:       auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, err
	}

	return &stockv1.PurchaseOrderResponse{PurchaseOrder: mapOrderToProto(po, nil)}, nil
}

func (h *PurchaseHandler) GetPurchaseOrder(ctx context.Context, req *stockv1.GetPurchaseOrderRequest) (*stockv1.PurchaseOrderResponse, error) {
	detail, err := h.uc.GetPurchaseOrder(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &stockv1.PurchaseOrderResponse{PurchaseOrder: mapOrderToProto(detail.Order, detail.Unregistered)}, nil
}

func (h *PurchaseHandler) EditPurchaseOrder(ctx context.Context, req *stockv1.EditPurchaseOrderRequest) (*stockv1.PurchaseOrderResponse, error) {
	items, err := mapItems(req.Items)
	if err != nil {
		return nil, err
	}
	shipping, err := convert.Money("shipping_cost", req.ShippingCost)
	if err != nil {
		return nil, err
	}

	po, err := h.uc.EditPurchaseOrder(ctx, &dto.EditPurchaseOrderInput{
		ID:           req.ID,
		VendorID:     req.VendorID,
		OrderDate:    convert.Time(req.OrderDate),
		Items:        items,
		DiscountIDs:  req.DiscountIDs,
		TaxIDs:       req.TaxIDs,
		ShippingCost: shipping,
		UserID:       auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, err
	}

	return &stockv1.PurchaseOrderResponse{PurchaseOrder: mapOrderToProto(po, nil)}, nil
}

func (h *PurchaseHandler) CancelPurchaseOrder(ctx context.Context, req *stockv1.CancelPurchaseOrderRequest) (*emptypb.Empty, error) {
	if err := h.uc.CancelPurchaseOrder(ctx, req.ID, auth.GetUserID(ctx)); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (h *PurchaseHandler) DeliverPurchaseOrder(ctx context.Context, req *stockv1.DeliverPurchaseOrderRequest) (*stockv1.PurchaseOrderResponse, error) {
	po, err := h.uc.DeliverPurchaseOrder(ctx, &dto.DeliverPurchaseOrderInput{
		ID:            req.ID,
		DeliveredDate: convert.Time(req.DeliveredDate),
		UserID:        auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, err
	}

	return &stockv1.PurchaseOrderResponse{PurchaseOrder: mapOrderToProto(po, nil)}, nil
}

func mapItems(in []*stockv1.PurchaseItemInput) ([]dto.ItemInput, error) {
	items := make([]dto.ItemInput, len(in))
	for i, item := range in {
		cost, err := convert.Money("unit_cost", item.UnitCost)
		if err != nil {
			return nil, err
		}
		items[i] = dto.ItemInput{ProductID: item.ProductID, Quantity: item.Quantity, UnitCost: cost}
	}
	return items, nil
}

// mapOrderToProto fills each line's unregistered count from unregistered
// when given and leaves it zero otherwise.
func mapOrderToProto(po *model.PurchaseOrder, unregistered map[string]int64) *stockv1.PurchaseOrder {
	items := make([]*stockv1.PurchaseOrderItem, len(po.Items))
	for i, item := range po.Items {
		items[i] = &stockv1.PurchaseOrderItem{
			ID:           item.ID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitCost:     item.UnitCost.StringFixed(2),
			TotalPrice:   item.TotalPrice.StringFixed(2),
			Unregistered: unregistered[item.ID],
		}
	}

	return &stockv1.PurchaseOrder{
		ID:             po.ID,
		VendorID:       po.VendorID,
		OrderDate:      po.OrderDate,
		DeliveredDate:  po.DeliveredDate,
		Status:         string(po.Status),
		Subtotal:       po.Subtotal.StringFixed(2),
		DiscountAmount: po.DiscountAmount.StringFixed(2),
		TaxAmount:      po.TaxAmount.StringFixed(2),
		ShippingCost:   po.ShippingCost.StringFixed(2),
		GrandTotal:     po.GrandTotal.StringFixed(2),
		Items:          items,
	}
}
