package handler

import (
	"context"

	stockv1 "github.com/fekuna/omnipos-stock-service/api/stockv1"
	"github.com/fekuna/omnipos-stock-service/internal/auth"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/convert"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/sales"
	"github.com/fekuna/omnipos-stock-service/internal/sales/dto"
)

type SalesHandler struct {
	uc     sales.UseCase
	logger logger.ZapLogger
}

func NewSalesHandler(uc sales.UseCase, log logger.ZapLogger) *SalesHandler {
	return &SalesHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SalesHandler) CreateSalesOrder(ctx context.Context, req *stockv1.CreateSalesOrderRequest) (*stockv1.SalesOrderResponse, error) {
	input, err := mapInput(ctx, req)
	if err != nil {
		return nil, err
	}

	so, err := h.uc.CreateSalesOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	return &stockv1.SalesOrderResponse{SalesOrder: mapOrderToProto(so)}, nil
}

func (h *SalesHandler) GetSalesOrder(ctx context.Context, req *stockv1.GetSalesOrderRequest) (*stockv1.SalesOrderResponse, error) {
	so, err := h.uc.GetSalesOrder(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &stockv1.SalesOrderResponse{SalesOrder: mapOrderToProto(so)}, nil
}

func (h *SalesHandler) QuoteSalesOrder(ctx context.Context, req *stockv1.CreateSalesOrderRequest) (*stockv1.QuoteResponse, error) {
	input, err := mapInput(ctx, req)
	if err != nil {
		return nil, err
	}

	totals, err := h.uc.QuoteSalesOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	return &stockv1.QuoteResponse{
		Subtotal:       totals.Subtotal.StringFixed(2),
		DiscountAmount: totals.DiscountAmount.StringFixed(2),
		TaxAmount:      totals.TaxAmount.StringFixed(2),
		ShippingCost:   totals.ShippingCost.StringFixed(2),
		GrandTotal:     totals.GrandTotal.StringFixed(2),
	}, nil
}

func mapInput(ctx context.Context, req *stockv1.CreateSalesOrderRequest) (*dto.CreateSalesOrderInput, error) {
	lines := make([]dto.LineInput, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = dto.LineInput{ProductID: l.ProductID, Quantity: l.Quantity}
		if l.Price != "" {
			price, err := convert.Money("price", l.Price)
			if err != nil {
				return nil, err
			}
			lines[i].Price = &price
		}
	}

	shipping, err := convert.Money("shipping_cost", req.ShippingCost)
	if err != nil {
		return nil, err
	}

	return &dto.CreateSalesOrderInput{
		CustomerID:   req.CustomerID,
		OrderDate:    convert.Time(req.OrderDate),
		ShipmentDate: req.ShipmentDate,
		Lines:        lines,
		DiscountIDs:  req.DiscountIDs,
		TaxIDs:       req.TaxIDs,
		ShippingCost: shipping,
		UserID:       auth.GetUserID(ctx),
	}, nil
}

func mapOrderToProto(so *model.SalesOrder) *stockv1.SalesOrder {
	items := make([]*stockv1.SalesOrderItem, len(so.Items))
	for i := range so.Items {
		item := &so.Items[i]
		items[i] = &stockv1.SalesOrderItem{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			Price:      item.Price.StringFixed(2),
			TotalPrice: item.TotalPrice.StringFixed(2),
			Units:      convert.Units(item.Units),
		}
	}

	return &stockv1.SalesOrder{
		ID:             so.ID,
		CustomerID:     so.CustomerID,
		OrderDate:      so.OrderDate,
		ShipmentDate:   so.ShipmentDate,
		Subtotal:       so.Subtotal.StringFixed(2),
		DiscountAmount: so.DiscountAmount.StringFixed(2),
		TaxAmount:      so.TaxAmount.StringFixed(2),
		ShippingCost:   so.ShippingCost.StringFixed(2),
		GrandTotal:     so.GrandTotal.StringFixed(2),
		Items:          items,
	}
}
