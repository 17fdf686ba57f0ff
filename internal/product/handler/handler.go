package handler

import (
	"context"

	stockv1 "github.com/fekuna/omnipos-stock-service/api/stockv1"
	"github.com/fekuna/omnipos-stock-service/internal/auth"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/convert"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/product"
	"github.com/fekuna/omnipos-stock-service/internal/product/dto"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *stockv1.CreateProductRequest) (*stockv1.ProductResponse, error) {
	cost, err := convert.Money("cost", req.Cost)
	if err != nil {
		return nil, err
	}
	price, err := convert.Money("price", req.Price)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.CreateProduct(ctx, &dto.CreateProductInput{
		SKU:           req.SKU,
		Name:          req.Name,
		Cost:          cost,
		Price:         price,
		SerialTracked: req.SerialTracked,
		UserID:        auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, err
	}

	return &stockv1.ProductResponse{Product: mapProductToProto(p)}, nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *stockv1.GetProductRequest) (*stockv1.ProductResponse, error) {
	p, err := h.uc.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &stockv1.ProductResponse{Product: mapProductToProto(p)}, nil
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *stockv1.ListProductsRequest) (*stockv1.ListProductsResponse, error) {
	filters := &dto.ProductFilters{
		IsActive:      req.IsActive,
		SerialTracked: req.SerialTracked,
		SearchQuery:   req.Query,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
		Page:          int(req.Page),
		PageSize:      int(req.PageSize),
	}

	products, count, err := h.uc.ListProducts(ctx, filters)
	if err != nil {
		return nil, err
	}

	protos := make([]*stockv1.Product, len(products))
	for i := range products {
		protos[i] = mapProductToProto(&products[i])
	}

	return &stockv1.ListProductsResponse{
		Products: protos,
		Total:    int32(count),
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *stockv1.UpdateProductRequest) (*stockv1.ProductResponse, error) {
	cost, err := convert.Money("cost", req.Cost)
	if err != nil {
		return nil, err
	}
	price, err := convert.Money("price", req.Price)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:            req.ID,
		SKU:           req.SKU,
		Name:          req.Name,
		Cost:          cost,
		Price:         price,
		SerialTracked: req.SerialTracked,
		IsActive:      req.IsActive,
		UserID:        auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, err
	}

	return &stockv1.ProductResponse{Product: mapProductToProto(p)}, nil
}

func mapProductToProto(p *model.Product) *stockv1.Product {
	return &stockv1.Product{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		StockQuantity: p.StockQuantity,
		Cost:          p.Cost.StringFixed(2),
		Price:         p.Price.StringFixed(2),
		SerialTracked: p.SerialTracked,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
