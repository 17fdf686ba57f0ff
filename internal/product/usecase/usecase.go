package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/validate"
	"github.com/fekuna/omnipos-stock-service/internal/product"
	"github.com/fekuna/omnipos-stock-service/internal/product/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo   product.Repository
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if err := validateMoney(input.Cost, input.Price); err != nil {
		return nil, err
	}

	unique, err := uc.repo.IsSKUUnique(ctx, input.SKU, "")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !unique {
		return nil, apperror.Validation("SKU %s already exists", input.SKU).With("sku", input.SKU)
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		SKU:           input.SKU,
		Name:          input.Name,
		Cost:          input.Cost,
		Price:         input.Price,
		SerialTracked: input.SerialTracked,
		IsActive:      true,
		UpdatedBy:     userPtr(input.UserID),
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		uc.logger.Error("failed to create product", zap.String("sku", p.SKU), zap.Error(err))
		return nil, apperror.Ensure(err)
	}

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Ensure(err)
	}
	if p == nil {
		return nil, apperror.NotFound("product", id)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperror.Ensure(err)
	}
	return products, count, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if err := validateMoney(input.Cost, input.Price); err != nil {
		return nil, err
	}

	p, err := uc.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if p.SKU != input.SKU {
		unique, err := uc.repo.IsSKUUnique(ctx, input.SKU, p.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if !unique {
			return nil, apperror.Validation("SKU %s already exists", input.SKU).With("sku", input.SKU)
		}
	}

	p.SKU = input.SKU
	p.Name = input.Name
	p.Cost = input.Cost
	p.Price = input.Price
	p.SerialTracked = input.SerialTracked
	p.IsActive = input.IsActive
	p.UpdatedBy = userPtr(input.UserID)
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		uc.logger.Error("failed to update product", zap.String("product_id", p.ID), zap.Error(err))
		return nil, apperror.Ensure(err)
	}

	return p, nil
}

func validateMoney(cost, price decimal.Decimal) error {
	if cost.IsNegative() || price.IsNegative() {
		return apperror.Validation("cost and price cannot be negative")
	}
	return nil
}

func userPtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
