package sales

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pricing"
	"github.com/fekuna/omnipos-stock-service/internal/sales/dto"
)

type UseCase interface {
	// CreateSalesOrder reserves stock, prices the order, binds serialized
	// units and opens their warranties in one transaction.
	CreateSalesOrder(ctx context.Context, input *dto.CreateSalesOrderInput) (*model.SalesOrder, error)
	GetSalesOrder(ctx context.Context, id string) (*model.SalesOrder, error)
	// QuoteSalesOrder prices an order without reserving anything.
	QuoteSalesOrder(ctx context.Context, input *dto.CreateSalesOrderInput) (*pricing.Totals, error)
}
