// Package server assembles the gRPC service and the HTTP ops endpoints.
package server

import (
	stockv1 "github.com/fekuna/omnipos-stock-service/api/stockv1"
	"github.com/fekuna/omnipos-stock-service/internal/app"
	invH "github.com/fekuna/omnipos-stock-service/internal/inventory/handler"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/middleware"
	prodH "github.com/fekuna/omnipos-stock-service/internal/product/handler"
	purH "github.com/fekuna/omnipos-stock-service/internal/purchase/handler"
	salesH "github.com/fekuna/omnipos-stock-service/internal/sales/handler"
	unitH "github.com/fekuna/omnipos-stock-service/internal/unit/handler"
	warH "github.com/fekuna/omnipos-stock-service/internal/warranty/handler"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// NewGRPCServer registers every stock service on a new server. The health
// server starts out SERVING for the empty service name.
func NewGRPCServer(uc *app.UseCases, tr *i18n.Translator, log logger.ZapLogger) (*grpc.Server, *health.Server) {
	// the error interceptor sits outside logging so logs keep the typed error
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.ContextInterceptor(),
			middleware.ErrorInterceptor(tr),
			middleware.LoggingInterceptor(log),
		),
	)

	stockv1.RegisterCatalogServiceServer(srv, prodH.NewProductHandler(uc.Products, log))
	stockv1.RegisterInventoryServiceServer(srv, invH.NewInventoryHandler(uc.Ledger, log))
	stockv1.RegisterPurchaseServiceServer(srv, purH.NewPurchaseHandler(uc.Purchases, log))
	stockv1.RegisterUnitServiceServer(srv, unitH.NewUnitHandler(uc.Units, log))
	stockv1.RegisterSalesServiceServer(srv, salesH.NewSalesHandler(uc.Sales, log))
	stockv1.RegisterWarrantyServiceServer(srv, warH.NewWarrantyHandler(uc.Warranty, log))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return srv, hs
}
