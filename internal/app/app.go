// Package app wires repositories into use cases. cmd/grpc and the end to end
// tests share it.
package app

import (
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/inventory"
	invrepo "github.com/fekuna/omnipos-stock-service/internal/inventory/repository"
	invuc "github.com/fekuna/omnipos-stock-service/internal/inventory/usecase"
	"github.com/fekuna/omnipos-stock-service/internal/memstore"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database/postgres"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/retry"
	"github.com/fekuna/omnipos-stock-service/internal/pricing"
	pricingrepo "github.com/fekuna/omnipos-stock-service/internal/pricing/repository"
	"github.com/fekuna/omnipos-stock-service/internal/product"
	productrepo "github.com/fekuna/omnipos-stock-service/internal/product/repository"
	productuc "github.com/fekuna/omnipos-stock-service/internal/product/usecase"
	"github.com/fekuna/omnipos-stock-service/internal/purchase"
	purchaserepo "github.com/fekuna/omnipos-stock-service/internal/purchase/repository"
	purchaseuc "github.com/fekuna/omnipos-stock-service/internal/purchase/usecase"
	"github.com/fekuna/omnipos-stock-service/internal/sales"
	salesrepo "github.com/fekuna/omnipos-stock-service/internal/sales/repository"
	salesuc "github.com/fekuna/omnipos-stock-service/internal/sales/usecase"
	"github.com/fekuna/omnipos-stock-service/internal/unit"
	unitrepo "github.com/fekuna/omnipos-stock-service/internal/unit/repository"
	unituc "github.com/fekuna/omnipos-stock-service/internal/unit/usecase"
	"github.com/fekuna/omnipos-stock-service/internal/warranty"
	warrantyrepo "github.com/fekuna/omnipos-stock-service/internal/warranty/repository"
	warrantyuc "github.com/fekuna/omnipos-stock-service/internal/warranty/usecase"
	"github.com/jmoiron/sqlx"
)

// Stores is one Entity Store backend.
type Stores struct {
	Tx         database.Transactor
	Products   product.Repository
	Inventory  inventory.Repository
	Purchases  purchase.Repository
	Units      unit.Repository
	Warranties warranty.Repository
	Sales      sales.Repository
	Rates      pricing.RateRepository
}

func PostgresStores(db *sqlx.DB, lockTimeout time.Duration) Stores {
	return Stores{
		Tx:         postgres.NewTxManager(db, lockTimeout),
		Products:   productrepo.NewPGRepository(db),
		Inventory:  invrepo.NewPGRepository(db),
		Purchases:  purchaserepo.NewPGRepository(db),
		Units:      unitrepo.NewPGRepository(db),
		Warranties: warrantyrepo.NewPGRepository(db),
		Sales:      salesrepo.NewPGRepository(db),
		Rates:      pricingrepo.NewPGRepository(db),
	}
}

func MemoryStores(s *memstore.Store) Stores {
	return Stores{
		Tx:         s,
		Products:   s.Products(),
		Inventory:  s.Inventory(),
		Purchases:  s.Purchases(),
		Units:      s.Units(),
		Warranties: s.Warranties(),
		Sales:      s.Sales(),
		Rates:      s.Rates(),
	}
}

// Options carries the optional collaborators. Nil fields are disabled.
type Options struct {
	Policy    retry.Policy
	Locker    cache.Locker
	Search    unit.SearchIndex
	Publisher sales.Publisher
	Clock     func() time.Time
}

type UseCases struct {
	Products  product.UseCase
	Ledger    inventory.UseCase
	Purchases purchase.UseCase
	Units     unit.UseCase
	Warranty  warranty.UseCase
	Sales     sales.UseCase
}

func NewUseCases(st Stores, opts Options, log logger.ZapLogger) *UseCases {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	calc := pricing.NewRateCalculator(st.Rates)

	ledger := invuc.NewInventoryUseCase(st.Tx, st.Inventory, st.Purchases, log)
	warrantyUC := warrantyuc.NewWarrantyUseCase(st.Tx, st.Warranties, st.Units, st.Products, log, warrantyuc.WithClock(clock))

	unitOpts := []unituc.Option{unituc.WithClock(clock)}
	if opts.Locker != nil {
		unitOpts = append(unitOpts, unituc.WithLocker(opts.Locker))
	}
	if opts.Search != nil {
		unitOpts = append(unitOpts, unituc.WithSearchIndex(opts.Search))
	}
	unitUC := unituc.NewUnitUseCase(st.Tx, st.Units, st.Purchases, st.Products, warrantyUC, opts.Policy, log, unitOpts...)

	salesOpts := []salesuc.Option{salesuc.WithClock(clock)}
	if opts.Publisher != nil {
		salesOpts = append(salesOpts, salesuc.WithPublisher(opts.Publisher))
	}

	return &UseCases{
		Products:  productuc.NewProductUseCase(st.Products, log),
		Ledger:    ledger,
		Purchases: purchaseuc.NewPurchaseUseCase(st.Tx, st.Purchases, st.Products, st.Units, ledger, calc, opts.Policy, log),
		Units:     unitUC,
		Warranty:  warrantyUC,
		Sales:     salesuc.NewSalesUseCase(st.Tx, st.Sales, st.Products, ledger, unitUC, st.Units, calc, opts.Policy, log, salesOpts...),
	}
}
