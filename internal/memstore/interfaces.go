package memstore

import (
	"github.com/fekuna/omnipos-stock-service/internal/inventory"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database"
	"github.com/fekuna/omnipos-stock-service/internal/pricing"
	"github.com/fekuna/omnipos-stock-service/internal/product"
	"github.com/fekuna/omnipos-stock-service/internal/purchase"
	"github.com/fekuna/omnipos-stock-service/internal/sales"
	"github.com/fekuna/omnipos-stock-service/internal/unit"
	"github.com/fekuna/omnipos-stock-service/internal/warranty"
)

var (
	_ database.Transactor    = (*Store)(nil)
	_ product.Repository     = (*ProductRepository)(nil)
	_ inventory.Repository   = (*InventoryRepository)(nil)
	_ purchase.Repository    = (*PurchaseRepository)(nil)
	_ purchase.UnitCounter   = (*UnitRepository)(nil)
	_ unit.Repository        = (*UnitRepository)(nil)
	_ warranty.Repository    = (*WarrantyRepository)(nil)
	_ sales.Repository       = (*SalesRepository)(nil)
	_ pricing.RateRepository = (*RateRepository)(nil)
)
