package dto

type ProductFilters struct {
	IsActive      *bool
	SerialTracked *bool
	SearchQuery   string // name or sku
	SortBy        string // name, price, stock, created_at
	SortOrder     string // asc, desc
	Page          int
	PageSize      int
}
