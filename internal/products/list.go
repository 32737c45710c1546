package product

import (
	"github.com/storefront-labs/storefront-backend/pkg/enums"
	"github.com/storefront-labs/storefront-backend/pkg/pagination"
)

// ProductListFilters describe the supported filter knobs for the catalog endpoint.
// Filters are conjunctive: a product must satisfy every provided one.
type ProductListFilters struct {
	Query         string `json:"query,omitempty"`
	Category      string `json:"category,omitempty"`
	PriceMinCents *int64 `json:"price_min_cents,omitempty"`
	PriceMaxCents *int64 `json:"price_max_cents,omitempty"`
}

// ProductSort picks the column and direction for the catalog listing.
type ProductSort struct {
	Field enums.ProductSortField
	Order enums.SortOrder
}

// ListProductsInput captures the inputs needed to filter, sort, and paginate the catalog.
type ListProductsInput struct {
	Filters    ProductListFilters
	Sort       *ProductSort
	Pagination pagination.Params
}

// ProductListResult pairs a page of products with its pagination metadata.
type ProductListResult struct {
	Items []ProductDTO
	Total int64
}
