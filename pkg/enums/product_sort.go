package enums

import "fmt"

// ProductSortField enumerates the fields catalog results may be ordered by.
// Anything outside this set is rejected at the boundary rather than passed
// through to SQL.
type ProductSortField string

const (
	ProductSortName      ProductSortField = "name"
	ProductSortPrice     ProductSortField = "price"
	ProductSortInventory ProductSortField = "inventory"
	ProductSortCategory  ProductSortField = "category"
	ProductSortCreatedAt ProductSortField = "createdAt"
)

var validProductSortFields = []ProductSortField{
	ProductSortName,
	ProductSortPrice,
	ProductSortInventory,
	ProductSortCategory,
	ProductSortCreatedAt,
}

// String implements fmt.Stringer.
func (f ProductSortField) String() string {
	return string(f)
}

// IsValid reports whether the value is a known ProductSortField.
func (f ProductSortField) IsValid() bool {
	for _, candidate := range validProductSortFields {
		if candidate == f {
			return true
		}
	}
	return false
}

// Column maps the sort field to its backing column.
func (f ProductSortField) Column() string {
	switch f {
	case ProductSortPrice:
		return "price_cents"
	case ProductSortCreatedAt:
		return "created_at"
	default:
		return string(f)
	}
}

// ParseProductSortField converts raw input into a ProductSortField.
func ParseProductSortField(value string) (ProductSortField, error) {
	for _, candidate := range validProductSortFields {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort field %q", value)
}
