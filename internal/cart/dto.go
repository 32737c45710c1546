package cart

import (
	"github.com/google/uuid"
	product "github.com/storefront-labs/storefront-backend/internal/products"
	"github.com/storefront-labs/storefront-backend/pkg/db/models"
)

// CartItemDTO represents a cart line with its product flattened in.
type CartItemDTO struct {
	ID        uuid.UUID           `json:"id"`
	ProductID uuid.UUID           `json:"productId"`
	Quantity  int                 `json:"quantity"`
	Product   *product.ProductDTO `json:"product"`
}

// NewCartItemDTO builds a DTO from a cart item with its product preloaded.
func NewCartItemDTO(item *models.CartItem) *CartItemDTO {
	dto := &CartItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if item.Product != nil {
		dto.Product = product.NewProductDTO(item.Product)
	}
	return dto
}

// NewCartItemDTOs converts a slice of cart items, preserving order.
func NewCartItemDTOs(items []models.CartItem) []CartItemDTO {
	dtos := make([]CartItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *NewCartItemDTO(&items[i]))
	}
	return dtos
}
