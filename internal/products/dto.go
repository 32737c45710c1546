package product

import (
	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-backend/pkg/db/models"
	"github.com/storefront-labs/storefront-backend/pkg/types"
)

// ProductDTO represents the catalog product payload returned to clients.
// Price is serialized as a decimal string with two fractional digits.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Image       string    `json:"image"`
	Description *string   `json:"description"`
	Inventory   int       `json:"inventory"`
	Category    *string   `json:"category"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Price:       types.FormatCents(product.PriceCents),
		Image:       product.Image,
		Description: product.Description,
		Inventory:   product.Inventory,
		Category:    product.Category,
	}
}

// NewProductDTOs converts a slice of models, preserving order.
func NewProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *NewProductDTO(&products[i]))
	}
	return dtos
}
