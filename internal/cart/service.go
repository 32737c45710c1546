package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	product "github.com/storefront-labs/storefront-backend/internal/products"
	"github.com/storefront-labs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storefront-labs/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

const (
	minQuantity = 1
	maxQuantity = 100
)

// Service exposes cart operations to the API layer.
type Service interface {
	GetCart(ctx context.Context) ([]CartItemDTO, error)
	AddItem(ctx context.Context, productID uuid.UUID, quantity int) (*CartItemDTO, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*CartItemDTO, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
}

type service struct {
	repo     CartRepository
	products product.ProductRepository
}

// NewService builds the cart service.
func NewService(repo CartRepository, products product.ProductRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{repo: repo, products: products}, nil
}

// GetCart returns every cart line with its product flattened in.
// An empty cart yields an empty slice, not nil, so it serializes as [].
func (s *service) GetCart(ctx context.Context) ([]CartItemDTO, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart items")
	}
	return NewCartItemDTOs(items), nil
}

// AddItem puts a product in the cart. Adding a product that is already in the
// cart merges into the existing line by summing quantities.
func (s *service) AddItem(ctx context.Context, productID uuid.UUID, quantity int) (*CartItemDTO, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	existing, err := s.repo.FindItemByProduct(ctx, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find cart item")
	}

	if existing != nil {
		merged := existing.Quantity + quantity
		if merged > maxQuantity {
			merged = maxQuantity
		}
		updated, err := s.repo.UpdateQuantity(ctx, existing.ID, merged)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart item")
		}
		return NewCartItemDTO(updated), nil
	}

	item := &models.CartItem{ProductID: productID, Quantity: quantity}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cart item")
	}
	full, err := s.repo.FindItem(ctx, created.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart item")
	}
	return NewCartItemDTO(full), nil
}

// UpdateItemQuantity replaces the quantity on an existing cart line.
func (s *service) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*CartItemDTO, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateQuantity(ctx, itemID, quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart item")
	}
	return NewCartItemDTO(updated), nil
}

// RemoveItem deletes a cart line.
func (s *service) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart item")
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < minQuantity || quantity > maxQuantity {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity must be between %d and %d", minQuantity, maxQuantity))
	}
	return nil
}
