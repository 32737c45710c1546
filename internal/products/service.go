package product

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storefront-labs/storefront-backend/pkg/errors"
	"github.com/storefront-labs/storefront-backend/pkg/types"
	"gorm.io/gorm"
)

// Service exposes catalog operations to the API layer.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CreateProductInput carries a validated catalog mutation payload.
type CreateProductInput struct {
	Name        string
	Price       string
	Image       string
	Description *string
	Inventory   int
	Category    *string
}

const (
	minPriceCents = 1         // 0.01
	maxPriceCents = 99_999_999 // 999999.99
)

var productNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)

type service struct {
	repo ProductRepository
}

// NewService builds the catalog service.
func NewService(repo ProductRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	if input.Sort != nil {
		if !input.Sort.Field.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid sortBy %q", input.Sort.Field))
		}
		if !input.Sort.Order.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid sortOrder %q", input.Sort.Order))
		}
	}
	if min, max := input.Filters.PriceMinCents, input.Filters.PriceMaxCents; min != nil && max != nil && *min > *max {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minPrice cannot exceed maxPrice")
	}

	input.Pagination = input.Pagination.Normalize()
	rows, total, err := s.repo.ListProducts(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	return &ProductListResult{
		Items: NewProductDTOs(rows),
		Total: total,
	}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(row), nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 3 || len(name) > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must be between 3 and 100 characters")
	}
	if !productNamePattern.MatchString(name) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name contains invalid characters")
	}

	priceCents, err := types.ParseDecimalString(input.Price)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be a decimal with at most two fractional digits")
	}
	if priceCents < minPriceCents || priceCents > maxPriceCents {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be between 0.01 and 999999.99")
	}

	if err := validateImageURL(input.Image); err != nil {
		return nil, err
	}
	if input.Inventory < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory cannot be negative")
	}

	row := &models.Product{
		Name:        name,
		PriceCents:  priceCents,
		Image:       input.Image,
		Description: input.Description,
		Inventory:   input.Inventory,
		Category:    input.Category,
	}
	created, err := s.repo.CreateProduct(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return NewProductDTO(created), nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func validateImageURL(raw string) error {
	if len(raw) < 5 || len(raw) > 500 {
		return pkgerrors.New(pkgerrors.CodeValidation, "image URL must be between 5 and 500 characters")
	}
	if !strings.HasPrefix(raw, "https://") {
		return pkgerrors.New(pkgerrors.CodeValidation, "image must be an https URL")
	}
	return nil
}
