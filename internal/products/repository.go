package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-backend/pkg/db/models"
	"github.com/storefront-labs/storefront-backend/pkg/enums"
	"gorm.io/gorm"
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	ListProducts(context.Context, ListProductsInput) ([]models.Product, int64, error)
	FindByID(context.Context, uuid.UUID) (*models.Product, error)
	CreateProduct(context.Context, *models.Product) (*models.Product, error)
	DeleteProduct(context.Context, uuid.UUID) error
}

// Repository wires product persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListProducts applies the catalog filters, counts the full match set, and
// returns the requested page. Rows are ordered by the requested sort column
// with id as a stable tiebreak.
func (r *Repository) ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, int64, error) {
	qb := r.db.WithContext(ctx).Model(&models.Product{})

	if search := strings.TrimSpace(input.Filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("LOWER(name) LIKE ?", pattern)
	}
	if category := strings.TrimSpace(input.Filters.Category); category != "" {
		qb = qb.Where("category = ?", category)
	}
	if input.Filters.PriceMinCents != nil {
		qb = qb.Where("price_cents >= ?", *input.Filters.PriceMinCents)
	}
	if input.Filters.PriceMaxCents != nil {
		qb = qb.Where("price_cents <= ?", *input.Filters.PriceMaxCents)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	qb = qb.Order(orderClause(input.Sort))

	params := input.Pagination.Normalize()
	var rows []models.Product
	if err := qb.Offset(params.Offset()).Limit(params.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func orderClause(sort *ProductSort) string {
	if sort == nil {
		return "created_at ASC, id ASC"
	}
	direction := "ASC"
	if sort.Order == enums.SortOrderDesc {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s, id ASC", sort.Field.Column(), direction)
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var row models.Product
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, row *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteProduct removes the product and any cart items that reference it.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
