package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// CartRepository manages persistent cart items.
type CartRepository interface {
	ListItems(context.Context) ([]models.CartItem, error)
	FindItemByProduct(context.Context, uuid.UUID) (*models.CartItem, error)
	FindItem(context.Context, uuid.UUID) (*models.CartItem, error)
	CreateItem(context.Context, *models.CartItem) (*models.CartItem, error)
	UpdateQuantity(context.Context, uuid.UUID, int) (*models.CartItem, error)
	DeleteItem(context.Context, uuid.UUID) error
}

// Repository binds cart persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListItems returns every cart line with its product preloaded, oldest first.
func (r *Repository) ListItems(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at ASC, id ASC").
		Find(&items).
		Error
	return items, err
}

// FindItemByProduct returns the cart line for a product, if any.
func (r *Repository) FindItemByProduct(ctx context.Context, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).First(&item, "product_id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItem loads a cart line by its own identifier.
func (r *Repository) FindItem(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new cart line.
func (r *Repository) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets the quantity on an existing cart line.
func (r *Repository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*models.CartItem, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindItem(ctx, id)
}

// DeleteItem removes a cart line.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
