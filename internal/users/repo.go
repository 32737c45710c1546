package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists shopper accounts. Usernames arrive already
// normalized (trimmed, lowercased) from the auth service, so lookups are
// exact matches against the unique username column.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to a GORM handle. Registration passes a
// transaction handle here so the user insert joins the signup
// transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the account and returns it with DB-assigned fields
// (id, created_at) populated. A duplicate username surfaces as the
// driver's unique-violation error for the caller to translate.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	account := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

// FindByUsername is the login lookup.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var account models.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Take(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var account models.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateLastLogin stamps last_login_at after a successful login without
// touching updated_at.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}
