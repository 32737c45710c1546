package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog item. Price is stored as integer cents; the
// wire format is a decimal string with two fractional digits.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	PriceCents  int64     `gorm:"column:price_cents;not null"`
	Image       string    `gorm:"column:image;not null"`
	Description *string   `gorm:"column:description"`
	Inventory   int       `gorm:"column:inventory;not null;default:0"`
	Category    *string   `gorm:"column:category"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
