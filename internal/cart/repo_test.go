package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storefront-labs/storefront-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  image TEXT NOT NULL,
  description TEXT,
  inventory INTEGER NOT NULL DEFAULT 0,
  category TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(cartItems).Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, priceCents int64) *models.Product {
	t.Helper()

	row := &models.Product{
		ID:         uuid.New(),
		Name:       name,
		PriceCents: priceCents,
		Image:      "https://cdn.example.com/" + uuid.NewString() + ".jpg",
		Inventory:  5,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

func TestListItemsPreloadsProduct(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shirt := seedProduct(t, db, "Blue Shirt", 950)
	mug := seedProduct(t, db, "Coffee Mug", 1200)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	first := &models.CartItem{ID: uuid.New(), ProductID: shirt.ID, Quantity: 2, CreatedAt: base}
	second := &models.CartItem{ID: uuid.New(), ProductID: mug.ID, Quantity: 1, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, first.ID, items[0].ID)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Blue Shirt", items[0].Product.Name)
	assert.Equal(t, int64(950), items[0].Product.PriceCents)

	assert.Equal(t, second.ID, items[1].ID)
	require.NotNil(t, items[1].Product)
	assert.Equal(t, "Coffee Mug", items[1].Product.Name)
}

func TestListItemsEmptyCart(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	items, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateQuantityAndDelete(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shirt := seedProduct(t, db, "Blue Shirt", 950)
	item := &models.CartItem{ID: uuid.New(), ProductID: shirt.ID, Quantity: 1}
	require.NoError(t, db.Create(item).Error)

	updated, err := repo.UpdateQuantity(ctx, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
	require.NotNil(t, updated.Product)

	_, err = repo.UpdateQuantity(ctx, uuid.New(), 4)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, repo.DeleteItem(ctx, item.ID), gorm.ErrRecordNotFound)
}

func TestFindItemByProduct(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shirt := seedProduct(t, db, "Blue Shirt", 950)
	item := &models.CartItem{ID: uuid.New(), ProductID: shirt.ID, Quantity: 2}
	require.NoError(t, db.Create(item).Error)

	found, err := repo.FindItemByProduct(ctx, shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)

	_, err = repo.FindItemByProduct(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
