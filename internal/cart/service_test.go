package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	product "github.com/storefront-labs/storefront-backend/internal/products"
	"github.com/storefront-labs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storefront-labs/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

type fakeCartRepo struct {
	items  map[uuid.UUID]*models.CartItem
	byProd map[uuid.UUID]uuid.UUID
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		items:  make(map[uuid.UUID]*models.CartItem),
		byProd: make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeCartRepo) ListItems(context.Context) ([]models.CartItem, error) {
	out := make([]models.CartItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeCartRepo) FindItemByProduct(_ context.Context, productID uuid.UUID) (*models.CartItem, error) {
	id, ok := f.byProd[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.items[id], nil
}

func (f *fakeCartRepo) FindItem(_ context.Context, id uuid.UUID) (*models.CartItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeCartRepo) CreateItem(_ context.Context, item *models.CartItem) (*models.CartItem, error) {
	item.ID = uuid.New()
	f.items[item.ID] = item
	f.byProd[item.ProductID] = item.ID
	return item, nil
}

func (f *fakeCartRepo) UpdateQuantity(_ context.Context, id uuid.UUID, quantity int) (*models.CartItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	item.Quantity = quantity
	return item, nil
}

func (f *fakeCartRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	item, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byProd, item.ProductID)
	delete(f.items, id)
	return nil
}

type fakeProductLookup struct {
	known map[uuid.UUID]*models.Product
}

func (f *fakeProductLookup) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	row, ok := f.known[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeProductLookup) ListProducts(context.Context, product.ListProductsInput) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductLookup) CreateProduct(_ context.Context, row *models.Product) (*models.Product, error) {
	return row, nil
}

func (f *fakeProductLookup) DeleteProduct(context.Context, uuid.UUID) error {
	return nil
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected app error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code(), err)
	}
}

func newCartService(t *testing.T, products *fakeProductLookup) (Service, *fakeCartRepo) {
	t.Helper()
	repo := newFakeCartRepo()
	svc, err := NewService(repo, products)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newCartService(t, &fakeProductLookup{known: map[uuid.UUID]*models.Product{}})

	_, err := svc.AddItem(context.Background(), uuid.New(), 1)
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestAddItemQuantityBounds(t *testing.T) {
	shirt := &models.Product{ID: uuid.New(), Name: "Blue Shirt", PriceCents: 950}
	svc, _ := newCartService(t, &fakeProductLookup{known: map[uuid.UUID]*models.Product{shirt.ID: shirt}})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, shirt.ID, 0)
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.AddItem(ctx, shirt.ID, 101)
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	shirt := &models.Product{ID: uuid.New(), Name: "Blue Shirt", PriceCents: 950}
	svc, repo := newCartService(t, &fakeProductLookup{known: map[uuid.UUID]*models.Product{shirt.ID: shirt}})
	ctx := context.Background()

	first, err := svc.AddItem(ctx, shirt.ID, 2)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	second, err := svc.AddItem(ctx, shirt.ID, 3)
	if err != nil {
		t.Fatalf("add item again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatal("expected the existing line to be reused")
	}
	if second.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", second.Quantity)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected a single cart line, got %d", len(repo.items))
	}
}

func TestUpdateItemQuantityNotFound(t *testing.T) {
	svc, _ := newCartService(t, &fakeProductLookup{known: map[uuid.UUID]*models.Product{}})

	_, err := svc.UpdateItemQuantity(context.Background(), uuid.New(), 3)
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestRemoveItem(t *testing.T) {
	shirt := &models.Product{ID: uuid.New(), Name: "Blue Shirt", PriceCents: 950}
	svc, _ := newCartService(t, &fakeProductLookup{known: map[uuid.UUID]*models.Product{shirt.ID: shirt}})
	ctx := context.Background()

	added, err := svc.AddItem(ctx, shirt.ID, 1)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := svc.RemoveItem(ctx, added.ID); err != nil {
		t.Fatalf("remove item: %v", err)
	}

	err = svc.RemoveItem(ctx, added.ID)
	expectCode(t, err, pkgerrors.CodeNotFound)
}
