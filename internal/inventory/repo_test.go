package inventory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/malanad-agro/agrostore-backend/internal/usage"
	"github.com/malanad-agro/agrostore-backend/pkg/db/models"
	"github.com/malanad-agro/agrostore-backend/pkg/enums"
	pkgerrors "github.com/malanad-agro/agrostore-backend/pkg/errors"
	"github.com/malanad-agro/agrostore-backend/pkg/pagination"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS inventory_management (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  inventory_name TEXT NOT NULL,
  category TEXT NOT NULL,
  price NUMERIC NOT NULL,
  unit TEXT NOT NULL,
  source_company TEXT NOT NULL,
  available_quantity INTEGER NOT NULL DEFAULT 0,
  payment_status TEXT NOT NULL,
  inventory_type TEXT NOT NULL,
  sell_or_rent_price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (inventory_name, source_company)
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func mustCreateItem(t *testing.T, repo Repository, name, category string, typ enums.InventoryType) *models.InventoryItem {
	t.Helper()

	item := &models.InventoryItem{
		InventoryName:     name,
		Category:          category,
		Price:             decimal.NewFromFloat(125.50),
		Unit:              "bag",
		SourceCompany:     fmt.Sprintf("Supplier %s", uuid.NewString()[:8]),
		AvailableQuantity: 40,
		PaymentStatus:     enums.PaymentStatusCompleted,
		InventoryType:     typ,
		SellOrRentPrice:   decimal.NewFromFloat(150.00),
	}
	created, err := repo.Create(context.Background(), item)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	return created
}

func TestInventoryCreateAndFind(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := mustCreateItem(t, repo, "Urea 45kg "+uuid.NewString()[:8], "Fertilizer", enums.InventoryTypeSell)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.InventoryName, found.InventoryName)
	assert.Equal(t, 40, found.AvailableQuantity)
	assert.True(t, found.SellOrRentPrice.Equal(decimal.NewFromFloat(150.00)))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInventoryListFiltersAndSearch(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	category := "Cat-" + uuid.NewString()[:8]
	mustCreateItem(t, repo, "Zinc Sulphate "+uuid.NewString()[:8], category, enums.InventoryTypeSell)
	time.Sleep(5 * time.Millisecond)
	mustCreateItem(t, repo, "Apple Sprayer "+uuid.NewString()[:8], category, enums.InventoryTypeRent)
	time.Sleep(5 * time.Millisecond)
	mustCreateItem(t, repo, "Mulch Film "+uuid.NewString()[:8], category, enums.InventoryTypeSell)

	items, total, err := repo.List(ctx, pagination.Params{Page: 1, Size: 10}, ListFilters{Category: category})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 3)
	// Oldest first.
	assert.Contains(t, items[0].InventoryName, "Zinc Sulphate")
	assert.Contains(t, items[1].InventoryName, "Apple Sprayer")
	assert.Contains(t, items[2].InventoryName, "Mulch Film")

	rentOnly, total, err := repo.List(ctx, pagination.Params{Page: 1, Size: 10}, ListFilters{Category: category, InventoryType: "Rent"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rentOnly, 1)
	assert.Equal(t, enums.InventoryTypeRent, rentOnly[0].InventoryType)

	searched, total, err := repo.List(ctx, pagination.Params{Page: 1, Size: 10}, ListFilters{Category: category, Search: "mulch"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, searched, 1)
	assert.Contains(t, searched[0].InventoryName, "Mulch Film")
}

func TestInventoryListPaginates(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	category := "Cat-" + uuid.NewString()[:8]
	for i := 0; i < 5; i++ {
		mustCreateItem(t, repo, fmt.Sprintf("Item %d %s", i, uuid.NewString()[:8]), category, enums.InventoryTypeSell)
	}

	pageOne, total, err := repo.List(ctx, pagination.Params{Page: 1, Size: 2}, ListFilters{Category: category})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, pageOne, 2)

	pageThree, _, err := repo.List(ctx, pagination.Params{Page: 3, Size: 2}, ListFilters{Category: category})
	require.NoError(t, err)
	assert.Len(t, pageThree, 1)
}

func TestInventoryUpdate(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := mustCreateItem(t, repo, "Rotavator "+uuid.NewString()[:8], "Machinery", enums.InventoryTypeRent)
	createdAt := created.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	err := repo.Update(ctx, created.ID, map[string]any{
		"available_quantity": 55,
		"unit":               "machine",
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 55, found.AvailableQuantity)
	assert.Equal(t, "machine", found.Unit)
	assert.True(t, found.UpdatedAt.After(createdAt), "updated_at must move forward on update")

	err = repo.Update(ctx, uuid.New(), map[string]any{"unit": "machine"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInventoryDeleteRestrictedByOrders(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:restrict_delete?mode=memory&cache=shared&_fk=1"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{`
CREATE TABLE IF NOT EXISTS inventory_management (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  inventory_name TEXT NOT NULL,
  category TEXT NOT NULL,
  price NUMERIC NOT NULL,
  unit TEXT NOT NULL,
  source_company TEXT NOT NULL,
  available_quantity INTEGER NOT NULL DEFAULT 0,
  payment_status TEXT NOT NULL,
  inventory_type TEXT NOT NULL,
  sell_or_rent_price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  inventory_id TEXT NOT NULL REFERENCES inventory_management (id) ON DELETE RESTRICT,
  inventory_name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  order_type TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  customer_name TEXT NOT NULL,
  customer_location TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  payment_status TEXT NOT NULL,
  order_status TEXT NOT NULL,
  due_date_time DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS used_inventory_quantity (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  inventory_id TEXT NOT NULL,
  order_id TEXT NOT NULL UNIQUE,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	repo := NewRepository(db)
	svc, err := NewService(repo, usage.NewLedger(db))
	require.NoError(t, err)
	ctx := context.Background()

	item := mustCreateItem(t, repo, "Paddy Thresher "+uuid.NewString()[:8], "Machinery", enums.InventoryTypeRent)

	order := &models.Order{
		ID:               uuid.New(),
		InventoryID:      item.ID,
		InventoryName:    item.InventoryName,
		Price:            item.SellOrRentPrice,
		OrderType:        enums.OrderTypeRent,
		Quantity:         1,
		CustomerName:     "Devika Menon",
		CustomerLocation: "Wayanad",
		CustomerPhone:    "+91-9447000000",
		PaymentStatus:    enums.PaymentStatusPending,
		OrderStatus:      enums.OrderStatusPending,
	}
	require.NoError(t, db.Create(order).Error)

	_, err = svc.Delete(ctx, item.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// Both rows survive the refused delete.
	_, err = repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Where("inventory_id = ?", item.ID).Count(&orderCount).Error)
	assert.EqualValues(t, 1, orderCount)
}

func TestInventoryDelete(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := mustCreateItem(t, repo, "Seed Tray "+uuid.NewString()[:8], "Nursery", enums.InventoryTypeSell)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err := repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
