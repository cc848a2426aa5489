package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/malanad-agro/agrostore-backend/pkg/db/models"
	"github.com/malanad-agro/agrostore-backend/pkg/enums"
)

func setupDashboardTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Fresh private database per test; the rollups scan whole tables.
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	inventory := `
CREATE TABLE inventory_management (
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
);`
	orders := `
CREATE TABLE orders (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  inventory_id TEXT NOT NULL,
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
);`
	require.NoError(t, db.Exec(inventory).Error)
	require.NoError(t, db.Exec(orders).Error)
	return db
}

func seedDashboardOrder(t *testing.T, db *gorm.DB, typ enums.OrderType, status enums.OrderStatus, price decimal.Decimal, quantity int, createdAt time.Time) {
	t.Helper()

	order := &models.Order{
		ID:               uuid.New(),
		InventoryID:      uuid.New(),
		InventoryName:    "Garden Hoe",
		Price:            price,
		OrderType:        typ,
		Quantity:         quantity,
		CustomerName:     "Lakshmi Nair",
		CustomerLocation: "Palakkad",
		CustomerPhone:    "+91-9446222222",
		PaymentStatus:    enums.PaymentStatusCompleted,
		OrderStatus:      status,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
	require.NoError(t, db.Create(order).Error)
}

func TestSellRevenueSince(t *testing.T) {
	db := setupDashboardTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	// 2 * 10.50 + 1 * 5.25, inside the window.
	seedDashboardOrder(t, db, enums.OrderTypeSell, enums.OrderStatusCompleted, decimal.NewFromFloat(10.50), 2, now.Add(-time.Hour))
	seedDashboardOrder(t, db, enums.OrderTypeSell, enums.OrderStatusPending, decimal.NewFromFloat(5.25), 1, now.Add(-2*time.Hour))
	// Outside the window and wrong type.
	seedDashboardOrder(t, db, enums.OrderTypeSell, enums.OrderStatusCompleted, decimal.NewFromFloat(100), 1, now.Add(-48*time.Hour))
	seedDashboardOrder(t, db, enums.OrderTypeRent, enums.OrderStatusCompleted, decimal.NewFromFloat(100), 1, now.Add(-time.Hour))

	revenue, err := repo.SellRevenueSince(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.NewFromFloat(26.25)), "got %s", revenue)
}

func TestSellRevenueSinceEmpty(t *testing.T) {
	db := setupDashboardTestDB(t)
	repo := NewRepository(db)

	revenue, err := repo.SellRevenueSince(context.Background(), time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.True(t, revenue.IsZero())
}

func TestCountItemsInStock(t *testing.T) {
	db := setupDashboardTestDB(t)
	repo := NewRepository(db)

	for _, qty := range []int{5, 1, 0} {
		item := &models.InventoryItem{
			ID:                uuid.New(),
			InventoryName:     "Item " + uuid.NewString()[:8],
			Category:          "Tools",
			Price:             decimal.NewFromInt(10),
			Unit:              "piece",
			SourceCompany:     "Agro Traders Kochi",
			AvailableQuantity: qty,
			PaymentStatus:     enums.PaymentStatusCompleted,
			InventoryType:     enums.InventoryTypeSell,
			SellOrRentPrice:   decimal.NewFromInt(12),
		}
		require.NoError(t, db.Create(item).Error)
	}

	count, err := repo.CountItemsInStock(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestCountOrdersByTypeSince(t *testing.T) {
	db := setupDashboardTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	seedDashboardOrder(t, db, enums.OrderTypeSell, enums.OrderStatusCompleted, decimal.NewFromInt(10), 1, now.Add(-time.Hour))
	seedDashboardOrder(t, db, enums.OrderTypeSell, enums.OrderStatusPending, decimal.NewFromInt(10), 1, now.Add(-2*time.Hour))
	seedDashboardOrder(t, db, enums.OrderTypeSell, enums.OrderStatusPending, decimal.NewFromInt(10), 1, now.Add(-48*time.Hour))
	seedDashboardOrder(t, db, enums.OrderTypeRent, enums.OrderStatusPending, decimal.NewFromInt(10), 1, now.Add(-time.Hour))

	sold, err := repo.CountOrdersByTypeSince(ctx, enums.OrderTypeSell, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, sold)

	rented, err := repo.CountOrdersByTypeSince(ctx, enums.OrderTypeRent, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, rented)
}

func TestCountOpenOrdersByType(t *testing.T) {
	db := setupDashboardTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	seedDashboardOrder(t, db, enums.OrderTypeRent, enums.OrderStatusPending, decimal.NewFromInt(10), 1, now)
	seedDashboardOrder(t, db, enums.OrderTypeRent, enums.OrderStatusInProgress, decimal.NewFromInt(10), 1, now)
	seedDashboardOrder(t, db, enums.OrderTypeRent, enums.OrderStatusCompleted, decimal.NewFromInt(10), 1, now)
	seedDashboardOrder(t, db, enums.OrderTypeRent, enums.OrderStatusCancelled, decimal.NewFromInt(10), 1, now)
	seedDashboardOrder(t, db, enums.OrderTypeSell, enums.OrderStatusPending, decimal.NewFromInt(10), 1, now)

	openRents, err := repo.CountOpenOrdersByType(ctx, enums.OrderTypeRent)
	require.NoError(t, err)
	assert.EqualValues(t, 2, openRents)

	openSales, err := repo.CountOpenOrdersByType(ctx, enums.OrderTypeSell)
	require.NoError(t, err)
	assert.EqualValues(t, 1, openSales)
}
