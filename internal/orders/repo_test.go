package orders

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
	"github.com/malanad-agro/agrostore-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS orders (
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
	require.NoError(t, db.Exec(schema).Error)
	return db
}

type orderSeed struct {
	orderType enums.OrderType
	status    enums.OrderStatus
	payment   enums.PaymentStatus
	due       *time.Time
}

func mustCreateOrder(t *testing.T, repo Repository, inventoryID uuid.UUID, seed orderSeed) *models.Order {
	t.Helper()

	order := &models.Order{
		InventoryID:      inventoryID,
		InventoryName:    "Power Tiller",
		Price:            decimal.NewFromInt(900),
		OrderType:        seed.orderType,
		Quantity:         2,
		CustomerName:     "Devika Menon",
		CustomerLocation: "Wayanad",
		CustomerPhone:    "+91-9447000000",
		PaymentStatus:    seed.payment,
		OrderStatus:      seed.status,
		DueDateTime:      seed.due,
	}
	created, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	return created
}

func TestOrdersCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := mustCreateOrder(t, repo, uuid.New(), orderSeed{
		orderType: enums.OrderTypeSell,
		status:    enums.OrderStatusPending,
		payment:   enums.PaymentStatusPending,
	})

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.InventoryID, found.InventoryID)
	assert.Equal(t, 2, found.Quantity)
	assert.True(t, found.Price.Equal(decimal.NewFromInt(900)))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrdersListFiltersAndOrdering(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	inventoryID := uuid.New()
	first := mustCreateOrder(t, repo, inventoryID, orderSeed{
		orderType: enums.OrderTypeSell,
		status:    enums.OrderStatusPending,
		payment:   enums.PaymentStatusPending,
	})
	time.Sleep(10 * time.Millisecond)
	second := mustCreateOrder(t, repo, inventoryID, orderSeed{
		orderType: enums.OrderTypeRent,
		status:    enums.OrderStatusInProgress,
		payment:   enums.PaymentStatusPartiallyPaid,
	})

	listed, total, err := repo.List(ctx, pagination.Params{Page: 1, Size: 10}, ListFilters{InventoryID: inventoryID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, listed, 2)
	// Newest first.
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)

	rentOnly, total, err := repo.List(ctx, pagination.Params{Page: 1, Size: 10}, ListFilters{InventoryID: inventoryID, OrderType: "Rent"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rentOnly, 1)
	assert.Equal(t, second.ID, rentOnly[0].ID)

	partiallyPaid, total, err := repo.List(ctx, pagination.Params{Page: 1, Size: 10}, ListFilters{InventoryID: inventoryID, PaymentStatus: "PARTIALLY_PAID"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, partiallyPaid, 1)

	none, total, err := repo.List(ctx, pagination.Params{Page: 1, Size: 10}, ListFilters{InventoryID: inventoryID, OrderStatus: "ORDER_CANCELLED"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, none)
}

func TestOrdersListPendingRent(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	inventoryID := uuid.New()
	laterDue := time.Now().Add(72 * time.Hour)
	soonDue := time.Now().Add(24 * time.Hour)

	later := mustCreateOrder(t, repo, inventoryID, orderSeed{
		orderType: enums.OrderTypeRent,
		status:    enums.OrderStatusPending,
		payment:   enums.PaymentStatusPending,
		due:       &laterDue,
	})
	soon := mustCreateOrder(t, repo, inventoryID, orderSeed{
		orderType: enums.OrderTypeRent,
		status:    enums.OrderStatusInProgress,
		payment:   enums.PaymentStatusPartiallyPaid,
		due:       &soonDue,
	})
	// Terminal and non-rent rows stay out of the queue.
	mustCreateOrder(t, repo, inventoryID, orderSeed{
		orderType: enums.OrderTypeRent,
		status:    enums.OrderStatusCompleted,
		payment:   enums.PaymentStatusCompleted,
		due:       &soonDue,
	})
	mustCreateOrder(t, repo, inventoryID, orderSeed{
		orderType: enums.OrderTypeRent,
		status:    enums.OrderStatusCancelled,
		payment:   enums.PaymentStatusFailed,
		due:       &soonDue,
	})
	mustCreateOrder(t, repo, inventoryID, orderSeed{
		orderType: enums.OrderTypeSell,
		status:    enums.OrderStatusPending,
		payment:   enums.PaymentStatusPending,
	})

	pending, total, err := repo.ListPendingRent(ctx, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(2))

	var ours []models.Order
	for _, order := range pending {
		if order.InventoryID == inventoryID {
			ours = append(ours, order)
		}
	}
	require.Len(t, ours, 2)
	// Soonest due first.
	assert.Equal(t, soon.ID, ours[0].ID)
	assert.Equal(t, later.ID, ours[1].ID)
}

func TestOrdersUpdateRoundTrip(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := mustCreateOrder(t, repo, uuid.New(), orderSeed{
		orderType: enums.OrderTypeSell,
		status:    enums.OrderStatusPending,
		payment:   enums.PaymentStatusPending,
	})
	before := created.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	err := repo.Update(ctx, created.ID, map[string]any{
		"payment_status": enums.PaymentStatusCompleted,
		"order_status":   enums.OrderStatusCompleted,
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusCompleted, found.PaymentStatus)
	assert.Equal(t, enums.OrderStatusCompleted, found.OrderStatus)
	assert.True(t, found.UpdatedAt.After(before), "updated_at must move forward on update")
	assert.Equal(t, created.Quantity, found.Quantity)

	err = repo.Update(ctx, uuid.New(), map[string]any{"order_status": enums.OrderStatusCancelled})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
