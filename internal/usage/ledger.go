// Package usage maintains the append-only consumption ledger. Every order
// writes exactly one row here, and the sum of rows for an item can never pass
// the item's available quantity. The check runs twice: in Reserve under a row
// lock, and again in the database trigger guarding the table.
package usage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/malanad-agro/agrostore-backend/pkg/db"
	"github.com/malanad-agro/agrostore-backend/pkg/db/models"
	pkgerrors "github.com/malanad-agro/agrostore-backend/pkg/errors"
)

// Ledger defines the usage ledger operations.
type Ledger interface {
	WithTx(tx *gorm.DB) Ledger
	// Reserve appends a usage row for the order after verifying the item
	// still has capacity. The caller must hold a row lock on the item for
	// the surrounding transaction.
	Reserve(ctx context.Context, item *models.InventoryItem, orderID uuid.UUID, quantity int) (*models.UsageRecord, error)
	TotalUsed(ctx context.Context, inventoryID uuid.UUID) (int, error)
	// Remaining recomputes availableQuantity minus the consumed total on
	// every call. Never cached.
	Remaining(ctx context.Context, inventoryID uuid.UUID) (int, error)
	TotalUsedBulk(ctx context.Context, inventoryIDs []uuid.UUID) (map[uuid.UUID]int, error)
	ListByInventory(ctx context.Context, inventoryID uuid.UUID) ([]models.UsageRecord, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*models.UsageRecord, error)
}

type ledger struct {
	db *gorm.DB
}

// NewLedger builds a usage ledger bound to the provided DB.
func NewLedger(db *gorm.DB) Ledger {
	return &ledger{db: db}
}

func (l *ledger) WithTx(tx *gorm.DB) Ledger {
	if tx == nil {
		return l
	}
	return &ledger{db: tx}
}

func (l *ledger) Reserve(ctx context.Context, item *models.InventoryItem, orderID uuid.UUID, quantity int) (*models.UsageRecord, error) {
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "inventory item required")
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	used, err := l.TotalUsed(ctx, item.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum used quantity")
	}

	remaining := item.AvailableQuantity - used
	if quantity > remaining {
		return nil, capacityError(item, quantity, remaining)
	}

	record := &models.UsageRecord{
		InventoryID: item.ID,
		OrderID:     orderID,
		Quantity:    quantity,
	}
	if err := l.db.WithContext(ctx).Create(record).Error; err != nil {
		// The trigger re-checks under its own lock; a raised exception
		// here means another writer won the race.
		if db.IsRaisedException(err) {
			return nil, capacityError(item, quantity, remaining)
		}
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order already has a usage entry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append usage record")
	}
	return record, nil
}

func capacityError(item *models.InventoryItem, requested, remaining int) error {
	if remaining < 0 {
		remaining = 0
	}
	msg := fmt.Sprintf("requested quantity %d exceeds remaining quantity %d", requested, remaining)
	return pkgerrors.New(pkgerrors.CodeCapacityExceeded, msg).WithDetails(map[string]any{
		"inventoryId":       item.ID,
		"requestedQuantity": requested,
		"remainingQuantity": remaining,
	})
}

func (l *ledger) TotalUsed(ctx context.Context, inventoryID uuid.UUID) (int, error) {
	var total int64
	err := l.db.WithContext(ctx).
		Model(&models.UsageRecord{}).
		Where("inventory_id = ?", inventoryID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

func (l *ledger) Remaining(ctx context.Context, inventoryID uuid.UUID) (int, error) {
	var item models.InventoryItem
	err := l.db.WithContext(ctx).
		Select("id", "available_quantity").
		Where("id = ?", inventoryID).
		First(&item).Error
	if err != nil {
		return 0, err
	}

	used, err := l.TotalUsed(ctx, inventoryID)
	if err != nil {
		return 0, err
	}

	remaining := item.AvailableQuantity - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (l *ledger) TotalUsedBulk(ctx context.Context, inventoryIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	totals := make(map[uuid.UUID]int, len(inventoryIDs))
	if len(inventoryIDs) == 0 {
		return totals, nil
	}

	type row struct {
		InventoryID uuid.UUID
		Total       int64
	}
	var rows []row
	err := l.db.WithContext(ctx).
		Model(&models.UsageRecord{}).
		Where("inventory_id IN ?", inventoryIDs).
		Select("inventory_id, COALESCE(SUM(quantity), 0) AS total").
		Group("inventory_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		totals[r.InventoryID] = int(r.Total)
	}
	return totals, nil
}

func (l *ledger) ListByInventory(ctx context.Context, inventoryID uuid.UUID) ([]models.UsageRecord, error) {
	var records []models.UsageRecord
	err := l.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (l *ledger) FindByOrder(ctx context.Context, orderID uuid.UUID) (*models.UsageRecord, error) {
	var record models.UsageRecord
	err := l.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
