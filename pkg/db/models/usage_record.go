package models

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord is one append-only ledger entry: the quantity an order consumed
// from an inventory item. Exactly one row exists per order. For any item,
// SUM(quantity) never exceeds the item's available_quantity.
type UsageRecord struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InventoryID uuid.UUID      `gorm:"column:inventory_id;type:uuid;not null" json:"inventoryId"`
	Inventory   *InventoryItem `gorm:"foreignKey:InventoryID;constraint:OnDelete:CASCADE" json:"-"`
	OrderID     uuid.UUID      `gorm:"column:order_id;type:uuid;not null" json:"orderId"`
	Order       *Order         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	Quantity    int            `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName keeps the legacy table name.
func (UsageRecord) TableName() string {
	return "used_inventory_quantity"
}
