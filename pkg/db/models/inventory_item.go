package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/malanad-agro/agrostore-backend/pkg/enums"
)

// InventoryItem is a stocked product line. AvailableQuantity is the nominal
// ceiling set by staff; it is never decremented by orders. Usage rows are
// summed against it instead.
type InventoryItem struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InventoryName     string              `gorm:"column:inventory_name;not null" json:"inventoryName"`
	Category          string              `gorm:"column:category;not null" json:"category"`
	Price             decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Unit              string              `gorm:"column:unit;not null" json:"unit"`
	SourceCompany     string              `gorm:"column:source_company;not null" json:"sourceCompany"`
	AvailableQuantity int                 `gorm:"column:available_quantity;not null;default:0" json:"availableQuantity"`
	PaymentStatus     enums.PaymentStatus `gorm:"column:payment_status;not null" json:"paymentStatus"`
	InventoryType     enums.InventoryType `gorm:"column:inventory_type;not null" json:"inventoryType"`
	SellOrRentPrice   decimal.Decimal     `gorm:"column:sell_or_rent_price;type:numeric(10,2);not null" json:"sellOrRentPrice"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName keeps the legacy table name.
func (InventoryItem) TableName() string {
	return "inventory_management"
}
