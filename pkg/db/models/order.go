package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/malanad-agro/agrostore-backend/pkg/enums"
)

// Order is a sell or rent transaction against exactly one inventory item.
// InventoryName and Price are denormalized copies captured at order time so
// later inventory edits do not rewrite placed orders.
type Order struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InventoryID      uuid.UUID           `gorm:"column:inventory_id;type:uuid;not null" json:"inventoryId"`
	Inventory        *InventoryItem      `gorm:"foreignKey:InventoryID;constraint:OnDelete:RESTRICT" json:"-"`
	InventoryName    string              `gorm:"column:inventory_name;not null" json:"inventoryName"`
	Price            decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	OrderType        enums.OrderType     `gorm:"column:order_type;not null" json:"orderType"`
	Quantity         int                 `gorm:"column:quantity;not null" json:"quantity"`
	CustomerName     string              `gorm:"column:customer_name;not null" json:"customerName"`
	CustomerLocation string              `gorm:"column:customer_location;not null" json:"customerLocation"`
	CustomerPhone    string              `gorm:"column:customer_phone;not null" json:"customerPhone"`
	PaymentStatus    enums.PaymentStatus `gorm:"column:payment_status;not null" json:"paymentStatus"`
	OrderStatus      enums.OrderStatus   `gorm:"column:order_status;not null" json:"orderStatus"`
	DueDateTime      *time.Time          `gorm:"column:due_date_time" json:"dueDateTime,omitempty"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName keeps the legacy table name.
func (Order) TableName() string {
	return "orders"
}
