package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/malanad-agro/agrostore-backend/pkg/db/models"
	"github.com/malanad-agro/agrostore-backend/pkg/enums"
)

// CreateOrderRequest is the payload for POST /orders. DueDateTime is the
// expected return time and only applies to Rent orders.
type CreateOrderRequest struct {
	InventoryID      uuid.UUID  `json:"inventoryId" validate:"required"`
	OrderType        string     `json:"orderType" validate:"required,oneof=Sell Rent"`
	Quantity         int        `json:"quantity" validate:"required,gt=0"`
	CustomerName     string     `json:"customerName" validate:"required,min=2,max=120"`
	CustomerLocation string     `json:"customerLocation" validate:"required,min=2,max=200"`
	CustomerPhone    string     `json:"customerPhone" validate:"required,min=7,max=20"`
	PaymentStatus    string     `json:"paymentStatus" validate:"required,oneof=PAYMENT_PENDING PARTIALLY_PAID PAYMENT_COMPLETED PAYMENT_FAILED"`
	OrderStatus      string     `json:"orderStatus" validate:"required,oneof=ORDER_PENDING ORDER_INPROGRESS ORDER_COMPLETED ORDER_CANCELLED"`
	DueDateTime      *time.Time `json:"dueDateTime,omitempty" validate:"required_if=OrderType Rent"`
}

// UpdateOrderRequest carries the patchable fields for PUT /orders/{id}.
// Quantity is deliberately absent: changing it would bypass the capacity
// gate. Unit is accepted for client compatibility and discarded.
type UpdateOrderRequest struct {
	CustomerName     *string    `json:"customerName,omitempty" validate:"omitempty,min=2,max=120"`
	CustomerLocation *string    `json:"customerLocation,omitempty" validate:"omitempty,min=2,max=200"`
	CustomerPhone    *string    `json:"customerPhone,omitempty" validate:"omitempty,min=7,max=20"`
	PaymentStatus    *string    `json:"paymentStatus,omitempty" validate:"omitempty,oneof=PAYMENT_PENDING PARTIALLY_PAID PAYMENT_COMPLETED PAYMENT_FAILED"`
	OrderStatus      *string    `json:"orderStatus,omitempty" validate:"omitempty,oneof=ORDER_CANCELLED"`
	DueDateTime      *time.Time `json:"dueDateTime,omitempty"`
	Unit             *string    `json:"unit,omitempty"`
}

// OrderView is the public shape of an order.
type OrderView struct {
	ID               uuid.UUID           `json:"id"`
	InventoryID      uuid.UUID           `json:"inventoryId"`
	InventoryName    string              `json:"inventoryName"`
	Price            decimal.Decimal     `json:"price"`
	OrderType        enums.OrderType     `json:"orderType"`
	Quantity         int                 `json:"quantity"`
	CustomerName     string              `json:"customerName"`
	CustomerLocation string              `json:"customerLocation"`
	CustomerPhone    string              `json:"customerPhone"`
	PaymentStatus    enums.PaymentStatus `json:"paymentStatus"`
	OrderStatus      enums.OrderStatus   `json:"orderStatus"`
	DueDateTime      *time.Time          `json:"dueDateTime,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

func viewFromModel(order models.Order) OrderView {
	return OrderView{
		ID:               order.ID,
		InventoryID:      order.InventoryID,
		InventoryName:    order.InventoryName,
		Price:            order.Price,
		OrderType:        order.OrderType,
		Quantity:         order.Quantity,
		CustomerName:     order.CustomerName,
		CustomerLocation: order.CustomerLocation,
		CustomerPhone:    order.CustomerPhone,
		PaymentStatus:    order.PaymentStatus,
		OrderStatus:      order.OrderStatus,
		DueDateTime:      order.DueDateTime,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

// UsageEntryView is one usage ledger row on the used-quantity endpoint.
type UsageEntryView struct {
	OrderID   uuid.UUID `json:"orderId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// UsedQuantityView reports the consumption rollup for one inventory item.
// AvailableQuantity is the sellable balance left after usage, not the
// declared stock; the declared ceiling rides along as TotalQuantity.
type UsedQuantityView struct {
	InventoryID       uuid.UUID        `json:"inventoryId"`
	Used              int              `json:"used"`
	AvailableQuantity int              `json:"availableQuantity"`
	TotalQuantity     int              `json:"totalQuantity"`
	Entries           []UsageEntryView `json:"entries"`
}

// ListFilters narrows the order listing.
type ListFilters struct {
	InventoryID   uuid.UUID
	OrderType     string
	OrderStatus   string
	PaymentStatus string
}
