package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/malanad-agro/agrostore-backend/pkg/db/models"
	"github.com/malanad-agro/agrostore-backend/pkg/enums"
)

// CreateItemRequest is the payload for POST /inventory.
type CreateItemRequest struct {
	InventoryName     string          `json:"inventoryName" validate:"required,min=2,max=120"`
	Category          string          `json:"category" validate:"required,min=2,max=80"`
	Price             decimal.Decimal `json:"price" validate:"required"`
	Unit              string          `json:"unit" validate:"required,max=32"`
	SourceCompany     string          `json:"sourceCompany" validate:"required,min=2,max=120"`
	AvailableQuantity int             `json:"availableQuantity" validate:"min=0"`
	PaymentStatus     string          `json:"paymentStatus" validate:"required,oneof=PAYMENT_PENDING PARTIALLY_PAID PAYMENT_COMPLETED PAYMENT_FAILED"`
	InventoryType     string          `json:"inventoryType" validate:"required,oneof=Sell Rent"`
	SellOrRentPrice   decimal.Decimal `json:"sellOrRentPrice" validate:"required"`
}

// UpdateItemRequest carries the patchable fields for PUT /inventory/{id}.
// Nil pointers mean "leave unchanged".
type UpdateItemRequest struct {
	InventoryName     *string          `json:"inventoryName,omitempty" validate:"omitempty,min=2,max=120"`
	Category          *string          `json:"category,omitempty" validate:"omitempty,min=2,max=80"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	Unit              *string          `json:"unit,omitempty" validate:"omitempty,max=32"`
	SourceCompany     *string          `json:"sourceCompany,omitempty" validate:"omitempty,min=2,max=120"`
	AvailableQuantity *int             `json:"availableQuantity,omitempty" validate:"omitempty,min=0"`
	PaymentStatus     *string          `json:"paymentStatus,omitempty" validate:"omitempty,oneof=PAYMENT_PENDING PARTIALLY_PAID PAYMENT_COMPLETED PAYMENT_FAILED"`
	InventoryType     *string          `json:"inventoryType,omitempty" validate:"omitempty,oneof=Sell Rent"`
	SellOrRentPrice   *decimal.Decimal `json:"sellOrRentPrice,omitempty"`
}

// ItemView is the public shape of an inventory item, with the usage rollup
// the dashboard and order forms need.
type ItemView struct {
	ID                uuid.UUID           `json:"id"`
	InventoryName     string              `json:"inventoryName"`
	Category          string              `json:"category"`
	Price             decimal.Decimal     `json:"price"`
	Unit              string              `json:"unit"`
	SourceCompany     string              `json:"sourceCompany"`
	AvailableQuantity int                 `json:"availableQuantity"`
	UsedQuantity      int                 `json:"usedQuantity"`
	RemainingQuantity int                 `json:"remainingQuantity"`
	PaymentStatus     enums.PaymentStatus `json:"paymentStatus"`
	InventoryType     enums.InventoryType `json:"inventoryType"`
	SellOrRentPrice   decimal.Decimal     `json:"sellOrRentPrice"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

func viewFromModel(item models.InventoryItem, used int) ItemView {
	remaining := item.AvailableQuantity - used
	if remaining < 0 {
		remaining = 0
	}
	return ItemView{
		ID:                item.ID,
		InventoryName:     item.InventoryName,
		Category:          item.Category,
		Price:             item.Price,
		Unit:              item.Unit,
		SourceCompany:     item.SourceCompany,
		AvailableQuantity: item.AvailableQuantity,
		UsedQuantity:      used,
		RemainingQuantity: remaining,
		PaymentStatus:     item.PaymentStatus,
		InventoryType:     item.InventoryType,
		SellOrRentPrice:   item.SellOrRentPrice,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

// ListFilters narrows the inventory listing.
type ListFilters struct {
	Category      string
	InventoryType string
	Search        string
}
