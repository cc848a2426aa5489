// Package orders implements the order ledger. Creating an order and claiming
// its capacity happen in one transaction against a row-locked inventory item,
// so two clerks racing for the last units cannot both win.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/malanad-agro/agrostore-backend/internal/inventory"
	"github.com/malanad-agro/agrostore-backend/internal/usage"
	"github.com/malanad-agro/agrostore-backend/pkg/db/models"
	"github.com/malanad-agro/agrostore-backend/pkg/enums"
	pkgerrors "github.com/malanad-agro/agrostore-backend/pkg/errors"
	"github.com/malanad-agro/agrostore-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the order ledger operations.
type Service interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderView, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListOrders(ctx context.Context, params pagination.Params, filters ListFilters) ([]OrderView, pagination.Meta, error)
	ListPendingRentOrders(ctx context.Context, params pagination.Params) ([]OrderView, pagination.Meta, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderView, error)
	GetUsedQuantity(ctx context.Context, inventoryID uuid.UUID) (*UsedQuantityView, error)
}

type service struct {
	repo      Repository
	inventory inventory.Repository
	usage     usage.Ledger
	tx        txRunner
	now       func() time.Time
}

// NewService builds the order service with the required dependencies.
func NewService(repo Repository, inventoryRepo inventory.Repository, ledger usage.Ledger, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("usage ledger required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:      repo,
		inventory: inventoryRepo,
		usage:     ledger,
		tx:        tx,
		now:       time.Now,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderView, error) {
	orderType, err := enums.ParseOrderType(req.OrderType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order type")
	}
	paymentStatus, err := enums.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}
	orderStatus, err := enums.ParseOrderStatus(req.OrderStatus)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	// The stored status follows the payment status, same as on update; an
	// explicit cancellation is kept as supplied.
	if orderStatus != enums.OrderStatusCancelled {
		if derived, ok := orderStatusForPayment(paymentStatus); ok {
			orderStatus = derived
		}
	}

	if orderType == enums.OrderTypeRent {
		if req.DueDateTime == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"dueDateTime": "is required"})
		}
		if !req.DueDateTime.After(s.now()) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"dueDateTime": "must be in the future"})
		}
	}

	var created *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		invRepo := s.inventory.WithTx(tx)
		ordRepo := s.repo.WithTx(tx)
		ledger := s.usage.WithTx(tx)

		item, err := invRepo.FindByIDForUpdate(ctx, req.InventoryID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
		}

		if string(item.InventoryType) != string(orderType) {
			msg := fmt.Sprintf("item is stocked for %s, not %s", item.InventoryType, orderType)
			return pkgerrors.New(pkgerrors.CodeValidation, msg)
		}

		order := &models.Order{
			InventoryID:      item.ID,
			InventoryName:    item.InventoryName,
			Price:            item.SellOrRentPrice,
			OrderType:        orderType,
			Quantity:         req.Quantity,
			CustomerName:     req.CustomerName,
			CustomerLocation: req.CustomerLocation,
			CustomerPhone:    req.CustomerPhone,
			PaymentStatus:    paymentStatus,
			OrderStatus:      orderStatus,
			DueDateTime:      req.DueDateTime,
		}
		if _, err := ordRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if _, err := ledger.Reserve(ctx, item, order.ID, req.Quantity); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := viewFromModel(*created)
	return &view, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	view := viewFromModel(*order)
	return &view, nil
}

func (s *service) ListOrders(ctx context.Context, params pagination.Params, filters ListFilters) ([]OrderView, pagination.Meta, error) {
	orders, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return viewsFromModels(orders), pagination.NewMeta(params, total), nil
}

func (s *service) ListPendingRentOrders(ctx context.Context, params pagination.Params) ([]OrderView, pagination.Meta, error) {
	orders, total, err := s.repo.ListPendingRent(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending rent orders")
	}
	return viewsFromModels(orders), pagination.NewMeta(params, total), nil
}

func (s *service) UpdateOrder(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderView, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if order.OrderStatus == enums.OrderStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cancelled orders cannot be updated")
	}

	updates := map[string]any{}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.CustomerLocation != nil {
		updates["customer_location"] = *req.CustomerLocation
	}
	if req.CustomerPhone != nil {
		updates["customer_phone"] = *req.CustomerPhone
	}
	if req.DueDateTime != nil {
		if order.OrderType != enums.OrderTypeRent {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "due date applies to rent orders only")
		}
		updates["due_date_time"] = *req.DueDateTime
	}

	// Explicit cancellation wins over any payment-derived transition.
	if req.OrderStatus != nil {
		updates["order_status"] = enums.OrderStatusCancelled
		if req.PaymentStatus != nil {
			paymentStatus, err := enums.ParsePaymentStatus(*req.PaymentStatus)
			if err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
			}
			updates["payment_status"] = paymentStatus
		}
	} else if req.PaymentStatus != nil {
		paymentStatus, err := enums.ParsePaymentStatus(*req.PaymentStatus)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
		}
		updates["payment_status"] = paymentStatus
		if derived, ok := orderStatusForPayment(paymentStatus); ok {
			updates["order_status"] = derived
		}
	}

	// Unit-only patches land here too: unit is accepted, discarded, and
	// does not count as a field to update.
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}

	return s.GetOrder(ctx, id)
}

// orderStatusForPayment maps a payment transition to the order lifecycle.
// A failed payment leaves the order where it was.
func orderStatusForPayment(payment enums.PaymentStatus) (enums.OrderStatus, bool) {
	switch payment {
	case enums.PaymentStatusCompleted:
		return enums.OrderStatusCompleted, true
	case enums.PaymentStatusPartiallyPaid:
		return enums.OrderStatusInProgress, true
	case enums.PaymentStatusPending:
		return enums.OrderStatusPending, true
	default:
		return "", false
	}
}

func (s *service) GetUsedQuantity(ctx context.Context, inventoryID uuid.UUID) (*UsedQuantityView, error) {
	item, err := s.inventory.FindByID(ctx, inventoryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}

	records, err := s.usage.ListByInventory(ctx, inventoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list usage records")
	}

	used := 0
	entries := make([]UsageEntryView, 0, len(records))
	for _, rec := range records {
		used += rec.Quantity
		entries = append(entries, UsageEntryView{
			OrderID:   rec.OrderID,
			Quantity:  rec.Quantity,
			CreatedAt: rec.CreatedAt,
		})
	}

	remaining := item.AvailableQuantity - used
	if remaining < 0 {
		remaining = 0
	}

	return &UsedQuantityView{
		InventoryID:       item.ID,
		Used:              used,
		AvailableQuantity: remaining,
		TotalQuantity:     item.AvailableQuantity,
		Entries:           entries,
	}, nil
}

func viewsFromModels(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, viewFromModel(order))
	}
	return views
}
