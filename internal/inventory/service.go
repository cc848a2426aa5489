package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/malanad-agro/agrostore-backend/internal/usage"
	"github.com/malanad-agro/agrostore-backend/pkg/db"
	"github.com/malanad-agro/agrostore-backend/pkg/db/models"
	"github.com/malanad-agro/agrostore-backend/pkg/enums"
	pkgerrors "github.com/malanad-agro/agrostore-backend/pkg/errors"
	"github.com/malanad-agro/agrostore-backend/pkg/pagination"
)

// Service defines the inventory ledger operations.
type Service interface {
	Create(ctx context.Context, req CreateItemRequest) (*ItemView, error)
	Get(ctx context.Context, id uuid.UUID) (*ItemView, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) ([]ItemView, pagination.Meta, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemView, error)
	// Delete removes the item and returns its last state.
	Delete(ctx context.Context, id uuid.UUID) (*ItemView, error)
}

type service struct {
	repo  Repository
	usage usage.Ledger
}

// NewService builds the inventory service with the required dependencies.
func NewService(repo Repository, ledger usage.Ledger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("usage ledger required")
	}
	return &service{repo: repo, usage: ledger}, nil
}

func (s *service) Create(ctx context.Context, req CreateItemRequest) (*ItemView, error) {
	paymentStatus, err := enums.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}
	inventoryType, err := enums.ParseInventoryType(req.InventoryType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inventory type")
	}

	item := &models.InventoryItem{
		InventoryName:     req.InventoryName,
		Category:          req.Category,
		Price:             req.Price,
		Unit:              req.Unit,
		SourceCompany:     req.SourceCompany,
		AvailableQuantity: req.AvailableQuantity,
		PaymentStatus:     paymentStatus,
		InventoryType:     inventoryType,
		SellOrRentPrice:   req.SellOrRentPrice,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "inventory item already exists for this supplier")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory item")
	}

	view := viewFromModel(*created, 0)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ItemView, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}

	used, err := s.usage.TotalUsed(ctx, item.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum used quantity")
	}

	view := viewFromModel(*item, used)
	return &view, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]ItemView, pagination.Meta, error) {
	items, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	usedByID, err := s.usage.TotalUsedBulk(ctx, ids)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum used quantities")
	}

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, viewFromModel(item, usedByID[item.ID]))
	}
	return views, pagination.NewMeta(params, total), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemView, error) {
	updates := map[string]any{}
	if req.InventoryName != nil {
		updates["inventory_name"] = *req.InventoryName
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.SourceCompany != nil {
		updates["source_company"] = *req.SourceCompany
	}
	if req.AvailableQuantity != nil {
		// Shrinking below what orders already consumed would break the
		// ledger invariant, so check before writing.
		used, err := s.usage.TotalUsed(ctx, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum used quantity")
		}
		if *req.AvailableQuantity < used {
			msg := fmt.Sprintf("available quantity %d is below the %d already consumed", *req.AvailableQuantity, used)
			return nil, pkgerrors.New(pkgerrors.CodeCapacityExceeded, msg).WithDetails(map[string]any{
				"inventoryId":  id,
				"usedQuantity": used,
			})
		}
		updates["available_quantity"] = *req.AvailableQuantity
	}
	if req.PaymentStatus != nil {
		status, err := enums.ParsePaymentStatus(*req.PaymentStatus)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
		}
		updates["payment_status"] = status
	}
	if req.InventoryType != nil {
		typ, err := enums.ParseInventoryType(*req.InventoryType)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inventory type")
		}
		updates["inventory_type"] = typ
	}
	if req.SellOrRentPrice != nil {
		updates["sell_or_rent_price"] = *req.SellOrRentPrice
	}

	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "inventory item already exists for this supplier")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory item")
	}

	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (*ItemView, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "inventory item has orders and cannot be deleted")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inventory item")
	}
	return view, nil
}
