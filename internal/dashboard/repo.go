package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/malanad-agro/agrostore-backend/pkg/db/models"
	"github.com/malanad-agro/agrostore-backend/pkg/enums"
)

// Repository defines the read-only rollup queries behind the dashboard.
type Repository interface {
	SellRevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
	CountItemsInStock(ctx context.Context) (int64, error)
	CountOrdersByTypeSince(ctx context.Context, orderType enums.OrderType, since time.Time) (int64, error)
	CountOpenOrdersByType(ctx context.Context, orderType enums.OrderType) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a dashboard repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SellRevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var raw decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_type = ? AND created_at >= ?", enums.OrderTypeSell, since).
		Select("SUM(price * quantity)").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !raw.Valid {
		return decimal.Zero, nil
	}
	return raw.Decimal, nil
}

func (r *repository) CountItemsInStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("available_quantity > 0").
		Count(&count).Error
	return count, err
}

func (r *repository) CountOrdersByTypeSince(ctx context.Context, orderType enums.OrderType, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_type = ? AND created_at >= ?", orderType, since).
		Count(&count).Error
	return count, err
}

func (r *repository) CountOpenOrdersByType(ctx context.Context, orderType enums.OrderType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_type = ?", orderType).
		Where("order_status NOT IN ?", []enums.OrderStatus{enums.OrderStatusCompleted, enums.OrderStatusCancelled}).
		Count(&count).Error
	return count, err
}
