// Package dashboard produces the storefront rollups. Every figure is
// computed from the ledgers on demand; nothing here is cached or persisted.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/malanad-agro/agrostore-backend/pkg/config"
	"github.com/malanad-agro/agrostore-backend/pkg/enums"
	pkgerrors "github.com/malanad-agro/agrostore-backend/pkg/errors"
)

// Summary is the combined dashboard payload.
type Summary struct {
	TotalProfit         decimal.Decimal `json:"totalProfit"`
	TotalAvailableItems int64           `json:"totalAvailableItems"`
	TotalSold           int64           `json:"totalSold"`
	TotalRented         int64           `json:"totalRented"`
	PendingRents        int64           `json:"pendingRents"`
	PendingSales        int64           `json:"pendingSales"`
}

// Service defines the dashboard operations. Each figure is also reachable on
// its own endpoint, so they are exposed individually as well as combined.
type Service interface {
	Summarize(ctx context.Context) (*Summary, error)
	TotalProfit(ctx context.Context) (decimal.Decimal, error)
	TotalAvailableItems(ctx context.Context) (int64, error)
	TotalSold(ctx context.Context) (int64, error)
	TotalRented(ctx context.Context) (int64, error)
	PendingRents(ctx context.Context) (int64, error)
	PendingSales(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
	cfg  config.DashboardConfig
	now  func() time.Time
}

// NewService builds the dashboard service with the required dependencies.
func NewService(repo Repository, cfg config.DashboardConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	return &service{repo: repo, cfg: cfg, now: time.Now}, nil
}

func (s *service) TotalProfit(ctx context.Context) (decimal.Decimal, error) {
	profit, err := s.repo.SellRevenueSince(ctx, s.now().Add(-s.cfg.ProfitWindow))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum sell revenue")
	}
	return profit, nil
}

func (s *service) TotalAvailableItems(ctx context.Context) (int64, error) {
	available, err := s.repo.CountItemsInStock(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count stocked items")
	}
	return available, nil
}

func (s *service) TotalSold(ctx context.Context) (int64, error) {
	sold, err := s.repo.CountOrdersByTypeSince(ctx, enums.OrderTypeSell, s.now().Add(-s.cfg.SoldWindow))
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count sell orders")
	}
	return sold, nil
}

func (s *service) TotalRented(ctx context.Context) (int64, error) {
	rented, err := s.repo.CountOrdersByTypeSince(ctx, enums.OrderTypeRent, s.now().Add(-s.cfg.RentedWindow))
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count rent orders")
	}
	return rented, nil
}

func (s *service) PendingRents(ctx context.Context) (int64, error) {
	pending, err := s.repo.CountOpenOrdersByType(ctx, enums.OrderTypeRent)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count open rent orders")
	}
	return pending, nil
}

func (s *service) PendingSales(ctx context.Context) (int64, error) {
	pending, err := s.repo.CountOpenOrdersByType(ctx, enums.OrderTypeSell)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count open sell orders")
	}
	return pending, nil
}

// Summarize computes all rollups; a failure in any one of them fails the
// whole call rather than returning partial numbers.
func (s *service) Summarize(ctx context.Context) (*Summary, error) {
	profit, err := s.TotalProfit(ctx)
	if err != nil {
		return nil, err
	}

	available, err := s.TotalAvailableItems(ctx)
	if err != nil {
		return nil, err
	}

	sold, err := s.TotalSold(ctx)
	if err != nil {
		return nil, err
	}

	rented, err := s.TotalRented(ctx)
	if err != nil {
		return nil, err
	}

	pendingRents, err := s.PendingRents(ctx)
	if err != nil {
		return nil, err
	}

	pendingSales, err := s.PendingSales(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalProfit:         profit,
		TotalAvailableItems: available,
		TotalSold:           sold,
		TotalRented:         rented,
		PendingRents:        pendingRents,
		PendingSales:        pendingSales,
	}, nil
}
