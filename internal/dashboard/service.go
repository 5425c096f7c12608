package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"go.uber.org/multierr"
)

// LowStockThreshold is the stock level at or below which a physical
// product is flagged on the dashboard.
const LowStockThreshold = 5

// Snapshot is the admin dashboard aggregate.
type Snapshot struct {
	OrdersByStatus map[enums.OrderStatus]int64 `json:"orders_by_status"`
	LeasesByStatus map[enums.LeaseStatus]int64 `json:"leases_by_status"`
	Revenue7d      string                      `json:"revenue_7d"`
	Revenue30d     string                      `json:"revenue_30d"`
	ActiveProducts int64                       `json:"active_products"`
	LowStock       int64                       `json:"low_stock"`
	GeneratedAt    time.Time                   `json:"generated_at"`
}

type orderStats interface {
	CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error)
	RevenueSince(ctx context.Context, since time.Time) (string, error)
}

type productStats interface {
	CountActive(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

type leaseStats interface {
	CountByStatus(ctx context.Context) (map[enums.LeaseStatus]int64, error)
}

// Service assembles the admin dashboard snapshot.
type Service interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type service struct {
	orders   orderStats
	products productStats
	leases   leaseStats
	now      func() time.Time
}

// ServiceParams bundles the dependencies required to build the dashboard.
type ServiceParams struct {
	Orders   orderStats
	Products productStats
	Leases   leaseStats
	Now      func() time.Time
}

// NewService constructs the dashboard service.
func NewService(params ServiceParams) (Service, error) {
	if params.Orders == nil {
		return nil, fmt.Errorf("order stats source is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product stats source is required")
	}
	if params.Leases == nil {
		return nil, fmt.Errorf("lease stats source is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		orders:   params.Orders,
		products: params.Products,
		leases:   params.Leases,
		now:      now,
	}, nil
}

// Snapshot gathers every aggregate. The queries are independent, so errors
// are collected instead of aborting on the first one; any failure still
// fails the whole snapshot.
func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	now := s.now()
	snapshot := &Snapshot{GeneratedAt: now}

	var errs error

	ordersByStatus, err := s.orders.CountByStatus(ctx)
	errs = multierr.Append(errs, wrap(err, "orders by status"))
	snapshot.OrdersByStatus = ordersByStatus

	revenue7d, err := s.orders.RevenueSince(ctx, now.AddDate(0, 0, -7))
	errs = multierr.Append(errs, wrap(err, "revenue 7d"))
	snapshot.Revenue7d = revenue7d

	revenue30d, err := s.orders.RevenueSince(ctx, now.AddDate(0, 0, -30))
	errs = multierr.Append(errs, wrap(err, "revenue 30d"))
	snapshot.Revenue30d = revenue30d

	activeProducts, err := s.products.CountActive(ctx)
	errs = multierr.Append(errs, wrap(err, "active products"))
	snapshot.ActiveProducts = activeProducts

	lowStock, err := s.products.CountLowStock(ctx, LowStockThreshold)
	errs = multierr.Append(errs, wrap(err, "low stock"))
	snapshot.LowStock = lowStock

	leasesByStatus, err := s.leases.CountByStatus(ctx)
	errs = multierr.Append(errs, wrap(err, "leases by status"))
	snapshot.LeasesByStatus = leasesByStatus

	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, errs, "assemble dashboard")
	}
	return snapshot, nil
}

func wrap(err error, what string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}
