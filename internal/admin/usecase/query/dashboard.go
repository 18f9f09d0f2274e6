package query

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	orderdomain "github.com/tair/storefront/internal/order/domain"
)

// RecentOrderCount is the number of orders shown on the dashboard
const RecentOrderCount = 5

// Counter counts rows of one entity
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// OrderStats is the slice of the order repository the dashboard reads
type OrderStats interface {
	Counter
	Revenue(ctx context.Context) (decimal.Decimal, error)
	FindAll(ctx context.Context, limit, offset int) ([]orderdomain.Order, error)
}

// Dashboard is the back-office overview
type Dashboard struct {
	ProductCount int64               `json:"product_count"`
	OrderCount   int64               `json:"order_count"`
	UserCount    int64               `json:"user_count"`
	Revenue      decimal.Decimal     `json:"revenue"`
	RecentOrders []orderdomain.Order `json:"recent_orders"`
}

// GetDashboardHandler assembles the dashboard
type GetDashboardHandler struct {
	products Counter
	orders   OrderStats
	users    Counter
}

// NewGetDashboardHandler creates a dashboard query handler
func NewGetDashboardHandler(products Counter, orders OrderStats, users Counter) *GetDashboardHandler {
	return &GetDashboardHandler{products: products, orders: orders, users: users}
}

// Handle runs the dashboard reads concurrently; any failure fails the whole query
func (h *GetDashboardHandler) Handle(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		if d.ProductCount, err = h.products.Count(ctx); err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if d.OrderCount, err = h.orders.Count(ctx); err != nil {
			return fmt.Errorf("count orders: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if d.UserCount, err = h.users.Count(ctx); err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if d.Revenue, err = h.orders.Revenue(ctx); err != nil {
			return fmt.Errorf("sum revenue: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if d.RecentOrders, err = h.orders.FindAll(ctx, RecentOrderCount, 0); err != nil {
			return fmt.Errorf("recent orders: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if d.RecentOrders == nil {
		d.RecentOrders = []orderdomain.Order{}
	}
	return &d, nil
}
