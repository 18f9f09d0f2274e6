package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/order/domain"
)

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// GetMyOrdersQuery represents the query to get a user's own orders
type GetMyOrdersQuery struct {
	UserID uint
	Limit  int
	Offset int
}

// GetMyOrdersHandler handles get my orders query
type GetMyOrdersHandler struct {
	repo domain.OrderRepository
}

// NewGetMyOrdersHandler creates a new get my orders handler
func NewGetMyOrdersHandler(repo domain.OrderRepository) *GetMyOrdersHandler {
	return &GetMyOrdersHandler{repo: repo}
}

// Handle executes the get my orders query
func (h *GetMyOrdersHandler) Handle(ctx context.Context, q GetMyOrdersQuery) ([]domain.Order, error) {
	if q.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidOrder)
	}
	limit, offset := clampPage(q.Limit, q.Offset)

	orders, err := h.repo.FindByUserID(ctx, q.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// GetOrderQuery fetches one order. Non-admin callers only see their own.
type GetOrderQuery struct {
	OrderID string
	UserID  uint
	Admin   bool
}

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	repo domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(ctx context.Context, q GetOrderQuery) (*domain.Order, error) {
	order, err := h.repo.FindByID(ctx, q.OrderID)
	if err != nil {
		return nil, err
	}
	if !q.Admin && order.UserID != q.UserID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersQuery represents the admin query over all orders
type ListOrdersQuery struct {
	Limit  int
	Offset int
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(ctx context.Context, q ListOrdersQuery) ([]domain.Order, error) {
	limit, offset := clampPage(q.Limit, q.Offset)

	orders, err := h.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
