package query

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	orderdomain "github.com/tair/storefront/internal/order/domain"
)

type countFunc func() (int64, error)

func (f countFunc) Count(context.Context) (int64, error) { return f() }

type mockOrders struct {
	mock.Mock
}

func (m *mockOrders) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrders) Revenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockOrders) FindAll(ctx context.Context, limit, offset int) ([]orderdomain.Order, error) {
	args := m.Called(ctx, limit, offset)
	orders, _ := args.Get(0).([]orderdomain.Order)
	return orders, args.Error(1)
}

func TestDashboard(t *testing.T) {
	orders := &mockOrders{}
	orders.On("Count", mock.Anything).Return(int64(12), nil)
	orders.On("Revenue", mock.Anything).Return(decimal.RequireFromString("431.50"), nil)
	orders.On("FindAll", mock.Anything, RecentOrderCount, 0).Return([]orderdomain.Order{{ID: "o1"}, {ID: "o2"}}, nil)

	h := NewGetDashboardHandler(
		countFunc(func() (int64, error) { return 40, nil }),
		orders,
		countFunc(func() (int64, error) { return 3, nil }),
	)

	d, err := h.Handle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(40), d.ProductCount)
	assert.Equal(t, int64(12), d.OrderCount)
	assert.Equal(t, int64(3), d.UserCount)
	assert.True(t, decimal.RequireFromString("431.50").Equal(d.Revenue))
	assert.Len(t, d.RecentOrders, 2)
	orders.AssertExpectations(t)
}

func TestDashboard_EmptyStore(t *testing.T) {
	orders := &mockOrders{}
	orders.On("Count", mock.Anything).Return(int64(0), nil)
	orders.On("Revenue", mock.Anything).Return(decimal.Zero, nil)
	orders.On("FindAll", mock.Anything, RecentOrderCount, 0).Return(nil, nil)
	zero := countFunc(func() (int64, error) { return 0, nil })

	d, err := NewGetDashboardHandler(zero, orders, zero).Handle(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, d.RecentOrders)
	assert.Empty(t, d.RecentOrders)
}

func TestDashboard_FailureFailsQuery(t *testing.T) {
	orders := &mockOrders{}
	orders.On("Count", mock.Anything).Return(int64(1), nil)
	orders.On("Revenue", mock.Anything).Return(decimal.Zero, nil)
	orders.On("FindAll", mock.Anything, RecentOrderCount, 0).Return(nil, nil)

	h := NewGetDashboardHandler(
		countFunc(func() (int64, error) { return 0, errors.New("db down") }),
		orders,
		countFunc(func() (int64, error) { return 1, nil }),
	)
	_, err := h.Handle(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count products")
}
