package command

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/order/domain"
	"github.com/tair/storefront/kafka"
)

type mockRepo struct {
	mock.Mock
	domain.OrderRepository
}

func (m *mockRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil {
		order.ID = "order-1"
	}
	return args.Error(0)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error {
	return m.Called(ctx, event).Error(0)
}

type invalidator struct{ n int }

func (i *invalidator) Invalidate() { i.n++ }

func validCommand() CreateOrderCommand {
	return CreateOrderCommand{
		UserID: 7,
		ShippingAddress: domain.ShippingAddress{
			Email: "jeanne@example.com", FirstName: "Jeanne", LastName: "Martin",
			Address: "12 rue de la Paix", City: "Paris", PostalCode: "75002", Country: "France",
		},
		Lines: []OrderLine{
			{ProductID: "p1", ProductName: "Robe", Price: decimal.RequireFromString("20.00"), Quantity: 2},
			{ProductID: "p2", ProductName: "Sac", Price: decimal.RequireFromString("5.50"), Quantity: 1},
		},
		ShippingFee: decimal.RequireFromString("4.99"),
		Currency:    "EUR",
	}
}

func TestCreateOrder(t *testing.T) {
	repo := &mockRepo{}
	pub := &mockPublisher{}
	cache := &invalidator{}

	repo.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.StatusPending && len(o.Items) == 2 && o.UserID == 7
	})).Return(nil)
	pub.On("PublishOrderPlaced", mock.Anything, mock.MatchedBy(func(e kafka.OrderPlacedEvent) bool {
		return e.OrderID == "order-1" && e.Currency == "EUR" && len(e.Items) == 2 && e.Items[0].Quantity == 2
	})).Return(nil)

	order, err := NewCreateOrderHandler(repo, pub, cache).Handle(context.Background(), validCommand())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("50.49").Equal(order.TotalAmount))
	assert.Equal(t, 1, cache.n)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCreateOrder_PublishFailureIsNotFatal(t *testing.T) {
	repo := &mockRepo{}
	pub := &mockPublisher{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	pub.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	order, err := NewCreateOrderHandler(repo, pub, nil).Handle(context.Background(), validCommand())
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	repo := &mockRepo{}
	pub := &mockPublisher{}
	cache := &invalidator{}
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrInsufficientStock)

	_, err := NewCreateOrderHandler(repo, pub, cache).Handle(context.Background(), validCommand())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, cache.n)
	pub.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything, mock.Anything)
}

func TestCreateOrder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CreateOrderCommand)
	}{
		{"no user", func(c *CreateOrderCommand) { c.UserID = 0 }},
		{"no lines", func(c *CreateOrderCommand) { c.Lines = nil }},
		{"zero quantity", func(c *CreateOrderCommand) { c.Lines[0].Quantity = 0 }},
		{"negative fee", func(c *CreateOrderCommand) { c.ShippingFee = decimal.NewFromInt(-1) }},
		{"missing city", func(c *CreateOrderCommand) { c.ShippingAddress.City = " " }},
		{"bad email", func(c *CreateOrderCommand) { c.ShippingAddress.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			cmd := validCommand()
			tt.modify(&cmd)

			_, err := NewCreateOrderHandler(repo, nil, nil).Handle(context.Background(), cmd)
			assert.ErrorIs(t, err, domain.ErrInvalidOrder)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := &mockRepo{}
	repo.On("UpdateStatus", mock.Anything, "order-1", domain.StatusShipped).Return(nil)
	repo.On("UpdateStatus", mock.Anything, "missing", domain.StatusShipped).Return(domain.ErrOrderNotFound)
	h := NewUpdateStatusHandler(repo)

	require.NoError(t, h.Handle(context.Background(), UpdateStatusCommand{OrderID: "order-1", Status: domain.StatusShipped}))
	assert.ErrorIs(t, h.Handle(context.Background(), UpdateStatusCommand{OrderID: "missing", Status: domain.StatusShipped}), domain.ErrOrderNotFound)
	assert.ErrorIs(t, h.Handle(context.Background(), UpdateStatusCommand{OrderID: "order-1", Status: "lost"}), domain.ErrInvalidStatus)
}
