package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/order/domain"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
)

// EventPublisher announces committed orders
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error
}

// Invalidator drops cached catalog state after stock changes
type Invalidator interface {
	Invalidate()
}

// OrderLine is one product to order
type OrderLine struct {
	ProductID     string
	ProductName   string
	Price         decimal.Decimal
	Quantity      int
	SelectedColor string
	SelectedSize  string
}

// CreateOrderCommand represents the command to place an order
type CreateOrderCommand struct {
	UserID          uint
	ShippingAddress domain.ShippingAddress
	Lines           []OrderLine
	ShippingFee     decimal.Decimal
	Currency        string
}

// CreateOrderHandler handles create order command
type CreateOrderHandler struct {
	repo      domain.OrderRepository
	publisher EventPublisher
	cache     Invalidator
}

// NewCreateOrderHandler creates a new create order handler. publisher and
// cache may be nil.
func NewCreateOrderHandler(repo domain.OrderRepository, publisher EventPublisher, cache Invalidator) *CreateOrderHandler {
	return &CreateOrderHandler{repo: repo, publisher: publisher, cache: cache}
}

// Handle executes the create order command
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidOrder)
	}
	if len(cmd.Lines) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", domain.ErrInvalidOrder)
	}
	if cmd.ShippingFee.IsNegative() {
		return nil, fmt.Errorf("%w: shipping fee must not be negative", domain.ErrInvalidOrder)
	}
	if err := cmd.ShippingAddress.Validate(); err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:          cmd.UserID,
		ShippingFee:     cmd.ShippingFee,
		Status:          domain.StatusPending,
		ShippingAddress: trimAddress(cmd.ShippingAddress),
		Items:           make([]domain.OrderItem, 0, len(cmd.Lines)),
	}
	for _, l := range cmd.Lines {
		if l.ProductID == "" || l.Quantity <= 0 || l.Price.IsNegative() {
			return nil, fmt.Errorf("%w: invalid line for product %q", domain.ErrInvalidOrder, l.ProductID)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			Price:         l.Price,
			Quantity:      l.Quantity,
			SelectedColor: l.SelectedColor,
			SelectedSize:  l.SelectedSize,
		})
	}
	order.TotalAmount = order.Subtotal().Add(cmd.ShippingFee)

	if err := h.repo.Create(ctx, order); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if h.cache != nil {
		h.cache.Invalidate()
	}
	h.publish(ctx, order, cmd.Currency)

	return order, nil
}

func (h *CreateOrderHandler) publish(ctx context.Context, order *domain.Order, currency string) {
	if h.publisher == nil {
		return
	}

	event := kafka.OrderPlacedEvent{
		OrderID:  order.ID,
		UserID:   order.UserID,
		Total:    order.TotalAmount,
		Currency: currency,
		Items:    make([]kafka.OrderPlacedItem, 0, len(order.Items)),
	}
	for _, it := range order.Items {
		event.Items = append(event.Items, kafka.OrderPlacedItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	if err := h.publisher.PublishOrderPlaced(ctx, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("order_id", order.ID).
			Msg("Failed to publish order placed event")
	}
}

func trimAddress(a domain.ShippingAddress) domain.ShippingAddress {
	return domain.ShippingAddress{
		Email:      strings.TrimSpace(a.Email),
		FirstName:  strings.TrimSpace(a.FirstName),
		LastName:   strings.TrimSpace(a.LastName),
		Address:    strings.TrimSpace(a.Address),
		City:       strings.TrimSpace(a.City),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Country:    strings.TrimSpace(a.Country),
	}
}
