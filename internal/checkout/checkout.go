// Package checkout turns a session cart into an order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/cart"
	cartdomain "github.com/tair/storefront/internal/cart/domain"
	orderdomain "github.com/tair/storefront/internal/order/domain"
	"github.com/tair/storefront/internal/order/usecase/command"
	"github.com/tair/storefront/pkg/logger"
)

var (
	ErrAuthRequired = errors.New("sign in required to check out")
	ErrEmptyCart    = errors.New("cart is empty")
)

// Redirect targets handed back to the client
const (
	LoginRedirect   = "/auth/login?redirect=/checkout"
	SuccessRedirect = "/checkout/success"
)

// Config holds shipping rules
type Config struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	Currency              string
}

// ShippingFor returns the fee charged for a cart total
func (c Config) ShippingFor(total decimal.Decimal) decimal.Decimal {
	if total.GreaterThanOrEqual(c.FreeShippingThreshold) {
		return decimal.Zero
	}
	return c.ShippingFee
}

// OrderCreator places orders
type OrderCreator interface {
	Handle(ctx context.Context, cmd command.CreateOrderCommand) (*orderdomain.Order, error)
}

// Carts resolves the cart of a session
type Carts interface {
	Get(sessionID string) *cart.Store
}

// Summary prices a cart
type Summary struct {
	Items     []cartdomain.Item `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	Shipping  decimal.Decimal   `json:"shipping"`
	Total     decimal.Decimal   `json:"total"`
	Currency  string            `json:"currency"`
}

// Request is one checkout submission
type Request struct {
	SessionID string
	UserID    uint
	Email     string
	Address   orderdomain.ShippingAddress
}

// Result tells the client where to go next
type Result struct {
	Order    *orderdomain.Order `json:"order,omitempty"`
	Summary  *Summary           `json:"summary,omitempty"`
	Redirect string             `json:"redirect"`
}

// Service runs checkouts
type Service struct {
	carts    Carts
	orders   OrderCreator
	cfg      Config
	placed   prometheus.Counter
	failures *prometheus.CounterVec
}

// NewService creates a checkout service and registers its metrics
func NewService(carts Carts, orders OrderCreator, cfg Config, reg prometheus.Registerer) *Service {
	s := &Service{
		carts:  carts,
		orders: orders,
		cfg:    cfg,
		placed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Orders placed through checkout",
		}),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_checkout_failures_total",
				Help: "Checkout submissions that did not place an order, by reason",
			},
			[]string{"reason"},
		),
	}
	reg.MustRegister(s.placed, s.failures)
	return s
}

// Summarize prices the current cart of a session
func (s *Service) Summarize(ctx context.Context, sessionID string) Summary {
	return s.summarize(s.carts.Get(sessionID).Sync(ctx))
}

func (s *Service) summarize(state cartdomain.State) Summary {
	shipping := s.cfg.ShippingFor(state.Total)
	return Summary{
		Items:     state.Items,
		ItemCount: state.ItemCount,
		Subtotal:  state.Total,
		Shipping:  shipping,
		Total:     state.Total.Add(shipping),
		Currency:  s.cfg.Currency,
	}
}

// Checkout places one order for the session cart and empties the cart once
// the order exists. On failure the cart is left untouched.
func (s *Service) Checkout(ctx context.Context, req Request) (Result, error) {
	if req.UserID == 0 {
		s.failures.WithLabelValues("unauthenticated").Inc()
		return Result{Redirect: LoginRedirect}, ErrAuthRequired
	}

	store := s.carts.Get(req.SessionID)
	state := store.Sync(ctx)
	if state.IsEmpty() {
		s.failures.WithLabelValues("empty_cart").Inc()
		return Result{}, ErrEmptyCart
	}
	summary := s.summarize(state)

	address := req.Address
	if strings.TrimSpace(address.Email) == "" {
		address.Email = req.Email
	}

	cmd := command.CreateOrderCommand{
		UserID:          req.UserID,
		ShippingAddress: address,
		Lines:           make([]command.OrderLine, 0, len(state.Items)),
		ShippingFee:     summary.Shipping,
		Currency:        s.cfg.Currency,
	}
	for _, it := range state.Items {
		cmd.Lines = append(cmd.Lines, command.OrderLine{
			ProductID:     it.ProductID,
			ProductName:   it.Name,
			Price:         it.Price,
			Quantity:      it.Quantity,
			SelectedColor: it.SelectedColor,
			SelectedSize:  it.SelectedSize,
		})
	}

	order, err := s.orders.Handle(ctx, cmd)
	if err != nil {
		s.failures.WithLabelValues(failureReason(err)).Inc()
		logger.Error(ctx).
			Err(err).
			Uint("user_id", req.UserID).
			Int("item_count", state.ItemCount).
			Msg("Order submission failed")
		return Result{Summary: &summary}, fmt.Errorf("checkout: %w", err)
	}

	store.Dispatch(ctx, cartdomain.ClearCart{})
	s.placed.Inc()

	logger.Info(ctx).
		Str("order_id", order.ID).
		Uint("user_id", req.UserID).
		Str("total", order.TotalAmount.StringFixed(2)).
		Msg("Order placed")

	return Result{Order: order, Summary: &summary, Redirect: SuccessRedirect}, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, orderdomain.ErrInvalidOrder):
		return "invalid"
	case errors.Is(err, orderdomain.ErrInsufficientStock):
		return "out_of_stock"
	default:
		return "error"
	}
}
