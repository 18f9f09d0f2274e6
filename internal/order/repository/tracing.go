package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/storefront/internal/order/domain"
)

var tracer = otel.Tracer("order-repository")

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// TracingOrderRepository wraps an order repository with spans
type TracingOrderRepository struct {
	next domain.OrderRepository
}

// NewTracingOrderRepository decorates next with tracing
func NewTracingOrderRepository(next domain.OrderRepository) *TracingOrderRepository {
	return &TracingOrderRepository{next: next}
}

// Create with tracing
func (r *TracingOrderRepository) Create(ctx context.Context, order *domain.Order) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Order.Create",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(order.UserID)),
			attribute.Int("order.items", len(order.Items)),
			attribute.String("order.total", order.TotalAmount.StringFixed(2)),
		),
	)
	defer func() { finish(span, err) }()

	if err = r.next.Create(ctx, order); err == nil {
		span.SetAttributes(attribute.String("order.id", order.ID))
	}
	return err
}

// FindByID with tracing
func (r *TracingOrderRepository) FindByID(ctx context.Context, id string) (o *domain.Order, err error) {
	ctx, span := tracer.Start(ctx, "repository.Order.FindByID",
		trace.WithAttributes(attribute.String("order.id", id)),
	)
	defer func() { finish(span, err) }()

	return r.next.FindByID(ctx, id)
}

// FindByUserID with tracing
func (r *TracingOrderRepository) FindByUserID(ctx context.Context, userID uint, limit, offset int) (orders []domain.Order, err error) {
	ctx, span := tracer.Start(ctx, "repository.Order.FindByUserID",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(userID)),
			attribute.Int("limit", limit),
			attribute.Int("offset", offset),
		),
	)
	defer func() { finish(span, err) }()

	orders, err = r.next.FindByUserID(ctx, userID, limit, offset)
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, err
}

// FindAll with tracing
func (r *TracingOrderRepository) FindAll(ctx context.Context, limit, offset int) (orders []domain.Order, err error) {
	ctx, span := tracer.Start(ctx, "repository.Order.FindAll",
		trace.WithAttributes(
			attribute.Int("limit", limit),
			attribute.Int("offset", offset),
		),
	)
	defer func() { finish(span, err) }()

	orders, err = r.next.FindAll(ctx, limit, offset)
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, err
}

// UpdateStatus with tracing
func (r *TracingOrderRepository) UpdateStatus(ctx context.Context, id, status string) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Order.UpdateStatus",
		trace.WithAttributes(
			attribute.String("order.id", id),
			attribute.String("order.status", status),
		),
	)
	defer func() { finish(span, err) }()

	return r.next.UpdateStatus(ctx, id, status)
}

// Count with tracing
func (r *TracingOrderRepository) Count(ctx context.Context) (n int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.Order.Count")
	defer func() { finish(span, err) }()

	return r.next.Count(ctx)
}

// Revenue with tracing
func (r *TracingOrderRepository) Revenue(ctx context.Context) (total decimal.Decimal, err error) {
	ctx, span := tracer.Start(ctx, "repository.Order.Revenue")
	defer func() { finish(span, err) }()

	return r.next.Revenue(ctx)
}
