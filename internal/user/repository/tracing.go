package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/storefront/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// TracingUserRepository wraps a user repository with spans
type TracingUserRepository struct {
	next domain.UserRepository
}

// NewTracingUserRepository decorates next with tracing
func NewTracingUserRepository(next domain.UserRepository) *TracingUserRepository {
	return &TracingUserRepository{next: next}
}

// Create with tracing
func (r *TracingUserRepository) Create(ctx context.Context, user *domain.User) (err error) {
	ctx, span := tracer.Start(ctx, "repository.User.Create",
		trace.WithAttributes(attribute.String("user.role", user.Role)),
	)
	defer func() { finish(span, err) }()

	if err = r.next.Create(ctx, user); err == nil {
		span.SetAttributes(attribute.Int64("user.id", int64(user.ID)))
	}
	return err
}

// FindByID with tracing
func (r *TracingUserRepository) FindByID(ctx context.Context, id uint) (u *domain.User, err error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindByID",
		trace.WithAttributes(attribute.Int64("user.id", int64(id))),
	)
	defer func() { finish(span, err) }()

	return r.next.FindByID(ctx, id)
}

// FindByEmail with tracing. The address itself is not recorded.
func (r *TracingUserRepository) FindByEmail(ctx context.Context, email string) (u *domain.User, err error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindByEmail")
	defer func() { finish(span, err) }()

	if u, err = r.next.FindByEmail(ctx, email); err == nil {
		span.SetAttributes(attribute.Int64("user.id", int64(u.ID)))
	}
	return u, err
}

// FindAll with tracing
func (r *TracingUserRepository) FindAll(ctx context.Context, limit, offset int) (users []domain.User, err error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindAll",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer func() { finish(span, err) }()

	if users, err = r.next.FindAll(ctx, limit, offset); err == nil {
		span.SetAttributes(attribute.Int("result.count", len(users)))
	}
	return users, err
}

// UpdateRole with tracing
func (r *TracingUserRepository) UpdateRole(ctx context.Context, id uint, role string) (err error) {
	ctx, span := tracer.Start(ctx, "repository.User.UpdateRole",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(id)),
			attribute.String("user.role", role),
		),
	)
	defer func() { finish(span, err) }()

	return r.next.UpdateRole(ctx, id, role)
}

// Count with tracing
func (r *TracingUserRepository) Count(ctx context.Context) (n int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.User.Count")
	defer func() { finish(span, err) }()

	if n, err = r.next.Count(ctx); err == nil {
		span.SetAttributes(attribute.Int64("result.count", n))
	}
	return n, err
}
