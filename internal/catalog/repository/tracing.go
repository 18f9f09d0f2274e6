package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/storefront/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// TracingProductRepository wraps a product repository with spans
type TracingProductRepository struct {
	next domain.ProductRepository
}

// NewTracingProductRepository decorates next with tracing
func NewTracingProductRepository(next domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{next: next}
}

// Create with tracing
func (r *TracingProductRepository) Create(ctx context.Context, product *domain.Product) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Create",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.String("product.category", product.Category),
			attribute.String("product.price", product.Price.StringFixed(2)),
			attribute.Int("product.stock", product.StockQuantity),
		),
	)
	defer func() { finish(span, err) }()

	if err = r.next.Create(ctx, product); err == nil {
		span.SetAttributes(attribute.String("product.id", product.ID))
	}
	return err
}

// FindByID with tracing
func (r *TracingProductRepository) FindByID(ctx context.Context, id string) (p *domain.Product, err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindByID",
		trace.WithAttributes(attribute.String("product.id", id)),
	)
	defer func() { finish(span, err) }()

	return r.next.FindByID(ctx, id)
}

// FindAll with tracing
func (r *TracingProductRepository) FindAll(ctx context.Context) (products []domain.Product, err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindAll")
	defer func() { finish(span, err) }()

	products, err = r.next.FindAll(ctx)
	span.SetAttributes(attribute.Int("products.count", len(products)))
	return products, err
}

// Update with tracing
func (r *TracingProductRepository) Update(ctx context.Context, product *domain.Product) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Update",
		trace.WithAttributes(attribute.String("product.id", product.ID)),
	)
	defer func() { finish(span, err) }()

	return r.next.Update(ctx, product)
}

// Delete with tracing
func (r *TracingProductRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Delete",
		trace.WithAttributes(attribute.String("product.id", id)),
	)
	defer func() { finish(span, err) }()

	return r.next.Delete(ctx, id)
}

// Count with tracing
func (r *TracingProductRepository) Count(ctx context.Context) (n int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Count")
	defer func() { finish(span, err) }()

	return r.next.Count(ctx)
}

// Suggest with tracing
func (r *TracingProductRepository) Suggest(ctx context.Context, query string, limit int) (products []domain.Product, err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Suggest",
		trace.WithAttributes(
			attribute.String("search.query", query),
			attribute.Int("search.limit", limit),
		),
	)
	defer func() { finish(span, err) }()

	products, err = r.next.Suggest(ctx, query, limit)
	span.SetAttributes(attribute.Int("search.results", len(products)))
	return products, err
}

// TracingCategoryRepository wraps a category repository with spans
type TracingCategoryRepository struct {
	next domain.CategoryRepository
}

// NewTracingCategoryRepository decorates next with tracing
func NewTracingCategoryRepository(next domain.CategoryRepository) *TracingCategoryRepository {
	return &TracingCategoryRepository{next: next}
}

// Create with tracing
func (r *TracingCategoryRepository) Create(ctx context.Context, category *domain.Category) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Category.Create",
		trace.WithAttributes(attribute.String("category.name", category.Name)),
	)
	defer func() { finish(span, err) }()

	return r.next.Create(ctx, category)
}

// FindAll with tracing
func (r *TracingCategoryRepository) FindAll(ctx context.Context) (categories []domain.Category, err error) {
	ctx, span := tracer.Start(ctx, "repository.Category.FindAll")
	defer func() { finish(span, err) }()

	return r.next.FindAll(ctx)
}

// FindByName with tracing
func (r *TracingCategoryRepository) FindByName(ctx context.Context, name string) (c *domain.Category, err error) {
	ctx, span := tracer.Start(ctx, "repository.Category.FindByName",
		trace.WithAttributes(attribute.String("category.name", name)),
	)
	defer func() { finish(span, err) }()

	return r.next.FindByName(ctx, name)
}
