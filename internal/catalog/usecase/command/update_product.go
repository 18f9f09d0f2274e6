package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/logger"
)

// UpdateProductCommand replaces a product's writable fields
type UpdateProductCommand struct {
	ID string
	ProductFields
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo       domain.ProductRepository
	categories domain.CategoryRepository
	cache      Invalidator
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, categories domain.CategoryRepository, cache Invalidator) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, categories: categories, cache: cache}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	cmd.apply(product)
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := checkCategory(ctx, h.categories, product.Category); err != nil {
		return nil, err
	}

	if err := h.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	h.cache.Invalidate()

	logger.Info(ctx).Str("product_id", product.ID).Msg("Product updated")
	return product, nil
}
