package command

import (
	"context"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/logger"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID string
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	repo  domain.ProductRepository
	cache Invalidator
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository, cache Invalidator) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, cache: cache}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if err := h.repo.Delete(ctx, cmd.ID); err != nil {
		return err
	}
	h.cache.Invalidate()

	logger.Info(ctx).Str("product_id", cmd.ID).Msg("Product deleted")
	return nil
}
