package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/order/domain"
)

// UpdateStatusCommand represents the command to update order status
type UpdateStatusCommand struct {
	OrderID string
	Status  string
}

// UpdateStatusHandler handles update status command
type UpdateStatusHandler struct {
	repo domain.OrderRepository
}

// NewUpdateStatusHandler creates a new update status handler
func NewUpdateStatusHandler(repo domain.OrderRepository) *UpdateStatusHandler {
	return &UpdateStatusHandler{repo: repo}
}

// Handle executes the update status command
func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) error {
	if cmd.OrderID == "" {
		return fmt.Errorf("%w: order_id is required", domain.ErrInvalidOrder)
	}
	if !domain.ValidStatus(cmd.Status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, cmd.Status)
	}

	if err := h.repo.UpdateStatus(ctx, cmd.OrderID, cmd.Status); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}
