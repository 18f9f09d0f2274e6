package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/user/domain"
	"github.com/tair/storefront/pkg/logger"
)

// ChangeRoleCommand represents the command to change user role (admin only)
type ChangeRoleCommand struct {
	UserID uint
	Role   string
}

// ChangeRoleHandler handles user role change command
type ChangeRoleHandler struct {
	repo domain.UserRepository
}

// NewChangeRoleHandler creates a new change role handler
func NewChangeRoleHandler(repo domain.UserRepository) *ChangeRoleHandler {
	return &ChangeRoleHandler{repo: repo}
}

// Handle executes the change role command
func (h *ChangeRoleHandler) Handle(ctx context.Context, cmd ChangeRoleCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidUser)
	}
	if !domain.ValidRole(cmd.Role) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, cmd.Role)
	}

	if err := h.repo.UpdateRole(ctx, cmd.UserID, cmd.Role); err != nil {
		return nil, err
	}

	logger.Info(ctx).Uint("user_id", cmd.UserID).Str("role", cmd.Role).Msg("User role changed")
	return h.repo.FindByID(ctx, cmd.UserID)
}
