package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tair/storefront/internal/catalog/domain"
)

// ErrInvalidCategory is returned for category validation failures
var ErrInvalidCategory = errors.New("invalid category")

// CreateCategoryCommand represents the command to create a category
type CreateCategoryCommand struct {
	Name        string
	Description string
	ImageURL    string
}

// CreateCategoryHandler handles category creation
type CreateCategoryHandler struct {
	repo  domain.CategoryRepository
	cache Invalidator
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(repo domain.CategoryRepository, cache Invalidator) *CreateCategoryHandler {
	return &CreateCategoryHandler{repo: repo, cache: cache}
}

// Handle executes the create category command. Names must be unique since
// products reference categories by name.
func (h *CreateCategoryHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) (*domain.Category, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}

	_, err := h.repo.FindByName(ctx, name)
	if err == nil {
		return nil, domain.ErrCategoryExists
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	category := &domain.Category{
		Name:        name,
		Description: cmd.Description,
		ImageURL:    cmd.ImageURL,
	}
	if err := h.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	h.cache.Invalidate()
	return category, nil
}
