package query

import (
	"context"

	"github.com/tair/storefront/internal/catalog/domain"
)

// BrowseQuery asks for the filtered catalog view
type BrowseQuery struct {
	Filters domain.Filters
}

// BrowseResult is the filtered view plus what the filter UI needs
type BrowseResult struct {
	Products      []domain.Product  `json:"products"`
	Categories    []domain.Category `json:"categories"`
	Total         int               `json:"total"`
	ActiveFilters int               `json:"active_filters"`
	Filters       domain.Filters    `json:"filters"`
}

// BrowseHandler handles catalog browsing
type BrowseHandler struct {
	loader *SnapshotLoader
	engine *domain.Engine
}

// NewBrowseHandler creates a new browse handler
func NewBrowseHandler(loader *SnapshotLoader, engine *domain.Engine) *BrowseHandler {
	return &BrowseHandler{loader: loader, engine: engine}
}

// Handle executes the browse query
func (h *BrowseHandler) Handle(ctx context.Context, q BrowseQuery) (*BrowseResult, error) {
	snap, err := h.loader.Get(ctx)
	if err != nil {
		return nil, err
	}

	products := h.engine.Apply(snap.Products, q.Filters)
	return &BrowseResult{
		Products:      products,
		Categories:    snap.Categories,
		Total:         len(products),
		ActiveFilters: q.Filters.ActiveCount(),
		Filters:       q.Filters,
	}, nil
}
