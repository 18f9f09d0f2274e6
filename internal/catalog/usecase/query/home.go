package query

import (
	"context"

	"github.com/tair/storefront/internal/catalog/domain"
)

const (
	featuredLimit    = 8
	homeCategories   = 6
	newArrivalsLimit = 6
)

// Home is the storefront landing page content
type Home struct {
	Featured    []domain.Product  `json:"featured"`
	Categories  []domain.Category `json:"categories"`
	NewArrivals []domain.Product  `json:"new_arrivals"`
}

// GetHomeHandler builds the landing page
type GetHomeHandler struct {
	loader *SnapshotLoader
	engine *domain.Engine
}

// NewGetHomeHandler creates a new home handler
func NewGetHomeHandler(loader *SnapshotLoader, engine *domain.Engine) *GetHomeHandler {
	return &GetHomeHandler{loader: loader, engine: engine}
}

// Handle assembles featured products, categories and new arrivals
func (h *GetHomeHandler) Handle(ctx context.Context) (*Home, error) {
	snap, err := h.loader.Get(ctx)
	if err != nil {
		return nil, err
	}

	home := &Home{Featured: []domain.Product{}}
	for _, p := range snap.Products {
		if p.IsFeatured {
			home.Featured = append(home.Featured, p)
			if len(home.Featured) == featuredLimit {
				break
			}
		}
	}

	home.Categories = snap.Categories
	if len(home.Categories) > homeCategories {
		home.Categories = home.Categories[:homeCategories]
	}

	home.NewArrivals = h.engine.Apply(snap.Products, domain.Filters{Sort: domain.SortNewest})
	if len(home.NewArrivals) > newArrivalsLimit {
		home.NewArrivals = home.NewArrivals[:newArrivalsLimit]
	}
	return home, nil
}

// ListCategoriesHandler lists every category
type ListCategoriesHandler struct {
	loader *SnapshotLoader
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(loader *SnapshotLoader) *ListCategoriesHandler {
	return &ListCategoriesHandler{loader: loader}
}

// Handle returns all categories
func (h *ListCategoriesHandler) Handle(ctx context.Context) ([]domain.Category, error) {
	snap, err := h.loader.Get(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Categories == nil {
		return []domain.Category{}, nil
	}
	return snap.Categories, nil
}
