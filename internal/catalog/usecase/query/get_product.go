package query

import (
	"context"

	"github.com/tair/storefront/internal/catalog/domain"
)

const (
	relatedLimit     = 4
	recommendedLimit = 6
)

// GetProductQuery represents a product detail request
type GetProductQuery struct {
	ID string
}

// ProductDetail is a product with its related and recommended products
type ProductDetail struct {
	Product     domain.Product   `json:"product"`
	Related     []domain.Product `json:"related"`
	Recommended []domain.Product `json:"recommended"`
}

// GetProductHandler handles product detail requests
type GetProductHandler struct {
	loader *SnapshotLoader
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(loader *SnapshotLoader) *GetProductHandler {
	return &GetProductHandler{loader: loader}
}

// Handle finds the product; related shares its category, recommended are featured
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*ProductDetail, error) {
	snap, err := h.loader.Get(ctx)
	if err != nil {
		return nil, err
	}

	p, ok := snap.Product(q.ID)
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	detail := &ProductDetail{
		Product:     *p,
		Related:     []domain.Product{},
		Recommended: []domain.Product{},
	}
	for _, other := range snap.Products {
		if other.ID == p.ID {
			continue
		}
		if other.Category == p.Category && len(detail.Related) < relatedLimit {
			detail.Related = append(detail.Related, other)
		}
		if other.IsFeatured && len(detail.Recommended) < recommendedLimit {
			detail.Recommended = append(detail.Recommended, other)
		}
	}
	return detail, nil
}
