package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/logger"
)

// Invalidator is notified after every catalog mutation
type Invalidator interface {
	Invalidate()
}

// ProductFields carries the writable product attributes
type ProductFields struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice decimal.NullDecimal
	ImageURL      string
	Category      string
	StockQuantity int
	IsFeatured    bool
	Rating        *float64
	ReviewCount   *int
	Colors        []string
	Sizes         []string
}

func (f ProductFields) apply(p *domain.Product) {
	p.Name = strings.TrimSpace(f.Name)
	p.Description = f.Description
	p.Price = f.Price
	p.OriginalPrice = f.OriginalPrice
	p.ImageURL = f.ImageURL
	p.Category = strings.TrimSpace(f.Category)
	p.StockQuantity = f.StockQuantity
	p.IsFeatured = f.IsFeatured
	p.Rating = f.Rating
	p.ReviewCount = f.ReviewCount
	p.Colors = dedupe(f.Colors)
	p.Sizes = dedupe(f.Sizes)
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	ProductFields
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo       domain.ProductRepository
	categories domain.CategoryRepository
	cache      Invalidator
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, categories domain.CategoryRepository, cache Invalidator) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, categories: categories, cache: cache}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	product := &domain.Product{}
	cmd.apply(product)

	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := checkCategory(ctx, h.categories, product.Category); err != nil {
		return nil, err
	}

	product.CreatedAt = time.Now()
	if err := h.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	h.cache.Invalidate()

	logger.Info(ctx).
		Str("product_id", product.ID).
		Str("name", product.Name).
		Msg("Product created")
	return product, nil
}

// checkCategory requires a known category name when one is given
func checkCategory(ctx context.Context, categories domain.CategoryRepository, name string) error {
	if name == "" {
		return nil
	}
	_, err := categories.FindByName(ctx, name)
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidProduct, name)
	}
	return err
}
