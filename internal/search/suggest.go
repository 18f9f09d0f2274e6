// Package search implements the storefront search bar: debounced live
// suggestions, recent-search history and keyboard navigation.
package search

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
)

// ErrLookupFailed is reported when the suggestion backend errors
var ErrLookupFailed = errors.New("suggestion lookup failed")

// Suggestion is a product matching the typed query
type Suggestion struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

// Lookup fetches suggestions for a query
type Lookup interface {
	Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error)
}

// Config holds suggestion tuning
type Config struct {
	Debounce  time.Duration
	MinLength int
	Limit     int
}

// DefaultConfig returns the storefront defaults
func DefaultConfig() Config {
	return Config{
		Debounce:  300 * time.Millisecond,
		MinLength: 2,
		Limit:     6,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Debounce <= 0 {
		c.Debounce = d.Debounce
	}
	if c.MinLength <= 0 {
		c.MinLength = d.MinLength
	}
	if c.Limit <= 0 {
		c.Limit = d.Limit
	}
	return c
}

// eligible returns the trimmed query and whether it is long enough to look up
func (c Config) eligible(query string) (string, bool) {
	q := strings.TrimSpace(query)
	return q, utf8.RuneCountInString(q) >= c.MinLength
}

// ProductLookup serves suggestions from the catalog repository
type ProductLookup struct {
	repo catalogdomain.ProductRepository
}

// NewProductLookup creates a catalog-backed lookup
func NewProductLookup(repo catalogdomain.ProductRepository) *ProductLookup {
	return &ProductLookup{repo: repo}
}

// Suggest matches product name or category, case-insensitively
func (l *ProductLookup) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	products, err := l.repo.Suggest(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Suggestion, 0, len(products))
	for _, p := range products {
		out = append(out, Suggestion{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price,
			ImageURL: p.ImageURL,
		})
	}
	return out, nil
}

// Suggester answers one-shot suggestion requests
type Suggester struct {
	lookup  Lookup
	cfg     Config
	metrics *Metrics
}

// NewSuggester creates a suggester
func NewSuggester(lookup Lookup, cfg Config, metrics *Metrics) *Suggester {
	return &Suggester{lookup: lookup, cfg: cfg.withDefaults(), metrics: metrics}
}

// Suggest returns up to the configured limit of suggestions. Queries shorter
// than the minimum length return nothing without a lookup.
func (s *Suggester) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	q, ok := s.cfg.eligible(query)
	if !ok {
		return []Suggestion{}, nil
	}
	return runLookup(ctx, s.lookup, s.metrics, q, s.cfg.Limit)
}

func runLookup(ctx context.Context, lookup Lookup, metrics *Metrics, q string, limit int) ([]Suggestion, error) {
	results, err := lookup.Suggest(ctx, q, limit)
	if err != nil {
		metrics.lookup("error")
		return nil, errors.Join(ErrLookupFailed, err)
	}
	metrics.lookup("ok")
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []Suggestion{}
	}
	return results, nil
}
