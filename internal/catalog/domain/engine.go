package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Engine applies Filters to an in-memory product list
type Engine struct {
	tag language.Tag
}

// NewEngine creates an engine whose name sort follows the given locale
func NewEngine(tag language.Tag) *Engine {
	return &Engine{tag: tag}
}

var defaultEngine = NewEngine(language.French)

// Apply filters and sorts products with the default (French) collation
func Apply(products []Product, f Filters) []Product {
	return defaultEngine.Apply(products, f)
}

// Apply returns the products satisfying every active facet, ordered by
// f.Sort. The input slice is not modified and the ordering is stable, so
// equal inputs always yield equal outputs.
func (e *Engine) Apply(products []Product, f Filters) []Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if f.InStock && !p.InStock() {
			continue
		}
		if f.OnSale && !p.OnSale() {
			continue
		}
		if f.Rating > 0 && p.RatingValue() < float64(f.Rating) {
			continue
		}
		if len(f.Colors) > 0 && !intersects(p.Colors, f.Colors) {
			continue
		}
		if len(f.Sizes) > 0 && !intersects(p.Sizes, f.Sizes) {
			continue
		}
		out = append(out, *p)
	}

	e.sort(out, f.Sort)
	return out
}

func matchesSearch(p *Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Category), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

func intersects(have, want []string) bool {
	for _, w := range want {
		if contains(have, w) {
			return true
		}
	}
	return false
}

func (e *Engine) sort(products []Product, order SortOrder) {
	var less func(a, b *Product) bool

	switch order {
	case SortPriceAsc:
		less = func(a, b *Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceDesc:
		less = func(a, b *Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortName:
		// collators keep internal buffers and must not be shared across goroutines
		c := collate.New(e.tag)
		less = func(a, b *Product) bool { return c.CompareString(a.Name, b.Name) < 0 }
	case SortRating:
		less = func(a, b *Product) bool { return a.RatingValue() > b.RatingValue() }
	case SortPopularity:
		less = func(a, b *Product) bool { return a.ReviewCountValue() > b.ReviewCountValue() }
	default:
		less = func(a, b *Product) bool { return createdUnix(a) > createdUnix(b) }
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(&products[i], &products[j])
	})
}

// createdUnix treats a missing creation time as the epoch
func createdUnix(p *Product) int64 {
	if p.CreatedAt.IsZero() {
		return 0
	}
	return p.CreatedAt.UnixNano()
}
