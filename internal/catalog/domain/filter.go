package domain

import (
	"github.com/shopspring/decimal"
)

// SortOrder selects the catalog ordering
type SortOrder string

const (
	SortNewest     SortOrder = "newest"
	SortPopularity SortOrder = "popularity"
	SortRating     SortOrder = "rating"
	SortPriceAsc   SortOrder = "price-asc"
	SortPriceDesc  SortOrder = "price-desc"
	SortName       SortOrder = "name"
)

// CategoryAll is the category sentinel meaning "no category constraint"
const CategoryAll = "all"

// Valid reports whether s is a known sort order
func (s SortOrder) Valid() bool {
	switch s {
	case SortNewest, SortPopularity, SortRating, SortPriceAsc, SortPriceDesc, SortName:
		return true
	}
	return false
}

// Filters holds the catalog facets, sort and search text. A zero field
// means no constraint from that facet.
type Filters struct {
	Category string           `json:"category,omitempty"`
	MinPrice *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice *decimal.Decimal `json:"max_price,omitempty"`
	Colors   []string         `json:"colors,omitempty"`
	Sizes    []string         `json:"sizes,omitempty"`
	InStock  bool             `json:"in_stock,omitempty"`
	OnSale   bool             `json:"on_sale,omitempty"`
	Rating   int              `json:"rating,omitempty"`
	Sort     SortOrder        `json:"sort,omitempty"`
	Search   string           `json:"search,omitempty"`
}

// DefaultFilters is the state after an explicit clear
func DefaultFilters() Filters {
	return Filters{Sort: SortNewest}
}

// Patch is a partial update to Filters. Nil fields are left untouched; a
// non-nil pointer to the zero value clears that facet.
type Patch struct {
	Category *string
	MinPrice **decimal.Decimal
	MaxPrice **decimal.Decimal
	Colors   *[]string
	Sizes    *[]string
	InStock  *bool
	OnSale   *bool
	Rating   *int
	Sort     *SortOrder
	Search   *string
}

// Merge returns f with the patch applied
func (f Filters) Merge(p Patch) Filters {
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.MinPrice != nil {
		f.MinPrice = *p.MinPrice
	}
	if p.MaxPrice != nil {
		f.MaxPrice = *p.MaxPrice
	}
	if p.Colors != nil {
		f.Colors = append([]string(nil), (*p.Colors)...)
	}
	if p.Sizes != nil {
		f.Sizes = append([]string(nil), (*p.Sizes)...)
	}
	if p.InStock != nil {
		f.InStock = *p.InStock
	}
	if p.OnSale != nil {
		f.OnSale = *p.OnSale
	}
	if p.Rating != nil {
		f.Rating = *p.Rating
	}
	if p.Sort != nil {
		f.Sort = *p.Sort
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
	return f
}

// ActiveCount returns the number of facets constraining the result, shown as
// the filter badge. A non-default sort counts as one.
func (f Filters) ActiveCount() int {
	n := 0
	if f.Category != "" && f.Category != CategoryAll {
		n++
	}
	if f.MinPrice != nil {
		n++
	}
	if f.MaxPrice != nil {
		n++
	}
	if len(f.Colors) > 0 {
		n++
	}
	if len(f.Sizes) > 0 {
		n++
	}
	if f.InStock {
		n++
	}
	if f.OnSale {
		n++
	}
	if f.Rating > 0 {
		n++
	}
	if f.Search != "" {
		n++
	}
	if f.Sort != "" && f.Sort != SortNewest {
		n++
	}
	return n
}
