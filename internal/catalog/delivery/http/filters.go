package http

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/catalog/domain"
)

// ParseFilters maps catalog query parameters to Filters. Malformed values are
// ignored rather than rejected, and out-of-range ratings are clamped.
func ParseFilters(v url.Values) domain.Filters {
	f := domain.DefaultFilters()

	f.Category = strings.TrimSpace(v.Get("category"))
	f.Search = strings.TrimSpace(v.Get("search"))
	f.MinPrice = parseDecimal(v.Get("min_price"))
	f.MaxPrice = parseDecimal(v.Get("max_price"))
	f.Colors = parseList(v["colors"])
	f.Sizes = parseList(v["sizes"])
	f.InStock = parseBool(v.Get("in_stock"))
	f.OnSale = parseBool(v.Get("on_sale"))

	if r, err := strconv.Atoi(v.Get("rating")); err == nil {
		switch {
		case r < 0:
			r = 0
		case r > 5:
			r = 5
		}
		f.Rating = r
	}

	if s := domain.SortOrder(v.Get("sort")); s.Valid() {
		f.Sort = s
	}
	return f
}

func parseDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

// parseList accepts both repeated params and comma-separated values
func parseList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
