package domain

import (
	"github.com/shopspring/decimal"
)

// Item is one cart line: a product snapshot plus the chosen variant
type Item struct {
	ProductID     string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"image_url,omitempty"`
	Category      string          `json:"category,omitempty"`
	Quantity      int             `json:"quantity"`
	SelectedColor string          `json:"selected_color,omitempty"`
	SelectedSize  string          `json:"selected_size,omitempty"`
}

// Variant identifies a product color/size combination
type Variant struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
}

// Matches reports whether the line is for the product id and variant
func (i Item) Matches(productID string, v Variant) bool {
	return i.ProductID == productID && i.SelectedColor == v.Color && i.SelectedSize == v.Size
}

// LineTotal returns price × quantity
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// State is the cart snapshot. Total and ItemCount are always derived from Items.
type State struct {
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// Empty returns a cart with no lines
func Empty() State {
	return State{Items: []Item{}, Total: decimal.Zero}
}

// IsEmpty reports whether the cart has no lines
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Normalize drops invalid lines, folds repeated lines of the same product and
// variant into the first one and recomputes the derived fields. Used on
// rehydrated snapshots, which may have been written by an older build.
func (s State) Normalize() State {
	items := make([]Item, 0, len(s.Items))
next:
	for _, it := range s.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.Price.IsNegative() {
			continue
		}
		v := Variant{Color: it.SelectedColor, Size: it.SelectedSize}
		for i := range items {
			if items[i].Matches(it.ProductID, v) {
				items[i].Quantity += it.Quantity
				continue next
			}
		}
		items = append(items, it)
	}
	return derive(items)
}

func derive(items []Item) State {
	total := decimal.Zero
	count := 0
	for _, it := range items {
		total = total.Add(it.LineTotal())
		count += it.Quantity
	}
	return State{Items: items, Total: total, ItemCount: count}
}
