package search

import (
	"net/url"
	"strings"
)

// ItemKind tells which list a dropdown entry comes from
type ItemKind string

const (
	KindSuggestion ItemKind = "suggestion"
	KindHistory    ItemKind = "history"
	KindTrending   ItemKind = "trending"
)

// Item is one selectable dropdown entry
type Item struct {
	Kind      ItemKind `json:"kind"`
	Label     string   `json:"label"`
	ProductID string   `json:"product_id,omitempty"`
}

// Keys understood by the navigator
const (
	KeyArrowDown = "ArrowDown"
	KeyArrowUp   = "ArrowUp"
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
)

// Action is what the client should do after a key press
type Action string

const (
	ActionNone            Action = "none"
	ActionNavigateProduct Action = "navigate-product"
	ActionSearch          Action = "search"
	ActionClose           Action = "close"
)

// Outcome of a key press. Query is set for ActionSearch.
type Outcome struct {
	Action Action `json:"action"`
	Target string `json:"target,omitempty"`
	Query  string `json:"query,omitempty"`
}

// ProductPath is the detail route of a product
func ProductPath(id string) string {
	return "/product/" + url.PathEscape(id)
}

// SearchPath is the catalog route for a full search
func SearchPath(query string) string {
	return "/catalog?search=" + url.QueryEscape(query)
}

// DropdownItems lists suggestions, then history and trending terms. History
// and trending are only offered while the query is empty.
func DropdownItems(query string, suggestions []Suggestion, history []Entry, trending []string) []Item {
	items := make([]Item, 0, len(suggestions)+len(history)+len(trending))
	for _, s := range suggestions {
		items = append(items, Item{Kind: KindSuggestion, Label: s.Name, ProductID: s.ID})
	}
	if strings.TrimSpace(query) != "" {
		return items
	}
	for _, h := range history {
		items = append(items, Item{Kind: KindHistory, Label: h.Query})
	}
	for _, t := range trending {
		items = append(items, Item{Kind: KindTrending, Label: t})
	}
	return items
}

// Navigator tracks the keyboard selection over a dropdown. -1 means nothing
// is selected.
type Navigator struct {
	selected int
}

// NewNavigator starts with no selection
func NewNavigator() *Navigator {
	return &Navigator{selected: -1}
}

// Selected returns the current index, or -1
func (n *Navigator) Selected() int {
	return n.selected
}

// Reset clears the selection
func (n *Navigator) Reset() {
	n.selected = -1
}

// Key applies a key press to items. Enter without a selection searches for
// query; a blank query does nothing.
func (n *Navigator) Key(key string, items []Item, query string) Outcome {
	if n.selected >= len(items) {
		n.selected = -1
	}

	switch key {
	case KeyArrowDown:
		if len(items) > 0 {
			n.selected = (n.selected + 1) % len(items)
		}
		return Outcome{Action: ActionNone}

	case KeyArrowUp:
		if len(items) > 0 {
			if n.selected <= 0 {
				n.selected = len(items) - 1
			} else {
				n.selected--
			}
		}
		return Outcome{Action: ActionNone}

	case KeyEnter:
		if n.selected >= 0 {
			item := items[n.selected]
			n.selected = -1
			if item.Kind == KindSuggestion {
				return Outcome{Action: ActionNavigateProduct, Target: ProductPath(item.ProductID)}
			}
			return searchOutcome(item.Label)
		}
		return searchOutcome(query)

	case KeyEscape:
		n.selected = -1
		return Outcome{Action: ActionClose}
	}

	return Outcome{Action: ActionNone}
}

func searchOutcome(query string) Outcome {
	q := strings.TrimSpace(query)
	if q == "" {
		return Outcome{Action: ActionNone}
	}
	return Outcome{Action: ActionSearch, Target: SearchPath(q), Query: q}
}
