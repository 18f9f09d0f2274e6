package domain

// Reduce applies an action and returns the next state. It never mutates the
// input state's backing array.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddItem:
		return addItem(state, a)
	case UpdateQuantity:
		if a.Quantity <= 0 {
			return removeItem(state, a.ProductID, a.Variant)
		}
		return updateQuantity(state, a)
	case RemoveItem:
		return removeItem(state, a.ProductID, a.Variant)
	case ClearCart:
		return Empty()
	case Hydrate:
		return a.State.Normalize()
	default:
		return state
	}
}

func addItem(state State, a AddItem) State {
	if a.Item.ProductID == "" {
		return state
	}
	v := Variant{Color: a.Color, Size: a.Size}

	items := cloneItems(state.Items)
	for i := range items {
		if items[i].Matches(a.Item.ProductID, v) {
			items[i].Quantity++
			return derive(items)
		}
	}

	line := a.Item
	line.Quantity = 1
	line.SelectedColor = v.Color
	line.SelectedSize = v.Size
	return derive(append(items, line))
}

func updateQuantity(state State, a UpdateQuantity) State {
	idx := findLine(state.Items, a.ProductID, a.Variant)
	if idx < 0 {
		return state
	}
	items := cloneItems(state.Items)
	items[idx].Quantity = a.Quantity
	return derive(items)
}

func removeItem(state State, productID string, v *Variant) State {
	idx := findLine(state.Items, productID, v)
	if idx < 0 {
		return state
	}
	items := make([]Item, 0, len(state.Items)-1)
	items = append(items, state.Items[:idx]...)
	items = append(items, state.Items[idx+1:]...)
	return derive(items)
}

func findLine(items []Item, productID string, v *Variant) int {
	for i, it := range items {
		if v == nil {
			if it.ProductID == productID {
				return i
			}
			continue
		}
		if it.Matches(productID, *v) {
			return i
		}
	}
	return -1
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items), len(items)+1)
	copy(out, items)
	return out
}
