package domain

// Action is a cart mutation applied by Reduce
type Action interface {
	actionName() string
}

// AddItem adds one unit of an item in the given variant
type AddItem struct {
	Item  Item
	Color string
	Size  string
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
// A nil Variant targets the first line for the product.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
	Variant   *Variant
}

// RemoveItem deletes a line. A nil Variant targets the first line for the product.
type RemoveItem struct {
	ProductID string
	Variant   *Variant
}

// ClearCart empties the cart
type ClearCart struct{}

// Hydrate replaces the state with a restored snapshot
type Hydrate struct {
	State State
}

func (AddItem) actionName() string        { return "ADD_ITEM" }
func (UpdateQuantity) actionName() string { return "UPDATE_QUANTITY" }
func (RemoveItem) actionName() string     { return "REMOVE_ITEM" }
func (ClearCart) actionName() string      { return "CLEAR_CART" }
func (Hydrate) actionName() string        { return "HYDRATE" }

// Name returns the action's wire name, used for logs and metrics
func Name(a Action) string {
	if a == nil {
		return "UNKNOWN"
	}
	return a.actionName()
}
