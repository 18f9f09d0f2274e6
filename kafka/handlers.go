package kafka

import (
	"context"
)

// Invalidator drops cached state derived from the catalog
type Invalidator interface {
	Invalidate()
}

// InvalidateOnOrder returns a handler that drops the catalog snapshot when an
// order changes stock, so other instances stop showing sold-out products.
func InvalidateOnOrder(inv Invalidator) EventHandler {
	return func(_ context.Context, _ OrderPlacedEvent) error {
		inv.Invalidate()
		return nil
	}
}
