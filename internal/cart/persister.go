package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/storage"
)

// StateKey is the storage key of the cart snapshot
const StateKey = "cart-state"

// Persister writes the cart to storage after every transition and restores it
// on start. Storage problems never fail a cart operation. While the snapshot
// cannot be read, writes are held back so an intact snapshot is never
// replaced by a partial in-memory cart.
type Persister struct {
	store    storage.Store
	degraded atomic.Bool
}

// NewPersister creates a persister over store
func NewPersister(store storage.Store) *Persister {
	return &Persister{store: store}
}

// Load restores the saved cart. Absent, unreadable or unavailable snapshots
// yield an empty cart.
func (p *Persister) Load(ctx context.Context) domain.State {
	state, _ := p.Read(ctx)
	return state
}

// Read returns the saved cart. ok is false when storage could not be reached;
// the persister then stops writing until a later read succeeds.
func (p *Persister) Read(ctx context.Context) (domain.State, bool) {
	raw, err := p.store.Get(ctx, StateKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.degraded.Store(true)
			logger.Warn(ctx).Err(err).Msg("Cart storage unavailable, using the in-memory cart")
			return domain.Empty(), false
		}
		p.degraded.Store(false)
		return domain.Empty(), true
	}
	p.degraded.Store(false)

	var state domain.State
	if err := json.Unmarshal(raw, &state); err != nil {
		logger.Warn(ctx).Err(err).Msg("Discarding unreadable cart snapshot")
		return domain.Empty(), true
	}
	return state.Normalize(), true
}

// Save writes the snapshot
func (p *Persister) Save(ctx context.Context, state domain.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := p.store.Set(ctx, StateKey, raw); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Listener persists each transition. Hydration is not written back, nor is
// anything while the stored snapshot is unreadable.
func (p *Persister) Listener() Listener {
	return func(ctx context.Context, action domain.Action, _, next domain.State) {
		if _, ok := action.(domain.Hydrate); ok {
			return
		}
		if p.degraded.Load() {
			logger.Warn(ctx).Str("action", domain.Name(action)).Msg("Cart snapshot unreadable, change kept in memory only")
			return
		}
		if err := p.Save(ctx, next); err != nil {
			logger.Warn(ctx).Err(err).Str("action", domain.Name(action)).Msg("Cart kept in memory only")
		}
	}
}

// Attach hydrates s from storage, makes storage its source and subscribes the
// persister to it. The returned function undoes both.
func (p *Persister) Attach(ctx context.Context, s *Store) func() {
	s.Dispatch(ctx, domain.Hydrate{State: p.Load(ctx)})
	s.SetSource(p.Read)
	unsubscribe := s.Subscribe(p.Listener())
	return func() {
		unsubscribe()
		s.SetSource(nil)
	}
}
