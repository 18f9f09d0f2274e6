// Package cart holds the per-session shopping cart: a reducer-backed store,
// its persistence subscriber and the session registry.
package cart

import (
	"context"
	"sync"

	"github.com/tair/storefront/internal/cart/domain"
)

// Listener observes every state transition. Listeners run while the dispatch
// lock is held and must not dispatch to the same store.
type Listener func(ctx context.Context, action domain.Action, prev, next domain.State)

// Source reads the latest shared snapshot. ok is false when the snapshot could
// not be read and the in-memory state should be used instead.
type Source func(ctx context.Context) (state domain.State, ok bool)

// Store owns one cart state. Dispatches are serialized; readers never block
// on listeners.
type Store struct {
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     domain.State
	source    Source
	listeners map[int]Listener
	nextID    int
}

// NewStore creates a store holding initial
func NewStore(initial domain.State) *Store {
	return &Store{
		state:     initial.Normalize(),
		listeners: make(map[int]Listener),
	}
}

// State returns the current snapshot
func (s *Store) State() domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetSource makes every dispatch start from the snapshot src returns, so
// stores on other instances sharing the snapshot see each other's writes.
func (s *Store) SetSource(src Source) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.source = src
	s.mu.Unlock()
}

// Sync refreshes the state from the source without notifying listeners
func (s *Store) Sync(ctx context.Context) domain.State {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	if fresh, ok := s.reload(ctx); ok {
		s.mu.Lock()
		s.state = fresh
		s.mu.Unlock()
		return fresh
	}
	return s.State()
}

func (s *Store) reload(ctx context.Context) (domain.State, bool) {
	s.mu.RLock()
	src := s.source
	s.mu.RUnlock()
	if src == nil {
		return domain.State{}, false
	}
	return src(ctx)
}

// Dispatch applies action and notifies listeners with the new state. Actions
// other than Hydrate are applied to the freshly read source snapshot when one
// is available.
func (s *Store) Dispatch(ctx context.Context, action domain.Action) domain.State {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	var (
		fresh  domain.State
		synced bool
	)
	if _, ok := action.(domain.Hydrate); !ok {
		fresh, synced = s.reload(ctx)
	}

	s.mu.Lock()
	if synced {
		s.state = fresh
	}
	prev := s.state
	next := domain.Reduce(prev, action)
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(ctx, action, prev, next)
	}
	return next
}

// Subscribe registers l and returns a function that removes it
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}
