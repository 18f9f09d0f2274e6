package cart

import (
	"context"
	"time"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/pkg/session"
	"github.com/tair/storefront/pkg/storage"
)

const hydrateTimeout = 2 * time.Second

type liveCart struct {
	store  *Store
	detach func()
}

// Sessions holds one cart store per client session. Carts are rebuilt from
// storage when a session comes back after eviction.
type Sessions struct {
	registry *session.Registry[*liveCart]
	metrics  *Metrics
}

// NewSessions creates the registry. Each session's snapshot lives in store
// under its session id.
func NewSessions(store storage.Store, capacity int, metrics *Metrics) *Sessions {
	create := func(id string) *liveCart {
		ctx, cancel := context.WithTimeout(context.Background(), hydrateTimeout)
		defer cancel()

		s := NewStore(domain.Empty())
		detach := NewPersister(storage.Namespace(store, id)).Attach(ctx, s)
		unsubscribe := s.Subscribe(metrics.listener())
		return &liveCart{
			store:  s,
			detach: func() {
				detach()
				unsubscribe()
			},
		}
	}
	evict := func(_ string, c *liveCart) { c.detach() }

	return &Sessions{
		registry: session.NewRegistry(capacity, create, evict),
		metrics:  metrics,
	}
}

// Get returns the cart store of a session
func (s *Sessions) Get(id string) *Store {
	c := s.registry.Get(id)
	s.metrics.setActive(s.registry.Len())
	return c.store
}

// Len reports the number of live carts
func (s *Sessions) Len() int {
	return s.registry.Len()
}
