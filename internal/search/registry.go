package search

import (
	"github.com/tair/storefront/pkg/session"
	"github.com/tair/storefront/pkg/storage"
)

// BarFactory builds a search bar per client session
type BarFactory struct {
	Lookup   Lookup
	Store    storage.Store
	Config   Config
	Cap      int
	Trending []string
	Options  []Option
}

// Bars holds one live Bar per session id
type Bars struct {
	registry *session.Registry[*Bar]
}

// NewBars creates a registry of bars. History is stored under the session id.
func NewBars(f BarFactory, capacity int) *Bars {
	create := func(id string) *Bar {
		sess := NewSession(f.Lookup, f.Config, f.Options...)
		hist := NewHistory(storage.Namespace(f.Store, id), f.Cap)
		return NewBar(sess, hist, f.Trending)
	}
	evict := func(_ string, b *Bar) { b.Close() }
	return &Bars{registry: session.NewRegistry(capacity, create, evict)}
}

// Get returns the bar of a session, creating it on first use
func (b *Bars) Get(id string) *Bar {
	return b.registry.Get(id)
}

// Len reports the live bar count
func (b *Bars) Len() int {
	return b.registry.Len()
}
