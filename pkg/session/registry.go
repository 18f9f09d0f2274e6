// Package session keeps one live object per client session, evicting the
// least recently used once a capacity is reached. Evicted sessions are
// rebuilt on next use from whatever they persisted.
package session

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultCapacity bounds the number of live sessions per registry
const DefaultCapacity = 10000

type entry[T any] struct {
	value    T
	lastUsed time.Time
}

// Registry maps session ids to lazily created values. Creation runs outside
// the registry lock and at most once per id at a time.
type Registry[T any] struct {
	mu      sync.Mutex
	items   map[string]*entry[T]
	flights singleflight.Group
	max     int
	create  func(id string) T
	onEvict func(id string, v T)
	now     func() time.Time
}

// NewRegistry creates a registry. onEvict may be nil.
func NewRegistry[T any](capacity int, create func(id string) T, onEvict func(id string, v T)) *Registry[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry[T]{
		items:   make(map[string]*entry[T]),
		max:     capacity,
		create:  create,
		onEvict: onEvict,
		now:     time.Now,
	}
}

// Get returns the value for id, creating it on first use. Concurrent first
// uses of one id share a single creation.
func (r *Registry[T]) Get(id string) T {
	if v, ok := r.lookup(id); ok {
		return v
	}

	v, _, _ := r.flights.Do(id, func() (any, error) {
		if v, ok := r.lookup(id); ok {
			return v, nil
		}
		v := r.create(id)
		r.insert(id, v)
		return v, nil
	})
	return v.(T)
}

func (r *Registry[T]) lookup(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	e.lastUsed = r.now()
	return e.value, true
}

func (r *Registry[T]) insert(id string, v T) {
	r.mu.Lock()
	var victimID string
	var victim *entry[T]
	if len(r.items) >= r.max {
		victimID, victim = r.oldestLocked()
		delete(r.items, victimID)
	}
	r.items[id] = &entry[T]{value: v, lastUsed: r.now()}
	r.mu.Unlock()

	if victim != nil && r.onEvict != nil {
		r.onEvict(victimID, victim.value)
	}
}

func (r *Registry[T]) oldestLocked() (string, *entry[T]) {
	var (
		oldestID string
		oldest   *entry[T]
	)
	for id, e := range r.items {
		if oldest == nil || e.lastUsed.Before(oldest.lastUsed) {
			oldestID, oldest = id, e
		}
	}
	return oldestID, oldest
}

// Remove drops the session, running the eviction hook
func (r *Registry[T]) Remove(id string) {
	r.mu.Lock()
	e, ok := r.items[id]
	delete(r.items, id)
	r.mu.Unlock()

	if ok && r.onEvict != nil {
		r.onEvict(id, e.value)
	}
}

// Len reports the number of live sessions
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
