package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/logger"
)

// Snapshot is the in-memory catalog the filter engine runs over
type Snapshot struct {
	Products   []domain.Product
	Categories []domain.Category
	LoadedAt   time.Time
}

// Product returns the product with the given id
func (s *Snapshot) Product(id string) (*domain.Product, bool) {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i], true
		}
	}
	return nil, false
}

// SnapshotLoader loads products and categories once and serves them until
// invalidated. Concurrent callers during a load share the same fetch.
type SnapshotLoader struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository

	group singleflight.Group

	mu         sync.RWMutex
	current    *Snapshot
	generation uint64
}

// NewSnapshotLoader creates a loader
func NewSnapshotLoader(products domain.ProductRepository, categories domain.CategoryRepository) *SnapshotLoader {
	return &SnapshotLoader{products: products, categories: categories}
}

// Get returns the cached snapshot, loading it if needed
func (l *SnapshotLoader) Get(ctx context.Context) (*Snapshot, error) {
	l.mu.RLock()
	snap, gen := l.current, l.generation
	l.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	ch := l.group.DoChan(fmt.Sprintf("catalog-%d", gen), func() (interface{}, error) {
		// detached so one caller going away does not fail the others
		return l.load(context.WithoutCancel(ctx), gen)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

func (l *SnapshotLoader) load(ctx context.Context, gen uint64) (*Snapshot, error) {
	l.mu.RLock()
	snap := l.current
	l.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	var (
		products   []domain.Product
		categories []domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = l.products.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = l.categories.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx).Err(err).Msg("Catalog snapshot load failed")
		return nil, err
	}

	snap = &Snapshot{Products: products, Categories: categories, LoadedAt: time.Now()}

	l.mu.Lock()
	// an Invalidate during the load means this data may already be stale
	if l.generation == gen {
		l.current = snap
	}
	l.mu.Unlock()

	logger.Info(ctx).
		Int("products", len(products)).
		Int("categories", len(categories)).
		Msg("Catalog snapshot loaded")
	return snap, nil
}

// Invalidate drops the cached snapshot; the next Get reloads
func (l *SnapshotLoader) Invalidate() {
	l.mu.Lock()
	l.current = nil
	l.generation++
	l.mu.Unlock()
}

// FindProduct looks a product up in the current snapshot
func (l *SnapshotLoader) FindProduct(ctx context.Context, id string) (*domain.Product, error) {
	snap, err := l.Get(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := snap.Product(id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}
