package search

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/storage"
)

// HistoryKey is the storage key of the recent-search list
const HistoryKey = "search-history"

// DefaultHistoryCap bounds the number of remembered searches
const DefaultHistoryCap = 5

// Entry is one remembered search
type Entry struct {
	Query     string `json:"query"`
	Timestamp int64  `json:"timestamp"`
}

// History is the most-recent-first list of committed searches. Every read
// and write starts from the stored list so instances sharing it stay in step.
// While the list cannot be read, the history works in memory and stops writing.
type History struct {
	store storage.Store
	cap   int
	now   func() time.Time

	mu       sync.Mutex
	degraded bool
	entries  []Entry
}

// NewHistory creates a history persisted in store
func NewHistory(store storage.Store, capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &History{store: store, cap: capacity, now: time.Now}
}

// Entries returns the remembered searches, most recent first
func (h *History) Entries(ctx context.Context) []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.loadLocked(ctx)
	return append([]Entry{}, h.entries...)
}

// Add moves query to the front of the history and persists it. Blank queries
// are ignored.
func (h *History) Add(ctx context.Context, query string) []Entry {
	q := strings.TrimSpace(query)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.loadLocked(ctx)
	if q == "" {
		return append([]Entry{}, h.entries...)
	}

	next := make([]Entry, 0, h.cap)
	next = append(next, Entry{Query: q, Timestamp: h.now().UnixMilli()})
	for _, e := range h.entries {
		if len(next) == h.cap {
			break
		}
		if e.Query != q {
			next = append(next, e)
		}
	}
	h.entries = next
	if h.degraded {
		logger.Warn(ctx).Msg("Search history unreadable, keeping it in memory only")
	} else {
		h.saveLocked(ctx)
	}

	return append([]Entry{}, h.entries...)
}

// Clear forgets every entry and removes the persisted list
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
	if err := h.store.Delete(ctx, HistoryKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Warn(ctx).Err(err).Msg("Failed to clear search history")
		return err
	}
	return nil
}

func (h *History) loadLocked(ctx context.Context) {
	raw, err := h.store.Get(ctx, HistoryKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.degraded = false
			h.entries = nil
			return
		}
		h.degraded = true
		logger.Warn(ctx).Err(err).Msg("Search history unavailable, using the in-memory list")
		return
	}
	h.degraded = false

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.Warn(ctx).Err(err).Msg("Discarding unreadable search history")
		h.entries = nil
		return
	}

	kept := make([]Entry, 0, h.cap)
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if len(kept) == h.cap {
			break
		}
		q := strings.TrimSpace(e.Query)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		e.Query = q
		kept = append(kept, e)
	}
	h.entries = kept
}

func (h *History) saveLocked(ctx context.Context) {
	raw, err := json.Marshal(h.entries)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to encode search history")
		return
	}
	if err := h.store.Set(ctx, HistoryKey, raw); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to persist search history")
	}
}
