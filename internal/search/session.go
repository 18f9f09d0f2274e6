package search

import (
	"context"
	"sync"
	"time"

	"github.com/tair/storefront/pkg/logger"
)

// State of the live suggestion session
type State string

const (
	StateIdle       State = "idle"
	StateDebouncing State = "debouncing"
	StateLoading    State = "loading"
	StateReady      State = "ready"
)

// Timer is a pending debounce callback
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Snapshot is a consistent view of a session
type Snapshot struct {
	Query       string       `json:"query"`
	State       State        `json:"state"`
	Suggestions []Suggestion `json:"suggestions"`
	Error       string       `json:"error,omitempty"`
}

// Option configures a Session
type Option func(*Session)

// WithAfterFunc replaces the timer source, for tests
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *Session) { s.afterFunc = fn }
}

// WithMetrics records lookups and discarded responses
func WithMetrics(m *Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// Session debounces keystrokes into suggestion lookups. Every keystroke
// bumps a sequence number; a lookup result is applied only if no keystroke
// happened since it was issued, so out-of-order completions are dropped.
type Session struct {
	lookup    Lookup
	cfg       Config
	afterFunc AfterFunc
	metrics   *Metrics

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	query       string
	state       State
	timer       Timer
	seq         uint64
	suggestions []Suggestion
	err         error
}

// NewSession creates an idle session
func NewSession(lookup Lookup, cfg Config, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		lookup:      lookup,
		cfg:         cfg.withDefaults(),
		afterFunc:   realAfterFunc,
		ctx:         ctx,
		cancel:      cancel,
		state:       StateIdle,
		suggestions: []Suggestion{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Type records the current input text
func (s *Session) Type(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
	s.query = text
	s.err = nil

	q, ok := s.cfg.eligible(text)
	if !ok {
		s.state = StateIdle
		s.suggestions = []Suggestion{}
		return
	}

	s.state = StateDebouncing
	seq := s.seq
	s.timer = s.afterFunc(s.cfg.Debounce, func() { s.fire(seq, q) })
}

func (s *Session) fire(seq uint64, q string) {
	s.mu.Lock()
	if seq != s.seq || s.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.state = StateLoading
	s.mu.Unlock()

	results, err := runLookup(s.ctx, s.lookup, s.metrics, q, s.cfg.Limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.metrics.discarded()
		logger.Debug(s.ctx).
			Str("query", q).
			Str("current_query", s.query).
			Msg("Discarding stale suggestion response")
		return
	}

	s.state = StateReady
	if err != nil {
		logger.Warn(s.ctx).Err(err).Str("query", q).Msg("Suggestion lookup failed")
		s.err = ErrLookupFailed
		s.suggestions = []Suggestion{}
		return
	}
	s.suggestions = results
}

// Snapshot returns the current session view
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Query:       s.query,
		State:       s.state,
		Suggestions: append([]Suggestion(nil), s.suggestions...),
	}
	if snap.Suggestions == nil {
		snap.Suggestions = []Suggestion{}
	}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	return snap
}

// Close stops any pending timer. Lookups still in flight finish but their
// results are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
	s.cancel()
}
