package search

import (
	"context"
	"sync"
)

// DefaultTrending are the terms offered before anything is typed
var DefaultTrending = []string{"Robe d'été", "Sneakers", "Sac à main", "Bijoux", "Parfum"}

// View is everything a client needs to render the search bar
type View struct {
	Snapshot
	Open     bool    `json:"open"`
	Items    []Item  `json:"items"`
	Selected int     `json:"selected"`
	History  []Entry `json:"history"`
}

// Bar is one session's search bar: live suggestions, history and the
// dropdown selection.
type Bar struct {
	session  *Session
	history  *History
	trending []string

	mu   sync.Mutex
	nav  *Navigator
	open bool
}

// NewBar assembles a bar. A nil trending list uses DefaultTrending.
func NewBar(session *Session, history *History, trending []string) *Bar {
	if trending == nil {
		trending = DefaultTrending
	}
	return &Bar{
		session:  session,
		history:  history,
		trending: trending,
		nav:      NewNavigator(),
	}
}

// Focus opens the dropdown
func (b *Bar) Focus() {
	b.mu.Lock()
	b.open = true
	b.mu.Unlock()
}

// Type handles an edit of the input text
func (b *Bar) Type(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.session.Type(text)
	b.nav.Reset()
	b.open = true
}

// Key handles a key press. Keys are ignored while the dropdown is closed.
func (b *Bar) Key(ctx context.Context, key string) Outcome {
	b.mu.Lock()
	if !b.open {
		b.mu.Unlock()
		return Outcome{Action: ActionNone}
	}
	snap := b.session.Snapshot()
	items := DropdownItems(snap.Query, snap.Suggestions, b.history.Entries(ctx), b.trending)
	out := b.nav.Key(key, items, snap.Query)
	switch out.Action {
	case ActionClose, ActionNavigateProduct:
		b.open = false
	}
	b.mu.Unlock()

	if out.Action == ActionSearch {
		b.Commit(ctx, out.Query)
	}
	return out
}

// Commit records a full search. It remembers the query, clears the input
// and closes the dropdown.
func (b *Bar) Commit(ctx context.Context, query string) Outcome {
	out := searchOutcome(query)
	if out.Action != ActionSearch {
		return out
	}

	b.history.Add(ctx, out.Query)

	b.mu.Lock()
	b.session.Type("")
	b.nav.Reset()
	b.open = false
	b.mu.Unlock()
	return out
}

// View returns the current state of the bar
func (b *Bar) View(ctx context.Context) View {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := b.session.Snapshot()
	history := b.history.Entries(ctx)
	return View{
		Snapshot: snap,
		Open:     b.open,
		Items:    DropdownItems(snap.Query, snap.Suggestions, history, b.trending),
		Selected: b.nav.Selected(),
		History:  history,
	}
}

// History returns the remembered searches
func (b *Bar) History(ctx context.Context) []Entry {
	return b.history.Entries(ctx)
}

// ClearHistory forgets every remembered search
func (b *Bar) ClearHistory(ctx context.Context) error {
	return b.history.Clear(ctx)
}

// Trending returns the trending terms
func (b *Bar) Trending() []string {
	return append([]string(nil), b.trending...)
}

// Close stops the live session
func (b *Bar) Close() {
	b.session.Close()
}
