package search

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/pkg/storage"
)

func newTestBar(t *testing.T) (*Bar, *fakeClock, storage.Store) {
	t.Helper()
	clock := &fakeClock{}
	var calls []string
	var mu sync.Mutex
	store := storage.NewMemoryStore()
	bar := NewBar(
		newTestSession(staticLookup(&calls, &mu), clock),
		NewHistory(store, 5),
		nil,
	)
	t.Cleanup(bar.Close)
	return bar, clock, store
}

func TestBar_KeysIgnoredWhileClosed(t *testing.T) {
	bar, _, _ := newTestBar(t)
	assert.Equal(t, ActionNone, bar.Key(context.Background(), KeyArrowDown).Action)
	assert.Equal(t, -1, bar.View(context.Background()).Selected)
}

func TestBar_FocusShowsTrending(t *testing.T) {
	bar, _, _ := newTestBar(t)
	bar.Focus()

	view := bar.View(context.Background())
	assert.True(t, view.Open)
	require.Len(t, view.Items, len(DefaultTrending))
	assert.Equal(t, KindTrending, view.Items[0].Kind)
}

func TestBar_EnterOnSuggestion(t *testing.T) {
	ctx := context.Background()
	bar, clock, _ := newTestBar(t)

	bar.Type("robe")
	clock.timer(0).f()

	bar.Key(ctx, KeyArrowDown)
	out := bar.Key(ctx, KeyEnter)
	assert.Equal(t, Outcome{Action: ActionNavigateProduct, Target: "/product/p-robe"}, out)

	view := bar.View(ctx)
	assert.False(t, view.Open)
	assert.Empty(t, view.History)
}

func TestBar_EnterCommitsTypedQuery(t *testing.T) {
	ctx := context.Background()
	bar, _, _ := newTestBar(t)

	bar.Type("sac à main")
	out := bar.Key(ctx, KeyEnter)
	assert.Equal(t, ActionSearch, out.Action)
	assert.Equal(t, "sac à main", out.Query)

	view := bar.View(ctx)
	assert.False(t, view.Open)
	assert.Equal(t, "", view.Query)
	assert.Equal(t, StateIdle, view.State)
	assert.Equal(t, []string{"sac à main"}, queries(view.History))
}

func TestBar_EnterOnTrendingCommitsTerm(t *testing.T) {
	ctx := context.Background()
	bar, _, _ := newTestBar(t)
	bar.Focus()

	bar.Key(ctx, KeyArrowDown)
	out := bar.Key(ctx, KeyEnter)
	assert.Equal(t, DefaultTrending[0], out.Query)
	assert.Equal(t, []string{DefaultTrending[0]}, queries(bar.History(ctx)))

	// history now precedes trending
	bar.Focus()
	view := bar.View(ctx)
	assert.Equal(t, KindHistory, view.Items[0].Kind)
}

func TestBar_EscapeKeepsText(t *testing.T) {
	ctx := context.Background()
	bar, _, _ := newTestBar(t)

	bar.Type("parfum")
	assert.Equal(t, ActionClose, bar.Key(ctx, KeyEscape).Action)

	view := bar.View(ctx)
	assert.False(t, view.Open)
	assert.Equal(t, "parfum", view.Query)
}

func TestBar_ClearHistory(t *testing.T) {
	ctx := context.Background()
	bar, _, store := newTestBar(t)

	bar.Commit(ctx, "bijoux")
	require.NoError(t, bar.ClearHistory(ctx))
	assert.Empty(t, bar.History(ctx))
	_, err := store.Get(ctx, HistoryKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBars_HistoryIsPerSession(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	bars := NewBars(BarFactory{
		Lookup: lookupFunc(func(context.Context, string, int) ([]Suggestion, error) { return nil, nil }),
		Store:  store,
		Config: DefaultConfig(),
	}, 10)

	bars.Get("alice").Commit(ctx, "robe")
	assert.Empty(t, bars.Get("bob").History(ctx))
	assert.Equal(t, []string{"robe"}, queries(bars.Get("alice").History(ctx)))
	assert.Equal(t, 2, bars.Len())

	_, err := store.Get(ctx, "alice:"+HistoryKey)
	assert.NoError(t, err)
}
