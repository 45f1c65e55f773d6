package application

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	content string
	saves   []string
	failing bool
}

func (s *fakeStore) Load() (string, error) { return s.content, nil }

func (s *fakeStore) Save(content string) error {
	if s.failing {
		return &StorageError{Op: "save", Path: s.Path(), Reason: errors.New("disk full")}
	}
	s.content = content
	s.saves = append(s.saves, content)
	return nil
}

func (s *fakeStore) Path() string { return "fake" }

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// run executes a flush synchronously against the store, the way the event
// loop would in a tea.Cmd, and feeds the result back.
func run(c *Coordinator, store *fakeStore, f Flush) (Flush, bool) {
	err := store.Save(f.Content)
	return c.SaveDone(f.Content, err)
}

func TestRapidEditsCollapseToOneSave(t *testing.T) {
	store := &fakeStore{}
	c := NewCoordinator(store, discard())

	// Edits "H", "He", "Hello" each inside the quiet period: the first
	// two timers fire with stale generations and do nothing.
	g1 := c.OnEdit("H")
	g2 := c.OnEdit("He")
	g3 := c.OnEdit("Hello")

	_, ok := c.TimerFired(g1)
	assert.False(t, ok)
	_, ok = c.TimerFired(g2)
	assert.False(t, ok)

	f, ok := c.TimerFired(g3)
	require.True(t, ok)
	assert.Equal(t, "Hello", f.Content)

	next, more := run(c, store, f)
	assert.False(t, more, "no queued flush expected, got %q", next.Content)

	assert.Equal(t, []string{"Hello"}, store.saves)
	assert.False(t, c.Dirty())
}

func TestEditAfterTimerArmsNewGeneration(t *testing.T) {
	store := &fakeStore{}
	c := NewCoordinator(store, discard())

	g1 := c.OnEdit("draft")
	f, ok := c.TimerFired(g1)
	require.True(t, ok)
	_, _ = run(c, store, f)

	g2 := c.OnEdit("final")
	assert.Greater(t, g2, g1)
	f, ok = c.TimerFired(g2)
	require.True(t, ok)
	assert.Equal(t, "final", f.Content)
	_, _ = run(c, store, f)

	assert.Equal(t, []string{"draft", "final"}, store.saves)
}

func TestFlushQueuesBehindInFlightSave(t *testing.T) {
	store := &fakeStore{}
	c := NewCoordinator(store, discard())

	g1 := c.OnEdit("first")
	f1, ok := c.TimerFired(g1)
	require.True(t, ok)

	// While the save is in flight, another edit lands and its timer
	// fires. It must queue rather than race.
	g2 := c.OnEdit("second")
	_, ok = c.TimerFired(g2)
	assert.False(t, ok)

	f2, more := c.SaveDone(f1.Content, store.Save(f1.Content))
	require.True(t, more, "queued flush should run after the in-flight save")
	assert.Equal(t, "second", f2.Content)

	_, more = run(c, store, f2)
	assert.False(t, more)
	assert.Equal(t, []string{"first", "second"}, store.saves)
}

func TestFailedSaveKeepsSnapshotPending(t *testing.T) {
	store := &fakeStore{failing: true}
	c := NewCoordinator(store, discard())

	gen := c.OnEdit("precious")
	f, ok := c.TimerFired(gen)
	require.True(t, ok)

	_, more := c.SaveDone(f.Content, store.Save(f.Content))
	assert.False(t, more)
	assert.True(t, c.Dirty(), "failed save must not discard the snapshot")
	assert.True(t, c.RetryPending())

	// Opportunistic retry: the retry timer fires with the current
	// generation once the medium is back.
	store.failing = false
	f, ok = c.TimerFired(c.Gen())
	require.True(t, ok)
	assert.Equal(t, "precious", f.Content)
	_, _ = run(c, store, f)

	assert.Equal(t, []string{"precious"}, store.saves)
	assert.False(t, c.Dirty())
}

func TestFlushNowPersistsPendingSnapshot(t *testing.T) {
	store := &fakeStore{}
	c := NewCoordinator(store, discard())

	c.OnEdit("typed then quit")
	require.NoError(t, c.FlushNow())

	assert.Equal(t, []string{"typed then quit"}, store.saves)
	assert.False(t, c.Dirty())

	// Timer from before the flush is stale now.
	_, ok := c.TimerFired(c.Gen() - 1)
	assert.False(t, ok)
}

func TestFlushNowRefusesWhileSaveInFlight(t *testing.T) {
	store := &fakeStore{}
	c := NewCoordinator(store, discard())

	g1 := c.OnEdit("v1")
	f1, ok := c.TimerFired(g1)
	require.True(t, ok)
	require.True(t, c.SaveInFlight())

	// A newer edit lands while the save goroutine is still running. A
	// synchronous flush now would race it: if the abandoned write's
	// rename landed last, the older content would end up durable.
	c.OnEdit("v2")
	require.NoError(t, c.FlushNow())
	assert.Empty(t, store.saves, "flush must not write concurrently with an in-flight save")
	assert.True(t, c.Dirty(), "the newer snapshot must stay pending")

	// The in-flight save is acknowledged, then the flush runs cleanly.
	_, more := c.SaveDone(f1.Content, store.Save(f1.Content))
	assert.False(t, more)
	assert.False(t, c.SaveInFlight())
	require.NoError(t, c.FlushNow())

	assert.Equal(t, []string{"v1", "v2"}, store.saves)
	assert.Equal(t, "v2", store.content, "latest content must win at shutdown")
}

func TestFlushNowNoopWhenNothingPending(t *testing.T) {
	store := &fakeStore{}
	c := NewCoordinator(store, discard())

	require.NoError(t, c.FlushNow())
	assert.Empty(t, store.saves)
}

func TestIdenticalContentSkipsWrite(t *testing.T) {
	store := &fakeStore{content: "same"}
	c := NewCoordinator(store, discard())
	c.SeedSaved("same")

	gen := c.OnEdit("same")
	_, ok := c.TimerFired(gen)
	assert.False(t, ok, "byte-identical content should skip the write")
	assert.Empty(t, store.saves)
	assert.False(t, c.Dirty())

	// FlushNow takes the same shortcut.
	c.OnEdit("same")
	require.NoError(t, c.FlushNow())
	assert.Empty(t, store.saves)
}

func TestLoadThenResaveIsIdempotent(t *testing.T) {
	store := &fakeStore{content: "existing note"}
	c := NewCoordinator(store, discard())

	loaded, err := store.Load()
	require.NoError(t, err)
	c.SeedSaved(loaded)

	gen := c.OnEdit(loaded)
	_, ok := c.TimerFired(gen)
	assert.False(t, ok)
	assert.Equal(t, "existing note", store.content)
}

func TestEditDuringSaveStaysPendingUntilItsTimer(t *testing.T) {
	store := &fakeStore{}
	c := NewCoordinator(store, discard())

	g1 := c.OnEdit("first")
	f1, ok := c.TimerFired(g1)
	require.True(t, ok)

	// Edit lands during the save but its timer has not fired yet.
	g2 := c.OnEdit("second")

	_, more := c.SaveDone(f1.Content, store.Save(f1.Content))
	assert.False(t, more, "nothing queued; the new edit waits for its own timer")
	assert.True(t, c.Dirty())

	f2, ok := c.TimerFired(g2)
	require.True(t, ok)
	_, _ = run(c, store, f2)
	assert.Equal(t, []string{"first", "second"}, store.saves)
}
