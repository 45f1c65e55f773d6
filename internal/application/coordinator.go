package application

import (
	"log/slog"
	"time"

	"stickpad/internal/ports"
)

const (
	// DefaultDebounce is the quiet period after the last edit before a
	// write is attempted.
	DefaultDebounce = 500 * time.Millisecond

	// DefaultRetry is how long to wait before re-attempting a failed
	// save when no further edits arrive.
	DefaultRetry = 5 * time.Second
)

// Flush is a request to persist a snapshot of note content. The snapshot
// is carried by value so it can safely cross goroutine boundaries.
type Flush struct {
	Content string
}

// Coordinator decides when in-memory edits become durable. It buffers
// edit events, debounces them with a quiet-period timer, serializes saves
// so two are never in flight at once, and never drops the latest edit.
//
// The coordinator is a plain state machine with no goroutines or timers
// of its own: the hosting event loop owns scheduling. OnEdit returns a
// generation token; the loop arms a timer carrying it and calls
// TimerFired when it expires. A timer whose generation is stale (a newer
// edit superseded it) does nothing, which gives last-write-wins
// debouncing with at most one effective pending timer.
type Coordinator struct {
	store  ports.NoteStore
	logger *slog.Logger

	debounce time.Duration
	retry    time.Duration

	gen        int
	pending    string
	hasPending bool
	saving     bool
	queued     bool

	lastSaved string
	haveSaved bool
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithDebounce overrides the quiet-period duration.
func WithDebounce(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithRetry overrides the failed-save retry delay.
func WithRetry(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) {
		if d > 0 {
			c.retry = d
		}
	}
}

// NewCoordinator creates a coordinator flushing to store.
func NewCoordinator(store ports.NoteStore, logger *slog.Logger, opts ...CoordinatorOption) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		store:    store,
		logger:   logger,
		debounce: DefaultDebounce,
		retry:    DefaultRetry,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SeedSaved records content as the last durable value without writing.
// Called once after the startup load so that saving the unmodified loaded
// content can be skipped.
func (c *Coordinator) SeedSaved(content string) {
	c.lastSaved = content
	c.haveSaved = true
}

// Debounce returns the quiet-period duration the caller should use when
// arming a timer for a generation returned by OnEdit.
func (c *Coordinator) Debounce() time.Duration { return c.debounce }

// Retry returns the delay before re-attempting a failed save.
func (c *Coordinator) Retry() time.Duration { return c.retry }

// Gen returns the current debounce generation.
func (c *Coordinator) Gen() int { return c.gen }

// Dirty reports whether a snapshot is pending or a save is in flight.
func (c *Coordinator) Dirty() bool { return c.hasPending || c.saving }

// OnEdit records content as the latest pending snapshot and bumps the
// debounce generation, superseding any unexpired timer. The caller arms a
// fresh timer for Debounce() carrying the returned generation.
func (c *Coordinator) OnEdit(content string) int {
	c.pending = content
	c.hasPending = true
	c.gen++
	return c.gen
}

// TimerFired handles a debounce (or retry) timer expiring for gen. It
// returns a Flush the caller must execute, applying the result via
// SaveDone. A stale generation, an empty pending slot, or a save already
// in flight yields no flush; the in-flight case queues one behind the
// running save instead.
func (c *Coordinator) TimerFired(gen int) (Flush, bool) {
	if gen != c.gen || !c.hasPending {
		return Flush{}, false
	}
	if c.saving {
		c.queued = true
		return Flush{}, false
	}
	if c.haveSaved && c.pending == c.lastSaved {
		// Byte-identical to the last durable value; skip the write.
		c.hasPending = false
		return Flush{}, false
	}
	c.saving = true
	return Flush{Content: c.pending}, true
}

// SaveDone applies the outcome of an executed Flush. On success the
// snapshot is marked durable unless a newer edit arrived while the save
// ran. On failure the snapshot stays pending so the next edit, a retry
// timer, or shutdown re-attempts it. The returned Flush, when ok, must
// be executed immediately: it is a queued request that was waiting for
// the in-flight save to finish.
func (c *Coordinator) SaveDone(content string, err error) (Flush, bool) {
	c.saving = false
	if err != nil {
		c.logger.Error("note save failed", "error", err)
		c.queued = false
		return Flush{}, false
	}
	c.lastSaved = content
	c.haveSaved = true
	if c.hasPending && c.pending == content {
		c.hasPending = false
	}
	if c.queued {
		c.queued = false
		if c.hasPending {
			c.saving = true
			return Flush{Content: c.pending}, true
		}
	}
	return Flush{}, false
}

// RetryPending reports whether a retry timer should be armed: an unsaved
// snapshot exists and no save is running. The timer should carry Gen().
func (c *Coordinator) RetryPending() bool {
	return c.hasPending && !c.saving
}

// SaveInFlight reports whether a flush handed out by TimerFired or
// SaveDone has not been acknowledged yet. Callers that want to shut down
// must wait until this is false before invoking FlushNow.
func (c *Coordinator) SaveInFlight() bool { return c.saving }

// FlushNow cancels any pending timer and synchronously persists the
// latest snapshot, if one exists. Safe to call when nothing is pending.
// Must run after the event loop has drained so it cannot race an
// in-flight save; used on shutdown so the last edit inside the debounce
// window is never lost to a clean exit.
func (c *Coordinator) FlushNow() error {
	c.gen++ // invalidate any timer still scheduled
	if c.saving {
		// An unacknowledged save still owns the store. Writing now
		// could land before the other write's rename and leave the
		// older content durable. Keep the snapshot pending instead.
		c.logger.Warn("flush requested with a save in flight, skipping")
		return nil
	}
	if !c.hasPending {
		return nil
	}
	if c.haveSaved && c.pending == c.lastSaved {
		c.hasPending = false
		return nil
	}
	if err := c.store.Save(c.pending); err != nil {
		c.logger.Error("final note save failed", "error", err)
		return err
	}
	c.lastSaved = c.pending
	c.haveSaved = true
	c.hasPending = false
	return nil
}
