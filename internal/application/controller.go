package application

import (
	"fmt"
	"log/slog"

	"stickpad/internal/domain"
	"stickpad/internal/ports"
)

// Controller owns the overlay window visibility state and is its only
// writer. Window-manager failures are logged and never fatal: the logical
// state still advances so a later re-assertion can heal the window.
type Controller struct {
	wm     ports.WindowManager
	logger *slog.Logger
	state  domain.Visibility
}

// NewController creates a controller starting in the given state.
func NewController(wm ports.WindowManager, logger *slog.Logger, initial domain.Visibility) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{wm: wm, logger: logger, state: initial}
}

// State returns the current visibility state.
func (c *Controller) State() domain.Visibility { return c.state }

// Toggle flips the overlay between hidden and shown. Hidden becomes
// Visible (raised, focused, top-most re-asserted); Visible and
// VisibleForcedOnTop become Hidden, returning focus to the previously
// active application. This is the single hotkey action.
func (c *Controller) Toggle() domain.Visibility {
	if c.state.Shown() {
		c.state = domain.Hidden
		if err := c.wm.Hide(); err != nil {
			c.logger.Warn("window hide refused", "error", &WindowError{Op: "hide", Reason: err})
		}
		return c.state
	}
	c.state = domain.Visible
	if err := c.wm.Raise(); err != nil {
		c.logger.Warn("window raise refused", "error", &WindowError{Op: "raise", Reason: err})
	}
	// Some platforms drop the top-most level while hidden; re-apply on
	// every show.
	if err := c.wm.SetTopMost(); err != nil {
		c.logger.Warn("top-most re-assert refused", "error", &WindowError{Op: "set-top-most", Reason: err})
	}
	return c.state
}

// ForceOnTop unconditionally re-applies the top-most window level and,
// when the overlay is shown, marks the state sticky so fullscreen-space
// transitions keep re-asserting it. Idempotent; safe to call repeatedly.
// While hidden it only re-applies the level and leaves the state alone.
func (c *Controller) ForceOnTop() error {
	if c.state.Shown() {
		c.state = domain.VisibleForcedOnTop
	}
	if err := c.wm.SetTopMost(); err != nil {
		werr := &WindowError{Op: "force-on-top", Reason: err}
		c.logger.Warn("force on top refused", "error", werr)
		return werr
	}
	return nil
}

// SpaceChanged handles a fullscreen-space transition reported by the host
// OS. Some platforms silently drop a window's always-on-top flag when a
// different app enters fullscreen; if the overlay is shown, re-apply it.
func (c *Controller) SpaceChanged() {
	if !c.state.Shown() {
		return
	}
	if err := c.wm.SetTopMost(); err != nil {
		c.logger.Warn("top-most re-assert refused", "error", &WindowError{Op: "space-changed", Reason: err})
	}
}

// BeginDrag forwards an interactive window move to the window manager.
// Stateless pass-through; not modeled as a visibility state.
func (c *Controller) BeginDrag() {
	if err := c.wm.BeginDrag(); err != nil {
		c.logger.Warn("window drag refused", "error", &WindowError{Op: "drag", Reason: err})
	}
}

// PositionTopRight moves the window to the top-right corner. Best-effort,
// applied once at startup.
func (c *Controller) PositionTopRight() {
	if err := c.wm.PositionTopRight(); err != nil {
		c.logger.Warn("window positioning refused", "error", &WindowError{Op: "position", Reason: err})
	}
}

// DebugInfo returns a diagnostic snapshot of window state for human
// troubleshooting. Never used for control-flow decisions.
func (c *Controller) DebugInfo() string {
	info, err := c.wm.Info()
	if err != nil {
		info = fmt.Sprintf("window info unavailable: %v", err)
	}
	return fmt.Sprintf("state: %s\n%s", c.state, info)
}
