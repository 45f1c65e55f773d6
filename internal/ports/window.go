package ports

// WindowManager defines the interface for manipulating the OS window
// hosting the overlay. Implementations are best-effort: the overlay keeps
// running even when the host window manager refuses an operation.
type WindowManager interface {
	// Raise shows the window and gives it input focus.
	Raise() error

	// Hide hides the window, returning focus to the previously active
	// application.
	Hide() error

	// SetTopMost re-applies the top-most (always-on-top) window level.
	// Safe to call repeatedly.
	SetTopMost() error

	// PositionTopRight moves the window to the top-right corner of the
	// primary screen.
	PositionTopRight() error

	// BeginDrag forwards an interactive window move to the window
	// manager. Stateless pass-through.
	BeginDrag() error

	// Info returns a human-readable snapshot of window state (level,
	// frame, screen) for troubleshooting. Not used for control flow.
	Info() (string, error)
}
