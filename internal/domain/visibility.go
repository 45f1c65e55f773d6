package domain

// Visibility is the overlay window visibility state. It is owned by the
// visibility controller and never persisted.
type Visibility int

const (
	// Hidden means the overlay window is not shown.
	Hidden Visibility = iota
	// Visible means the overlay window is shown and raised.
	Visible
	// VisibleForcedOnTop is a sticky variant of Visible: the top-most
	// window level is re-asserted even across other applications'
	// fullscreen-space transitions.
	VisibleForcedOnTop
)

// DefaultVisibility is the state the overlay starts in.
const DefaultVisibility = Visible

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	case VisibleForcedOnTop:
		return "visible-forced-on-top"
	default:
		return "unknown"
	}
}

// Shown reports whether the window is shown in this state.
func (v Visibility) Shown() bool {
	return v == Visible || v == VisibleForcedOnTop
}
