package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// Surface bridges the textarea widget and the persistence coordinator
// without the core depending on the widget's representation. It detects
// content mutations by comparing the full value before and after each
// widget update, so every notification carries the whole note, never a
// diff. Formatting and editing keys are the widget's own business.
type Surface struct {
	ta     textarea.Model
	last   string
	seeded bool
}

// NewSurface creates the editing surface.
func NewSurface() *Surface {
	ta := textarea.New()
	ta.Placeholder = "Jot something down…"
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	return &Surface{ta: ta}
}

// Seed applies loaded content exactly once, before the widget accepts
// user input. Seeding is not editing: it must not produce an edit event,
// which holds here because the comparison baseline is set to the seeded
// value. Repeated calls are ignored.
func (s *Surface) Seed(content string) {
	if s.seeded {
		return
	}
	s.ta.SetValue(content)
	s.last = content
	s.seeded = true
}

// Apply replaces the widget content after an external change to the
// store (CLI or MCP write). Like Seed it produces no edit event.
func (s *Surface) Apply(content string) {
	s.ta.SetValue(content)
	s.last = content
}

// Update forwards msg to the widget and reports whether the content
// changed, returning the full current value.
func (s *Surface) Update(msg tea.Msg) (tea.Cmd, string, bool) {
	var cmd tea.Cmd
	s.ta, cmd = s.ta.Update(msg)
	value := s.ta.Value()
	if value != s.last {
		s.last = value
		return cmd, value, true
	}
	return cmd, value, false
}

// Value returns the full current content.
func (s *Surface) Value() string { return s.ta.Value() }

// Focus gives the widget input focus.
func (s *Surface) Focus() tea.Cmd { return s.ta.Focus() }

// Blur removes input focus.
func (s *Surface) Blur() { s.ta.Blur() }

// Focused reports whether the widget has input focus.
func (s *Surface) Focused() bool { return s.ta.Focused() }

// SetSize resizes the widget.
func (s *Surface) SetSize(width, height int) {
	s.ta.SetWidth(width)
	s.ta.SetHeight(height)
}

// View renders the widget.
func (s *Surface) View() string { return s.ta.View() }
