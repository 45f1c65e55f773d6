package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Accent = lipgloss.Color("#FBBF24") // sticky-note amber
	Muted  = lipgloss.Color("#6B7280") // gray
	Error  = lipgloss.Color("#EF4444") // red
	Good   = lipgloss.Color("#10B981") // green
	Ink    = lipgloss.Color("#1F2937") // dark slate

	// Panel frames the note like a pad of paper
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ink).
		Background(Accent).
		Padding(0, 1)

	Badge = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	DirtyDot = lipgloss.NewStyle().
			Foreground(Error).
			SetString("●")

	SavedDot = lipgloss.NewStyle().
			Foreground(Good).
			SetString("●")

	StatusBar = lipgloss.NewStyle().
			Foreground(Muted)

	StatusError = lipgloss.NewStyle().
			Foreground(Error)

	HiddenHint = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	DebugPane = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true).
			BorderForeground(Muted).
			Foreground(Muted).
			Padding(0, 1)
)
