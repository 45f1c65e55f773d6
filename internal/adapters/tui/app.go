package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stickpad/internal/adapters/ipc"
	"stickpad/internal/adapters/tui/styles"
	"stickpad/internal/application"
	"stickpad/internal/config"
	"stickpad/internal/domain"
	"stickpad/internal/ports"
)

// Messages produced by timers, saves, and external collaborators. All of
// them are handled on the bubbletea loop, which serializes every core
// operation.
type (
	debounceTickMsg struct{ gen int }
	saveDoneMsg     struct {
		content string
		err     error
	}
	controlRequestMsg struct{ req ipc.Request }
	noteChangedMsg    struct{}
	reloadDoneMsg     struct {
		content string
		err     error
	}
	clipboardDoneMsg struct{ err error }
)

// App is the overlay application model.
type App struct {
	cfg    config.Config
	logger *slog.Logger

	store   ports.NoteStore
	coord   *application.Coordinator
	ctrl    *application.Controller
	surface *Surface

	controls <-chan ipc.Request
	changes  <-chan struct{}

	keys      keyMap
	width     int
	height    int
	showDebug bool
	quitting  bool
	lastErr   error
}

// NewApp wires the overlay together. initialContent is the startup load
// result; it seeds the surface before any input is handled.
func NewApp(
	cfg config.Config,
	logger *slog.Logger,
	store ports.NoteStore,
	coord *application.Coordinator,
	ctrl *application.Controller,
	controls <-chan ipc.Request,
	changes <-chan struct{},
	initialContent string,
) *App {
	surface := NewSurface()
	surface.Seed(initialContent)
	coord.SeedSaved(initialContent)

	return &App{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		coord:    coord,
		ctrl:     ctrl,
		surface:  surface,
		controls: controls,
		changes:  changes,
		keys:     newKeyMap(cfg.ToggleKey),
	}
}

// Init starts the background listeners and the cursor blink.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if a.ctrl.State().Shown() {
		cmds = append(cmds, a.surface.Focus())
	}
	if a.controls != nil {
		cmds = append(cmds, waitForControl(a.controls))
	}
	if a.changes != nil {
		cmds = append(cmds, waitForChange(a.changes))
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the overlay.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeSurface()
		return a, nil

	case tea.FocusMsg:
		// Terminal focus came back, possibly after another app's
		// fullscreen space went away. Re-assert the window level.
		a.ctrl.SpaceChanged()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case debounceTickMsg:
		if flush, ok := a.coord.TimerFired(msg.gen); ok {
			return a, a.saveCmd(flush)
		}
		return a, nil

	case saveDoneMsg:
		return a.handleSaveDone(msg)

	case controlRequestMsg:
		return a.handleControl(msg.req)

	case noteChangedMsg:
		cmds := []tea.Cmd{waitForChange(a.changes)}
		if !a.coord.Dirty() {
			// Nothing unsaved here; adopt the external edit.
			cmds = append(cmds, a.reloadCmd())
		}
		return a, tea.Batch(cmds...)

	case reloadDoneMsg:
		if msg.err != nil {
			a.logger.Warn("external change reload failed", "error", msg.err)
			return a, nil
		}
		if a.coord.Dirty() {
			// An edit landed while the reload was in flight; keep it.
			// The pending save wins and the watcher fires again.
			return a, nil
		}
		a.surface.Apply(msg.content)
		a.coord.SeedSaved(msg.content)
		return a, nil

	case clipboardDoneMsg:
		if msg.err != nil {
			a.logger.Warn("clipboard copy failed", "error", msg.err)
		}
		return a, nil
	}

	return a.updateSurface(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		// The loop must not exit while a save goroutine is still
		// running: bubbletea does not wait for in-flight commands, and
		// the shutdown flush would race the abandoned write. Defer the
		// quit until the save is acknowledged.
		if a.coord.SaveInFlight() {
			a.quitting = true
			return a, nil
		}
		return a, tea.Quit

	case key.Matches(msg, a.keys.Toggle):
		return a, a.toggle()

	case key.Matches(msg, a.keys.OnTop):
		if err := a.ctrl.ForceOnTop(); err != nil {
			a.lastErr = err
		}
		return a, nil

	case key.Matches(msg, a.keys.Debug):
		a.showDebug = !a.showDebug
		a.resizeSurface()
		return a, nil

	case key.Matches(msg, a.keys.Copy):
		content := a.surface.Value()
		return a, func() tea.Msg {
			return clipboardDoneMsg{err: clipboard.WriteAll(content)}
		}

	case key.Matches(msg, a.keys.SaveNow):
		gen := a.coord.OnEdit(a.surface.Value())
		if flush, ok := a.coord.TimerFired(gen); ok {
			return a, a.saveCmd(flush)
		}
		return a, nil
	}

	if !a.ctrl.State().Shown() {
		// Hidden overlay swallows everything except the bindings above.
		return a, nil
	}
	return a.updateSurface(msg)
}

// updateSurface forwards a message to the editing surface and pushes any
// resulting content change into the coordinator.
func (a *App) updateSurface(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, content, changed := a.surface.Update(msg)
	if !changed {
		return a, cmd
	}
	gen := a.coord.OnEdit(content)
	return a, tea.Batch(cmd, a.debounceCmd(gen))
}

func (a *App) handleSaveDone(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	a.lastErr = msg.err
	next, ok := a.coord.SaveDone(msg.content, msg.err)
	if ok {
		return a, a.saveCmd(next)
	}
	if a.quitting {
		// Deferred quit: the coordinator is quiescent now; anything
		// still pending is flushed synchronously after the loop exits.
		return a, tea.Quit
	}
	if msg.err != nil && a.coord.RetryPending() {
		return a, a.retryCmd()
	}
	return a, nil
}

func (a *App) handleControl(req ipc.Request) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitForControl(a.controls)}

	switch req.Cmd {
	case ipc.CmdToggle:
		cmds = append(cmds, a.toggle())
		req.Respond(a.ctrl.State().String())

	case ipc.CmdForceOnTop:
		if err := a.ctrl.ForceOnTop(); err != nil {
			req.Respond(fmt.Sprintf("error: %v", err))
		} else {
			req.Respond(a.ctrl.State().String())
		}

	case ipc.CmdInfo:
		req.Respond(a.debugReport())

	case ipc.CmdDrag:
		a.ctrl.BeginDrag()
		req.Respond("ok")

	case ipc.CmdSpaceChanged:
		a.ctrl.SpaceChanged()
		req.Respond(a.ctrl.State().String())

	default:
		req.Respond("error: unhandled command")
	}

	return a, tea.Batch(cmds...)
}

// toggle flips visibility and moves textarea focus to match.
func (a *App) toggle() tea.Cmd {
	if a.ctrl.Toggle().Shown() {
		return tea.Batch(a.surface.Focus(), textarea.Blink)
	}
	a.surface.Blur()
	return nil
}

func (a *App) saveCmd(flush application.Flush) tea.Cmd {
	store := a.store
	return func() tea.Msg {
		return saveDoneMsg{content: flush.Content, err: store.Save(flush.Content)}
	}
}

func (a *App) debounceCmd(gen int) tea.Cmd {
	return tea.Tick(a.coord.Debounce(), func(time.Time) tea.Msg {
		return debounceTickMsg{gen: gen}
	})
}

func (a *App) retryCmd() tea.Cmd {
	gen := a.coord.Gen()
	return tea.Tick(a.coord.Retry(), func(time.Time) tea.Msg {
		return debounceTickMsg{gen: gen}
	})
}

func (a *App) reloadCmd() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		content, err := store.Load()
		return reloadDoneMsg{content: content, err: err}
	}
}

func waitForControl(reqs <-chan ipc.Request) tea.Cmd {
	return func() tea.Msg {
		return controlRequestMsg{req: <-reqs}
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return noteChangedMsg{}
	}
}

const (
	chromeHeight = 4 // title bar, borders, status bar
	chromeWidth  = 4
)

func (a *App) resizeSurface() {
	w := a.width - chromeWidth
	h := a.height - chromeHeight
	if a.showDebug {
		h -= 6
	}
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	a.surface.SetSize(w, h)
}

// View renders the overlay.
func (a *App) View() string {
	if !a.ctrl.State().Shown() {
		return styles.HiddenHint.Render(
			fmt.Sprintf("stickpad hidden. %s or `stickpad-cli toggle` to show", a.cfg.ToggleKey))
	}

	title := domain.Title(a.surface.Value())
	if title == "" {
		title = "stickpad"
	}
	header := styles.Title.Render(title)
	if a.ctrl.State() == domain.VisibleForcedOnTop {
		header += " " + styles.Badge.Render("⤒ on top")
	}

	body := a.surface.View()

	status := a.statusLine()

	sections := []string{header, body, status}
	if a.showDebug {
		sections = append(sections, styles.DebugPane.Render(a.debugReport()))
	}
	return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (a *App) statusLine() string {
	var dot, note string
	if a.coord.Dirty() {
		dot = styles.DirtyDot.String()
		note = "unsaved"
	} else {
		dot = styles.SavedDot.String()
		note = "saved"
	}
	if a.lastErr != nil {
		return dot + " " + styles.StatusError.Render(fmt.Sprintf("save failing: %v", a.lastErr))
	}

	help := strings.Join([]string{
		a.keys.Toggle.Help().Key + " " + a.keys.Toggle.Help().Desc,
		a.keys.OnTop.Help().Key + " " + a.keys.OnTop.Help().Desc,
		a.keys.Copy.Help().Key + " " + a.keys.Copy.Help().Desc,
		a.keys.Quit.Help().Key + " " + a.keys.Quit.Help().Desc,
	}, " · ")

	return dot + " " + styles.StatusBar.Render(note+"  "+help)
}

// debugReport is the diagnostic snapshot behind ctrl+g and `stickpad-cli
// info`. Human troubleshooting only.
func (a *App) debugReport() string {
	stats := domain.Summarize(a.surface.Value())
	return fmt.Sprintf("%s\nstore: %s\nnote: %d bytes, %d lines\ndirty: %v",
		a.ctrl.DebugInfo(), a.store.Path(), stats.Bytes, stats.Lines, a.coord.Dirty())
}
