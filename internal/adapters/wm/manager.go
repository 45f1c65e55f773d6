package wm

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"stickpad/internal/ports"
)

// ErrUnsupported is returned for operations the host platform or window
// manager cannot perform. Callers log it and move on; it is never fatal.
var ErrUnsupported = errors.New("not supported on this window manager")

// runner executes an external command and returns its combined output.
// Injectable for tests.
type runner func(name string, args ...string) (string, error)

func runCommand(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w (%s)", name, err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// Manager implements ports.WindowManager by driving the terminal window
// hosting the overlay through platform tools: osascript on macOS,
// xdotool/wmctrl on X11. When no tool applies it degrades to a no-op so
// the overlay still works as a plain in-terminal widget.
type Manager struct {
	logger *slog.Logger
	driver driver
}

// Ensure Manager implements WindowManager
var _ ports.WindowManager = (*Manager)(nil)

type driver interface {
	name() string
	raise() error
	hide() error
	setTopMost() error
	positionTopRight() error
	beginDrag() error
	info() (string, error)
}

// New detects the platform driver and creates a manager.
func New(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{logger: logger, driver: detect(runCommand)}
	logger.Debug("window manager driver selected", "driver", m.driver.name())
	return m
}

func detect(run runner) driver {
	switch runtime.GOOS {
	case "darwin":
		return &appleScriptDriver{run: run, app: terminalApp()}
	case "linux":
		windowID := os.Getenv("WINDOWID")
		if windowID == "" {
			return noopDriver{}
		}
		if _, err := exec.LookPath("xdotool"); err != nil {
			return noopDriver{}
		}
		return &x11Driver{run: run, windowID: windowID, haveWmctrl: lookPathOK("wmctrl")}
	default:
		return noopDriver{}
	}
}

func lookPathOK(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// terminalApp maps $TERM_PROGRAM to the scriptable application name.
func terminalApp() string {
	switch os.Getenv("TERM_PROGRAM") {
	case "Apple_Terminal":
		return "Terminal"
	case "iTerm.app":
		return "iTerm2"
	case "ghostty":
		return "Ghostty"
	case "WezTerm":
		return "WezTerm"
	default:
		return "Terminal"
	}
}

func (m *Manager) Raise() error            { return m.driver.raise() }
func (m *Manager) Hide() error             { return m.driver.hide() }
func (m *Manager) SetTopMost() error       { return m.driver.setTopMost() }
func (m *Manager) PositionTopRight() error { return m.driver.positionTopRight() }
func (m *Manager) BeginDrag() error        { return m.driver.beginDrag() }

func (m *Manager) Info() (string, error) {
	report, err := m.driver.info()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("driver: %s\n%s", m.driver.name(), report), nil
}
