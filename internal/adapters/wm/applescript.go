package wm

import (
	"fmt"
	"strings"
)

// appleScriptDriver drives the hosting terminal application through
// osascript. macOS offers no always-on-top toggle for another app's
// windows, so SetTopMost degrades to raising the window to the front of
// the stacking order; re-asserting on space changes keeps it effective.
type appleScriptDriver struct {
	run runner
	app string
}

func (d *appleScriptDriver) name() string { return "applescript" }

func (d *appleScriptDriver) osascript(script string) (string, error) {
	return d.run("osascript", "-e", script)
}

func (d *appleScriptDriver) raise() error {
	_, err := d.osascript(fmt.Sprintf(`tell application %q to activate`, d.app))
	return err
}

func (d *appleScriptDriver) hide() error {
	_, err := d.osascript(fmt.Sprintf(
		`tell application "System Events" to set visible of process %q to false`, d.app))
	return err
}

func (d *appleScriptDriver) setTopMost() error {
	_, err := d.osascript(fmt.Sprintf(
		`tell application "System Events" to tell process %q to perform action "AXRaise" of window 1`, d.app))
	if err != nil {
		// Fall back to a plain activate when accessibility control is
		// not granted.
		return d.raise()
	}
	return nil
}

func (d *appleScriptDriver) positionTopRight() error {
	script := fmt.Sprintf(`
tell application "Finder" to set screenBounds to bounds of window of desktop
set screenWidth to item 3 of screenBounds
tell application "System Events" to tell process %q
	set winSize to size of window 1
	set position of window 1 to {screenWidth - (item 1 of winSize) - 20, 40}
end tell`, d.app)
	_, err := d.osascript(script)
	return err
}

func (d *appleScriptDriver) beginDrag() error {
	// AppleScript cannot start an interactive window move.
	return ErrUnsupported
}

func (d *appleScriptDriver) info() (string, error) {
	script := fmt.Sprintf(`
tell application "System Events" to tell process %q
	set winPos to position of window 1
	set winSize to size of window 1
	return "position: " & (item 1 of winPos) & "," & (item 2 of winPos) & " size: " & (item 1 of winSize) & "x" & (item 2 of winSize)
end tell`, d.app)
	out, err := d.osascript(script)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("app: %s\n%s", d.app, strings.TrimSpace(out)), nil
}

// noopDriver keeps the overlay functional where no window tooling exists
// (Wayland without helpers, SSH sessions, tests).
type noopDriver struct{}

func (noopDriver) name() string            { return "noop" }
func (noopDriver) raise() error            { return nil }
func (noopDriver) hide() error             { return nil }
func (noopDriver) setTopMost() error       { return nil }
func (noopDriver) positionTopRight() error { return ErrUnsupported }
func (noopDriver) beginDrag() error        { return ErrUnsupported }
func (noopDriver) info() (string, error) {
	return "no window tooling detected; overlay runs as a plain terminal widget", nil
}
