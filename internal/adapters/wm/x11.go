package wm

import (
	"fmt"
	"strconv"
	"strings"
)

// x11Driver drives the hosting terminal window via xdotool, plus wmctrl
// for the always-on-top hint when available. The window is identified by
// $WINDOWID, which X11 terminals export.
type x11Driver struct {
	run        runner
	windowID   string
	haveWmctrl bool
}

func (d *x11Driver) name() string { return "x11" }

func (d *x11Driver) raise() error {
	if _, err := d.run("xdotool", "windowmap", d.windowID); err != nil {
		return err
	}
	_, err := d.run("xdotool", "windowactivate", d.windowID)
	return err
}

func (d *x11Driver) hide() error {
	_, err := d.run("xdotool", "windowunmap", d.windowID)
	return err
}

func (d *x11Driver) setTopMost() error {
	if d.haveWmctrl {
		_, err := d.run("wmctrl", "-i", "-r", d.windowID, "-b", "add,above")
		return err
	}
	// Without wmctrl the best available approximation is a raise.
	_, err := d.run("xdotool", "windowraise", d.windowID)
	return err
}

const topRightMargin = 20

func (d *x11Driver) positionTopRight() error {
	screenW, _, err := d.displayGeometry()
	if err != nil {
		return err
	}
	geo, err := d.windowGeometry()
	if err != nil {
		return err
	}
	x := screenW - geo.width - topRightMargin
	if x < 0 {
		x = 0
	}
	_, err = d.run("xdotool", "windowmove", d.windowID, strconv.Itoa(x), strconv.Itoa(topRightMargin*2))
	return err
}

func (d *x11Driver) beginDrag() error {
	// X11 has no portable interactive-move request we can issue on the
	// window's behalf.
	return ErrUnsupported
}

func (d *x11Driver) info() (string, error) {
	out, err := d.run("xdotool", "getwindowgeometry", d.windowID)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "window id: %s\n", d.windowID)
	sb.WriteString(strings.TrimSpace(out))
	if d.haveWmctrl {
		if state, err := d.run("wmctrl", "-l"); err == nil {
			for _, line := range strings.Split(state, "\n") {
				if strings.HasPrefix(line, "0x") && strings.Contains(line, windowIDHex(d.windowID)) {
					sb.WriteString("\nwmctrl: " + strings.TrimSpace(line))
				}
			}
		}
	}
	return sb.String(), nil
}

// displayGeometry parses `xdotool getdisplaygeometry` ("1920 1080").
func (d *x11Driver) displayGeometry() (int, int, error) {
	out, err := d.run("xdotool", "getdisplaygeometry")
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected display geometry %q", strings.TrimSpace(out))
	}
	w, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

type geometry struct {
	x, y, width, height int
}

// windowGeometry parses `xdotool getwindowgeometry --shell` output
// (X=..., Y=..., WIDTH=..., HEIGHT=... lines).
func (d *x11Driver) windowGeometry() (geometry, error) {
	out, err := d.run("xdotool", "getwindowgeometry", "--shell", d.windowID)
	if err != nil {
		return geometry{}, err
	}
	var geo geometry
	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		switch key {
		case "X":
			geo.x = n
		case "Y":
			geo.y = n
		case "WIDTH":
			geo.width = n
		case "HEIGHT":
			geo.height = n
		}
	}
	if geo.width == 0 {
		return geo, fmt.Errorf("could not parse window geometry")
	}
	return geo, nil
}

// windowIDHex renders a decimal $WINDOWID the way wmctrl lists it.
func windowIDHex(id string) string {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return id
	}
	return fmt.Sprintf("0x%08x", n)
}
