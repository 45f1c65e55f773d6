// Package ipc implements the overlay's control socket: a unix socket
// taking one newline-terminated command per connection. It is how the
// system-wide hotkey reaches a running overlay: the user binds the OS
// shortcut to `stickpad-cli toggle`, which works no matter which
// application has focus.
package ipc

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// Command is a control-socket verb.
type Command string

const (
	CmdToggle       Command = "toggle"
	CmdForceOnTop   Command = "on-top"
	CmdInfo         Command = "info"
	CmdDrag         Command = "drag"
	CmdSpaceChanged Command = "space-changed"
	CmdPing         Command = "ping"
)

// ParseCommand validates a wire verb.
func ParseCommand(s string) (Command, error) {
	switch c := Command(strings.TrimSpace(s)); c {
	case CmdToggle, CmdForceOnTop, CmdInfo, CmdDrag, CmdSpaceChanged, CmdPing:
		return c, nil
	default:
		return "", fmt.Errorf("unknown command %q", s)
	}
}

const dialTimeout = 2 * time.Second

// Send delivers one command to a running overlay and returns its reply.
func Send(socketPath string, cmd Command) (string, error) {
	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		return "", fmt.Errorf("overlay not reachable at %s: %w", socketPath, err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(dialTimeout))
	if _, err := fmt.Fprintln(conn, string(cmd)); err != nil {
		return "", fmt.Errorf("send %s: %w", cmd, err)
	}

	reply, err := io.ReadAll(conn)
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}
	return strings.TrimRight(string(reply), "\n"), nil
}
