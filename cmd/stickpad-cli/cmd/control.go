package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stickpad/internal/adapters/ipc"
)

// send delivers one command to the running overlay.
func send(command ipc.Command) error {
	reply, err := ipc.Send(cfg.SocketPath(), command)
	if err != nil {
		return fmt.Errorf("%w (is the overlay running?)", err)
	}
	fmt.Println(reply)
	return nil
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Show or hide the running overlay",
	Long: `Show or hide the running overlay.

This is the command to bind to a global keyboard shortcut: it reaches
the overlay through its control socket, so it works no matter which
application currently has focus.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(ipc.CmdToggle)
	},
}

var onTopCmd = &cobra.Command{
	Use:   "on-top",
	Short: "Force the overlay window back on top",
	Long: `Force the overlay window back on top.

Useful when another application's fullscreen surface swallowed the
overlay; safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(ipc.CmdForceOnTop)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the overlay's window diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(ipc.CmdInfo)
	},
}

var dragCmd = &cobra.Command{
	Use:   "drag",
	Short: "Ask the window manager to start moving the overlay window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(ipc.CmdDrag)
	},
}

var spaceChangedCmd = &cobra.Command{
	Use:    "space-changed",
	Short:  "Notify the overlay of a fullscreen-space transition",
	Hidden: true, // for desktop-environment hooks, not humans
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(ipc.CmdSpaceChanged)
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(onTopCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(dragCmd)
	rootCmd.AddCommand(spaceChangedCmd)
}
