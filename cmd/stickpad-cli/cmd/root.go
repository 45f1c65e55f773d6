package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stickpad/internal/adapters/notestore"
	"stickpad/internal/config"
	"stickpad/internal/ports"
)

var (
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "stickpad-cli",
	Short: "Control and script the stickpad overlay",
	Long: `stickpad-cli drives the stickpad sticky-note overlay from the shell.

It reads and writes the note directly, and sends commands (toggle,
on-top, info) to a running overlay over its control socket. Bind your
desktop environment's global shortcut to "stickpad-cli toggle" to get a
system-wide show/hide key.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(configPath)
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
}

// openStore opens the configured note store for commands that touch the
// note directly.
func openStore() (ports.NoteStore, func() error, error) {
	return notestore.Open(cfg)
}
