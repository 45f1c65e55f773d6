package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"stickpad/internal/adapters/ipc"
	"stickpad/internal/adapters/notestore"
	"stickpad/internal/adapters/tui"
	"stickpad/internal/adapters/watcher"
	"stickpad/internal/adapters/wm"
	"stickpad/internal/application"
	"stickpad/internal/config"
)

var (
	configPath = flag.String("config", "", "path to config file")
	debugFlag  = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data dir: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file.
	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: logLevel,
	}))

	store, closeStore, err := notestore.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open note store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	// Load once at startup; first run yields the empty note. An
	// unreadable store is treated the same way, logged rather than
	// fatal, so a transient I/O hiccup never blocks the overlay.
	content, err := store.Load()
	if err != nil {
		logger.Error("note load failed, starting with empty note", "error", err)
		content = ""
	}

	coord := application.NewCoordinator(store, logger,
		application.WithDebounce(cfg.Debounce),
		application.WithRetry(cfg.Retry),
	)
	ctrl := application.NewController(wm.New(logger), logger, cfg.InitialVisibility())
	ctrl.PositionTopRight()

	server, err := ipc.Listen(cfg.SocketPath(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open control socket: %v\n", err)
		os.Exit(1)
	}
	defer server.Close()

	// External writes (CLI, MCP) reload the open overlay. File backend
	// only: the sqlite WAL churns too much to watch usefully.
	var changes <-chan struct{}
	stopWatch := make(chan struct{})
	defer close(stopWatch)
	if cfg.Backend == config.BackendFile {
		changes, err = watcher.Watch(cfg.NotePath(), logger, stopWatch)
		if err != nil {
			logger.Warn("note watcher unavailable", "error", err)
		}
	}

	app := tui.NewApp(cfg, logger, store, coord, ctrl, server.Requests(), changes, content)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus())

	_, runErr := p.Run()

	// The loop has drained; flush whatever the debounce window held.
	if err := coord.FlushNow(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: final save failed: %v\n", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
