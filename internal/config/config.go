package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"stickpad/internal/application"
	"stickpad/internal/domain"
)

// Backend names for the note store.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the overlay settings.
type Config struct {
	DataDir      string        // where the note, socket, and log live
	Backend      string        // "file" or "sqlite"
	Debounce     time.Duration // quiet period before a save
	Retry        time.Duration // delay before re-attempting a failed save
	ToggleKey    string        // in-app visibility toggle key
	StartVisible bool          // initial window state
}

// fileConfig is the YAML-unmarshaling intermediary that uses string
// durations.
type fileConfig struct {
	DataDir      string `yaml:"data_dir,omitempty"`
	Backend      string `yaml:"backend,omitempty"`
	Debounce     string `yaml:"debounce,omitempty"`
	Retry        string `yaml:"retry,omitempty"`
	ToggleKey    string `yaml:"toggle_key,omitempty"`
	StartVisible *bool  `yaml:"start_visible,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:      defaultDataDir(),
		Backend:      BackendFile,
		Debounce:     application.DefaultDebounce,
		Retry:        application.DefaultRetry,
		ToggleKey:    "ctrl+t",
		StartVisible: domain.DefaultVisibility.Shown(),
	}
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/stickpad/config.yaml.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stickpad", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "stickpad", "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty), applies
// environment overrides, and fills in defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// first run, defaults apply
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
			if err := cfg.apply(fc); err != nil {
				return cfg, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if cfg.Backend != BackendFile && cfg.Backend != BackendSQLite {
		return cfg, fmt.Errorf("unknown backend %q (want %s or %s)", cfg.Backend, BackendFile, BackendSQLite)
	}
	return cfg, nil
}

func (c *Config) apply(fc fileConfig) error {
	if fc.DataDir != "" {
		c.DataDir = expandHome(fc.DataDir)
	}
	if fc.Backend != "" {
		c.Backend = fc.Backend
	}
	if fc.Debounce != "" {
		d, err := time.ParseDuration(fc.Debounce)
		if err != nil {
			return fmt.Errorf("debounce: %w", err)
		}
		c.Debounce = d
	}
	if fc.Retry != "" {
		d, err := time.ParseDuration(fc.Retry)
		if err != nil {
			return fmt.Errorf("retry: %w", err)
		}
		c.Retry = d
	}
	if fc.ToggleKey != "" {
		c.ToggleKey = fc.ToggleKey
	}
	if fc.StartVisible != nil {
		c.StartVisible = *fc.StartVisible
	}
	return nil
}

func (c *Config) applyEnv() {
	if env := os.Getenv("STICKPAD_HOME"); env != "" {
		c.DataDir = expandHome(env)
	}
	if env := os.Getenv("STICKPAD_BACKEND"); env != "" {
		c.Backend = env
	}
	if env := os.Getenv("STICKPAD_DEBOUNCE"); env != "" {
		if d, err := time.ParseDuration(env); err == nil {
			c.Debounce = d
		}
	}
}

// NotePath returns the file-backend note location.
func (c Config) NotePath() string { return filepath.Join(c.DataDir, "note.txt") }

// DBPath returns the sqlite-backend database location.
func (c Config) DBPath() string { return filepath.Join(c.DataDir, "note.db") }

// SocketPath returns the control socket location.
func (c Config) SocketPath() string { return filepath.Join(c.DataDir, "stickpad.sock") }

// LogPath returns the log file location. The TUI owns stderr, so logs go
// to a file.
func (c Config) LogPath() string { return filepath.Join(c.DataDir, "stickpad.log") }

// InitialVisibility returns the state the controller starts in.
func (c Config) InitialVisibility() domain.Visibility {
	if c.StartVisible {
		return domain.Visible
	}
	return domain.Hidden
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stickpad"
	}
	return filepath.Join(home, ".local", "share", "stickpad")
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
