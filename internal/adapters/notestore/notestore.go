// Package notestore opens the configured note store backend.
package notestore

import (
	"fmt"

	"stickpad/internal/adapters/filesystem"
	"stickpad/internal/adapters/sqlite"
	"stickpad/internal/config"
	"stickpad/internal/ports"
)

// Open returns the note store selected by cfg.Backend and a close
// function for it.
func Open(cfg config.Config) (ports.NoteStore, func() error, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return filesystem.NewStore(cfg.NotePath()), func() error { return nil }, nil
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.DBPath())
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
