package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"stickpad/internal/application"
	"stickpad/internal/ports"
)

// Store implements ports.NoteStore on a single-row SQLite table. The
// note stays a single opaque blob; the database only buys transactional
// durability on media where rename is not atomic.
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements NoteStore
var _ ports.NoteStore = (*Store)(nil)

// Open creates or opens the note database at path.
func Open(path string) (*Store, error) {
	// Expand ~ in path
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// synchronous=FULL so a successful commit is on disk, not buffered.
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_synchronous=FULL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS note (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			content TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Load returns the note content, or "" when no row exists yet.
func (s *Store) Load() (string, error) {
	var content string
	err := s.db.QueryRow(`SELECT content FROM note WHERE id = 1`).Scan(&content)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", &application.StorageError{Op: "load", Path: s.path, Reason: err}
	}
	return content, nil
}

// Save replaces the single note row. Durable on return: the commit runs
// with synchronous=FULL.
func (s *Store) Save(content string) error {
	_, err := s.db.Exec(`
		INSERT INTO note (id, content, updated_at)
		VALUES (1, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		ON CONFLICT (id) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at
	`, content)
	if err != nil {
		return &application.StorageError{Op: "save", Path: s.path, Reason: err}
	}
	return nil
}
