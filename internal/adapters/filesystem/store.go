package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"stickpad/internal/application"
	"stickpad/internal/ports"
)

// Store implements ports.NoteStore on a single flat file holding the
// note blob.
type Store struct {
	path string
}

// Ensure Store implements NoteStore
var _ ports.NoteStore = (*Store)(nil)

// NewStore creates a file-backed note store at path.
func NewStore(path string) *Store {
	// Expand ~ to home directory
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load reads the whole note. A missing file is a first run, not an
// error: it yields the empty note.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", &application.StorageError{Op: "load", Path: s.path, Reason: err}
	}
	return string(data), nil
}

// Save replaces the note atomically: write to a temp file in the same
// directory, fsync it, then rename over the target. The write is durable
// before Save returns.
func (s *Store) Save(content string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &application.StorageError{Op: "save", Path: s.path, Reason: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &application.StorageError{Op: "save", Path: s.path, Reason: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	n, err := tmp.WriteString(content)
	if err == nil && n < len(content) {
		err = fmt.Errorf("%w: short write (%d of %d bytes)", application.ErrWriteFailed, n, len(content))
	}
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &application.StorageError{Op: "save", Path: s.path, Reason: err}
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return &application.StorageError{Op: "save", Path: s.path, Reason: err}
	}
	return nil
}
