package ports

// NoteStore defines the interface for single-slot durable note storage.
// Each Save fully replaces the prior value; there is no versioning and
// no multi-record structure.
type NoteStore interface {
	// Load returns the durable note content. A missing backing medium
	// (first run) is not an error and yields "".
	Load() (string, error)

	// Save persists content. On success the write is durable, not
	// merely buffered.
	Save(content string) error

	// Path returns the backing location, for diagnostics.
	Path() string
}
