package sqlite

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "note.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadFirstRunReturnsEmpty(t *testing.T) {
	store := openTestStore(t)

	content, err := store.Load()
	if err != nil {
		t.Fatalf("first-run Load failed: %v", err)
	}
	if content != "" {
		t.Errorf("expected empty note on first run, got %q", content)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	cases := []string{
		"",
		"hello",
		"line one\nline two\n",
		"unicode ✓ emoji 📝",
	}
	for _, want := range cases {
		if err := store.Save(want); err != nil {
			t.Fatalf("Save(%q) failed: %v", want, err)
		}
		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load after Save(%q) failed: %v", want, err)
		}
		if got != want {
			t.Errorf("round trip mismatch: saved %q, loaded %q", want, got)
		}
	}
}

func TestSaveReplacesSingleRow(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save("first"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save("second"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM note`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single note row, got %d", count)
	}

	got, err := store.Load()
	if err != nil || got != "second" {
		t.Fatalf("Load = %q, %v", got, err)
	}
}

func TestContentSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Save("persisted"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load()
	if err != nil || got != "persisted" {
		t.Fatalf("Load after reopen = %q, %v", got, err)
	}
}
