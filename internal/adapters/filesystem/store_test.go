package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"stickpad/internal/application"
)

func TestLoadFirstRunReturnsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "note.txt"))

	content, err := store.Load()
	if err != nil {
		t.Fatalf("first-run Load failed: %v", err)
	}
	if content != "" {
		t.Errorf("expected empty note on first run, got %q", content)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "note.txt"))

	cases := []string{
		"",
		"hello",
		"line one\nline two\n",
		"unicode ✓ emoji 📝",
		"separator \x1e and null \x00 bytes",
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

func TestSaveReplacesWholeValue(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "note.txt"))

	if err := store.Save("a much longer first version of the note"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save("short"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != "short" {
		t.Errorf("expected full replacement, got %q", got)
	}
}

func TestSaveCreatesDataDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "deeper", "note.txt"))

	if err := store.Save("content"); err != nil {
		t.Fatalf("Save into missing dir failed: %v", err)
	}
	got, err := store.Load()
	if err != nil || got != "content" {
		t.Fatalf("Load after Save = %q, %v", got, err)
	}
}

func TestSaveLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "note.txt"))

	if err := store.Save("one"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save("two"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "note.txt" {
		t.Errorf("expected only note.txt in %s, got %v", dir, entries)
	}
}

func TestLoadUnreadableMediumIsStorageUnavailable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(path, []byte("secret"), 0000); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	store := NewStore(path)
	_, err := store.Load()
	if !errors.Is(err, application.ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}
