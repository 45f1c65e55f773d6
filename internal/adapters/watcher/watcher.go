// Package watcher notifies the overlay when the note file changes on
// disk underneath it, e.g. after `stickpad-cli write` or an MCP edit
// while the overlay is open.
package watcher

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the event bursts editors and atomic renames
// produce for a single logical change.
const debounceDelay = 200 * time.Millisecond

// Watch reports changes to notePath on the returned channel, one
// (debounced) tick per burst. The directory is watched rather than the
// file itself so atomic tmp+rename replacement keeps being seen. Stops
// when stop is closed.
func Watch(notePath string, logger *slog.Logger, stop <-chan struct{}) (<-chan struct{}, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(notePath)); err != nil {
		fw.Close()
		return nil, err
	}

	changes := make(chan struct{}, 1)

	go func() {
		defer fw.Close()

		var debounceTimer *time.Timer
		var mu sync.Mutex
		var closed bool

		defer func() {
			mu.Lock()
			closed = true
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			mu.Unlock()
			close(changes)
		}()

		for {
			select {
			case <-stop:
				return

			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if event.Name != notePath {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				mu.Lock()
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, func() {
					mu.Lock()
					defer mu.Unlock()
					if closed {
						return
					}
					select {
					case changes <- struct{}{}:
					default:
					}
				})
				mu.Unlock()

			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("note watcher error", "error", err)
			}
		}
	}()

	return changes, nil
}
