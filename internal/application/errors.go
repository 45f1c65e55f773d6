package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrWriteFailed        = errors.New("write failed")
	ErrWindowManager      = errors.New("window manager error")
)

// StorageError represents a failure of the durable note store
type StorageError struct {
	Op     string // "load" or "save"
	Path   string
	Reason error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Reason)
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

func (e *StorageError) Unwrap() error {
	return e.Reason
}

// WindowError represents a refused window-manager operation
type WindowError struct {
	Op     string
	Reason error
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("window %s: %v", e.Op, e.Reason)
}

func (e *WindowError) Is(target error) bool {
	return target == ErrWindowManager
}

func (e *WindowError) Unwrap() error {
	return e.Reason
}
