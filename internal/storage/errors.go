package storage

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by New when the backend URL or key
// pair is missing from the environment.
var ErrNotConfigured = errors.New("storage credentials not configured")

// ErrFileNotFound is returned by Upload when the local source file
// does not exist. The check runs before any network call.
var ErrFileNotFound = errors.New("local file not found")

// StorageError wraps a backend failure with the operation and the
// locator it was addressing. The gateway never retries or suppresses
// these; they propagate to whichever collaborator made the call.
type StorageError struct {
	Op      string
	Locator string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Locator, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
