package repo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a file or directory doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied is returned when a path resolves outside of the
	// storage root it is scoped to.
	ErrAccessDenied = errors.New("access denied")

	// ErrReadOnly is returned by write operations on read-only accesses.
	ErrReadOnly = errors.New("write not supported")
)

// ConfigurationError means a storage root could not be set up, for example
// because a regular file already exists where a directory is needed. It is
// fatal to the construction of the accessor that hit it.
type ConfigurationError struct {
	Path   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("storage configuration error for %q: %s", e.Path, e.Reason)
}
