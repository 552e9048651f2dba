package overlay

import (
	"errors"
	"fmt"

	"github.com/plugworks/repofs/pkg/repo"
)

// ReadOnly is an ordered first-match read view over a set of layers with no
// writable layer at all. It still satisfies repo.RWAccess so it can stand in
// where a read-write access is expected; SupportsWrite reports false and all
// write operations fail with repo.ErrReadOnly.
type ReadOnly struct {
	basePath string
	source   Layers
}

// NewReadOnly creates a read-only overlay over source, scoped by basePath.
func NewReadOnly(basePath string, source Layers) *ReadOnly {
	return &ReadOnly{basePath: basePath, source: source}
}

func (o *ReadOnly) FileExists(p string) bool {
	scoped := joinBase(o.basePath, p)
	for _, layer := range o.source.Layers() {
		if layer.FileExists(scoped) {
			return true
		}
	}
	return false
}

func (o *ReadOnly) ReadFile(p string) ([]byte, error) {
	scoped := joinBase(o.basePath, p)
	for _, layer := range o.source.Layers() {
		data, err := layer.ReadFile(scoped)
		if err == nil {
			return data, nil
		}
		// Only absence moves on to the next layer; an escaping path or a
		// failing read is the caller's answer, not something a later layer
		// gets to override.
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s: %w", p, repo.ErrNotFound)
}

func (o *ReadOnly) ListFiles(p string) ([]string, error) {
	scoped := joinBase(o.basePath, p)

	var merged []string
	seen := make(map[string]bool)
	found := false

	for _, layer := range o.source.Layers() {
		names, err := layer.ListFiles(scoped)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			continue
		case err != nil:
			return nil, err
		}
		found = true
		merged = mergeNames(merged, seen, names)
	}

	if !found {
		return nil, fmt.Errorf("%s: %w", p, repo.ErrNotFound)
	}

	return merged, nil
}

func (o *ReadOnly) SaveFile(p string, _ []byte) error {
	return fmt.Errorf("%s: %w", p, repo.ErrReadOnly)
}

func (o *ReadOnly) DeleteFile(p string) error {
	return fmt.Errorf("%s: %w", p, repo.ErrReadOnly)
}

func (o *ReadOnly) SupportsWrite() bool {
	return false
}
