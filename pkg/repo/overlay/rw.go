package overlay

import (
	"errors"
	"fmt"

	"github.com/plugworks/repofs/pkg/repo"
)

// RW overlays one writable primary access with ordered read-only fallback
// layers. Reads try the primary first and then each fallback in registration
// order. Writes and deletes go exclusively to the primary; a fallback holding
// a file at the same path never shadows a write.
type RW struct {
	basePath  string
	primary   repo.RWAccess
	fallbacks Layers
}

// NewRW creates a read-write overlay of primary and fallbacks, scoped by
// basePath.
func NewRW(basePath string, primary repo.RWAccess, fallbacks Layers) *RW {
	return &RW{basePath: basePath, primary: primary, fallbacks: fallbacks}
}

func (o *RW) FileExists(p string) bool {
	scoped := joinBase(o.basePath, p)
	if o.primary.FileExists(scoped) {
		return true
	}
	for _, layer := range o.fallbacks.Layers() {
		if layer.FileExists(scoped) {
			return true
		}
	}
	return false
}

func (o *RW) ReadFile(p string) ([]byte, error) {
	scoped := joinBase(o.basePath, p)

	data, err := o.primary.ReadFile(scoped)
	if err == nil || !errors.Is(err, repo.ErrNotFound) {
		// An escaping path fails here with repo.ErrAccessDenied; fallbacks
		// never get a say.
		return data, err
	}

	for _, layer := range o.fallbacks.Layers() {
		data, err := layer.ReadFile(scoped)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s: %w", p, repo.ErrNotFound)
}

func (o *RW) ListFiles(p string) ([]string, error) {
	scoped := joinBase(o.basePath, p)

	var merged []string
	seen := make(map[string]bool)
	found := false

	names, err := o.primary.ListFiles(scoped)
	switch {
	case err == nil:
		found = true
		merged = mergeNames(merged, seen, names)
	case !errors.Is(err, repo.ErrNotFound):
		return nil, err
	}

	for _, layer := range o.fallbacks.Layers() {
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

func (o *RW) SaveFile(p string, data []byte) error {
	return o.primary.SaveFile(joinBase(o.basePath, p), data)
}

func (o *RW) DeleteFile(p string) error {
	return o.primary.DeleteFile(joinBase(o.basePath, p))
}

func (o *RW) SupportsWrite() bool {
	return o.primary.SupportsWrite()
}
