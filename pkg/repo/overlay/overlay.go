// Package overlay composes access providers into layered views. Reads fall
// back through layers in registration order and return the first hit; writes,
// where supported at all, only ever reach the single writable layer. This
// lets a plugin ship read-only default assets while a deployment shadows
// individual files with its own copies.
package overlay

import (
	"path"
	"strings"

	"github.com/plugworks/repofs/pkg/repo"
)

// Layers is a live source of ordered read-only access providers. Overlays
// hold a Layers rather than a slice so that providers registered or removed
// after the overlay was created are still honored.
type Layers interface {
	Layers() []repo.ReadAccess
}

// LayersFunc adapts a function to the Layers interface.
type LayersFunc func() []repo.ReadAccess

func (f LayersFunc) Layers() []repo.ReadAccess { return f() }

// FixedLayers adapts a fixed provider list to the Layers interface.
func FixedLayers(layers ...repo.ReadAccess) Layers {
	snapshot := make([]repo.ReadAccess, len(layers))
	copy(snapshot, layers)
	return LayersFunc(func() []repo.ReadAccess { return snapshot })
}

// joinBase scopes an operation path by the overlay's base path before it is
// handed to a layer. Layers run their own escape checks on the result.
func joinBase(basePath, p string) string {
	if basePath == "" {
		return p
	}
	return path.Join(strings.TrimPrefix(basePath, "/"), strings.TrimPrefix(p, "/"))
}

// mergeNames appends the entries of names not already present in merged.
// Earlier layers win, so the first occurrence of a name is the one kept.
func mergeNames(merged []string, seen map[string]bool, names []string) []string {
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		merged = append(merged, name)
	}
	return merged
}
