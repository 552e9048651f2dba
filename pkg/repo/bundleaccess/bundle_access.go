// Package bundleaccess implements read-only access over an io/fs.FS. It is
// how a plugin exposes the default assets compiled into its binary (embed.FS)
// or unpacked from its distribution archive as a registerable provider.
package bundleaccess

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/plugworks/repofs/pkg/repo"
)

// BundleAccess is a repo.ReadAccess over an fs.FS, optionally scoped by a
// base path inside the bundle.
type BundleAccess struct {
	fsys     fs.FS
	basePath string
}

// NewBundleAccess creates read-only access over fsys. basePath may be empty.
func NewBundleAccess(fsys fs.FS, basePath string) *BundleAccess {
	return &BundleAccess{fsys: fsys, basePath: basePath}
}

func (a *BundleAccess) FileExists(p string) bool {
	name, err := a.resolve(p)
	if err != nil {
		return false
	}

	_, err = fs.Stat(a.fsys, name)
	return err == nil
}

func (a *BundleAccess) ReadFile(p string) ([]byte, error) {
	name, err := a.resolve(p)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(a.fsys, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%s: %w", p, repo.ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", p, err)
	}

	return data, nil
}

func (a *BundleAccess) ListFiles(p string) ([]string, error) {
	name, err := a.resolve(p)
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(a.fsys, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%s: %w", p, repo.ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("list %s: %w", p, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}

// resolve maps an operation path to an io/fs name, which is always relative
// with no leading slash. Escaping paths fail with repo.ErrAccessDenied.
func (a *BundleAccess) resolve(p string) (string, error) {
	name := path.Join(strings.TrimPrefix(a.basePath, "/"), strings.TrimPrefix(p, "/"))
	name = path.Clean(name)

	if name == ".." || strings.HasPrefix(name, "../") {
		return "", fmt.Errorf("%s: %w", p, repo.ErrAccessDenied)
	}

	if !fs.ValidPath(name) {
		return "", fmt.Errorf("%s: %w", p, repo.ErrAccessDenied)
	}

	return name, nil
}
