// Package fsaccess implements read-write access backed by a filesystem
// directory. The filesystem itself is pluggable (afero.Fs) so the same
// accessor works against the OS filesystem in production and an in-memory
// filesystem in tests.
package fsaccess

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/plugworks/repofs/pkg/repo"
)

// FSAccess provides read-write access rooted at storagePath, optionally
// further scoped by a caller supplied relative basePath. Every operation
// resolves its path against storagePath and rejects paths that would escape
// it with repo.ErrAccessDenied.
type FSAccess struct {
	fs          afero.Fs
	storagePath string
	basePath    string
}

// NewFSAccess creates an FSAccess rooted at storagePath on fs. basePath may
// be empty; when set, all operation paths are resolved relative to it.
func NewFSAccess(fs afero.Fs, storagePath, basePath string) *FSAccess {
	return &FSAccess{
		fs:          fs,
		storagePath: storagePath,
		basePath:    basePath,
	}
}

func (a *FSAccess) FileExists(p string) bool {
	fullPath, err := a.resolve(p)
	if err != nil {
		return false
	}

	exists, err := afero.Exists(a.fs, fullPath)
	return err == nil && exists
}

func (a *FSAccess) ReadFile(p string) ([]byte, error) {
	fullPath, err := a.resolve(p)
	if err != nil {
		return nil, err
	}

	finfo, err := a.fs.Stat(fullPath)
	if err != nil || finfo.IsDir() {
		return nil, fmt.Errorf("%s: %w", p, repo.ErrNotFound)
	}

	data, err := afero.ReadFile(a.fs, fullPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}

	return data, nil
}

func (a *FSAccess) ListFiles(p string) ([]string, error) {
	fullPath, err := a.resolve(p)
	if err != nil {
		return nil, err
	}

	finfo, err := a.fs.Stat(fullPath)
	if err != nil || !finfo.IsDir() {
		return nil, fmt.Errorf("%s: %w", p, repo.ErrNotFound)
	}

	entries, err := afero.ReadDir(a.fs, fullPath)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", p, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}

func (a *FSAccess) SaveFile(p string, data []byte) error {
	fullPath, err := a.resolve(p)
	if err != nil {
		return err
	}

	if err := a.fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("save %s: %w", p, err)
	}

	// No atomic rename dance here. A write that fails midway can leave a
	// partial file, matching the storage guarantees callers already have.
	if err := afero.WriteFile(a.fs, fullPath, data, 0644); err != nil {
		return fmt.Errorf("save %s: %w", p, err)
	}

	return nil
}

func (a *FSAccess) DeleteFile(p string) error {
	fullPath, err := a.resolve(p)
	if err != nil {
		return err
	}

	if exists, err := afero.Exists(a.fs, fullPath); err != nil || !exists {
		return fmt.Errorf("%s: %w", p, repo.ErrNotFound)
	}

	if err := a.fs.Remove(fullPath); err != nil {
		return fmt.Errorf("delete %s: %w", p, err)
	}

	return nil
}

func (a *FSAccess) SupportsWrite() bool {
	return true
}

// resolve maps an operation path to a path on the underlying filesystem,
// scoped by basePath and rooted at storagePath. Paths whose ".." segments
// would climb out of storagePath fail with repo.ErrAccessDenied.
func (a *FSAccess) resolve(p string) (string, error) {
	rel := path.Join(strings.TrimPrefix(a.basePath, "/"), strings.TrimPrefix(p, "/"))
	rel = path.Clean(rel)

	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s: %w", p, repo.ErrAccessDenied)
	}

	return filepath.Join(a.storagePath, filepath.FromSlash(rel)), nil
}
