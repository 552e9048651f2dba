// Package repo defines the access contracts that the rest of repofs is built
// on. A provider gives read access (and optionally write access) to a tree of
// content addressed by slash separated relative paths. Providers are backed by
// a filesystem directory, a bundle of assets shipped with a plugin, or an
// overlay composing several of these.
package repo

// Namespace identifies a top-level storage category. Each namespace maps to a
// directory under the configured volume root.
type Namespace string

const (
	// NamespaceSystem holds per-plugin system storage, one directory per
	// plugin id under <volume>/system.
	NamespaceSystem Namespace = "system"

	// NamespaceRepository holds the plugin repository storage, a single
	// area shared by all plugins under <volume>/repos.
	NamespaceRepository Namespace = "repos"

	// NamespaceUserContent holds per-deployment user content under
	// <volume>/users.
	NamespaceUserContent Namespace = "users"
)

// ReadAccess is the read capability over a content tree. Paths are relative
// to the provider's root; implementations must reject paths that escape it.
type ReadAccess interface {
	// FileExists reports whether a file or directory exists at path.
	FileExists(path string) bool

	// ReadFile returns the contents of the file at path. Returns an error
	// wrapping ErrNotFound if there is no file at path.
	ReadFile(path string) ([]byte, error)

	// ListFiles returns the names of the entries in the directory at path.
	// Returns an error wrapping ErrNotFound if the directory doesn't exist.
	ListFiles(path string) ([]string, error)
}

// RWAccess extends ReadAccess with write operations. Not every RWAccess can
// actually persist writes; callers that need durable storage should check
// SupportsWrite rather than assume it.
type RWAccess interface {
	ReadAccess

	// SaveFile writes data to the file at path, creating parent directories
	// as needed. An existing file is overwritten.
	SaveFile(path string, data []byte) error

	// DeleteFile removes the file at path. Returns an error wrapping
	// ErrNotFound if there is nothing to delete.
	DeleteFile(path string) error

	// SupportsWrite reports whether writes through this access reach real,
	// writable storage. Read-only wrappers return false and fail all write
	// operations with ErrReadOnly.
	SupportsWrite() bool
}

// UserContentAccess is the read-write capability handed out for the user
// content namespace. It is registered dynamically by the host.
type UserContentAccess interface {
	RWAccess
}
