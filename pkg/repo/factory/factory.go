// Package factory is the entry point plugins use to obtain content access
// providers. It resolves namespace storage directories under a configured
// volume root and combines filesystem storage with the registry's dynamically
// registered read-only providers into overlays.
package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/spf13/afero"

	"github.com/plugworks/repofs/pkg/repo"
	"github.com/plugworks/repofs/pkg/repo/fsaccess"
	"github.com/plugworks/repofs/pkg/repo/overlay"
	"github.com/plugworks/repofs/pkg/repo/registry"
)

// ContentAccessFactory builds access providers for the three storage
// namespaces. The filesystem used for namespace storage is pluggable;
// it defaults to the OS filesystem.
type ContentAccessFactory struct {
	volumePath     string
	parentPluginID string
	registry       *registry.ProviderRegistry
	storageFs      afero.Fs
}

// NewContentAccessFactory creates a factory storing namespace content under
// volumePath. An empty volumePath falls back to the process temp directory.
// parentPluginID is the plugin the PluginSystemReader/Writer calls apply to.
func NewContentAccessFactory(volumePath, parentPluginID string, reg *registry.ProviderRegistry) *ContentAccessFactory {
	if volumePath == "" {
		volumePath = os.TempDir()
	}

	return &ContentAccessFactory{
		volumePath:     volumePath,
		parentPluginID: parentPluginID,
		registry:       reg,
		storageFs:      afero.NewOsFs(),
	}
}

// SetStorageFs swaps the filesystem namespace storage lives on. Call before
// handing out accessors; existing accessors keep the filesystem they were
// built with.
func (f *ContentAccessFactory) SetStorageFs(fs afero.Fs) {
	f.storageFs = fs
}

func (f *ContentAccessFactory) StorageFs() afero.Fs {
	return f.storageFs
}

// UserContentAccess returns the access for per-user content. With no
// read-write access registered it returns a read-only view over the
// registered user content layers. With a read-write access and no layers the
// registered access is returned as-is. Otherwise the two are combined into an
// overlay with the read-write access as the writable layer.
func (f *ContentAccessFactory) UserContentAccess(basePath string) repo.UserContentAccess {
	userContent := f.registry.UserContentAccess()

	if userContent == nil {
		log.Infof("RO user content overlay for: %s", basePath)
		return overlay.NewReadOnly(basePath, f.registry.UserLayers())
	}

	if !f.registry.HasUserLayers() {
		return userContent
	}

	log.Infof("RW user content overlay for: %s", basePath)
	return overlay.NewRW(basePath, userContent, f.registry.UserLayers())
}

// PluginRepositoryReader returns read access to the plugin repository
// namespace.
func (f *ContentAccessFactory) PluginRepositoryReader(basePath string) (repo.ReadAccess, error) {
	log.Infof("RW filesystem access for repository: %s", basePath)
	return f.pluginRepositoryAccess(basePath)
}

// PluginRepositoryWriter returns read-write access to the plugin repository
// namespace. Unlike the system namespace, writes here land in a storage area
// shared by all users.
func (f *ContentAccessFactory) PluginRepositoryWriter(basePath string) (repo.RWAccess, error) {
	log.Infof("RW filesystem access for repository: %s", basePath)
	return f.pluginRepositoryAccess(basePath)
}

// PluginSystemReader returns read access to the parent plugin's system
// namespace.
func (f *ContentAccessFactory) PluginSystemReader(basePath string) (repo.ReadAccess, error) {
	return f.OtherPluginSystemReader(f.parentPluginID, basePath)
}

// PluginSystemWriter returns read-write access to the parent plugin's system
// namespace.
func (f *ContentAccessFactory) PluginSystemWriter(basePath string) (repo.RWAccess, error) {
	return f.OtherPluginSystemWriter(f.parentPluginID, basePath)
}

func (f *ContentAccessFactory) OtherPluginSystemReader(pluginID, basePath string) (repo.ReadAccess, error) {
	log.Infof("%s filesystem overlay for <%s>: %s", f.selfOrOther(pluginID), pluginID, basePath)
	return f.pluginSystemOverlay(pluginID, basePath)
}

// OtherPluginSystemWriter returns read-write access to pluginID's system
// namespace. The writable layer is volume storage, not the plugin's bundled
// assets, so writes only last as long as the volume does; check SupportsWrite
// semantics in the repo package before relying on it for durable storage.
func (f *ContentAccessFactory) OtherPluginSystemWriter(pluginID, basePath string) (repo.RWAccess, error) {
	log.Infof("%s filesystem overlay for <%s>: %s", f.selfOrOther(pluginID), pluginID, basePath)
	return f.pluginSystemOverlay(pluginID, basePath)
}

// UserContentStorage builds a filesystem read-write access rooted in the user
// content namespace, suitable for registering as the user content access when
// no external provider supplies one.
func (f *ContentAccessFactory) UserContentStorage(basePath string) (repo.UserContentAccess, error) {
	storagePath, err := f.storagePath(repo.NamespaceUserContent, "")
	if err != nil {
		return nil, err
	}

	return fsaccess.NewFSAccess(f.storageFs, storagePath, basePath), nil
}

func (f *ContentAccessFactory) pluginRepositoryAccess(basePath string) (*fsaccess.FSAccess, error) {
	// A filesystem folder common to all users, not per-plugin.
	storagePath, err := f.storagePath(repo.NamespaceRepository, "")
	if err != nil {
		return nil, err
	}

	return fsaccess.NewFSAccess(f.storageFs, storagePath, basePath), nil
}

func (f *ContentAccessFactory) pluginSystemOverlay(pluginID, basePath string) (*overlay.RW, error) {
	// Combine read-write volume storage with the plugin's registered
	// read-only assets.
	storagePath, err := f.storagePath(repo.NamespaceSystem, pluginID)
	if err != nil {
		return nil, err
	}

	fileSystemWriter := fsaccess.NewFSAccess(f.storageFs, storagePath, "")
	return overlay.NewRW(basePath, fileSystemWriter, f.registry.PluginLayers(pluginID)), nil
}

// storagePath resolves (namespace, id) to a directory under the volume root,
// creating it when absent. Resolution is idempotent; the only hard failure is
// an existing non-directory entry at the target path.
func (f *ContentAccessFactory) storagePath(namespace repo.Namespace, id string) (string, error) {
	storagePath := filepath.Join(f.volumePath, string(namespace))
	if id != "" {
		storagePath = filepath.Join(storagePath, id)
	}

	finfo, err := f.storageFs.Stat(storagePath)
	switch {
	case err == nil && !finfo.IsDir():
		return "", &repo.ConfigurationError{Path: storagePath, Reason: "expected path to be a directory"}
	case err == nil:
		return storagePath, nil
	}

	// Concurrent resolutions racing on creation are fine, MkdirAll treats an
	// existing directory as success.
	if err := f.storageFs.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("create storage path %s: %w", storagePath, err)
	}

	return storagePath, nil
}

func (f *ContentAccessFactory) selfOrOther(pluginID string) string {
	if pluginID == f.parentPluginID {
		return "[SELF]"
	}
	return "[OTHER]"
}
