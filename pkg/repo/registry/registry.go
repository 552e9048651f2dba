// Package registry tracks the dynamically registered access providers: the
// per-plugin ordered lists of read-only providers and the single user content
// read-write slot. The host's plugin discovery mechanism feeds it as plugins
// come and go; the content access factory reads it when building overlays.
package registry

import (
	"fmt"
	"sync"

	"github.com/apex/log"

	"github.com/plugworks/repofs/pkg/repo"
	"github.com/plugworks/repofs/pkg/repo/overlay"
	"github.com/plugworks/repofs/pkg/repodb/model"
	"github.com/plugworks/repofs/pkg/repodb/stor"
)

// Registration is the typed record a discovery mechanism hands the registry.
// Registrations with an empty PluginID are ignored.
type Registration struct {
	PluginID string
	Provider repo.ReadAccess
}

// ProviderRegistry owns the shared mutable registration state. All methods
// are safe for concurrent use; the mutex is held only for the duration of a
// list mutation or a snapshot read, never across provider calls.
//
// Provider lists keep insertion order, which is the fallback priority order
// for overlays. Removal matches by identity and must not disturb the relative
// order of the remaining entries.
type ProviderRegistry struct {
	mu           sync.Mutex
	pluginAccess map[string][]repo.ReadAccess
	userLayers   []repo.ReadAccess
	userContent  repo.UserContentAccess
	events       stor.RegistrationEventStor
}

// NewProviderRegistry creates an empty registry. events may be nil to run
// without a registration journal; journal failures are logged and never fail
// the registration itself.
func NewProviderRegistry(events stor.RegistrationEventStor) *ProviderRegistry {
	return &ProviderRegistry{
		pluginAccess: make(map[string][]repo.ReadAccess),
		events:       events,
	}
}

// Register adds the registration's provider to its plugin's list.
func (r *ProviderRegistry) Register(reg Registration) {
	if reg.PluginID == "" || reg.Provider == nil {
		return
	}
	r.AddPluginSystemAccess(reg.PluginID, reg.Provider)
}

// Unregister removes the registration's provider from its plugin's list.
func (r *ProviderRegistry) Unregister(reg Registration) {
	if reg.PluginID == "" || reg.Provider == nil {
		return
	}
	r.RemovePluginSystemAccess(reg.PluginID, reg.Provider)
}

// AddPluginSystemAccess appends readAccess to pluginID's provider list.
func (r *ProviderRegistry) AddPluginSystemAccess(pluginID string, readAccess repo.ReadAccess) {
	r.mu.Lock()
	r.pluginAccess[pluginID] = append(r.pluginAccess[pluginID], readAccess)
	r.mu.Unlock()

	r.journal(pluginID, model.ActionRegistered, readAccess)
}

// RemovePluginSystemAccess removes readAccess from pluginID's provider list
// by identity. Removing a provider that isn't present is a no-op.
func (r *ProviderRegistry) RemovePluginSystemAccess(pluginID string, readAccess repo.ReadAccess) {
	r.mu.Lock()
	accessList, ok := r.pluginAccess[pluginID]
	removed := false
	if ok {
		for i, entry := range accessList {
			if entry == readAccess {
				r.pluginAccess[pluginID] = append(accessList[:i], accessList[i+1:]...)
				removed = true
				break
			}
		}
	}
	r.mu.Unlock()

	if removed {
		r.journal(pluginID, model.ActionUnregistered, readAccess)
	}
}

// AddUserContentReadAccess appends a read-only fallback for the user content
// namespace.
func (r *ProviderRegistry) AddUserContentReadAccess(readAccess repo.ReadAccess) {
	r.mu.Lock()
	r.userLayers = append(r.userLayers, readAccess)
	r.mu.Unlock()

	r.journal("", model.ActionRegistered, readAccess)
}

// RemoveUserContentReadAccess removes a user content fallback by identity.
func (r *ProviderRegistry) RemoveUserContentReadAccess(readAccess repo.ReadAccess) {
	r.mu.Lock()
	removed := false
	for i, entry := range r.userLayers {
		if entry == readAccess {
			r.userLayers = append(r.userLayers[:i], r.userLayers[i+1:]...)
			removed = true
			break
		}
	}
	r.mu.Unlock()

	if removed {
		r.journal("", model.ActionUnregistered, readAccess)
	}
}

// SetUserContentAccess sets the single user content read-write slot,
// replacing any previously registered access.
func (r *ProviderRegistry) SetUserContentAccess(userContent repo.UserContentAccess) {
	r.mu.Lock()
	r.userContent = userContent
	r.mu.Unlock()

	r.journal("", model.ActionRegistered, userContent)
}

// RemoveUserContentAccess clears the user content slot only when userContent
// is the currently registered access. Clearing unconditionally would let a
// stale unregistration wipe out a newer registration.
func (r *ProviderRegistry) RemoveUserContentAccess(userContent repo.UserContentAccess) {
	r.mu.Lock()
	removed := false
	if r.userContent == userContent {
		r.userContent = nil
		removed = true
	}
	r.mu.Unlock()

	if removed {
		r.journal("", model.ActionUnregistered, userContent)
	}
}

// UserContentAccess returns the registered user content access, or nil.
func (r *ProviderRegistry) UserContentAccess() repo.UserContentAccess {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.userContent
}

// PluginLayers returns a live view of pluginID's provider list. Each call to
// Layers snapshots the list under the registry lock, so overlays built from
// the view observe later registrations.
func (r *ProviderRegistry) PluginLayers(pluginID string) overlay.Layers {
	return overlay.LayersFunc(func() []repo.ReadAccess {
		r.mu.Lock()
		defer r.mu.Unlock()
		return snapshot(r.pluginAccess[pluginID])
	})
}

// UserLayers returns a live view of the user content fallback list.
func (r *ProviderRegistry) UserLayers() overlay.Layers {
	return overlay.LayersFunc(func() []repo.ReadAccess {
		r.mu.Lock()
		defer r.mu.Unlock()
		return snapshot(r.userLayers)
	})
}

// HasUserLayers reports whether any user content fallbacks are registered.
func (r *ProviderRegistry) HasUserLayers() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.userLayers) != 0
}

// Registrations returns a snapshot of every current plugin registration.
func (r *ProviderRegistry) Registrations() []Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	var regs []Registration
	for pluginID, accessList := range r.pluginAccess {
		for _, entry := range accessList {
			regs = append(regs, Registration{PluginID: pluginID, Provider: entry})
		}
	}
	return regs
}

func (r *ProviderRegistry) journal(pluginID, action string, provider interface{}) {
	if r.events == nil {
		return
	}

	if _, err := r.events.AddEvent(pluginID, action, fmt.Sprintf("%T", provider)); err != nil {
		log.Warnf("Failed to journal %s event for plugin %q: %s", action, pluginID, err)
	}
}

func snapshot(accessList []repo.ReadAccess) []repo.ReadAccess {
	layers := make([]repo.ReadAccess, len(accessList))
	copy(layers, accessList)
	return layers
}
