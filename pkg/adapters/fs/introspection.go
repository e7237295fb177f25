package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// BackendState exposes internal state for observability.
type BackendState struct {
	Path          string     `json:"path"`
	ReadOnly      bool       `json:"read_only"`
	Keys          []string   `json:"keys"`
	Subscriptions int        `json:"subscriptions"`
	WatcherActive bool       `json:"watcher_active"`
	LastReload    *time.Time `json:"last_reload,omitempty"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()

	return BackendState{
		Path:          b.Path,
		ReadOnly:      b.config.ReadOnly,
		Keys:          b.schema.Keys(),
		Subscriptions: b.subs.Len(),
		WatcherActive: b.watcherActive,
		LastReload:    b.lastReload,
	}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)
