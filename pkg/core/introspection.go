package core

import (
	"fmt"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Key         string `json:"key"`
	BackendType string `json:"backend_type"`
	IDGenerator string `json:"id_generator"`
	Notifying   bool   `json:"notifying"`
	Writes      int    `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	backendType := "unknown"
	if s.settings != nil {
		backendType = "settings"
		if comp, ok := s.settings.(introspection.Component); ok {
			backendType = comp.ComponentType()
		}
	}

	return StoreState{
		Key:         s.key,
		BackendType: backendType,
		IDGenerator: fmt.Sprintf("%T", s.ids),
		Notifying:   s.notifier != nil,
		Writes:      s.writes,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
