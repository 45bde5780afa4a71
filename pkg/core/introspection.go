package core

import (
	"sort"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	SchemaAttrs     []string `json:"schema_attrs"`
	SyncerType      string   `json:"syncer_type"`
	EventBufferSize int      `json:"event_buffer_size"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	syncerType := "nop"
	if s.syncer != nil {
		syncerType = "syncer"
		if comp, ok := s.syncer.(introspection.Component); ok {
			syncerType = comp.ComponentType()
		}
	}

	names := make([]string, 0, len(s.schema))
	for name := range s.schema {
		names = append(names, name)
	}
	sort.Strings(names)

	return StoreState{
		SchemaAttrs:     names,
		SyncerType:      syncerType,
		EventBufferSize: s.eventBuffer,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
