package fs

import (
	"github.com/aretw0/introspection"
)

// SyncerState exposes internal state for observability.
type SyncerState struct {
	Root          string   `json:"root"`
	Format        string   `json:"format"`
	Serializers   []string `json:"serializers"`
	WatcherActive bool     `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Syncer) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	serializers := make([]string, 0, len(s.serializers))
	for ext := range s.serializers {
		serializers = append(serializers, ext)
	}

	return SyncerState{
		Root:          s.Root,
		Format:        s.ext,
		Serializers:   serializers,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Syncer) ComponentType() string {
	return "fs-syncer"
}

var _ introspection.Introspectable = (*Syncer)(nil)
var _ introspection.Component = (*Syncer)(nil)
