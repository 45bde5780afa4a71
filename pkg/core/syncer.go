package core

import "context"

// SyncAction identifies a persistence operation.
type SyncAction string

const (
	SyncCreate SyncAction = "create"
	SyncUpdate SyncAction = "update"
	SyncDelete SyncAction = "delete"
	SyncGet    SyncAction = "get"
)

// SyncRequest carries everything a syncer needs to act on a model.
type SyncRequest struct {
	// ID is the persistence-layer identifier; empty for unsaved models.
	ID string

	// URL is the model's resource locator, empty unless overridden.
	URL string

	// Attributes is the full attribute mapping at the time of the call.
	Attributes map[string]any
}

// Syncer is the persistence extension point. Implementations interpret the
// action and return an encoded response (or nil when there is nothing to
// report); a non-nil response is run through the model's parse path and
// applied.
//
// Adhering to this interface keeps the model independent of the storage
// mechanism (filesystem, SQL, HTTP, ...).
type Syncer interface {
	Sync(ctx context.Context, action SyncAction, req SyncRequest) ([]byte, error)
}

// Lister is implemented by syncers that can enumerate stored model ids.
type Lister interface {
	// List returns ids matching the glob pattern ("" matches everything).
	List(ctx context.Context, pattern string) ([]string, error)
}

// Watchable is implemented by syncers that can observe external changes to
// the backing store.
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan StoreEvent, error)
}

// NopSyncer is the default persistence stub. Every action succeeds without
// doing anything and without producing a response.
type NopSyncer struct{}

// Sync implements Syncer.
func (NopSyncer) Sync(ctx context.Context, action SyncAction, req SyncRequest) ([]byte, error) {
	return nil, nil
}
