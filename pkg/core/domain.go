// Model is the central entity of the domain.
package core

import "fmt"

// Change records one attribute transition within a coalesced batch.
type Change struct {
	NewVal  any
	PrevVal any
	Src     string
}

// SetOptions carries metadata for a write through the validated set path.
type SetOptions struct {
	// Src tags the origin of the write (e.g. "undo", "sync") and is carried
	// into every Change record produced by the batch.
	Src string

	// Silent suppresses the aggregate change event. History bookkeeping
	// (changed/lastChange) still happens.
	Silent bool
}

// ChangeOutcome describes the result of a single container write.
type ChangeOutcome struct {
	Attr      string
	NewVal    any
	PrevVal   any
	Src       string
	Cancelled bool
	Reason    error
}

// ChangeHandler observes applied attribute writes on a container.
type ChangeHandler func(ChangeOutcome)

// Container is the contract for typed attribute storage.
// Implementations must notify subscribers synchronously, and only for
// writes that were actually applied (cancelled writes are reported solely
// through the returned ChangeOutcome).
type Container interface {
	// Get returns the current value of an attribute and whether it is set.
	Get(name string) (any, bool)

	// Set assigns an attribute, honoring the declared spec (read-only,
	// setter transformation/rejection), and reports what happened.
	Set(name string, value any, opts SetOptions) ChangeOutcome

	// Subscribe registers a handler for applied writes.
	// The returned function removes the subscription.
	Subscribe(h ChangeHandler) (unsubscribe func())

	// Values returns a shallow copy of the full attribute mapping.
	Values() map[string]any

	// Names returns the set attribute names in sorted order.
	Names() []string
}

// IDGenerator produces process-local client identifiers.
type IDGenerator interface {
	Next() string
}

// StoreEventType represents the type of change observed in a model store.
type StoreEventType string

const (
	StoreCreate StoreEventType = "CREATE"
	StoreModify StoreEventType = "MODIFY"
	StoreDelete StoreEventType = "DELETE"
)

// StoreEvent represents a change in the backing store of a model collection.
type StoreEvent struct {
	Type      StoreEventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String makes StoreEvent usable as a lifecycle event.
func (e StoreEvent) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
