package typed

import (
	"context"

	"github.com/xmzhu2/yui3/pkg/core"
)

// Store wraps a core.Store to create and load typed records.
type Store[T any] struct {
	store *core.Store
}

// NewStore creates a typed view of a model store.
func NewStore[T any](store *core.Store) *Store[T] {
	return &Store[T]{store: store}
}

// New creates a fresh record populated from data. The write goes through
// the validated set path; rejection is reported as core.ErrValidation.
func (s *Store[T]) New(data T) (*Record[T], error) {
	r := Wrap[T](s.store.NewModel())
	if err := r.SetData(data); err != nil {
		return nil, err
	}
	return r, nil
}

// Load fetches a stored record by id.
func (s *Store[T]) Load(ctx context.Context, id string) (*Record[T], error) {
	m, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return Wrap[T](m), nil
}

// Save persists a record through the store.
func (s *Store[T]) Save(ctx context.Context, r *Record[T]) error {
	return s.store.Save(ctx, r.Model)
}

// Delete removes a record from the store.
func (s *Store[T]) Delete(ctx context.Context, r *Record[T]) error {
	return s.store.Delete(ctx, r.Model)
}

// List returns stored ids matching the glob pattern.
func (s *Store[T]) List(ctx context.Context, pattern string) ([]string, error) {
	return s.store.List(ctx, pattern)
}

// Watch observes external changes in the backing store.
func (s *Store[T]) Watch(ctx context.Context, pattern string) (<-chan core.StoreEvent, error) {
	return s.store.Watch(ctx, pattern)
}
