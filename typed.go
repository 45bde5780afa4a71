package yui3

import (
	"github.com/xmzhu2/yui3/pkg/core"
	"github.com/xmzhu2/yui3/pkg/typed"
)

// Record wraps a core.Model with typed access to its attributes.
// It is the generic equivalent of Model.
type Record[T any] = typed.Record[T]

// TypedStore wraps a Store to create and load typed records.
type TypedStore[T any] = typed.Store[T]

// Wrap creates a typed view of an existing model.
// T is the struct type mapped onto the model's attributes via JSON tags.
func Wrap[T any](m *core.Model) *Record[T] {
	return typed.Wrap[T](m)
}

// NewTyped creates a typed view of a model store.
func NewTyped[T any](store *core.Store) *TypedStore[T] {
	return typed.NewStore[T](store)
}
