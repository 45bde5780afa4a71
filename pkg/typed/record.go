// Package typed provides a type-safe view over a model: a struct type T is
// mapped to and from the attribute mapping via a JSON round-trip, so field
// tags drive the attribute names.
package typed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xmzhu2/yui3/pkg/core"
)

// Record wraps a core.Model with typed access to its attributes.
type Record[T any] struct {
	Model *core.Model
}

// Wrap creates a typed view of an existing model.
func Wrap[T any](m *core.Model) *Record[T] {
	return &Record[T]{Model: m}
}

// Data converts the current attribute mapping into T.
func (r *Record[T]) Data() (T, error) {
	var data T
	raw, err := json.Marshal(r.Model.ToJSON())
	if err != nil {
		return data, fmt.Errorf("attribute marshal failed: %w", err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("unmarshal to target type failed: %w", err)
	}
	return data, nil
}

// SetData writes T's fields through the model's validated set path.
// Validation rejection is reported as core.ErrValidation; the verbatim
// rejection travels on the model's error event.
func (r *Record[T]) SetData(data T) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal typed data: %w", err)
	}
	var attrs map[string]any
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return fmt.Errorf("failed to convert typed data to map: %w", err)
	}
	if !r.Model.SetAttrs(attrs) {
		return core.ErrValidation
	}
	return nil
}

// Save persists the wrapped model.
func (r *Record[T]) Save(ctx context.Context) error {
	return r.Model.Save(ctx, nil)
}

// Load refreshes the wrapped model.
func (r *Record[T]) Load(ctx context.Context) error {
	return r.Model.Load(ctx)
}
