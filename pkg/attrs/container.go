// Package attrs provides the default attribute container: a map-backed,
// schema-initialized store that notifies subscribers of applied writes
// synchronously. It is the standard collaborator behind core.Model.
package attrs

import (
	"sort"

	"github.com/xmzhu2/yui3/pkg/core"
)

type subscription struct {
	id int
	fn core.ChangeHandler
}

// Container implements core.Container.
//
// Declared attributes get their initial value from the schema (Generator
// over Default); undeclared names may still be written and are added
// dynamically, with the zero spec. Like the model it backs, a container is
// mutated by one logical thread of control and is not safe for concurrent
// use.
type Container struct {
	schema core.Schema
	values map[string]any
	subs   []subscription
	nextID int
}

// New builds a container and assigns every declared attribute its initial
// value. The schema is copied; later mutation of the argument has no effect.
func New(schema core.Schema) *Container {
	c := &Container{
		schema: make(core.Schema, len(schema)),
		values: make(map[string]any, len(schema)),
	}
	for name, spec := range schema {
		c.schema[name] = spec
		if spec.Generator != nil {
			c.values[name] = spec.Generator()
		} else {
			c.values[name] = spec.Default
		}
	}
	return c
}

// Get returns the current value of an attribute and whether it is set.
func (c *Container) Get(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Set assigns an attribute. Read-only attributes and setter rejections
// cancel the write; subscribers are notified only of applied writes, before
// Set returns.
func (c *Container) Set(name string, value any, opts core.SetOptions) core.ChangeOutcome {
	spec := c.schema[name]

	if spec.ReadOnly {
		return core.ChangeOutcome{
			Attr:      name,
			NewVal:    value,
			PrevVal:   c.values[name],
			Src:       opts.Src,
			Cancelled: true,
			Reason:    core.ErrReadOnly,
		}
	}

	if spec.Setter != nil {
		transformed, err := spec.Setter(value)
		if err != nil {
			return core.ChangeOutcome{
				Attr:      name,
				NewVal:    value,
				PrevVal:   c.values[name],
				Src:       opts.Src,
				Cancelled: true,
				Reason:    err,
			}
		}
		value = transformed
	}

	prev := c.values[name]
	c.values[name] = value

	out := core.ChangeOutcome{
		Attr:    name,
		NewVal:  value,
		PrevVal: prev,
		Src:     opts.Src,
	}
	for _, s := range append([]subscription(nil), c.subs...) {
		s.fn(out)
	}
	return out
}

// Subscribe registers a handler for applied writes.
// The returned function removes the subscription.
func (c *Container) Subscribe(h core.ChangeHandler) (unsubscribe func()) {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscription{id: id, fn: h})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Values returns a shallow copy of the full attribute mapping.
func (c *Container) Values() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Names returns the set attribute names in sorted order.
func (c *Container) Names() []string {
	names := make([]string, 0, len(c.values))
	for name := range c.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ core.Container = (*Container)(nil)
