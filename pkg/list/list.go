// Package list provides an ordered model collection. The list owns the
// membership relation: adding a model sets its back-reference slot and
// re-emits the model's change and error events at the list level; removing
// it clears both.
package list

import (
	"github.com/xmzhu2/yui3/pkg/core"
)

// ChangeHandler observes a member model's aggregate change event.
type ChangeHandler func(m *core.Model, ev core.ChangeEvent)

// ErrorHandler observes a member model's error event.
type ErrorHandler func(m *core.Model, ev core.ErrorEvent)

type memberSubs struct {
	change func()
	err    func()
}

// List is an ordered collection of models indexed by client ID.
// Like the models it holds, a list is mutated by one logical thread of
// control.
type List struct {
	items   []*core.Model
	byCID   map[string]*core.Model
	subs    map[string]memberSubs
	changes []ChangeHandler
	errors  []ErrorHandler
}

// New creates an empty list.
func New() *List {
	return &List{
		byCID: make(map[string]*core.Model),
		subs:  make(map[string]memberSubs),
	}
}

// Add appends a model, sets its back-reference, and starts bubbling its
// events. Adding a model that is already a member is a no-op and reports
// false.
func (l *List) Add(m *core.Model) bool {
	if _, ok := l.byCID[m.ClientID()]; ok {
		return false
	}
	l.items = append(l.items, m)
	l.byCID[m.ClientID()] = m
	m.List = l

	l.subs[m.ClientID()] = memberSubs{
		change: m.OnChange(func(ev core.ChangeEvent) {
			for _, h := range l.changes {
				h(m, ev)
			}
		}),
		err: m.OnError(func(ev core.ErrorEvent) {
			for _, h := range l.errors {
				h(m, ev)
			}
		}),
	}
	return true
}

// Remove detaches a model: clears the back-reference, stops bubbling, and
// drops it from the order. Reports false for non-members.
func (l *List) Remove(m *core.Model) bool {
	if _, ok := l.byCID[m.ClientID()]; !ok {
		return false
	}
	delete(l.byCID, m.ClientID())
	if subs, ok := l.subs[m.ClientID()]; ok {
		subs.change()
		subs.err()
		delete(l.subs, m.ClientID())
	}
	for i, item := range l.items {
		if item == m {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
	m.List = nil
	return true
}

// Len returns the number of members.
func (l *List) Len() int { return len(l.items) }

// Item returns the member at position i, nil when out of range.
func (l *List) Item(i int) *core.Model {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// ByClientID looks a member up by its process-local identifier.
func (l *List) ByClientID(clientID string) *core.Model {
	return l.byCID[clientID]
}

// ByID looks a member up by its persistence-layer identifier. New models
// (empty id) are never matched.
func (l *List) ByID(id string) *core.Model {
	if id == "" {
		return nil
	}
	for _, m := range l.items {
		if m.ID() == id {
			return m
		}
	}
	return nil
}

// Each invokes fn for every member in order.
func (l *List) Each(fn func(m *core.Model)) {
	for _, m := range l.items {
		fn(m)
	}
}

// OnChange registers a handler for bubbled member change events.
func (l *List) OnChange(h ChangeHandler) {
	l.changes = append(l.changes, h)
}

// OnError registers a handler for bubbled member error events.
func (l *List) OnError(h ErrorHandler) {
	l.errors = append(l.errors, h)
}

// ToJSON returns each member's attribute mapping, in order.
func (l *List) ToJSON() []map[string]any {
	out := make([]map[string]any, len(l.items))
	for i, m := range l.items {
		out[i] = m.ToJSON()
	}
	return out
}
