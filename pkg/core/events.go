package core

// ErrorType classifies recoverable model errors surfaced as error events.
type ErrorType string

const (
	// ErrorParse means a sync response could not be decoded.
	ErrorParse ErrorType = "parse"

	// ErrorValidate means the validation hook rejected a proposed mapping.
	ErrorValidate ErrorType = "validate"
)

// ChangeEvent is the aggregate notification for one coalesced batch of
// attribute writes. Changed holds only the writes that were applied.
type ChangeEvent struct {
	Changed map[string]Change
}

// ErrorEvent is the notification for a recoverable model error.
type ErrorEvent struct {
	Type ErrorType

	// Err is the validation hook's verbatim return or the decode failure.
	Err error

	// Attributes is the rejected mapping (validate errors only).
	Attributes map[string]any

	// Raw is the undecodable payload (parse errors only).
	Raw any
}

type changeSub struct {
	id int
	fn func(ChangeEvent)
}

type errorSub struct {
	id int
	fn func(ErrorEvent)
}

// Emitter dispatches change and error events to registered observers,
// synchronously and in registration order. It is not safe for concurrent
// use; a model is mutated by one logical thread of control.
type Emitter struct {
	nextID  int
	changes []changeSub
	errors  []errorSub
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// OnChange registers an observer for aggregate change events.
// The returned function removes the subscription.
func (e *Emitter) OnChange(fn func(ChangeEvent)) (unsubscribe func()) {
	e.nextID++
	id := e.nextID
	e.changes = append(e.changes, changeSub{id: id, fn: fn})
	return func() {
		for i, s := range e.changes {
			if s.id == id {
				e.changes = append(e.changes[:i], e.changes[i+1:]...)
				return
			}
		}
	}
}

// OnError registers an observer for error events.
// The returned function removes the subscription.
func (e *Emitter) OnError(fn func(ErrorEvent)) (unsubscribe func()) {
	e.nextID++
	id := e.nextID
	e.errors = append(e.errors, errorSub{id: id, fn: fn})
	return func() {
		for i, s := range e.errors {
			if s.id == id {
				e.errors = append(e.errors[:i], e.errors[i+1:]...)
				return
			}
		}
	}
}

// EmitChange invokes every change observer before returning.
func (e *Emitter) EmitChange(ev ChangeEvent) {
	for _, s := range append([]changeSub(nil), e.changes...) {
		s.fn(ev)
	}
}

// EmitError invokes every error observer before returning.
func (e *Emitter) EmitError(ev ErrorEvent) {
	for _, s := range append([]errorSub(nil), e.errors...) {
		s.fn(ev)
	}
}
