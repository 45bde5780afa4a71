package core

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"sort"
	"strings"
	"sync/atomic"
)

// Decoder turns an encoded sync response into an attribute mapping.
type Decoder func(raw []byte) (map[string]any, error)

// JSONDecode is the default response decoder.
func JSONDecode(raw []byte) (map[string]any, error) {
	var attrs map[string]any
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return attrs, nil
}

// defaultClientIDs backs models constructed without an injected generator.
var defaultClientIDs atomic.Uint64

// Model is a mutable, observable attribute record. It wraps a Container
// with validation gating, change coalescing, one-generation undo, and
// serialization helpers, and delegates persistence to a Syncer.
//
// A model is mutated by a single logical thread of control; all event
// dispatch is synchronous.
type Model struct {
	// Validator inspects a proposed attribute mapping before any write.
	// A non-nil return rejects the whole mapping and is passed verbatim
	// as the error event payload. Nil accepts everything.
	Validator func(attrs map[string]any) error

	// URLFunc supplies the resource locator handed to the syncer.
	// Nil means no locator (empty string).
	URLFunc func() string

	// List is a back-reference slot for an owning collection. The model
	// never manages it; collections set and clear it on add/remove.
	List any

	clientID string
	attrs    Container
	events   *Emitter
	syncer   Syncer
	decoder  Decoder

	changed    map[string]any
	lastChange map[string]Change

	// Transient batch state, live only while a coalesced batch settles.
	batchActive bool
	pending     map[string]struct{}
}

// ModelOption configures a model at construction.
type ModelOption func(*Model)

// WithSyncer sets the persistence implementation. Defaults to NopSyncer.
func WithSyncer(s Syncer) ModelOption {
	return func(m *Model) {
		if s != nil {
			m.syncer = s
		}
	}
}

// WithDecoder sets the sync response decoder. Defaults to JSONDecode.
func WithDecoder(d Decoder) ModelOption {
	return func(m *Model) {
		if d != nil {
			m.decoder = d
		}
	}
}

// WithValidator sets the validation hook.
func WithValidator(v func(attrs map[string]any) error) ModelOption {
	return func(m *Model) { m.Validator = v }
}

// WithIDGenerator sets the client-ID generator used at construction.
func WithIDGenerator(g IDGenerator) ModelOption {
	return func(m *Model) {
		if g != nil {
			m.clientID = g.Next()
		}
	}
}

// NewModel creates a model over the given attribute container.
// A client ID is assigned once, here; it is process-local and distinct from
// the persistence-layer "id" attribute.
func NewModel(attrs Container, opts ...ModelOption) *Model {
	m := &Model{
		clientID:   fmt.Sprintf("model_%d", defaultClientIDs.Add(1)),
		attrs:      attrs,
		events:     NewEmitter(),
		syncer:     NopSyncer{},
		decoder:    JSONDecode,
		changed:    make(map[string]any),
		lastChange: make(map[string]Change),
	}
	for _, opt := range opts {
		opt(m)
	}
	attrs.Subscribe(m.onAttrChange)
	return m
}

// ClientID returns the generated process-local identifier.
func (m *Model) ClientID() string { return m.clientID }

// Attrs exposes the underlying container.
func (m *Model) Attrs() Container { return m.attrs }

// OnChange registers an observer for aggregate change events.
func (m *Model) OnChange(fn func(ChangeEvent)) (unsubscribe func()) {
	return m.events.OnChange(fn)
}

// OnError registers an observer for error events.
func (m *Model) OnError(fn func(ErrorEvent)) (unsubscribe func()) {
	return m.events.OnError(fn)
}

// Get reads an attribute value; nil if unset.
func (m *Model) Get(name string) any {
	v, _ := m.attrs.Get(name)
	return v
}

// ID returns the persistence-layer identifier, "" for new models.
func (m *Model) ID() string {
	v, ok := m.attrs.Get("id")
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}

// Set writes a single attribute through the validated path.
func (m *Model) Set(name string, value any) bool {
	return m.SetAttrs(map[string]any{name: value})
}

// SetAttrs writes a mapping of attributes through the validated path.
// It reports false, with no writes, when the validation hook rejects the
// mapping; otherwise every write is attempted and exactly one aggregate
// change event fires (for the non-cancelled subset) before returning.
func (m *Model) SetAttrs(attrs map[string]any) bool {
	return m.SetAttrsWith(attrs, SetOptions{})
}

// SetAttrsWith is SetAttrs with explicit write options.
func (m *Model) SetAttrsWith(attrs map[string]any, opts SetOptions) bool {
	if len(attrs) == 0 {
		return true
	}
	if err := m.runValidator(attrs); err != nil {
		return false
	}

	// Two-phase batch: mark every name pending, apply each write, then
	// settle. The container notifies applied writes synchronously, so the
	// subscription handler records history as the batch runs; cancelled
	// writes still complete the batch but stay out of the payload.
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	m.beginBatch(names)
	for _, name := range names {
		out := m.attrs.Set(name, attrs[name], opts)
		if out.Cancelled {
			delete(m.pending, name)
		}
	}
	m.settleBatch(opts)
	return true
}

// Changed returns a copy of the values written by the latest batch.
func (m *Model) Changed() map[string]any {
	out := make(map[string]any, len(m.changed))
	for k, v := range m.changed {
		out[k] = v
	}
	return out
}

// LastChange returns a copy of the latest batch's change records.
func (m *Model) LastChange() map[string]Change {
	out := make(map[string]Change, len(m.lastChange))
	for k, v := range m.lastChange {
		out[k] = v
	}
	return out
}

// Undo restores the previous values captured by the latest coalesced
// change, one generation only. With no names it restores every recorded
// attribute. No applicable names is a successful no-op.
//
// A successful undo consumes the generation: the reverting writes do not
// become undoable themselves, so a second Undo with no further changes is
// a no-op.
func (m *Model) Undo(names ...string) bool {
	if len(names) == 0 {
		names = make([]string, 0, len(m.lastChange))
		for name := range m.lastChange {
			names = append(names, name)
		}
	}
	attrs := make(map[string]any)
	for _, name := range names {
		if ch, ok := m.lastChange[name]; ok {
			attrs[name] = ch.PrevVal
		}
	}
	if len(attrs) == 0 {
		return true
	}
	if !m.SetAttrsWith(attrs, SetOptions{Src: "undo"}) {
		return false
	}
	m.lastChange = make(map[string]Change)
	return true
}

// IsNew reports whether the model has no persistence-layer identity.
func (m *Model) IsNew() bool {
	return m.ID() == ""
}

// IsModified reports whether the model is new or carries unsaved changes.
func (m *Model) IsModified() bool {
	return m.IsNew() || len(m.changed) > 0
}

// GetAsHTML returns the HTML-escaped string form of an attribute value,
// "" for absent or nil values.
func (m *Model) GetAsHTML(name string) string {
	v, ok := m.attrs.Get(name)
	if !ok || v == nil {
		return ""
	}
	return html.EscapeString(stringify(v))
}

// GetAsURL returns the percent-encoded string form of an attribute value,
// "" for absent or nil values. Component encoding: a space becomes %20,
// not the form-encoded +.
func (m *Model) GetAsURL(name string) string {
	v, ok := m.attrs.Get(name)
	if !ok || v == nil {
		return ""
	}
	return strings.ReplaceAll(url.QueryEscape(stringify(v)), "+", "%20")
}

// ToJSON returns the full current attribute mapping, shallow-copied and
// suitable for serialization.
func (m *Model) ToJSON() map[string]any {
	return m.attrs.Values()
}

// Parse normalizes a sync response into an attribute mapping.
// Strings and byte slices are decoded with the model's decoder; a mapping
// passes through unchanged; any other structured value is converted via a
// JSON round-trip. A nil return means "do not apply" and is always paired
// with a parse error event.
func (m *Model) Parse(response any) map[string]any {
	switch v := response.(type) {
	case nil:
		return nil
	case map[string]any:
		return v
	case []byte:
		return m.decode(v)
	case string:
		return m.decode([]byte(v))
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			m.events.EmitError(ErrorEvent{Type: ErrorParse, Err: err, Raw: response})
			return nil
		}
		return m.decode(raw)
	}
}

// URL returns the model's resource locator, "" unless URLFunc is set.
func (m *Model) URL() string {
	if m.URLFunc == nil {
		return ""
	}
	return m.URLFunc()
}

// Save persists the model through the syncer, using the create action for
// new models and update otherwise. A non-nil attrs mapping is first written
// through the validated set path; rejection aborts with ErrValidation and
// no sync. A non-empty response is parsed and applied, and a successful
// save marks the model unmodified.
func (m *Model) Save(ctx context.Context, attrs map[string]any) error {
	if attrs != nil {
		if !m.SetAttrs(attrs) {
			return ErrValidation
		}
	}
	action := SyncUpdate
	if m.IsNew() {
		action = SyncCreate
	}
	resp, err := m.syncer.Sync(ctx, action, m.syncRequest())
	if err != nil {
		return err
	}
	if err := m.applyResponse(resp); err != nil {
		return err
	}
	m.changed = make(map[string]any)
	return nil
}

// Load refreshes the model from the syncer and marks it unmodified.
func (m *Model) Load(ctx context.Context) error {
	resp, err := m.syncer.Sync(ctx, SyncGet, m.syncRequest())
	if err != nil {
		return err
	}
	if err := m.applyResponse(resp); err != nil {
		return err
	}
	m.changed = make(map[string]any)
	return nil
}

// Delete removes the model's stored state through the syncer. The in-memory
// record is untouched; dropping references is the caller's business.
func (m *Model) Delete(ctx context.Context) error {
	_, err := m.syncer.Sync(ctx, SyncDelete, m.syncRequest())
	return err
}

func (m *Model) syncRequest() SyncRequest {
	return SyncRequest{
		ID:         m.ID(),
		URL:        m.URL(),
		Attributes: m.ToJSON(),
	}
}

func (m *Model) applyResponse(resp []byte) error {
	if len(resp) == 0 {
		return nil
	}
	parsed := m.Parse(resp)
	if parsed == nil {
		return ErrParse
	}
	m.SetAttrsWith(parsed, SetOptions{Src: "sync"})
	return nil
}

func (m *Model) runValidator(attrs map[string]any) error {
	if m.Validator == nil {
		return nil
	}
	err := m.Validator(attrs)
	if err != nil {
		m.events.EmitError(ErrorEvent{Type: ErrorValidate, Err: err, Attributes: attrs})
	}
	return err
}

func (m *Model) decode(raw []byte) map[string]any {
	if m.decoder == nil {
		// Missing decoder is a configuration fault, not a per-call error.
		// Surface the recoverable event for symmetry, then fail loudly.
		m.events.EmitError(ErrorEvent{Type: ErrorParse, Err: ErrNoDecoder, Raw: raw})
		panic(ErrNoDecoder)
	}
	attrs, err := m.decoder(raw)
	if err != nil {
		m.events.EmitError(ErrorEvent{Type: ErrorParse, Err: err, Raw: raw})
		return nil
	}
	return attrs
}

// beginBatch resets the change bookkeeping and marks the given names as
// in flight. Starting a batch implicitly discards the previous generation.
func (m *Model) beginBatch(names []string) {
	m.changed = make(map[string]any, len(names))
	m.lastChange = make(map[string]Change, len(names))
	m.pending = make(map[string]struct{}, len(names))
	for _, name := range names {
		m.pending[name] = struct{}{}
	}
	m.batchActive = true
}

// settleBatch closes the batch and fires the single aggregate change event
// for whatever was applied. An all-cancelled batch emits nothing.
func (m *Model) settleBatch(opts SetOptions) {
	m.batchActive = false
	m.pending = nil
	if len(m.lastChange) == 0 || opts.Silent {
		return
	}
	m.events.EmitChange(ChangeEvent{Changed: m.LastChange()})
}

// onAttrChange is the container subscription: the single recording path for
// applied writes. Writes issued directly against the container (bypassing
// SetAttrs) form a one-attribute batch of their own, so the coalescing
// contract holds no matter how the write arrived.
func (m *Model) onAttrChange(out ChangeOutcome) {
	direct := !m.batchActive
	if direct {
		m.beginBatch([]string{out.Attr})
	}
	m.changed[out.Attr] = out.NewVal
	m.lastChange[out.Attr] = Change{NewVal: out.NewVal, PrevVal: out.PrevVal, Src: out.Src}
	delete(m.pending, out.Attr)
	if direct {
		m.settleBatch(SetOptions{Src: out.Src})
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
