package yui3

import (
	"log/slog"

	"github.com/xmzhu2/yui3/internal/platform"
	"github.com/xmzhu2/yui3/pkg/attrs"
	"github.com/xmzhu2/yui3/pkg/core"
	"github.com/xmzhu2/yui3/pkg/list"
)

// --- Types ---

// Model is a public alias for the observable attribute record.
type Model = core.Model

// Store is a public alias for the model store service.
type Store = core.Store

// Schema declares model attributes.
type Schema = core.Schema

// AttrSpec declares a single attribute.
type AttrSpec = core.AttrSpec

// Change records one attribute transition.
type Change = core.Change

// ChangeEvent is the aggregate notification for one coalesced batch.
type ChangeEvent = core.ChangeEvent

// ErrorEvent is the notification for a recoverable model error.
type ErrorEvent = core.ErrorEvent

// SetOptions carries metadata for a write through the validated set path.
type SetOptions = core.SetOptions

// StoreEvent represents a change in the backing store.
type StoreEvent = core.StoreEvent

// Syncer is the persistence extension point.
type Syncer = core.Syncer

// List is a public alias for the ordered model collection.
type List = list.List

// --- Configuration ---

// Option defines a functional option for configuring a store.
type Option = platform.Option

// WithSchema declares the attributes of every model the store creates.
func WithSchema(schema Schema) Option {
	return platform.WithSchema(schema)
}

// WithSyncer injects a custom persistence implementation.
func WithSyncer(s Syncer) Option {
	return platform.WithSyncer(s)
}

// WithDecoder overrides the sync response decoder.
func WithDecoder(d core.Decoder) Option {
	return platform.WithDecoder(d)
}

// WithIDGenerator sets the client-ID generator for new models.
func WithIDGenerator(g core.IDGenerator) Option {
	return platform.WithIDGenerator(g)
}

// WithValidator installs a validation hook on every model the store creates.
func WithValidator(v func(attrs map[string]any) error) Option {
	return platform.WithValidator(v)
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithFormat selects the file format of the default filesystem syncer.
func WithFormat(ext string) Option {
	return platform.WithFormat(ext)
}

// WithSerializer registers a custom serializer for a specific extension.
func WithSerializer(ext string, s any) Option {
	return platform.WithSerializer(ext, s)
}

// WithEventBuffer sizes the watch event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithAutoInit creates the store directory when it is missing.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithMustExist makes initialization fail when the store directory is
// missing.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// --- Factories ---

// New creates a model store. An empty root means detached (no persistence);
// a directory path wires the filesystem syncer.
func New(root string, opts ...Option) (*core.Store, error) {
	return platform.New(root, opts...)
}

// NewModel creates a standalone model over the default attribute container,
// detached from any store. The schema is merged over the base schema, so
// "id" is always declared.
func NewModel(schema Schema, opts ...core.ModelOption) *core.Model {
	return core.NewModel(attrs.New(core.BaseSchema().Merge(schema)), opts...)
}

// NewList creates an empty model collection.
func NewList() *list.List {
	return list.New()
}
