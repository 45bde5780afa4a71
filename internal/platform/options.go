package platform

import (
	"log/slog"

	"github.com/xmzhu2/yui3/pkg/core"
)

// options holds the internal configuration for a model store.
type options struct {
	schema      core.Schema
	syncer      core.Syncer
	decoder     core.Decoder
	ids         core.IDGenerator
	validator   func(attrs map[string]any) error
	logger      *slog.Logger
	format      string
	serializers map[string]any
	eventBuffer int
	autoInit    bool
	mustExist   bool
}

// Option defines a functional option for configuring a store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		format:      ".json",
		serializers: make(map[string]any),
	}
}

// WithSchema declares the attributes of every model the store creates.
// Merged over the base schema, so "id" is always present.
func WithSchema(schema core.Schema) Option {
	return func(o *options) { o.schema = schema }
}

// WithSyncer injects a custom persistence implementation. If provided, the
// default filesystem syncer is skipped.
func WithSyncer(s core.Syncer) Option {
	return func(o *options) { o.syncer = s }
}

// WithDecoder overrides the sync response decoder. Defaults to the decoder
// matching the store's format.
func WithDecoder(d core.Decoder) Option {
	return func(o *options) { o.decoder = d }
}

// WithIDGenerator sets the client-ID generator for new models.
func WithIDGenerator(g core.IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// WithValidator installs a validation hook on every model the store creates.
func WithValidator(v func(attrs map[string]any) error) Option {
	return func(o *options) { o.validator = v }
}

// WithLogger sets the logger for the store and its syncer.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFormat selects the file format for the default filesystem syncer by
// extension (e.g. ".json", ".yaml").
func WithFormat(ext string) Option {
	return func(o *options) { o.format = ext }
}

// WithSerializer registers a custom serializer for a specific extension.
// The serializer must implement the adapter's Serializer interface (e.g.
// fs.Serializer). Using 'any' keeps the public API clean; validation
// happens at runtime during New.
func WithSerializer(ext string, s any) Option {
	return func(o *options) { o.serializers[ext] = s }
}

// WithEventBuffer sizes the watch event buffer. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) { o.eventBuffer = size }
}

// WithAutoInit creates the store directory when it is missing.
func WithAutoInit(auto bool) Option {
	return func(o *options) { o.autoInit = auto }
}

// WithMustExist makes initialization fail when the store directory is
// missing.
func WithMustExist(must bool) Option {
	return func(o *options) { o.mustExist = must }
}
