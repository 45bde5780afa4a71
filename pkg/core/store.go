package core

import (
	"context"
	"fmt"
	"log/slog"
)

const defaultEventBuffer = 100

// StoreConfig wires a Store. Containers is the only required field; every
// other zero value falls back to a sane default (NopSyncer, JSON decoding,
// the base schema, a process-wide sequential client-ID counter).
type StoreConfig struct {
	// Schema declares the attributes of every model the store creates.
	// Merged over BaseSchema, so "id" is always present.
	Schema Schema

	// Syncer is the persistence implementation shared by the store's models.
	Syncer Syncer

	// Containers builds the attribute container for a new model.
	Containers func(Schema) Container

	// Decoder decodes sync responses; must match the syncer's encoding.
	Decoder Decoder

	// IDs generates client IDs for new models.
	IDs IDGenerator

	// Validator is installed on every model the store creates.
	Validator func(attrs map[string]any) error

	// Logger receives store diagnostics; nil disables logging.
	Logger *slog.Logger

	// EventBuffer sizes the Watch decoupling buffer. Zero means default (100).
	EventBuffer int
}

// Store is the business-logic layer over a Syncer: it creates models bound
// to the store's schema and persistence, and exposes the syncer's optional
// capabilities (listing, watching) behind capability checks.
type Store struct {
	schema      Schema
	syncer      Syncer
	containers  func(Schema) Container
	decoder     Decoder
	ids         IDGenerator
	validator   func(attrs map[string]any) error
	logger      *slog.Logger
	eventBuffer int
}

// NewStore validates the configuration and builds a Store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Containers == nil {
		return nil, fmt.Errorf("store requires a container factory")
	}
	s := &Store{
		schema:      BaseSchema().Merge(cfg.Schema),
		syncer:      cfg.Syncer,
		containers:  cfg.Containers,
		decoder:     cfg.Decoder,
		ids:         cfg.IDs,
		validator:   cfg.Validator,
		logger:      cfg.Logger,
		eventBuffer: cfg.EventBuffer,
	}
	if s.syncer == nil {
		s.syncer = NopSyncer{}
	}
	if s.decoder == nil {
		s.decoder = JSONDecode
	}
	if s.eventBuffer <= 0 {
		s.eventBuffer = defaultEventBuffer
	}
	return s, nil
}

// NewModel creates a model bound to the store's schema, syncer, decoder and
// validator.
func (s *Store) NewModel() *Model {
	opts := []ModelOption{
		WithSyncer(s.syncer),
		WithDecoder(s.decoder),
		WithValidator(s.validator),
	}
	if s.ids != nil {
		opts = append(opts, WithIDGenerator(s.ids))
	}
	return NewModel(s.containers(s.schema), opts...)
}

// Load retrieves the model stored under id.
func (s *Store) Load(ctx context.Context, id string) (*Model, error) {
	if id == "" {
		return nil, fmt.Errorf("model ID cannot be empty")
	}
	m := s.NewModel()
	if !m.SetAttrsWith(map[string]any{"id": id}, SetOptions{Silent: true}) {
		return nil, ErrValidation
	}
	if err := m.Load(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Save persists a model.
func (s *Store) Save(ctx context.Context, m *Model) error {
	if err := m.Save(ctx, nil); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Debug("model saved", "id", m.ID(), "client_id", m.ClientID())
	}
	return nil
}

// Delete removes a model's stored state.
func (s *Store) Delete(ctx context.Context, m *Model) error {
	return m.Delete(ctx)
}

// List enumerates stored model ids matching the glob pattern, if the syncer
// supports it.
func (s *Store) List(ctx context.Context, pattern string) ([]string, error) {
	l, ok := s.syncer.(Lister)
	if !ok {
		return nil, ErrUnsupported
	}
	return l.List(ctx, pattern)
}

// Watch observes external changes to the backing store, if the syncer
// supports it. The returned stream is decoupled from the syncer's channel
// through a buffered forwarder, so a slow consumer does not stall the
// watcher. The stream closes when ctx is done or the syncer stops.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan StoreEvent, error) {
	w, ok := s.syncer.(Watchable)
	if !ok {
		return nil, ErrUnsupported
	}
	upstream, err := w.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}

	out := make(chan StoreEvent, s.eventBuffer)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-upstream:
				if !ok {
					return
				}
				select {
				case out <- e:
				default:
					// Buffer full: drop rather than block the watcher.
					if s.logger != nil {
						s.logger.Warn("store event dropped (slow consumer)", "id", e.ID)
					}
				}
			}
		}
	}()
	return out, nil
}
