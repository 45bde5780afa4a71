package platform

import (
	"context"
	"fmt"

	"github.com/xmzhu2/yui3/pkg/adapters/fs"
	"github.com/xmzhu2/yui3/pkg/attrs"
	"github.com/xmzhu2/yui3/pkg/core"
	"github.com/xmzhu2/yui3/pkg/idgen"
)

// New builds a model store. With an empty root (and no injected syncer) the
// store is detached: persistence is a no-op stub, matching the default
// model behavior. A non-empty root wires the filesystem syncer at that
// directory.
func New(root string, opts ...Option) (*core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	syncer := o.syncer
	decoder := o.decoder

	if syncer == nil && root != "" {
		fsSyncer, err := initFS(root, o)
		if err != nil {
			return nil, err
		}
		if decoder == nil {
			decoder = fsSyncer.Decoder()
		}
		syncer = fsSyncer
	}

	ids := o.ids
	if ids == nil {
		ids = idgen.NewSequential("model")
	}

	return core.NewStore(core.StoreConfig{
		Schema:      o.schema,
		Syncer:      syncer,
		Containers:  func(s core.Schema) core.Container { return attrs.New(s) },
		Decoder:     decoder,
		IDs:         ids,
		Validator:   o.validator,
		Logger:      o.logger,
		EventBuffer: o.eventBuffer,
	})
}

// initFS handles the initialization logic for the filesystem syncer.
func initFS(root string, o *options) (*fs.Syncer, error) {
	custom := make(map[string]fs.Serializer, len(o.serializers))
	for ext, s := range o.serializers {
		serializer, ok := s.(fs.Serializer)
		if !ok {
			return nil, fmt.Errorf("serializer for %s must implement fs.Serializer", ext)
		}
		custom[ext] = serializer
	}

	syncer, err := fs.NewSyncer(fs.Config{
		Root:        root,
		Format:      o.format,
		AutoInit:    o.autoInit,
		MustExist:   o.mustExist,
		Logger:      o.logger,
		Serializers: custom,
	})
	if err != nil {
		return nil, err
	}

	if err := syncer.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return syncer, nil
}
