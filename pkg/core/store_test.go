package core_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/xmzhu2/yui3/pkg/core"
)

// memorySyncer implements core.Syncer, core.Lister and core.Watchable over
// a plain map, encoding state as JSON.
type memorySyncer struct {
	records  map[string]map[string]any
	upstream chan core.StoreEvent
}

func newMemorySyncer() *memorySyncer {
	return &memorySyncer{
		records:  make(map[string]map[string]any),
		upstream: make(chan core.StoreEvent),
	}
}

func (s *memorySyncer) Sync(ctx context.Context, action core.SyncAction, req core.SyncRequest) ([]byte, error) {
	switch action {
	case core.SyncCreate, core.SyncUpdate:
		id := req.ID
		if id == "" {
			id = "generated-1"
		}
		attrs := make(map[string]any, len(req.Attributes))
		for k, v := range req.Attributes {
			attrs[k] = v
		}
		attrs["id"] = id
		s.records[id] = attrs
		return json.Marshal(attrs)
	case core.SyncGet:
		attrs, ok := s.records[req.ID]
		if !ok {
			return nil, core.ErrNotFound
		}
		return json.Marshal(attrs)
	case core.SyncDelete:
		if _, ok := s.records[req.ID]; !ok {
			return nil, core.ErrNotFound
		}
		delete(s.records, req.ID)
		return nil, nil
	}
	return nil, errors.New("unknown action")
}

func (s *memorySyncer) List(ctx context.Context, pattern string) ([]string, error) {
	var ids []string
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *memorySyncer) Watch(ctx context.Context, pattern string) (<-chan core.StoreEvent, error) {
	return s.upstream, nil
}

// plainContainer is the minimal schema-less container used by store tests.
type plainContainer struct {
	values map[string]any
	subs   []core.ChangeHandler
}

func newPlainContainer(schema core.Schema) core.Container {
	c := &plainContainer{values: make(map[string]any)}
	for name, spec := range schema {
		if spec.Generator != nil {
			c.values[name] = spec.Generator()
		} else {
			c.values[name] = spec.Default
		}
	}
	return c
}

func (c *plainContainer) Get(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

func (c *plainContainer) Set(name string, value any, opts core.SetOptions) core.ChangeOutcome {
	prev := c.values[name]
	c.values[name] = value
	out := core.ChangeOutcome{Attr: name, NewVal: value, PrevVal: prev, Src: opts.Src}
	for _, h := range c.subs {
		h(out)
	}
	return out
}

func (c *plainContainer) Subscribe(h core.ChangeHandler) func() {
	c.subs = append(c.subs, h)
	return func() {}
}

func (c *plainContainer) Values() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

func (c *plainContainer) Names() []string {
	names := make([]string, 0, len(c.values))
	for name := range c.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestStore_RequiresContainers(t *testing.T) {
	if _, err := core.NewStore(core.StoreConfig{}); err == nil {
		t.Fatal("expected error for missing container factory")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	syncer := newMemorySyncer()
	store, err := core.NewStore(core.StoreConfig{
		Schema:     core.Schema{"name": {Default: ""}},
		Syncer:     syncer,
		Containers: newPlainContainer,
	})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	ctx := context.TODO()

	m := store.NewModel()
	if !m.Set("name", "alpha") {
		t.Fatal("Set failed")
	}
	if err := store.Save(ctx, m); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if m.IsNew() {
		t.Fatal("model should have an id after create")
	}

	loaded, err := store.Load(ctx, m.ID())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Get("name") != "alpha" {
		t.Errorf("expected 'alpha', got %v", loaded.Get("name"))
	}
	if loaded.IsModified() {
		t.Error("freshly loaded model should not be modified")
	}

	ids, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("expected 1 stored id, got %v", ids)
	}

	if err := store.Delete(ctx, m); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(ctx, m.ID()); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStore_CapabilitiesUnsupported(t *testing.T) {
	store, err := core.NewStore(core.StoreConfig{Containers: newPlainContainer})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	ctx := context.TODO()

	if _, err := store.List(ctx, ""); !errors.Is(err, core.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported from List, got %v", err)
	}
	if _, err := store.Watch(ctx, ""); !errors.Is(err, core.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported from Watch, got %v", err)
	}
}

func TestStore_WatchDecouplesSlowConsumer(t *testing.T) {
	syncer := newMemorySyncer()
	store, err := core.NewStore(core.StoreConfig{
		Syncer:      syncer,
		Containers:  newPlainContainer,
		EventBuffer: 8,
	})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := store.Watch(ctx, "*")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Push without reading; the unbuffered upstream would block if the
	// store did not decouple.
	for i := 0; i < 5; i++ {
		syncer.upstream <- core.StoreEvent{Type: core.StoreModify, ID: "m"}
	}

	for i := 0; i < 5; i++ {
		e := <-stream
		if e.ID != "m" {
			t.Fatalf("unexpected event: %+v", e)
		}
	}
}
