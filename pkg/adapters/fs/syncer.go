// Package fs is the filesystem persistence adapter: each model is stored as
// one file under a root directory, in the format selected by the configured
// extension. It implements core.Syncer plus the optional Lister and
// Watchable capabilities.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/xmzhu2/yui3/pkg/core"
)

// Config holds the filesystem syncer configuration.
type Config struct {
	// Root is the directory holding one file per model.
	Root string

	// Format selects the file extension (and serializer), default ".json".
	Format string

	// AutoInit creates the root directory on Initialize.
	AutoInit bool

	// MustExist makes Initialize fail when the root directory is missing.
	MustExist bool

	// Logger receives adapter diagnostics; nil disables logging.
	Logger *slog.Logger

	// ErrorHandler receives runtime watcher failures that are otherwise
	// only logged.
	ErrorHandler func(error)

	// Serializers adds or replaces format serializers, keyed by extension.
	Serializers map[string]Serializer
}

// Syncer persists models as files. Safe for concurrent use; the watcher
// goroutine shares the watcherActive flag with callers.
type Syncer struct {
	Root string

	config      Config
	serializers map[string]Serializer
	ext         string

	mu            sync.RWMutex
	watcherActive bool
}

// NewSyncer builds a filesystem syncer. The format must have a registered
// serializer (JSON and YAML out of the box; RegisterSerializer adds more).
func NewSyncer(cfg Config) (*Syncer, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("fs syncer requires a root directory")
	}
	ext := cfg.Format
	if ext == "" {
		ext = ".json"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	s := &Syncer{
		Root:        cfg.Root,
		config:      cfg,
		serializers: DefaultSerializers(),
		ext:         ext,
	}
	for custom, serializer := range cfg.Serializers {
		s.RegisterSerializer(custom, serializer)
	}
	if _, ok := s.serializers[ext]; !ok {
		return nil, fmt.Errorf("no serializer registered for %s", ext)
	}
	return s, nil
}

// RegisterSerializer adds or replaces the serializer for an extension.
func (s *Syncer) RegisterSerializer(ext string, serializer Serializer) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	s.serializers[ext] = serializer
}

// Decoder returns the response decoder matching the syncer's format, for
// wiring into the models it serves.
func (s *Syncer) Decoder() core.Decoder {
	return s.serializers[s.ext].Decode
}

// Initialize ensures the root directory is ready.
func (s *Syncer) Initialize(ctx context.Context) error {
	if _, err := os.Stat(s.Root); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if s.config.MustExist {
			return fmt.Errorf("store directory does not exist: %s", s.Root)
		}
		if s.config.AutoInit {
			if err := os.MkdirAll(s.Root, 0755); err != nil {
				return fmt.Errorf("failed to create store directory: %w", err)
			}
		}
	}
	return nil
}

// Sync implements core.Syncer.
//
// create assigns an id when the model has none and echoes the stored
// attributes so the caller picks the assignment up through its parse path;
// update writes in place and reports nothing; get returns the raw file
// contents (the model's decoder matches the format); delete removes the
// file.
func (s *Syncer) Sync(ctx context.Context, action core.SyncAction, req core.SyncRequest) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch action {
	case core.SyncCreate:
		id := req.ID
		if id == "" {
			id = uuid.NewString()
		}
		attrs := make(map[string]any, len(req.Attributes)+1)
		for k, v := range req.Attributes {
			attrs[k] = v
		}
		attrs["id"] = id
		if err := s.write(id, attrs); err != nil {
			return nil, err
		}
		return s.serializers[s.ext].Encode(attrs)

	case core.SyncUpdate:
		if req.ID == "" {
			return nil, fmt.Errorf("cannot update a model without an id")
		}
		return nil, s.write(req.ID, req.Attributes)

	case core.SyncGet:
		if req.ID == "" {
			return nil, fmt.Errorf("cannot get a model without an id")
		}
		raw, err := os.ReadFile(s.path(req))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, core.ErrNotFound
			}
			return nil, err
		}
		return raw, nil

	case core.SyncDelete:
		if req.ID == "" {
			return nil, fmt.Errorf("cannot delete a model without an id")
		}
		if err := os.Remove(s.path(req)); err != nil {
			if os.IsNotExist(err) {
				return nil, core.ErrNotFound
			}
			return nil, err
		}
		return nil, nil
	}

	return nil, fmt.Errorf("unknown sync action: %s", action)
}

// List implements core.Lister: stored ids matching the glob pattern, in
// directory order. An empty pattern matches everything.
func (s *Syncer) List(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := s.resolveID(entry.Name())
		if !ok {
			continue
		}
		if pattern != "" {
			matched, err := doublestar.Match(pattern, id)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			if !matched {
				continue
			}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Watch implements core.Watchable: external changes to the store directory
// are observed with fsnotify, debounced, and streamed as store events. The
// channel closes when ctx is done.
func (s *Syncer) Watch(ctx context.Context, pattern string) (<-chan core.StoreEvent, error) {
	events := make(chan core.StoreEvent, 16)
	w := newWatchWorker(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Syncer) write(id string, attrs map[string]any) error {
	data, err := s.serializers[s.ext].Encode(attrs)
	if err != nil {
		return fmt.Errorf("failed to serialize model %s: %w", id, err)
	}
	fullPath := filepath.Join(s.Root, id+s.ext)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	if err := atomicWrite(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if s.config.Logger != nil {
		s.config.Logger.Debug("model written", "id", id, "path", fullPath)
	}
	return nil
}

// path resolves the file for a request. A non-empty URL overrides the
// id-derived filename and is interpreted relative to the root.
func (s *Syncer) path(req core.SyncRequest) string {
	if req.URL != "" {
		return filepath.Join(s.Root, req.URL)
	}
	return filepath.Join(s.Root, req.ID+s.ext)
}

// resolveID maps a directory entry back to a model id; false for files the
// store does not own (foreign extensions, temp files).
func (s *Syncer) resolveID(name string) (string, bool) {
	if strings.HasPrefix(name, TempFilePrefix) {
		return "", false
	}
	if filepath.Ext(name) != s.ext {
		return "", false
	}
	return strings.TrimSuffix(name, s.ext), true
}

func (s *Syncer) setWatcherActive(active bool) {
	s.mu.Lock()
	s.watcherActive = active
	s.mu.Unlock()
}

// TempFilePrefix marks in-flight writes; the lister and the watcher skip
// files carrying it.
const TempFilePrefix = "model-tmp-"

// atomicWrite lands data at path through a temp file in the same directory
// followed by a rename, so a reader never observes a half-written model.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name)

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}

	if err := os.Chmod(name, perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	return os.Rename(name, path)
}

var _ core.Syncer = (*Syncer)(nil)
var _ core.Lister = (*Syncer)(nil)
var _ core.Watchable = (*Syncer)(nil)
