package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/xmzhu2/yui3/pkg/core"
)

type watchWorker struct {
	*worker.BaseWorker
	syncer    *Syncer
	pattern   string
	events    chan core.StoreEvent
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(syncer *Syncer, pattern string, events chan core.StoreEvent) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-model-watcher"),
		syncer:     syncer,
		pattern:    pattern,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(w.syncer.Root); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.syncer.Root, err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.syncer.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// processFilesystemEvent handles filtering, mapping, and debouncing of
// filesystem events. Returns true if the event was processed, false if it
// should be ignored.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) (processed bool) {
	logger := w.syncer.config.Logger
	if logger != nil {
		logger.Debug("event received", "name", event.Name)
	}

	id, ok := w.syncer.resolveID(filepath.Base(event.Name))
	if !ok {
		return false
	}
	if w.pattern != "" {
		matched, err := doublestar.Match(w.pattern, id)
		if err != nil || !matched {
			return false
		}
	}

	eType := mapEventType(event)
	if eType == "" {
		return false
	}

	w.sendEvent(ctx, core.StoreEvent{
		Type:      eType,
		ID:        id,
		Timestamp: time.Now().Unix(),
	})

	return true
}

func mapEventType(event fsnotify.Event) core.StoreEventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.StoreCreate
	case event.Has(fsnotify.Write):
		return core.StoreModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.StoreDelete
	}
	return ""
}

// sendEvent enqueues an event via the debouncer, protecting against channel
// closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event core.StoreEvent) {
	w.debouncer.add(event, func(e core.StoreEvent) {
		defer func() {
			// Recover from panic if channel was closed (worker stopping)
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// handleWatcherError processes errors from the fsnotify watcher.
func (w *watchWorker) handleWatcherError(err error) {
	if w.syncer.config.Logger != nil {
		w.syncer.config.Logger.Error("fsnotify error", "error", err)
	}
	if w.syncer.config.ErrorHandler != nil {
		w.syncer.config.ErrorHandler(err)
	}
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.syncer.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)

			if logger != nil {
				if logger.Enabled(ctx, slog.LevelDebug) {
					logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
				} else {
					logger.Error("watcher panic", "error", panicErr)
				}
			}
		}
	}()
	defer w.syncer.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Shutdown debouncer: stop accepting new events and wait for all
	// in-flight timers to complete before closing the stream.
	w.debouncer.stopAndWait(5 * time.Second)
	close(w.events)

	return err
}

// mainEventLoop is the core select loop processing filesystem and watcher
// events.
func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}
