package fs

import (
	"sync"
	"time"

	"github.com/xmzhu2/yui3/pkg/core"
)

// debouncer collapses bursts of store events per model id: rapid successive
// events for the same id replace each other, and only the last one is
// delivered after a quiet period. Editors and atomic renames produce such
// bursts routinely.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules event delivery through send after the quiet period,
// replacing any pending delivery for the same id.
func (d *debouncer) add(event core.StoreEvent, send func(core.StoreEvent)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if timer, ok := d.timers[event.ID]; ok {
		if timer.Stop() {
			d.wg.Done()
		}
	}

	d.wg.Add(1)
	d.timers[event.ID] = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		delete(d.timers, event.ID)
		stopped := d.stopped
		d.mu.Unlock()
		if stopped {
			return
		}
		send(event)
	})
}

// stopAndWait stops accepting new events and waits (up to timeout) for all
// in-flight timers to finish, so callers can safely close downstream
// channels afterwards.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for id, timer := range d.timers {
		if timer.Stop() {
			d.wg.Done()
		}
		delete(d.timers, id)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
