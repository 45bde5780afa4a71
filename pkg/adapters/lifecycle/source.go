// Package lifecycle bridges store event streams into the generic
// aretw0/lifecycle event interface, so applications already supervised by
// lifecycle can consume store changes as just another source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/xmzhu2/yui3/pkg/core"
)

type storeSource struct {
	events <-chan core.StoreEvent
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits store events.
// It bridges the typed store event channel to the generic lifecycle Event
// interface.
func NewSource(events <-chan core.StoreEvent) lifecycle.Source {
	return &storeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storeSource) Start(ctx context.Context) error {
	// lifecycle.Go tracks the bridge goroutine itself.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.StoreEvent implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
