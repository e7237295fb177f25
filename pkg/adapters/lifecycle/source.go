// Package lifecycle exposes settings changes as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/flickernaut/pkg/core"
)

// pendingBuffer bounds the changes queued between the backend callback
// and the consumer. Overflow is dropped: a consumer re-reads the key anyway.
const pendingBuffer = 16

// Change reports that a settings key was written.
type Change struct {
	Key string
}

func (c Change) String() string {
	return "settings changed: " + c.Key
}

type settingsSource struct {
	settings core.Settings
	keys     []string
	pending  chan Change
	out      chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits a Change every time one
// of keys is written, locally or (with a watching backend) by another process.
// Every schema key is observed when keys is empty.
func NewSource(settings core.Settings, keys ...string) lifecycle.Source {
	if len(keys) == 0 {
		keys = settings.Keys()
	}
	return &settingsSource{
		settings: settings,
		keys:     keys,
		pending:  make(chan Change, pendingBuffer),
		out:      make(chan lifecycle.Event),
	}
}

func (s *settingsSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *settingsSource) Start(ctx context.Context) error {
	cancels := make([]func(), 0, len(s.keys))
	for _, key := range s.keys {
		cancels = append(cancels, s.settings.Subscribe(key, s.enqueue))
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		defer func() {
			for _, cancel := range cancels {
				cancel()
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return nil
			case c := <-s.pending:
				select {
				case s.out <- c:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

// enqueue never blocks: backend callbacks run on the writer's goroutine.
func (s *settingsSource) enqueue(key string) {
	select {
	case s.pending <- Change{Key: key}:
	default:
	}
}
