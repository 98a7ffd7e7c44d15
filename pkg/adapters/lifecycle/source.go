// Package lifecycle exposes state file changes as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/plop/pkg/core"
)

// Option configures a change source.
type Option func(*changeSource)

// WithTypes restricts the source to the given event types.
func WithTypes(types ...core.EventType) Option {
	return func(s *changeSource) {
		s.types = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
}

type changeSource struct {
	events <-chan core.Event
	types  map[core.EventType]bool
	out    chan lifecycle.Event
}

// NewSource wraps a repository watch channel as a lifecycle.Source.
// The output channel closes when the input closes or the context passed to
// Start is canceled.
func NewSource(events <-chan core.Event, opts ...Option) lifecycle.Source {
	s := &changeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *changeSource) accepts(e core.Event) bool {
	return len(s.types) == 0 || s.types[e.Type]
}

func (s *changeSource) Start(ctx context.Context) error {
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
				if !s.accepts(e) {
					continue
				}
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
