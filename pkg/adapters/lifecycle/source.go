// Package lifecycle exposes note change events as an aretw0/lifecycle Source.
package lifecycle

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notemeta/pkg/core"
)

// ErrStarted is returned when Start is called on a running Source.
var ErrStarted = errors.New("source already started")

// Source relays core.Event values, such as the ones produced by fs.Watcher,
// to lifecycle consumers. core.Event satisfies lifecycle.Event through its
// String method.
type Source struct {
	in      <-chan core.Event
	out     chan lifecycle.Event
	types   []core.EventType
	started atomic.Bool
}

// NewSource creates a Source reading from events. When types is not empty
// only events of those types are relayed.
func NewSource(events <-chan core.Event, types ...core.EventType) *Source {
	return &Source{
		in:    events,
		out:   make(chan lifecycle.Event),
		types: types,
	}
}

// Events implements lifecycle.Source.
func (s *Source) Events() <-chan lifecycle.Event {
	return s.out
}

// Start relays events in the background until ctx is done or the input
// closes; the output channel is closed afterwards.
func (s *Source) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrStarted
	}
	lifecycle.Go(ctx, s.relay)
	return nil
}

func (s *Source) relay(ctx context.Context) error {
	defer close(s.out)
	for {
		var (
			e  core.Event
			ok bool
		)
		select {
		case <-ctx.Done():
			return nil
		case e, ok = <-s.in:
		}
		if !ok {
			return nil
		}
		if len(s.types) > 0 && !slices.Contains(s.types, e.Type) {
			continue
		}
		select {
		case s.out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}

var _ lifecycle.Source = (*Source)(nil)
