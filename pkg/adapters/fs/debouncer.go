package fs

import (
	"sync"
	"time"

	"github.com/aretw0/notemeta/pkg/core"
)

// debouncer coalesces bursts of events on the same path. Editors usually
// produce several writes per save; only the last one is delivered, except
// that a pending CREATE is not downgraded to MODIFY.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]core.Event
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]core.Event),
		timers:  make(map[string]*time.Timer),
	}
}

func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if prev, ok := d.pending[e.Path]; ok && prev.Type == core.EventCreate && e.Type == core.EventModify {
		e.Type = core.EventCreate
	}
	d.pending[e.Path] = e

	if t, ok := d.timers[e.Path]; ok && t.Stop() {
		d.wg.Done()
	}

	d.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		if d.timers[e.Path] != t {
			d.mu.Unlock()
			return
		}
		ev := d.pending[e.Path]
		delete(d.pending, e.Path)
		delete(d.timers, e.Path)
		d.mu.Unlock()
		fire(ev)
	})
	d.timers[e.Path] = t
}

// stopAndWait drops pending events and waits up to timeout for callbacks
// already running.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for path, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, path)
	}
	d.pending = make(map[string]core.Event)
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
