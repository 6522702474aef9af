package fs

import (
	"slices"
	"time"

	"github.com/aretw0/introspection"
)

// WatcherState exposes internal state for observability.
type WatcherState struct {
	Roots       []string   `json:"roots"`
	Include     string     `json:"include,omitempty"`
	Recursive   bool       `json:"recursive"`
	Active      bool       `json:"active"`
	WatchedDirs int        `json:"watched_dirs"`
	EventsSent  int        `json:"events_sent"`
	LastEvent   *time.Time `json:"last_event,omitempty"`
}

// State implements introspection.Introspectable.
func (w *Watcher) State() any {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return WatcherState{
		Roots:       slices.Clone(w.config.Roots),
		Include:     w.config.Include,
		Recursive:   w.config.Recursive,
		Active:      w.active,
		WatchedDirs: len(w.watched),
		EventsSent:  w.sent,
		LastEvent:   w.last,
	}
}

// ComponentType implements introspection.Component.
func (w *Watcher) ComponentType() string {
	return "watcher"
}

var _ introspection.Introspectable = (*Watcher)(nil)
var _ introspection.Component = (*Watcher)(nil)
