package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notemeta/pkg/core"
)

// WatchConfig configures a Watcher.
type WatchConfig struct {
	// Roots are the directories (or single files) to observe.
	Roots     []string
	Recursive bool
	// Include filters events by path relative to their root (doublestar).
	Include  string
	Debounce time.Duration
	Logger   *slog.Logger
	// ErrorHandler receives runtime watcher failures, which are otherwise
	// only logged.
	ErrorHandler func(error)
	SkipDirs     []string
}

// ErrWatcherActive is returned by Watch while a previous Watch is running.
var ErrWatcherActive = errors.New("watcher already started")

// Watcher reports changes to note files under a set of roots.
type Watcher struct {
	config WatchConfig

	mu      sync.RWMutex
	active  bool
	watched []string
	sent    int
	last    *time.Time
}

// NewWatcher creates a Watcher. Nothing is observed until Watch is called.
func NewWatcher(config WatchConfig) *Watcher {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	if config.SkipDirs == nil {
		config.SkipDirs = []string{".git"}
	}
	return &Watcher{config: config}
}

// Watch starts observing the roots. The returned channel is closed once ctx
// is done and the event loop has drained.
func (w *Watcher) Watch(ctx context.Context) (<-chan core.Event, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Claim the watcher before any setup so concurrent calls cannot both start.
	w.mu.Lock()
	if w.active {
		w.mu.Unlock()
		return nil, ErrWatcherActive
	}
	w.active = true
	w.watched = nil
	w.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.setActive(false)
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, root := range w.config.Roots {
		if err := w.addRoot(watcher, root); err != nil {
			_ = watcher.Close()
			w.setActive(false)
			return nil, err
		}
	}

	events := make(chan core.Event)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		return w.run(ctx, watcher, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		w.handleError(fmt.Errorf("watch loop: %w", err))
	}))

	return events, nil
}

// addRoot registers root, and its subdirectories when recursive.
func (w *Watcher) addRoot(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return wrapPathErr("watch", root, err)
	}
	if !info.IsDir() {
		return w.add(watcher, root)
	}
	if !w.config.Recursive {
		return w.add(watcher, root)
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.add(watcher, path)
	})
}

func (w *Watcher) add(watcher *fsnotify.Watcher, path string) error {
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	w.mu.Lock()
	w.watched = append(w.watched, path)
	w.mu.Unlock()
	return nil
}

func (w *Watcher) skipDir(name string) bool {
	for _, skip := range w.config.SkipDirs {
		if name == skip {
			return true
		}
	}
	return false
}

func (w *Watcher) setActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = active
}

// run is the main event loop.
func (w *Watcher) run(ctx context.Context, watcher *fsnotify.Watcher, events chan<- core.Event) (err error) {
	debouncer := newDebouncer(w.config.Debounce)
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if w.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.config.Logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				w.config.Logger.Error("watcher panic", "error", err)
			}
		}
		debouncer.stopAndWait(5 * time.Second)
		_ = watcher.Close()
		w.setActive(false)
		close(events)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			w.process(ctx, watcher, debouncer, event, events)

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.handleError(wErr)
		}
	}
}

// process filters and maps one fsnotify event, then hands it to the debouncer.
func (w *Watcher) process(ctx context.Context, watcher *fsnotify.Watcher, d *debouncer, event fsnotify.Event, out chan<- core.Event) {
	w.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if event.Has(fsnotify.Create) && w.config.Recursive {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.skipDir(info.Name()) {
				if err := w.addRoot(watcher, event.Name); err != nil {
					w.handleError(err)
				}
			}
			return
		}
	}

	if !w.included(event.Name) {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	d.add(core.Event{
		Type:      eType,
		Path:      event.Name,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		select {
		case out <- e:
			w.mu.Lock()
			w.sent++
			now := time.Now()
			w.last = &now
			w.mu.Unlock()
		case <-ctx.Done():
		}
	})
}

// included checks the event path against the include pattern of the root
// that contains it.
func (w *Watcher) included(path string) bool {
	if w.config.Include == "" {
		return true
	}
	for _, root := range w.config.Roots {
		if path == root {
			return true
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if ok, err := doublestar.Match(w.config.Include, filepath.ToSlash(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}

func (w *Watcher) handleError(err error) {
	w.config.Logger.Error("watcher error", "error", err)
	if w.config.ErrorHandler != nil {
		w.config.ErrorHandler(err)
	}
}
