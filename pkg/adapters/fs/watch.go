package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/plop/pkg/core"
)

// debounceDelay groups the events of one atomic save.
const debounceDelay = 50 * time.Millisecond

type watchWorker struct {
	repo      *Repository
	pattern   string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	// cancel releases debounced sends blocked on a full channel.
	cancel context.CancelFunc
}

// Watch observes the directory holding the state file and emits an event
// whenever a file whose base name matches pattern changes. An empty pattern
// watches the state file itself. The returned channel is closed once ctx is done.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = filepath.Base(r.Path)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	dir := filepath.Dir(r.Path)
	if !r.config.ReadOnly {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directories: %w", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &watchWorker{
		cancel:    cancel,
		repo:      r,
		pattern:   pattern,
		events:    make(chan core.Event, r.config.EventBuffer),
		watcher:   watcher,
		debouncer: newDebouncer(debounceDelay),
	}
	r.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		if r.config.ErrorHandler != nil {
			r.config.ErrorHandler(fmt.Errorf("watcher failed: %w", err))
		} else if r.config.Logger != nil {
			r.config.Logger.Error("watcher failed", "error", err)
		}
	}))

	return w.events, nil
}

// run is the main event loop for the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger := w.repo.config.Logger; logger != nil {
				// Stack traces only at debug level to keep production logs short.
				if logger.Enabled(ctx, slog.LevelDebug) {
					logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
				} else {
					logger.Error("watcher panic", "error", err)
				}
			}
		}
	}()
	defer close(w.events)
	// Stop accepting new events and let in-flight sends finish before the
	// channel is closed.
	defer w.debouncer.stopAndWait(5 * time.Second)
	// Unblock sends waiting on a full channel whatever made the loop exit.
	defer w.cancel()
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	return w.mainEventLoop(ctx)
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}

// processFilesystemEvent filters and maps one fsnotify event.
// It returns false when the event is ignored.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, TempFilePrefix) {
		return false
	}
	if ok, _ := doublestar.Match(w.pattern, base); !ok {
		return false
	}

	eType := mapEventType(event)
	if eType == "" {
		return false
	}

	w.repo.debug("event received", "name", event.Name, "op", event.Op.String())
	w.sendEvent(ctx, core.Event{
		Type:      eType,
		Path:      event.Name,
		Timestamp: time.Now().Unix(),
	})
	return true
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

// sendEvent enqueues an event via the debouncer.
func (w *watchWorker) sendEvent(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		// A send that outlived stopAndWait hits a closed channel.
		defer func() { _ = recover() }()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func (w *watchWorker) handleWatcherError(err error) {
	if w.repo.config.Logger != nil {
		w.repo.config.Logger.Error("fsnotify error", "error", err)
	}
	if w.repo.config.ErrorHandler != nil {
		w.repo.config.ErrorHandler(err)
	}
}
