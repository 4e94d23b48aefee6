package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/tabfm/internal/logging/events"
)

// Event reports a directory whose contents changed, or a watcher error.
type Event struct {
	Dir string
	Err error
}

// Watcher follows a set of directories through fsnotify and publishes one
// event per changed directory per interval.
type Watcher struct {
	interval time.Duration
	fsw      *fsnotify.Watcher
	pending  *coalescer

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	watched map[string]struct{}

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts a watcher that flushes changes every interval.
func NewWatcher(interval time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		interval: interval,
		fsw:      fsw,
		pending:  newCoalescer(interval),
		ctx:      ctx,
		cancel:   cancel,
		watched:  make(map[string]struct{}),
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Watch replaces the watched set with dirs. Directories that cannot be
// watched are skipped; the first such error is returned.
func (w *Watcher) Watch(dirs ...string) error {
	want := make(map[string]struct{}, len(dirs))
	for _, dir := range dirs {
		want[filepath.Clean(dir)] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for dir := range w.watched {
		if _, keep := want[dir]; keep {
			continue
		}
		_ = w.fsw.Remove(dir)
		delete(w.watched, dir)
	}
	var first error
	for dir := range want {
		if _, ok := w.watched[dir]; ok {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			if first == nil {
				first = fmt.Errorf("watch %s: %w", dir, err)
			}
			continue
		}
		w.watched[dir] = struct{}{}
	}
	return first
}

// Watched returns the directories currently followed.
func (w *Watcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.watched))
	for dir := range w.watched {
		out = append(out, dir)
	}
	return out
}

// Stop cancels the watcher. Use Wait if a clean drain is required (e.g. in
// tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the reader goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fsw.Close()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.note(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			events.Watch.Error(err)
			if !w.emit(Event{Err: err}) {
				return
			}
		case now := <-ticker.C:
			for _, dir := range w.pending.due(now) {
				events.Watch.Change(dir)
				if !w.emit(Event{Dir: dir}) {
					return
				}
			}
		}
	}
}

// note records the directory an fsnotify event belongs to. Events name the
// changed entry, so its parent is the listing that went stale; a watched
// directory that is itself removed or renamed is reported as well.
func (w *Watcher) note(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod {
		return
	}
	name := filepath.Clean(ev.Name)
	w.mu.Lock()
	_, self := w.watched[name]
	w.mu.Unlock()
	if self {
		w.pending.add(name)
	}
	w.pending.add(filepath.Dir(name))
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
