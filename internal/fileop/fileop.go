// Package fileop runs copy and move requests on background goroutines and
// reports their progress over bounded channels.
package fileop

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/atomicstack/tabfm/internal/logging/events"
)

// Kind selects the operation a worker performs.
type Kind int

const (
	Copy Kind = iota
	Move
)

func (k Kind) String() string {
	if k == Move {
		return "move"
	}
	return "copy"
}

// DefaultBufferSize is the chunk size used when copying file contents.
const DefaultBufferSize = 4 * 1024 * 1024

const progressBuffer = 16

// Options tune how existing destinations are treated.
type Options struct {
	Overwrite    bool
	SkipExisting bool
	BufferSize   int
}

// Progress is a snapshot of a running operation.
type Progress struct {
	BytesDone  uint64
	BytesTotal uint64
	Item       string
}

// Request describes one operation. SourceTab and DestTab identify the tabs
// whose listings should be refreshed once it succeeds.
type Request struct {
	Kind      Kind
	Sources   []string
	Dest      string
	Options   Options
	SourceTab uuid.UUID
	DestTab   uuid.UUID
	SourceDir string
	DestDir   string
}

// WorkerError wraps whatever ended a worker early, including recovered panics.
type WorkerError struct {
	Kind Kind
	Err  error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Kind, e.Err)
}

func (e *WorkerError) Unwrap() error { return e.Err }

// Task is the controller's handle on a running worker.
type Task struct {
	id       uuid.UUID
	req      Request
	progress chan Progress
	done     chan error
	result   error
	joined   bool
	latest   Progress
}

// Start launches a worker for req on fsys and returns immediately.
func Start(fsys afero.Fs, req Request) *Task {
	t := &Task{
		id:       uuid.New(),
		req:      req,
		progress: make(chan Progress, progressBuffer),
		done:     make(chan error, 1),
	}
	events.Operation.Start(t.id.String(), req.Kind.String(), req.Sources, req.Dest)
	go t.run(fsys)
	return t
}

func (t *Task) run(fsys afero.Fs) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = &WorkerError{Kind: t.req.Kind, Err: fmt.Errorf("panic: %v", r)}
		}
		t.done <- err
		close(t.progress)
	}()
	w := &worker{fs: fsys, req: t.req, report: t.report}
	if werr := w.run(); werr != nil {
		err = &WorkerError{Kind: t.req.Kind, Err: werr}
	}
}

// report never blocks: a snapshot is dropped when the controller is behind.
func (t *Task) report(p Progress) {
	select {
	case t.progress <- p:
	default:
	}
}

func (t *Task) ID() uuid.UUID    { return t.id }
func (t *Task) Request() Request { return t.req }

// Poll waits up to timeout for a progress message and then drains anything
// else already queued. It returns the most recent snapshot seen and whether
// the worker has finished.
func (t *Task) Poll(timeout time.Duration) (Progress, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case p, ok := <-t.progress:
		if !ok {
			return t.latest, true
		}
		t.latest = p
	case <-timer.C:
		return t.latest, false
	}
	for {
		select {
		case p, ok := <-t.progress:
			if !ok {
				return t.latest, true
			}
			t.latest = p
		default:
			return t.latest, false
		}
	}
}

// Join waits for the worker and returns its result. Repeated calls return the
// same value.
func (t *Task) Join() error {
	if !t.joined {
		t.result = <-t.done
		t.joined = true
		if t.result != nil {
			events.Operation.Failed(t.id.String(), t.result)
		}
	}
	return t.result
}

func absolute(paths ...string) error {
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			return fmt.Errorf("path %q is not absolute", p)
		}
	}
	return nil
}
