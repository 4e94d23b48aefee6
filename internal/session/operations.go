package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/atomicstack/tabfm/internal/fileop"
	"github.com/atomicstack/tabfm/internal/logging"
	"github.com/atomicstack/tabfm/internal/logging/events"
)

// Clipboard remembers what copy_files or cut_files picked up.
type Clipboard struct {
	Kind      fileop.Kind
	Paths     []string
	SourceTab uuid.UUID
	SourceDir string
}

// ErrEmptyClipboard is returned when pasting with nothing copied.
var ErrEmptyClipboard = errors.New("clipboard is empty")

// SetClipboard fills the clipboard from the active listing's selection.
func (s *Session) SetClipboard(kind fileop.Kind) (int, error) {
	tab := s.CurrentTab()
	if tab == nil || tab.list == nil {
		return 0, ErrEmptyClipboard
	}
	paths := tab.list.SelectedPaths()
	if len(paths) == 0 {
		return 0, errors.New("nothing selected")
	}
	s.clipboard = &Clipboard{Kind: kind, Paths: paths, SourceTab: tab.id, SourceDir: tab.path}
	return len(paths), nil
}

// Clipboard returns the current clipboard, nil when empty.
func (s *Session) Clipboard() *Clipboard { return s.clipboard }

// StartOperation pastes the clipboard into the active tab's directory on a
// background worker. A cut is consumed by the paste.
func (s *Session) StartOperation(opts fileop.Options) (*fileop.Task, error) {
	tab := s.CurrentTab()
	if s.clipboard == nil || tab == nil {
		return nil, ErrEmptyClipboard
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = s.bufferSize
	}
	clip := s.clipboard
	task := fileop.Start(s.fs, fileop.Request{
		Kind:      clip.Kind,
		Sources:   append([]string(nil), clip.Paths...),
		Dest:      tab.path,
		Options:   opts,
		SourceTab: clip.SourceTab,
		DestTab:   tab.id,
		SourceDir: clip.SourceDir,
		DestDir:   tab.path,
	})
	s.tasks = append(s.tasks, task)
	if clip.Kind == fileop.Move {
		s.clipboard = nil
	}
	s.SetStatus("%s: %d item(s) queued", clip.Kind, len(clip.Paths))
	return task, nil
}

// Busy reports whether any operation is still running.
func (s *Session) Busy() bool { return len(s.tasks) > 0 }

// Tasks returns the in-flight operations.
func (s *Session) Tasks() []*fileop.Task { return s.tasks }

// OperationEvent reports what one poll observed for a task.
type OperationEvent struct {
	ID       uuid.UUID
	Progress fileop.Progress
	Finished bool
	Err      error
}

// PollOperations checks each in-flight task once. Finished tasks are joined
// and removed; successful ones reload the tabs and directories they touched.
func (s *Session) PollOperations(timeout time.Duration) []OperationEvent {
	if len(s.tasks) == 0 {
		return nil
	}
	out := make([]OperationEvent, 0, len(s.tasks))
	running := s.tasks[:0]
	for _, task := range s.tasks {
		p, finished := task.Poll(timeout)
		ev := OperationEvent{ID: task.ID(), Progress: p, Finished: finished}
		if !finished {
			running = append(running, task)
			events.Operation.Progress(task.ID().String(), p.BytesDone, p.BytesTotal, p.Item)
			s.setProgress("%s", describe(task.Request().Kind, p))
			out = append(out, ev)
			continue
		}
		if err := task.Join(); err != nil {
			ev.Err = err
			logging.Error(err)
			s.SetError(err)
			out = append(out, ev)
			continue
		}
		reloaded := s.reloadAfter(task.Request())
		events.Operation.Done(task.ID().String(), reloaded)
		s.setProgress("%s complete: %s", task.Request().Kind, humanize.Bytes(p.BytesTotal))
		out = append(out, ev)
	}
	for i := len(running); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = running
	return out
}

// setProgress updates the status line unless it shows an error. Errors stay
// until the next command clears the status.
func (s *Session) setProgress(format string, args ...interface{}) {
	if s.status.Error {
		return
	}
	s.SetStatus(format, args...)
}

func describe(kind fileop.Kind, p fileop.Progress) string {
	verb := "copying"
	if kind == fileop.Move {
		verb = "moving"
	}
	pct := 0
	if p.BytesTotal > 0 {
		pct = int(p.BytesDone * 100 / p.BytesTotal)
	}
	return fmt.Sprintf("%s %s / %s (%d%%)", verb, humanize.Bytes(p.BytesDone), humanize.Bytes(p.BytesTotal), pct)
}

// reloadAfter refreshes the listings a finished request touched. The active
// listing is re-scanned in place; cached ones are depreciated.
func (s *Session) reloadAfter(req fileop.Request) []string {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(dir string) {
		if dir == "" {
			return
		}
		if _, ok := seen[dir]; ok {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	for _, tab := range s.tabs {
		if tab.id == req.SourceTab || tab.id == req.DestTab {
			add(tab.path)
		}
	}
	add(req.SourceDir)
	add(req.DestDir)

	current := s.CurrentTab()
	for _, dir := range dirs {
		if current != nil && current.path == dir {
			if err := s.ReloadCurrent(); err != nil {
				logging.Error(err)
				s.SetError(err)
			}
			continue
		}
		s.cache.Depreciate(dir)
	}
	for _, tab := range s.tabs {
		if _, ok := seen[tab.path]; ok {
			s.renderer.RefreshTab(tab.id)
		}
	}
	return dirs
}
