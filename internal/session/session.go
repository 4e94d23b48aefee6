// Package session owns the navigation tabs, the directory cache and the
// in-flight file operations. Every method must be called from the single
// controller goroutine; workers only reach the session through the channels
// polled by PollOperations.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/atomicstack/tabfm/internal/fileop"
	"github.com/atomicstack/tabfm/internal/history"
	"github.com/atomicstack/tabfm/internal/listing"
	"github.com/atomicstack/tabfm/internal/logging/events"
)

// Opener hands non-directory paths to an external program.
type Opener func(paths []string) error

// Renderer is told which parts of the screen went stale.
type Renderer interface {
	RefreshTab(id uuid.UUID)
	RedrawTabStrip()
}

type nopRenderer struct{}

func (nopRenderer) RefreshTab(uuid.UUID) {}
func (nopRenderer) RedrawTabStrip()      {}

// Config carries the collaborators a session needs.
type Config struct {
	Fs         afero.Fs
	Options    listing.Options
	Chdir      func(string) error
	Home       string
	Opener     Opener
	Renderer   Renderer
	BufferSize int
}

// Status is the single message shown on the status line.
type Status struct {
	Text  string
	Error bool
}

// PromptRequest asks the UI to open the console with Text prefilled and the
// cursor at Cursor.
type PromptRequest struct {
	Text   string
	Cursor int
}

// Session is the top-level state of the file manager.
type Session struct {
	fs         afero.Fs
	opts       listing.Options
	chdir      func(string) error
	home       string
	opener     Opener
	renderer   Renderer
	bufferSize int

	cache     *history.Cache
	tabs      []*Tab
	current   int
	tasks     []*fileop.Task
	clipboard *Clipboard
	search    string
	status    Status
	prompt    *PromptRequest
	quit      bool
}

// New builds a session with no tabs. Call OpenTab before anything else.
func New(cfg Config) *Session {
	s := &Session{
		fs:         cfg.Fs,
		opts:       cfg.Options,
		chdir:      cfg.Chdir,
		home:       cfg.Home,
		opener:     cfg.Opener,
		renderer:   cfg.Renderer,
		bufferSize: cfg.BufferSize,
		cache:      history.New(),
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.chdir == nil {
		s.chdir = os.Chdir
	}
	if s.renderer == nil {
		s.renderer = nopRenderer{}
	}
	if s.bufferSize <= 0 {
		s.bufferSize = fileop.DefaultBufferSize
	}
	return s
}

// SetRenderer replaces the renderer after construction; the UI model is
// usually built after the session it observes.
func (s *Session) SetRenderer(r Renderer) {
	if r == nil {
		r = nopRenderer{}
	}
	s.renderer = r
}

// Source returns the filesystem and listing options used for every scan.
func (s *Session) Source() listing.Source {
	return listing.Source{Fs: s.fs, Options: s.opts}
}

func (s *Session) Fs() afero.Fs             { return s.fs }
func (s *Session) Cache() *history.Cache    { return s.cache }
func (s *Session) Options() listing.Options { return s.opts }
func (s *Session) Home() string             { return s.home }
func (s *Session) Tabs() []*Tab             { return s.tabs }
func (s *Session) CurrentIndex() int        { return s.current }

// CurrentTab returns the active tab, nil before the first OpenTab.
func (s *Session) CurrentTab() *Tab {
	if len(s.tabs) == 0 {
		return nil
	}
	return s.tabs[s.current]
}

// Current returns the active listing.
func (s *Session) Current() *listing.Listing {
	if tab := s.CurrentTab(); tab != nil {
		return tab.list
	}
	return nil
}

// SetOptions re-scans the active listing with opts and, only when that
// succeeds, commits them and depreciates every cached listing.
func (s *Session) SetOptions(opts listing.Options) error {
	src := listing.Source{Fs: s.fs, Options: opts}
	if tab := s.CurrentTab(); tab != nil && tab.list != nil {
		if err := tab.list.UpdateContents(src); err != nil {
			return err
		}
		s.renderer.RefreshTab(tab.id)
	}
	s.opts = opts
	s.cache.DepreciateAll()
	return nil
}

// Resolve turns path into a clean absolute path, relative to the active tab.
func (s *Session) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	base := s.home
	if tab := s.CurrentTab(); tab != nil {
		base = tab.path
	}
	return filepath.Join(base, path)
}

// Status returns the current status line.
func (s *Session) Status() Status { return s.status }

// SetStatus replaces the status line with an informational message.
func (s *Session) SetStatus(format string, args ...interface{}) {
	s.status = Status{Text: fmt.Sprintf(format, args...)}
}

// SetError replaces the status line with err.
func (s *Session) SetError(err error) {
	if err == nil {
		return
	}
	s.status = Status{Text: err.Error(), Error: true}
}

// ClearStatus empties the status line.
func (s *Session) ClearStatus() { s.status = Status{} }

// RequestPrompt asks the UI to open the console.
func (s *Session) RequestPrompt(text string, cursor int) {
	s.prompt = &PromptRequest{Text: text, Cursor: cursor}
}

// TakePromptRequest returns and clears a pending prompt request.
func (s *Session) TakePromptRequest() (PromptRequest, bool) {
	if s.prompt == nil {
		return PromptRequest{}, false
	}
	req := *s.prompt
	s.prompt = nil
	return req, true
}

func (s *Session) Search() string           { return s.search }
func (s *Session) SetSearch(pattern string) { s.search = pattern }

// Open hands paths to the configured opener.
func (s *Session) Open(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if s.opener == nil {
		return errors.New("no opener configured")
	}
	return s.opener(paths)
}

// ErrBusy is returned by RequestQuit while operations are still running.
var ErrBusy = errors.New("operations in progress")

// RequestQuit marks the session for exit. Without force it refuses while file
// operations are in flight.
func (s *Session) RequestQuit(force bool) error {
	if !force && s.Busy() {
		return fmt.Errorf("%w (%d running); use force_quit to exit anyway", ErrBusy, len(s.tasks))
	}
	s.quit = true
	events.App.Exit(force, len(s.tasks))
	return nil
}

// Quitting reports whether exit was requested.
func (s *Session) Quitting() bool { return s.quit }
