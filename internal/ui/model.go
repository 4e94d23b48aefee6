package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/atomicstack/tabfm/internal/backend"
	"github.com/atomicstack/tabfm/internal/command"
	"github.com/atomicstack/tabfm/internal/session"
	"github.com/atomicstack/tabfm/internal/theme"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	defaultPollTimeout  = 5 * time.Millisecond
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configure a Model.
type Options struct {
	Keymap       *command.Keymap
	Watcher      *backend.Watcher
	ColumnRatio  []int
	PollInterval time.Duration
	PollTimeout  time.Duration
	Width        int
	Height       int
}

// Model implements the Bubble Tea model for the file manager.
type Model struct {
	session  *session.Session
	resolver *command.Resolver
	bus      *command.Bus
	backend  *backend.Watcher
	watching string

	prompt    textinput.Model
	prompting bool
	chord     []command.Option
	chordKeys []string

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	ratio       [3]int

	pollInterval time.Duration
	pollTimeout  time.Duration
	polling      bool

	panelsDirty bool
	stripDirty  bool
	tabStrip    string
	panels      panels

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the model around s and registers it as the session's
// renderer.
func NewModel(s *session.Session, opts Options) *Model {
	km := opts.Keymap
	if km == nil {
		km = command.NewKeymap()
	}
	m := &Model{
		session:      s,
		resolver:     command.NewResolver(km),
		bus:          command.NewBus(),
		backend:      opts.Watcher,
		ratio:        [3]int{1, 3, 4},
		pollInterval: opts.PollInterval,
		pollTimeout:  opts.PollTimeout,
		panelsDirty:  true,
		stripDirty:   true,
	}
	if len(opts.ColumnRatio) == 3 {
		copy(m.ratio[:], opts.ColumnRatio)
	}
	if m.pollInterval <= 0 {
		m.pollInterval = defaultPollInterval
	}
	if m.pollTimeout <= 0 {
		m.pollTimeout = defaultPollTimeout
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.prompt = newPrompt()
	s.SetRenderer(m)
	m.registerHandlers()
	m.sync()
	return m
}

func newPrompt() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ":"
	ti.Cursor.SetMode(cursor.CursorStatic)
	if styles.Prompt != nil {
		ti.PromptStyle = *styles.Prompt
	}
	return ti
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(pollTickMsg{}):       m.handlePollTickMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate applies what every handler leaves behind: a quit request, a
// prompt request, the need to start polling, and stale panels.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.session.Quitting() {
		if m.backend != nil {
			m.backend.Stop()
		}
		return tea.Quit
	}
	if req, ok := m.session.TakePromptRequest(); ok {
		m.openPrompt(req.Text, req.Cursor)
	}
	if cmd := m.ensurePolling(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.sync()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// RefreshTab is part of session.Renderer.
func (m *Model) RefreshTab(uuid.UUID) { m.panelsDirty = true }

// RedrawTabStrip is part of session.Renderer.
func (m *Model) RedrawTabStrip() { m.stripDirty = true }

func (m *Model) view() command.View {
	return command.View{Rows: m.listRows(), Cols: m.width}
}

// Session exposes the session the model drives.
func (m *Model) Session() *session.Session { return m.session }
