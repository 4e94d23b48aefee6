package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tabfm/internal/backend"
	"github.com/atomicstack/tabfm/internal/listing"
	"github.com/atomicstack/tabfm/internal/logging"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		logging.Error(evt.Err)
		return
	}
	if err := m.session.NoteExternalChange(evt.Dir); err != nil {
		m.session.SetError(err)
	}
	m.panelsDirty = true
}

// syncWatch points the watcher at the directories on screen.
func (m *Model) syncWatch() {
	if m.backend == nil {
		return
	}
	var dirs []string
	if tab := m.session.CurrentTab(); tab != nil {
		dirs = append(dirs, tab.Path())
	}
	for _, l := range []*listing.Listing{m.panels.parent, m.panels.preview} {
		if l != nil {
			dirs = append(dirs, l.Path())
		}
	}
	key := strings.Join(dirs, "\x00")
	if key == m.watching {
		return
	}
	m.watching = key
	if err := m.backend.Watch(dirs...); err != nil {
		logging.Error(err)
	}
}
