package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tabfm/internal/command"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.prompting {
		return m.handlePromptKey(keyMsg)
	}
	res := m.resolver.Feed(keyMsg.String())
	switch res.Outcome {
	case command.Pending:
		m.chord = res.Options
		m.chordKeys = res.Keys
	case command.Aborted:
		m.clearChord()
	case command.Unknown:
		m.clearChord()
		m.bus.ReportUnknown(m.session, res.Keys)
	case command.Execute:
		m.clearChord()
		m.session.ClearStatus()
		_ = m.bus.Execute(m.session, m.view(), res.Command)
		m.panelsDirty = true
	}
	return nil
}

func (m *Model) clearChord() {
	m.chord = nil
	m.chordKeys = nil
}
