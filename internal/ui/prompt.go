package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tabfm/internal/command"
)

func (m *Model) openPrompt(text string, cursor int) {
	m.clearChord()
	m.resolver.Reset()
	m.prompting = true
	m.prompt.SetValue(text)
	m.prompt.SetCursor(cursor)
	m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
	m.prompt.Reset()
}

// handlePromptKey owns every key while the console is open. Enter runs the
// line through the command bus, escape discards it, tab completes the command
// name.
func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		line := m.prompt.Value()
		m.closePrompt()
		m.session.ClearStatus()
		_ = m.bus.ExecuteLine(m.session, m.view(), line)
		m.panelsDirty = true
		return nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.closePrompt()
		return nil
	case tea.KeyTab:
		m.completeCommandName()
		return nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

// completeCommandName extends a lone first word to the longest prefix shared
// by the commands it could start. A unique match gets a trailing space.
func (m *Model) completeCommandName() {
	word := m.prompt.Value()
	if strings.ContainsAny(word, " \t") {
		return
	}
	var matches []string
	for _, name := range command.Names() {
		if strings.HasPrefix(name, word) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return
	}
	prefix := matches[0]
	for _, name := range matches[1:] {
		for !strings.HasPrefix(name, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	if len(matches) == 1 {
		prefix += " "
	}
	m.prompt.SetValue(prefix)
	m.prompt.CursorEnd()
}
