package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type pollTickMsg struct{}

func pollTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return pollTickMsg{} })
}

// ensurePolling schedules the first tick once operations are running. While
// idle nothing is scheduled, so the program only wakes for input.
func (m *Model) ensurePolling() tea.Cmd {
	if m.polling || !m.session.Busy() {
		return nil
	}
	m.polling = true
	return pollTick(m.pollInterval)
}

func (m *Model) handlePollTickMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(pollTickMsg); !ok {
		return nil
	}
	m.polling = false
	if evs := m.session.PollOperations(m.pollTimeout); len(evs) > 0 {
		for _, ev := range evs {
			if ev.Finished {
				m.panelsDirty = true
			}
		}
	}
	return nil
}
