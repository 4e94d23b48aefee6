package command

import (
	"strconv"

	"github.com/atomicstack/tabfm/internal/session"
)

type tabSwitch struct {
	delta int
}

func newTabSwitch(name string, args []string) (Command, error) {
	if len(args) != 1 {
		return nil, argErrorf(name, "expected 1 argument, got %d", len(args))
	}
	n, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return nil, argErrorf(name, "invalid offset %q", args[0])
	}
	return tabSwitch{delta: int(n)}, nil
}

func (tabSwitch) Name() string     { return "tab_switch" }
func (t tabSwitch) String() string { return commandLine("tab_switch", strconv.Itoa(t.delta)) }

func (t tabSwitch) Execute(s *session.Session, _ View) error {
	return s.MoveTab(t.delta)
}

type newTab struct{}

func (newTab) Name() string   { return "new_tab" }
func (newTab) String() string { return "new_tab" }

// Execute opens a tab on the current directory.
func (newTab) Execute(s *session.Session, _ View) error {
	path := s.Home()
	if tab := s.CurrentTab(); tab != nil {
		path = tab.Path()
	}
	return s.OpenTab(path)
}

type closeTab struct{}

func (closeTab) Name() string   { return "close_tab" }
func (closeTab) String() string { return "close_tab" }

func (closeTab) Execute(s *session.Session, _ View) error {
	return s.CloseTab()
}
