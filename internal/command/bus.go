package command

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tabfm/internal/logging/events"
	"github.com/atomicstack/tabfm/internal/session"
)

// Bus runs commands on the controller goroutine and routes their errors to
// the status line.
type Bus struct{}

// NewBus initialises a command bus instance.
func NewBus() *Bus {
	return &Bus{}
}

// Execute runs cmd while emitting trace logs. A failure becomes exactly one
// status-line message and is also returned to the caller.
func (b *Bus) Execute(s *session.Session, v View, cmd Command) error {
	if cmd == nil {
		return nil
	}
	label := cmd.String()
	events.Command.Queue(cmd.Name(), label)
	err := cmd.Execute(s, v)
	events.Command.Result(cmd.Name(), label, err)
	if err != nil {
		s.SetError(err)
	}
	return err
}

// ExecuteLine parses a console line and runs it.
func (b *Bus) ExecuteLine(s *session.Session, v View, line string) error {
	events.Command.Console(line)
	cmd, err := Parse(line)
	if err != nil {
		s.SetError(err)
		return err
	}
	return b.Execute(s, v, cmd)
}

// ReportUnknown puts the single "unknown input" message on the status line.
func (b *Bus) ReportUnknown(s *session.Session, keys []string) {
	s.SetError(fmt.Errorf("unknown input: %s", strings.Join(keys, " ")))
}
