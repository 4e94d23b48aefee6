package command

import (
	"unicode/utf8"

	"github.com/atomicstack/tabfm/internal/session"
)

type console struct {
	text string
}

func newConsole(name string, args []string) (Command, error) {
	switch len(args) {
	case 0:
		return console{}, nil
	case 1:
		return console{text: args[0]}, nil
	}
	return nil, argErrorf(name, "expected 0 or 1 arguments, got %d", len(args))
}

func (console) Name() string { return "console" }

func (c console) String() string {
	if c.text == "" {
		return "console"
	}
	return commandLine("console", c.text)
}

func (c console) Execute(s *session.Session, _ View) error {
	s.RequestPrompt(c.text, utf8.RuneCountInString(c.text))
	return nil
}

type reload struct{}

func (reload) Name() string   { return "reload_dir_list" }
func (reload) String() string { return "reload_dir_list" }

func (reload) Execute(s *session.Session, _ View) error {
	return s.ReloadCurrent()
}

type toggleHidden struct{}

func (toggleHidden) Name() string   { return "toggle_hidden" }
func (toggleHidden) String() string { return "toggle_hidden" }

func (toggleHidden) Execute(s *session.Session, _ View) error {
	opts := s.Options()
	opts.ShowHidden = !opts.ShowHidden
	if err := s.SetOptions(opts); err != nil {
		return err
	}
	if opts.ShowHidden {
		s.SetStatus("showing hidden files")
	} else {
		s.SetStatus("hiding hidden files")
	}
	return nil
}

type quit struct {
	force bool
}

func (q quit) Name() string {
	if q.force {
		return "force_quit"
	}
	return "quit"
}

func (q quit) String() string { return q.Name() }

func (q quit) Execute(s *session.Session, _ View) error {
	return s.RequestQuit(q.force)
}
