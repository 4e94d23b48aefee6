package command

import (
	"github.com/atomicstack/tabfm/internal/fileop"
	"github.com/atomicstack/tabfm/internal/session"
)

type yank struct {
	cut bool
}

func (y yank) Name() string {
	if y.cut {
		return "cut_files"
	}
	return "copy_files"
}

func (y yank) String() string { return y.Name() }

func (y yank) Execute(s *session.Session, _ View) error {
	kind := fileop.Copy
	if y.cut {
		kind = fileop.Move
	}
	n, err := s.SetClipboard(kind)
	if err != nil {
		return err
	}
	s.SetStatus("%s: %d item(s) on clipboard", y.Name(), n)
	return nil
}

type paste struct {
	opts fileop.Options
}

func newPaste(name string, args []string) (Command, error) {
	var p paste
	for _, arg := range args {
		switch arg {
		case "--overwrite":
			p.opts.Overwrite = true
		case "--skip_exist":
			p.opts.SkipExisting = true
		default:
			return nil, argErrorf(name, "unknown option %s", arg)
		}
	}
	return p, nil
}

func (paste) Name() string { return "paste_files" }

func (p paste) String() string {
	var args []string
	if p.opts.Overwrite {
		args = append(args, "--overwrite")
	}
	if p.opts.SkipExisting {
		args = append(args, "--skip_exist")
	}
	return commandLine("paste_files", args...)
}

// Execute queues a worker and returns at once; completion is picked up by
// the controller's operation polling.
func (p paste) Execute(s *session.Session, _ View) error {
	_, err := s.StartOperation(p.opts)
	return err
}
