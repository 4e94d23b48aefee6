package command

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/tabfm/internal/session"
)

var userHomeDir = os.UserHomeDir

type changeDirectory struct {
	path string
}

func newChangeDirectory(name string, args []string) (Command, error) {
	switch len(args) {
	case 0:
		home, err := userHomeDir()
		if err != nil || home == "" {
			return nil, argErrorf(name, "cannot find home directory")
		}
		return changeDirectory{path: home}, nil
	case 1:
		if args[0] == ".." {
			return parentDirectory{}, nil
		}
		path, err := expandHome(args[0])
		if err != nil {
			return nil, argErrorf(name, "%v", err)
		}
		return changeDirectory{path: path}, nil
	}
	return nil, argErrorf(name, "expected 0 or 1 arguments, got %d", len(args))
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := userHomeDir()
	if err != nil || home == "" {
		return "", errors.New("cannot find home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func (changeDirectory) Name() string     { return "cd" }
func (c changeDirectory) String() string { return commandLine("cd", c.path) }

func (c changeDirectory) Execute(s *session.Session, _ View) error {
	return s.ChangeDirectory(c.path)
}

type parentDirectory struct{}

func (parentDirectory) Name() string   { return "parent_directory" }
func (parentDirectory) String() string { return "parent_directory" }

func (parentDirectory) Execute(s *session.Session, _ View) error {
	return s.ParentDirectory()
}

type openFile struct{}

func (openFile) Name() string   { return "open_file" }
func (openFile) String() string { return "open_file" }

// Execute enters the directory under the cursor, or hands the selection to
// the opener.
func (openFile) Execute(s *session.Session, _ View) error {
	list := s.Current()
	if list == nil {
		return nil
	}
	cur, ok := list.Current()
	if !ok {
		return nil
	}
	if cur.IsDir() {
		return s.ChangeDirectory(cur.Path())
	}
	return s.Open(list.SelectedPaths())
}

type cursorStep struct {
	name  string
	delta int
}

func newCursorStep(sign int) constructor {
	return func(name string, args []string) (Command, error) {
		switch len(args) {
		case 0:
			return cursorStep{name: name, delta: sign}, nil
		case 1:
			n, err := strconv.ParseUint(args[0], 10, 31)
			if err != nil {
				return nil, argErrorf(name, "invalid count %q", args[0])
			}
			return cursorStep{name: name, delta: sign * int(n)}, nil
		}
		return nil, argErrorf(name, "expected 0 or 1 arguments, got %d", len(args))
	}
}

func (c cursorStep) Name() string { return c.name }

func (c cursorStep) String() string {
	n := c.delta
	if n < 0 {
		n = -n
	}
	if n == 1 {
		return c.name
	}
	return commandLine(c.name, strconv.Itoa(n))
}

func (c cursorStep) Execute(s *session.Session, v View) error {
	if list := s.Current(); list != nil {
		list.MoveCursorBy(c.delta)
		list.EnsureCursorVisible(v.Rows)
	}
	return nil
}

type cursorJump struct {
	name string
}

func (c cursorJump) Name() string   { return c.name }
func (c cursorJump) String() string { return c.name }

func (c cursorJump) Execute(s *session.Session, v View) error {
	list := s.Current()
	if list == nil {
		return nil
	}
	switch c.name {
	case "cursor_move_home":
		list.MoveCursorHome()
	case "cursor_move_end":
		list.MoveCursorEnd()
	case "cursor_move_page_up":
		list.MoveCursorPageUp(v.Rows)
	case "cursor_move_page_down":
		list.MoveCursorPageDown(v.Rows)
	}
	list.EnsureCursorVisible(v.Rows)
	return nil
}
