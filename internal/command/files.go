package command

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/afero"

	"github.com/atomicstack/tabfm/internal/session"
)

type rename struct {
	to string
}

func newRename(name string, args []string) (Command, error) {
	if len(args) != 1 {
		return nil, argErrorf(name, "expected 1 argument, got %d", len(args))
	}
	if args[0] == "" {
		return nil, argErrorf(name, "empty file name")
	}
	return rename{to: args[0]}, nil
}

func (rename) Name() string     { return "rename" }
func (r rename) String() string { return commandLine("rename", r.to) }

// Execute renames the entry under the cursor. The new name is resolved
// against the listed directory, never the process working directory.
func (r rename) Execute(s *session.Session, _ View) error {
	list := s.Current()
	if list == nil {
		return nil
	}
	cur, ok := list.Current()
	if !ok {
		return errors.New("nothing to rename")
	}
	target := r.to
	if !filepath.IsAbs(target) {
		target = filepath.Join(list.Path(), target)
	}
	if target == cur.Path() {
		return nil
	}
	exists, err := afero.Exists(s.Fs(), target)
	if err != nil {
		return fmt.Errorf("rename %s: %w", cur.Name(), err)
	}
	if exists {
		return &fs.PathError{Op: "rename", Path: target, Err: fs.ErrExist}
	}
	if err := s.Fs().Rename(cur.Path(), target); err != nil {
		return fmt.Errorf("rename %s: %w", cur.Name(), err)
	}
	if err := s.ReloadCurrent(); err != nil {
		return err
	}
	if idx := list.IndexOfPath(target); idx >= 0 {
		list.SetIndex(idx)
	}
	return nil
}

type renamePrompt struct {
	prepend bool
}

func (r renamePrompt) Name() string {
	if r.prepend {
		return "rename_prepend"
	}
	return "rename_append"
}

func (r renamePrompt) String() string { return r.Name() }

// Execute opens the console with "rename <name>" prefilled. Appending puts
// the cursor before the extension, prepending right before the name.
func (r renamePrompt) Execute(s *session.Session, _ View) error {
	list := s.Current()
	if list == nil {
		return nil
	}
	cur, ok := list.Current()
	if !ok {
		return errors.New("nothing to rename")
	}
	prefix := "rename "
	quoted := shellquote.Join(cur.Name())
	text := prefix + quoted
	cursor := utf8.RuneCountInString(prefix)
	if !r.prepend {
		cursor = utf8.RuneCountInString(text)
		ext := filepath.Ext(cur.Name())
		if ext != "" && ext != cur.Name() && strings.HasSuffix(quoted, ext) {
			cursor -= utf8.RuneCountInString(ext)
		}
	}
	s.RequestPrompt(text, cursor)
	return nil
}

type mkdir struct {
	paths []string
}

func newMkdir(name string, args []string) (Command, error) {
	if len(args) == 0 {
		return nil, argErrorf(name, "requires at least one directory name")
	}
	return mkdir{paths: append([]string(nil), args...)}, nil
}

func (mkdir) Name() string     { return "mkdir" }
func (m mkdir) String() string { return commandLine("mkdir", m.paths...) }

func (m mkdir) Execute(s *session.Session, _ View) error {
	for _, p := range m.paths {
		if err := s.Fs().MkdirAll(s.Resolve(p), 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", p, err)
		}
	}
	return s.ReloadCurrent()
}

type deleteFiles struct{}

func (deleteFiles) Name() string   { return "delete_files" }
func (deleteFiles) String() string { return "delete_files" }

// Execute removes the selected paths and marks every cached listing stale,
// since any of them may have shown what was removed.
func (deleteFiles) Execute(s *session.Session, _ View) error {
	list := s.Current()
	if list == nil {
		return nil
	}
	paths := list.SelectedPaths()
	if len(paths) == 0 {
		return errors.New("nothing selected")
	}
	var failed error
	removed := 0
	for _, p := range paths {
		if err := s.Fs().RemoveAll(p); err != nil {
			failed = errors.Join(failed, fmt.Errorf("delete %s: %w", p, err))
			continue
		}
		removed++
	}
	if err := s.DepreciateAll(); err != nil {
		failed = errors.Join(failed, err)
	}
	if failed != nil {
		return failed
	}
	s.SetStatus("deleted %d item(s)", removed)
	return nil
}

type selectFiles struct {
	toggle bool
	all    bool
}

func newSelectFiles(name string, args []string) (Command, error) {
	var c selectFiles
	for _, arg := range args {
		switch arg {
		case "--toggle":
			c.toggle = true
		case "--all":
			c.all = true
		default:
			return nil, argErrorf(name, "unknown option %s", arg)
		}
	}
	return c, nil
}

func (selectFiles) Name() string { return "select_files" }

func (c selectFiles) String() string {
	var args []string
	if c.toggle {
		args = append(args, "--toggle")
	}
	if c.all {
		args = append(args, "--all")
	}
	return commandLine("select_files", args...)
}

// Execute selects (or toggles) the entry under the cursor and steps down, or
// applies the same to every entry with --all.
func (c selectFiles) Execute(s *session.Session, v View) error {
	list := s.Current()
	if list == nil {
		return nil
	}
	if c.all {
		list.SelectAll(c.toggle)
		return nil
	}
	idx, ok := list.Index()
	if !ok {
		return nil
	}
	if c.toggle {
		list.ToggleCurrent()
	} else {
		list.SetSelected(idx, true)
	}
	list.MoveCursorBy(1)
	list.EnsureCursorVisible(v.Rows)
	return nil
}
