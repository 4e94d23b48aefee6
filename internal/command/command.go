// Package command turns keystrokes and console lines into validated commands
// and executes them against a session.
package command

import (
	"fmt"
	"sort"

	"github.com/kballard/go-shellquote"

	"github.com/atomicstack/tabfm/internal/session"
)

// View is the read-only geometry commands may consult, e.g. for paging.
type View struct {
	Rows int
	Cols int
}

// Command is an executable action. Arguments are validated when the command
// is built, never at execution time.
type Command interface {
	Name() string
	String() string
	Execute(s *session.Session, v View) error
}

// ArgError reports a command that could not be built from its arguments.
// Command is empty when the name itself is unknown.
type ArgError struct {
	Command string
	Reason  string
}

func (e *ArgError) Error() string {
	if e.Command == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

func argErrorf(name, format string, args ...interface{}) *ArgError {
	return &ArgError{Command: name, Reason: fmt.Sprintf(format, args...)}
}

type constructor func(name string, args []string) (Command, error)

var constructors = map[string]constructor{
	"cd":                    newChangeDirectory,
	"parent_directory":      noArgs(func() Command { return parentDirectory{} }),
	"open_file":             noArgs(func() Command { return openFile{} }),
	"cursor_move_up":        newCursorStep(-1),
	"cursor_move_down":      newCursorStep(1),
	"cursor_move_home":      noArgs(func() Command { return cursorJump{name: "cursor_move_home"} }),
	"cursor_move_end":       noArgs(func() Command { return cursorJump{name: "cursor_move_end"} }),
	"cursor_move_page_up":   noArgs(func() Command { return cursorJump{name: "cursor_move_page_up"} }),
	"cursor_move_page_down": noArgs(func() Command { return cursorJump{name: "cursor_move_page_down"} }),
	"rename":                newRename,
	"rename_append":         noArgs(func() Command { return renamePrompt{} }),
	"rename_prepend":        noArgs(func() Command { return renamePrompt{prepend: true} }),
	"console":               newConsole,
	"tab_switch":            newTabSwitch,
	"new_tab":               noArgs(func() Command { return newTab{} }),
	"close_tab":             noArgs(func() Command { return closeTab{} }),
	"select_files":          newSelectFiles,
	"copy_files":            noArgs(func() Command { return yank{} }),
	"cut_files":             noArgs(func() Command { return yank{cut: true} }),
	"paste_files":           newPaste,
	"delete_files":          noArgs(func() Command { return deleteFiles{} }),
	"mkdir":                 newMkdir,
	"reload_dir_list":       noArgs(func() Command { return reload{} }),
	"toggle_hidden":         noArgs(func() Command { return toggleHidden{} }),
	"search":                newSearch,
	"search_next":           noArgs(func() Command { return searchRepeat{} }),
	"search_prev":           noArgs(func() Command { return searchRepeat{backwards: true} }),
	"quit":                  noArgs(func() Command { return quit{} }),
	"force_quit":            noArgs(func() Command { return quit{force: true} }),
}

// FromArgs builds the command called name. Every failure is an *ArgError.
func FromArgs(name string, args []string) (Command, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, &ArgError{Reason: fmt.Sprintf("unknown command %q", name)}
	}
	return ctor(name, args)
}

// Parse splits a console line with shell quoting rules and builds the command.
func Parse(line string) (Command, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, &ArgError{Reason: err.Error()}
	}
	if len(words) == 0 {
		return nil, &ArgError{Reason: "empty command"}
	}
	return FromArgs(words[0], words[1:])
}

// Names lists every known command name in order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func noArgs(build func() Command) constructor {
	return func(name string, args []string) (Command, error) {
		if len(args) != 0 {
			return nil, argErrorf(name, "expected no arguments, got %d", len(args))
		}
		return build(), nil
	}
}

func commandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + shellquote.Join(args...)
}
