package command

import (
	"errors"
	"testing"
)

func TestFromArgsValidatesArity(t *testing.T) {
	cases := []struct {
		name string
		args []string
		ok   bool
	}{
		{"quit", nil, true},
		{"quit", []string{"now"}, false},
		{"cursor_move_down", []string{"3"}, true},
		{"cursor_move_down", []string{"-3"}, false},
		{"cursor_move_up", []string{"1", "2"}, false},
		{"tab_switch", []string{"-1"}, true},
		{"tab_switch", []string{"x"}, false},
		{"tab_switch", nil, false},
		{"mkdir", nil, false},
		{"mkdir", []string{"a", "b"}, true},
		{"rename", []string{"new"}, true},
		{"rename", nil, false},
		{"paste_files", []string{"--overwrite", "--skip_exist"}, true},
		{"paste_files", []string{"--force"}, false},
		{"select_files", []string{"--toggle", "--all"}, true},
		{"select_files", []string{"--bogus"}, false},
		{"search", []string{"foo"}, true},
		{"search", nil, false},
		{"console", []string{"search "}, true},
		{"cd", []string{"a", "b"}, false},
	}
	for _, tc := range cases {
		_, err := FromArgs(tc.name, tc.args)
		if tc.ok && err != nil {
			t.Fatalf("%s %v: unexpected error %v", tc.name, tc.args, err)
		}
		if !tc.ok {
			var argErr *ArgError
			if !errors.As(err, &argErr) {
				t.Fatalf("%s %v: expected ArgError, got %v", tc.name, tc.args, err)
			}
			if argErr.Command != tc.name {
				t.Fatalf("expected error attributed to %s, got %q", tc.name, argErr.Command)
			}
		}
	}
}

func TestFromArgsUnknownName(t *testing.T) {
	_, err := FromArgs("frobnicate", nil)
	var argErr *ArgError
	if !errors.As(err, &argErr) || argErr.Command != "" {
		t.Fatalf("expected ArgError without command, got %v", err)
	}
}

func TestChangeDirectoryArguments(t *testing.T) {
	orig := userHomeDir
	t.Cleanup(func() { userHomeDir = orig })
	userHomeDir = func() (string, error) { return "/home/tester", nil }

	cmd, err := FromArgs("cd", nil)
	if err != nil {
		t.Fatalf("cd: %v", err)
	}
	if got := cmd.(changeDirectory).path; got != "/home/tester" {
		t.Fatalf("expected home, got %q", got)
	}
	cmd, err = FromArgs("cd", []string{"~/src"})
	if err != nil {
		t.Fatalf("cd ~/src: %v", err)
	}
	if got := cmd.(changeDirectory).path; got != "/home/tester/src" {
		t.Fatalf("expected expanded home, got %q", got)
	}
	cmd, err = FromArgs("cd", []string{".."})
	if err != nil {
		t.Fatalf("cd ..: %v", err)
	}
	if cmd.Name() != "parent_directory" {
		t.Fatalf("expected cd .. to become parent_directory, got %s", cmd.Name())
	}

	userHomeDir = func() (string, error) { return "", errors.New("no home") }
	if _, err := FromArgs("cd", nil); err == nil {
		t.Fatalf("expected error without a home directory")
	}
}

func TestParseHonoursQuoting(t *testing.T) {
	cmd, err := Parse(`rename 'my file.txt'`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := cmd.(rename).to; got != "my file.txt" {
		t.Fatalf("expected quoted argument kept whole, got %q", got)
	}
	if _, err := Parse(`rename 'unterminated`); err == nil {
		t.Fatalf("expected error for unterminated quote")
	}
	if _, err := Parse("   "); err == nil {
		t.Fatalf("expected error for empty line")
	}
}

func TestCommandStringRoundTrips(t *testing.T) {
	for _, line := range []string{"cursor_move_down 5", "paste_files --overwrite", "tab_switch -1", "mkdir a b", "quit"} {
		cmd, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse %q: %v", line, err)
		}
		if cmd.String() != line {
			t.Fatalf("expected %q, got %q", line, cmd.String())
		}
	}
}
