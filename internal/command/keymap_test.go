package command

import (
	"reflect"
	"testing"
)

func mustCommand(t *testing.T, name string, args ...string) Command {
	t.Helper()
	cmd, err := FromArgs(name, args)
	if err != nil {
		t.Fatalf("FromArgs %s: %v", name, err)
	}
	return cmd
}

func TestBindRejectsConflicts(t *testing.T) {
	km := NewKeymap()
	if err := km.Bind([]string{"g", "g"}, mustCommand(t, "cursor_move_home")); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := km.Bind([]string{"g"}, mustCommand(t, "quit")); err == nil {
		t.Fatalf("expected binding onto a composite to fail")
	}
	if err := km.Bind([]string{"g", "g", "x"}, mustCommand(t, "quit")); err == nil {
		t.Fatalf("expected binding through a leaf to fail")
	}
	if err := km.Bind([]string{"esc"}, mustCommand(t, "quit")); err == nil {
		t.Fatalf("expected escape to be unbindable")
	}
	if err := km.Bind([]string{" "}, mustCommand(t, "select_files")); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if _, ok := km.Lookup("space"); !ok {
		t.Fatalf("expected space to be normalised")
	}
}

func TestResolverWalksChords(t *testing.T) {
	km := NewKeymap()
	_ = km.Bind([]string{"g", "g"}, mustCommand(t, "cursor_move_home"))
	_ = km.Bind([]string{"g", "h"}, mustCommand(t, "cd", "/home"))
	_ = km.Bind([]string{"q"}, mustCommand(t, "quit"))
	r := NewResolver(km)

	res := r.Feed("g")
	if res.Outcome != Pending {
		t.Fatalf("expected pending, got %v", res.Outcome)
	}
	want := []Option{{Key: "g", Label: "cursor_move_home"}, {Key: "h", Label: "cd /home"}}
	if !reflect.DeepEqual(res.Options, want) {
		t.Fatalf("expected options %v, got %v", want, res.Options)
	}
	res = r.Feed("g")
	if res.Outcome != Execute || res.Command.Name() != "cursor_move_home" {
		t.Fatalf("expected cursor_move_home, got %+v", res)
	}
	if r.Pending() {
		t.Fatalf("expected resolver reset after execute")
	}
	if res := r.Feed("q"); res.Outcome != Execute {
		t.Fatalf("expected single-key binding to execute, got %v", res.Outcome)
	}
}

func TestResolverAbortAndUnknown(t *testing.T) {
	km := NewKeymap()
	_ = km.Bind([]string{"g", "g"}, mustCommand(t, "cursor_move_home"))
	r := NewResolver(km)

	r.Feed("g")
	if res := r.Feed("esc"); res.Outcome != Aborted || res.Command != nil {
		t.Fatalf("expected abort, got %+v", res)
	}
	if r.Pending() {
		t.Fatalf("expected reset after abort")
	}
	if res := r.Feed("esc"); res.Outcome != Aborted {
		t.Fatalf("expected abort at the root too, got %v", res.Outcome)
	}

	r.Feed("g")
	res := r.Feed("z")
	if res.Outcome != Unknown || !reflect.DeepEqual(res.Keys, []string{"g", "z"}) {
		t.Fatalf("expected unknown g z, got %+v", res)
	}
	if r.Pending() {
		t.Fatalf("expected reset after unknown input")
	}
	if res := r.Feed("x"); res.Outcome != Unknown || len(res.Keys) != 1 {
		t.Fatalf("expected unknown at root, got %+v", res)
	}
}

func TestDefaultKeymapBuilds(t *testing.T) {
	orig := userHomeDir
	t.Cleanup(func() { userHomeDir = orig })
	userHomeDir = func() (string, error) { return "/home/tester", nil }

	km, err := DefaultKeymap()
	if err != nil {
		t.Fatalf("DefaultKeymap: %v", err)
	}
	node, ok := km.Lookup("p", "o")
	if !ok || !node.Leaf() || node.Command.String() != "paste_files --overwrite" {
		t.Fatalf("expected po bound to paste_files --overwrite")
	}
}
