package history

import (
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/tabfm/internal/listing"
	"github.com/spf13/afero"
)

func newTree(t *testing.T) listing.Source {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, dir := range []string{"/a/b/c", "/a/x", "/a/b/y"} {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	if err := afero.WriteFile(fs, "/a/b/c/file", []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return listing.Source{Fs: fs}
}

func currentName(t *testing.T, l *listing.Listing) string {
	t.Helper()
	cur, ok := l.Current()
	if !ok {
		t.Fatalf("expected a current entry in %s", l.Path())
	}
	return cur.Name()
}

func TestPopulateToRootPositionsAncestors(t *testing.T) {
	src := newTree(t)
	c := New()
	if err := c.PopulateToRoot(src, "/a/b/c"); err != nil {
		t.Fatalf("PopulateToRoot: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 ancestors cached, got %d", c.Len())
	}
	if c.Contains("/a/b/c") {
		t.Fatalf("target directory should not be populated")
	}
	cases := map[string]string{"/": "a", "/a": "b", "/a/b": "c"}
	for dir, want := range cases {
		l, ok := c.Peek(dir)
		if !ok {
			t.Fatalf("expected %s cached", dir)
		}
		if got := currentName(t, l); got != want {
			t.Fatalf("expected cursor on %q in %s, got %q", want, dir, got)
		}
	}
}

func TestPopulateToRootKeepsExistingEntries(t *testing.T) {
	src := newTree(t)
	c := New()
	existing, err := listing.New(src, "/a")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	existing.SetIndex(existing.IndexOfName("x"))
	c.Insert(existing)
	if err := c.PopulateToRoot(src, "/a/b/c"); err != nil {
		t.Fatalf("PopulateToRoot: %v", err)
	}
	l, _ := c.Peek("/a")
	if l != existing || currentName(t, l) != "x" {
		t.Fatalf("expected existing /a listing untouched")
	}
}

func TestPopulateToRootFailureInsertsNothing(t *testing.T) {
	c := New()
	if err := c.PopulateToRoot(newTree(t), "/missing/deeper/leaf"); err == nil {
		t.Fatalf("expected error for missing ancestor")
	}
	if c.Len() != 0 {
		t.Fatalf("expected nothing cached after failure, got %d", c.Len())
	}
}

func TestPopOrCreateRoundTrip(t *testing.T) {
	src := newTree(t)
	c := New()
	l, err := c.PopOrCreate(src, "/a/b")
	if err != nil {
		t.Fatalf("PopOrCreate: %v", err)
	}
	if c.Contains("/a/b") || !c.CheckedOut("/a/b") {
		t.Fatalf("expected /a/b checked out")
	}
	if _, err := c.PopOrCreate(src, "/a/b"); !errors.Is(err, ErrCheckedOut) {
		t.Fatalf("expected ErrCheckedOut, got %v", err)
	}
	if _, err := c.GetOrCreate(src, "/a/b"); !errors.Is(err, ErrCheckedOut) {
		t.Fatalf("expected GetOrCreate to refuse checked-out path, got %v", err)
	}
	l.SetIndex(1)
	c.Insert(l)
	again, err := c.PopOrCreate(src, "/a/b")
	if err != nil {
		t.Fatalf("PopOrCreate: %v", err)
	}
	if again != l {
		t.Fatalf("expected the same listing back")
	}
	if idx, _ := again.Index(); idx != 1 {
		t.Fatalf("expected cursor preserved, got %d", idx)
	}
}

func TestPopOrCreateRefreshesStaleListings(t *testing.T) {
	src := newTree(t)
	c := New()
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := src.Fs.Chtimes("/a/b", old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	l, err := c.PopOrCreate(src, "/a/b")
	if err != nil {
		t.Fatalf("PopOrCreate: %v", err)
	}
	c.Insert(l)

	if err := afero.WriteFile(src.Fs, "/a/b/new", nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := src.Fs.Chtimes("/a/b", old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	l, err = c.PopOrCreate(src, "/a/b")
	if err != nil {
		t.Fatalf("PopOrCreate: %v", err)
	}
	if l.IndexOfName("new") >= 0 {
		t.Fatalf("expected unchanged mtime to skip the re-scan")
	}
	c.Insert(l)

	newer := old.Add(time.Hour)
	if err := src.Fs.Chtimes("/a/b", newer, newer); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	l, err = c.PopOrCreate(src, "/a/b")
	if err != nil {
		t.Fatalf("PopOrCreate: %v", err)
	}
	if l.IndexOfName("new") < 0 {
		t.Fatalf("expected newer mtime to trigger a re-scan")
	}
	c.Insert(l)

	if err := afero.WriteFile(src.Fs, "/a/b/newer", nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := src.Fs.Chtimes("/a/b", newer, newer); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	c.DepreciateAll()
	l, err = c.PopOrCreate(src, "/a/b")
	if err != nil {
		t.Fatalf("PopOrCreate: %v", err)
	}
	if l.IndexOfName("newer") < 0 || l.NeedsUpdate() {
		t.Fatalf("expected depreciated listing to be re-scanned")
	}
}

func TestPopOrCreateFailureLeavesCache(t *testing.T) {
	src := newTree(t)
	c := New()
	l, err := c.PopOrCreate(src, "/a/x")
	if err != nil {
		t.Fatalf("PopOrCreate: %v", err)
	}
	c.Insert(l)
	c.Depreciate("/a/x")
	if err := src.Fs.RemoveAll("/a/x"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := c.PopOrCreate(src, "/a/x"); err == nil {
		t.Fatalf("expected error for removed directory")
	}
	if !c.Contains("/a/x") || c.CheckedOut("/a/x") {
		t.Fatalf("expected cached listing to stay checked in")
	}
	if _, err := c.PopOrCreate(src, "/nope"); err == nil {
		t.Fatalf("expected error for missing directory")
	}
	if c.CheckedOut("/nope") {
		t.Fatalf("failed build must not mark a path checked out")
	}
}

func TestTakeAndRelease(t *testing.T) {
	src := newTree(t)
	c := New()
	if _, ok := c.Take("/a"); ok {
		t.Fatalf("expected Take to miss on empty cache")
	}
	l, err := c.GetOrCreate(src, "/a")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	taken, ok := c.Take("/a/")
	if !ok || taken != l {
		t.Fatalf("expected Take to return the cached listing under a cleaned key")
	}
	c.Release("/a")
	if c.CheckedOut("/a") || c.Contains("/a") {
		t.Fatalf("expected released path to be neither cached nor checked out")
	}
}
