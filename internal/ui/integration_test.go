package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/atomicstack/tabfm/internal/testutil"
)

func TestCopyThroughKeysCompletesWithPolling(t *testing.T) {
	root := testutil.TempTree(t, testutil.Tree{
		"src/report.txt": "quarterly",
		"dst/":           "",
	})
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")
	h := newTestModel(t, afero.NewOsFs(), src)
	h.Keys("y", "y")
	if clip := h.Model().Session().Clipboard(); clip == nil || len(clip.Paths) != 1 {
		t.Fatalf("expected one path on the clipboard, got %#v", clip)
	}
	h.Keys(":")
	h.Type("cd " + dst)
	h.Keys("enter")
	h.Keys("p", "p")

	m := h.Model()
	if m.Session().Busy() {
		t.Fatalf("expected the harness to poll until the copy finished")
	}
	data, err := os.ReadFile(filepath.Join(dst, "report.txt"))
	if err != nil || string(data) != "quarterly" {
		t.Fatalf("expected copied file, got %q, %v", data, err)
	}
	if m.Session().Current().IndexOfName("report.txt") < 0 {
		t.Fatalf("expected the destination listing to be reloaded")
	}
	if status := m.Session().Status(); status.Error || !strings.Contains(status.Text, "complete") {
		t.Fatalf("unexpected status %#v", status)
	}
}

func TestCopyOntoItselfLeavesErrorOnStatusLine(t *testing.T) {
	root := testutil.TempTree(t, testutil.Tree{"a.txt": "a"})
	h := newTestModel(t, afero.NewOsFs(), root)
	h.Keys("y", "y", "p", "p")
	status := h.Model().Session().Status()
	if !status.Error {
		t.Fatalf("expected copying a file onto itself to fail, got %#v", status)
	}
}
