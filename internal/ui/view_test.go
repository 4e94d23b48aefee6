package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestViewFillsTerminal(t *testing.T) {
	h := newTestModel(t, newMemWorkspace(t, "a.txt"), "/work")
	lines := strings.Split(h.View(), "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 80 {
			t.Fatalf("line %d is %d cells wide: %q", i, w, ansi.Strip(line))
		}
	}
	if !strings.Contains(lines[1], "/work") {
		t.Fatalf("expected path header, got %q", lines[1])
	}
}

func TestViewShowsFilePreview(t *testing.T) {
	h := newTestModel(t, newMemWorkspace(t, "a.txt"), "/work")
	view := h.View()
	if !strings.Contains(view, "a.txt contents") {
		t.Fatalf("expected file contents in the preview column:\n%s", view)
	}
	if !strings.Contains(view, "14 B") {
		t.Fatalf("expected humanized size:\n%s", view)
	}
}

func TestViewShowsStatusErrors(t *testing.T) {
	h := newTestModel(t, newMemWorkspace(t), "/work")
	h.Keys(":")
	h.Type("cd /missing")
	h.Keys("enter")
	lines := strings.Split(h.View(), "\n")
	status := lines[len(lines)-2]
	if !strings.Contains(status, "missing") {
		t.Fatalf("expected the cd error on the status line, got %q", status)
	}
}

func TestWindowResizeChangesRows(t *testing.T) {
	m := newTestModel(t, newMemWorkspace(t), "/work").Model()
	m.fixedWidth, m.fixedHeight = false, false
	h := NewHarness(m)
	h.Send(tea.WindowSizeMsg{Width: 40, Height: 8})
	if got := m.listRows(); got != 4 {
		t.Fatalf("expected 4 list rows, got %d", got)
	}
	lines := strings.Split(h.View(), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d", len(lines))
	}
	if w := ansi.StringWidth(lines[2]); w != 40 {
		t.Fatalf("expected 40-cell rows, got %d", w)
	}
}

func TestColumnWidthsFollowRatio(t *testing.T) {
	m := newTestModel(t, newMemWorkspace(t), "/work").Model()
	left, mid, right := m.columnWidths(80)
	if left != 9 || mid != 29 || right != 40 {
		t.Fatalf("unexpected widths %d/%d/%d", left, mid, right)
	}
}
