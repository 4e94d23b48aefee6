package listing

import "testing"

func TestMoveCursorHomeEnd(t *testing.T) {
	l, err := New(newTestSource(t, "a", "b", "c"), "/dir")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if idx, _ := l.Index(); idx != 2 {
		t.Fatalf("expected cursor 2, got %d", idx)
	}
	if !l.MoveCursorHome() {
		t.Fatalf("expected movement home")
	}
	if l.MoveCursorHome() {
		t.Fatalf("expected no movement when already home")
	}

	empty, err := New(newTestSource(t), "/dir")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if empty.MoveCursorEnd() || empty.MoveCursorBy(3) {
		t.Fatalf("expected no movement for empty listing")
	}
	if _, ok := empty.Index(); ok {
		t.Fatalf("expected empty listing to keep no cursor")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l, err := New(newTestSource(t, "a", "b", "c", "d", "e"), "/dir")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on first page down")
	}
	if idx, _ := l.Index(); idx != 2 {
		t.Fatalf("expected cursor 2, got %d", idx)
	}
	l.MoveCursorPageDown(2)
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(10) {
		t.Fatalf("expected movement back to start")
	}
	if idx, _ := l.Index(); idx != 0 {
		t.Fatalf("expected cursor at start, got %d", idx)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l, err := New(newTestSource(t, "a", "b", "c", "d", "e"), "/dir")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.SetIndex(4)
	l.EnsureCursorVisible(2)
	if l.Offset() != 3 {
		t.Fatalf("expected offset 3, got %d", l.Offset())
	}
	l.SetIndex(1)
	l.EnsureCursorVisible(3)
	if l.Offset() != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.Offset())
	}
	l.EnsureCursorVisible(0)
	if l.Offset() != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.Offset())
	}
}
