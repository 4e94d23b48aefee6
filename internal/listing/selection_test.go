package listing

import (
	"reflect"
	"testing"
)

func TestSelectedPathsFallsBackToCursor(t *testing.T) {
	l, err := New(newTestSource(t, "a", "b", "c"), "/dir")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.SetIndex(1)
	if got, want := l.SelectedPaths(), []string{"/dir/b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected cursor fallback %v, got %v", want, got)
	}

	l.SetSelected(2, true)
	l.SetSelected(0, true)
	if got, want := l.SelectedPaths(), []string{"/dir/a", "/dir/c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected display order %v, got %v", want, got)
	}
}

func TestSelectAllAndToggle(t *testing.T) {
	l, err := New(newTestSource(t, "a", "b", "c"), "/dir")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.ToggleCurrent()
	l.SelectAll(true)
	if got := len(l.SelectedEntries()); got != 2 {
		t.Fatalf("expected 2 selected after toggle-all, got %d", got)
	}
	l.SelectAll(false)
	if got := len(l.SelectedEntries()); got != 3 {
		t.Fatalf("expected all selected, got %d", got)
	}
	l.ClearSelection()
	if got := len(l.SelectedEntries()); got != 0 {
		t.Fatalf("expected selection cleared, got %d", got)
	}
}
