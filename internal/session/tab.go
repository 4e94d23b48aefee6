package session

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/atomicstack/tabfm/internal/listing"
	"github.com/atomicstack/tabfm/internal/logging/events"
)

// Tab is one navigation context. Only the active tab holds a listing; the
// others have theirs checked into the cache.
type Tab struct {
	id   uuid.UUID
	path string
	list *listing.Listing
}

func (t *Tab) ID() uuid.UUID { return t.id }
func (t *Tab) Path() string  { return t.path }

// Listing returns the checked-out listing, nil for inactive tabs.
func (t *Tab) Listing() *listing.Listing { return t.list }

// checkout takes the listing for path out of the cache and returns a func
// that undoes exactly that.
func (s *Session) checkout(path string) (*listing.Listing, func(), error) {
	cached := s.cache.Contains(path)
	l, err := s.cache.PopOrCreate(s.Source(), path)
	if err != nil {
		return nil, nil, err
	}
	undo := func() {
		if cached {
			s.cache.Insert(l)
		} else {
			s.cache.Release(path)
		}
	}
	return l, undo, nil
}

// park checks the active listing back into the cache and returns a func that
// takes it out again.
func (s *Session) park() func() {
	tab := s.CurrentTab()
	if tab == nil || tab.list == nil {
		return func() {}
	}
	list := tab.list
	s.cache.Insert(list)
	tab.list = nil
	return func() {
		if l, ok := s.cache.Take(list.Path()); ok {
			tab.list = l
		}
	}
}

// OpenTab opens a new tab at path after the active one and makes it current.
func (s *Session) OpenTab(path string) error {
	path = s.Resolve(path)
	if err := s.cache.PopulateToRoot(s.Source(), path); err != nil {
		return err
	}
	restore := s.park()
	l, undo, err := s.checkout(path)
	if err != nil {
		restore()
		return err
	}
	if err := s.chdir(path); err != nil {
		undo()
		restore()
		return fmt.Errorf("chdir %s: %w", path, err)
	}
	tab := &Tab{id: uuid.New(), path: path, list: l}
	index := 0
	if len(s.tabs) > 0 {
		index = s.current + 1
	}
	s.tabs = append(s.tabs, nil)
	copy(s.tabs[index+1:], s.tabs[index:])
	s.tabs[index] = tab
	s.current = index
	events.Tab.Open(tab.id.String(), path, index)
	s.renderer.RedrawTabStrip()
	s.renderer.RefreshTab(tab.id)
	return nil
}

// SwitchTab makes tab i current. On failure the previous tab stays active
// with its listing untouched.
func (s *Session) SwitchTab(i int) error {
	if i < 0 || i >= len(s.tabs) {
		return fmt.Errorf("no tab %d", i)
	}
	if i == s.current {
		return nil
	}
	target := s.tabs[i]
	restore := s.park()
	l, undo, err := s.checkout(target.path)
	if err != nil {
		restore()
		return err
	}
	if err := s.chdir(target.path); err != nil {
		undo()
		restore()
		return fmt.Errorf("chdir %s: %w", target.path, err)
	}
	from := s.current
	target.list = l
	s.current = i
	events.Tab.Switch(from, i, target.path)
	s.renderer.RedrawTabStrip()
	s.renderer.RefreshTab(target.id)
	return nil
}

// MoveTab switches by delta positions, wrapping in both directions.
func (s *Session) MoveTab(delta int) error {
	n := len(s.tabs)
	if n == 0 {
		return nil
	}
	return s.SwitchTab(((s.current+delta)%n + n) % n)
}

// CloseTab closes the active tab. Closing the last tab is a quit request.
// The following tab takes over, then the preceding one; when neither can be
// entered the following tab is pointed at the home directory.
func (s *Session) CloseTab() error {
	if len(s.tabs) <= 1 {
		return s.RequestQuit(false)
	}
	closing := s.current
	tab := s.tabs[closing]
	var errs []error
	fallback := -1
	for _, next := range []int{closing + 1, closing - 1} {
		if next < 0 || next >= len(s.tabs) {
			continue
		}
		if fallback < 0 {
			fallback = next
		}
		err := s.SwitchTab(next)
		if err == nil {
			s.dropTab(closing, tab)
			return nil
		}
		errs = append(errs, err)
	}
	target := s.tabs[fallback]
	prev := target.path
	target.path = s.home
	if err := s.SwitchTab(fallback); err != nil {
		target.path = prev
		return errors.Join(append(errs, err)...)
	}
	events.Tab.ChangeDirectory(target.id.String(), prev, s.home)
	s.dropTab(closing, tab)
	return nil
}

func (s *Session) dropTab(closing int, tab *Tab) {
	s.tabs = append(s.tabs[:closing], s.tabs[closing+1:]...)
	if s.current > closing {
		s.current--
	}
	events.Tab.Close(tab.id.String(), closing)
	s.renderer.RedrawTabStrip()
}

// ChangeDirectory points the active tab at path. Changing to the directory
// already shown re-scans it instead.
func (s *Session) ChangeDirectory(path string) error {
	tab := s.CurrentTab()
	if tab == nil {
		return s.OpenTab(path)
	}
	path = s.Resolve(path)
	if path == tab.path {
		return s.ReloadCurrent()
	}
	if err := s.cache.PopulateToRoot(s.Source(), path); err != nil {
		return err
	}
	restore := s.park()
	l, undo, err := s.checkout(path)
	if err != nil {
		restore()
		return err
	}
	if err := s.chdir(path); err != nil {
		undo()
		restore()
		return fmt.Errorf("chdir %s: %w", path, err)
	}
	from := tab.path
	tab.path = path
	tab.list = l
	events.Tab.ChangeDirectory(tab.id.String(), from, path)
	s.renderer.RefreshTab(tab.id)
	return nil
}

// ParentDirectory moves the active tab one level up. At the root it does
// nothing.
func (s *Session) ParentDirectory() error {
	tab := s.CurrentTab()
	if tab == nil {
		return nil
	}
	parent := filepath.Dir(tab.path)
	if parent == tab.path {
		return nil
	}
	return s.ChangeDirectory(parent)
}

// ReloadCurrent re-scans the active listing.
func (s *Session) ReloadCurrent() error {
	tab := s.CurrentTab()
	if tab == nil || tab.list == nil {
		return nil
	}
	if err := tab.list.UpdateContents(s.Source()); err != nil {
		return err
	}
	s.renderer.RefreshTab(tab.id)
	return nil
}

// DepreciateAll marks every cached listing stale and re-scans the active one.
func (s *Session) DepreciateAll() error {
	s.cache.DepreciateAll()
	return s.ReloadCurrent()
}

// NoteExternalChange reacts to a change notification for dir.
func (s *Session) NoteExternalChange(dir string) error {
	dir = filepath.Clean(dir)
	if tab := s.CurrentTab(); tab != nil && tab.path == dir {
		return s.ReloadCurrent()
	}
	s.cache.Depreciate(dir)
	return nil
}
