package command

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/tabfm/internal/listing"
	"github.com/atomicstack/tabfm/internal/session"
)

type search struct {
	pattern string
}

func newSearch(name string, args []string) (Command, error) {
	if len(args) != 1 {
		return nil, argErrorf(name, "expected 1 argument, got %d", len(args))
	}
	return search{pattern: args[0]}, nil
}

func (search) Name() string     { return "search" }
func (c search) String() string { return commandLine("search", c.pattern) }

// Execute moves the cursor to the next entry after it that fuzzy-matches the
// pattern, wrapping around. The pattern is remembered only when it matched.
func (c search) Execute(s *session.Session, v View) error {
	list := s.Current()
	if list == nil {
		return nil
	}
	if !jumpToMatch(list, c.pattern, 1, v) {
		return fmt.Errorf("pattern not found: %s", c.pattern)
	}
	s.SetSearch(c.pattern)
	return nil
}

type searchRepeat struct {
	backwards bool
}

func (c searchRepeat) Name() string {
	if c.backwards {
		return "search_prev"
	}
	return "search_next"
}

func (c searchRepeat) String() string { return c.Name() }

func (c searchRepeat) Execute(s *session.Session, v View) error {
	pattern := s.Search()
	list := s.Current()
	if pattern == "" || list == nil {
		return nil
	}
	dir := 1
	if c.backwards {
		dir = -1
	}
	if !jumpToMatch(list, pattern, dir, v) {
		return fmt.Errorf("pattern not found: %s", pattern)
	}
	return nil
}

func jumpToMatch(list *listing.Listing, pattern string, dir int, v View) bool {
	n := list.Len()
	if n == 0 {
		return false
	}
	start, _ := list.Index()
	entries := list.Entries()
	for step := 1; step <= n; step++ {
		i := ((start+dir*step)%n + n) % n
		if fuzzy.MatchFold(pattern, entries[i].Name()) {
			list.SetIndex(i)
			list.EnsureCursorVisible(v.Rows)
			return true
		}
	}
	return false
}
