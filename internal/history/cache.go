// Package history caches directory listings between visits.
//
// A listing is either stored in the cache or checked out by whoever is
// displaying it, never both. Check-out goes through PopOrCreate (or Take for
// rollbacks) and check-in through Insert.
package history

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/atomicstack/tabfm/internal/listing"
	"github.com/atomicstack/tabfm/internal/logging/events"
)

// ErrCheckedOut is returned when a path is requested while its listing is
// already checked out.
var ErrCheckedOut = errors.New("listing already checked out")

// Cache maps directory paths to listings.
type Cache struct {
	entries map[string]*listing.Listing
	out     map[string]struct{}
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]*listing.Listing),
		out:     make(map[string]struct{}),
	}
}

func key(path string) string {
	return filepath.Clean(path)
}

// Len returns the number of checked-in listings.
func (c *Cache) Len() int { return len(c.entries) }

// Contains reports whether a listing for path is checked in.
func (c *Cache) Contains(path string) bool {
	_, ok := c.entries[key(path)]
	return ok
}

// CheckedOut reports whether the listing for path is currently checked out.
func (c *Cache) CheckedOut(path string) bool {
	_, ok := c.out[key(path)]
	return ok
}

// Peek returns the checked-in listing for path without checking it out.
func (c *Cache) Peek(path string) (*listing.Listing, bool) {
	l, ok := c.entries[key(path)]
	return l, ok
}

// PopulateToRoot makes sure every ancestor of path, from the root down to
// path's parent, has a listing. Newly built ancestors get their cursor on the
// child that leads towards path. Existing or checked-out ancestors are left
// alone. Nothing is inserted unless every build succeeds.
func (c *Cache) PopulateToRoot(src listing.Source, path string) error {
	path = key(path)
	type built struct {
		dir string
		l   *listing.Listing
	}
	var pending []built
	child := path
	for dir := filepath.Dir(child); dir != child; child, dir = dir, filepath.Dir(dir) {
		if c.Contains(dir) || c.CheckedOut(dir) {
			continue
		}
		l, err := listing.New(src, dir)
		if err != nil {
			return fmt.Errorf("populate %s: %w", path, err)
		}
		if idx := l.IndexOfPath(child); idx >= 0 {
			l.SetIndex(idx)
		}
		pending = append(pending, built{dir: dir, l: l})
	}
	created := make([]string, 0, len(pending))
	for _, b := range pending {
		c.entries[b.dir] = b.l
		created = append(created, b.dir)
	}
	events.Cache.Populate(path, created)
	return nil
}

// PopOrCreate checks out the listing for path. A cached listing is re-scanned
// first when it was depreciated or the directory changed on disk since it was
// read. On error the cache is left as it was.
func (c *Cache) PopOrCreate(src listing.Source, path string) (*listing.Listing, error) {
	path = key(path)
	if c.CheckedOut(path) {
		return nil, fmt.Errorf("pop %s: %w", path, ErrCheckedOut)
	}
	l, ok := c.entries[path]
	if !ok {
		events.Cache.Miss(path)
		fresh, err := listing.New(src, path)
		if err != nil {
			return nil, err
		}
		c.out[path] = struct{}{}
		return fresh, nil
	}

	refresh := l.NeedsUpdate()
	if !refresh {
		meta, err := listing.Stat(src.Fs, path)
		if err != nil {
			return nil, err
		}
		refresh = meta.Modified.After(l.Metadata().Modified)
	}
	if refresh {
		if err := l.UpdateContents(src); err != nil {
			return nil, err
		}
	}
	delete(c.entries, path)
	c.out[path] = struct{}{}
	events.Cache.Hit(path, refresh)
	return l, nil
}

// Take checks out the cached listing for path without refreshing it.
func (c *Cache) Take(path string) (*listing.Listing, bool) {
	path = key(path)
	l, ok := c.entries[path]
	if !ok {
		return nil, false
	}
	delete(c.entries, path)
	c.out[path] = struct{}{}
	return l, true
}

// Insert checks l in, replacing any listing stored for the same path.
func (c *Cache) Insert(l *listing.Listing) {
	if l == nil {
		return
	}
	path := key(l.Path())
	_, replaced := c.entries[path]
	c.entries[path] = l
	delete(c.out, path)
	events.Cache.Insert(path, replaced)
}

// Release drops the checked-out mark for path without checking anything in.
// Used when the holder of a listing discards it.
func (c *Cache) Release(path string) {
	delete(c.out, key(path))
}

// GetOrCreate returns the cached listing for path, building and storing one
// when missing. The listing stays in the cache; it is meant for incidental
// reads such as preview panels.
func (c *Cache) GetOrCreate(src listing.Source, path string) (*listing.Listing, error) {
	path = key(path)
	if c.CheckedOut(path) {
		return nil, fmt.Errorf("get %s: %w", path, ErrCheckedOut)
	}
	if l, ok := c.entries[path]; ok {
		return l, nil
	}
	l, err := listing.New(src, path)
	if err != nil {
		return nil, err
	}
	c.entries[path] = l
	events.Cache.Miss(path)
	return l, nil
}

// Depreciate marks the cached listing for path as stale.
func (c *Cache) Depreciate(path string) bool {
	l, ok := c.entries[key(path)]
	if !ok {
		return false
	}
	l.Depreciate()
	events.Cache.Depreciate(key(path))
	return true
}

// DepreciateAll marks every cached listing as stale.
func (c *Cache) DepreciateAll() {
	for _, l := range c.entries {
		l.Depreciate()
	}
	events.Cache.DepreciateAll(len(c.entries))
}
