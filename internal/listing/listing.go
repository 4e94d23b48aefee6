package listing

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
)

// Source bundles the filesystem and the options used to (re)build listings.
type Source struct {
	Fs      afero.Fs
	Options Options
}

// Listing is the ordered, filtered contents of one directory together with a
// cursor, a viewport offset and the directory's own metadata snapshot.
type Listing struct {
	path     string
	entries  []Entry
	cursor   int
	offset   int
	meta     Metadata
	outdated bool
}

// New reads path and builds a listing. The cursor starts on the first entry,
// or at -1 when the directory has nothing to show.
func New(src Source, path string) (*Listing, error) {
	path = filepath.Clean(path)
	entries, meta, err := scan(src, path)
	if err != nil {
		return nil, err
	}
	l := &Listing{path: path, entries: entries, meta: meta, cursor: -1}
	if len(entries) > 0 {
		l.cursor = 0
	}
	return l, nil
}

func scan(src Source, path string) ([]Entry, Metadata, error) {
	meta, err := Stat(src.Fs, path)
	if err != nil {
		return nil, Metadata{}, err
	}
	if !meta.IsDir() {
		return nil, Metadata{}, fmt.Errorf("read %s: not a directory", path)
	}
	infos, err := afero.ReadDir(src.Fs, path)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("read %s: %w", path, err)
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		e := Entry{
			name: info.Name(),
			path: filepath.Join(path, info.Name()),
			meta: MetadataFrom(info),
		}
		if src.Options.Keep(e) {
			entries = append(entries, e)
		}
	}
	slices.SortStableFunc(entries, src.Options.comparator())
	return entries, meta, nil
}

// UpdateContents re-reads the directory. Entries that survive keep their
// selection flag. The cursor is clamped into range; nothing changes when the
// read fails.
func (l *Listing) UpdateContents(src Source) error {
	entries, meta, err := scan(src, l.path)
	if err != nil {
		return err
	}
	if l.hasSelection() {
		selected := make(map[string]struct{})
		for _, e := range l.entries {
			if e.selected {
				selected[e.name] = struct{}{}
			}
		}
		for i := range entries {
			if _, ok := selected[entries[i].name]; ok {
				entries[i].selected = true
			}
		}
	}
	l.entries = entries
	l.meta = meta
	l.outdated = false
	switch {
	case len(entries) == 0:
		l.cursor = -1
		l.offset = 0
	case l.cursor < 0:
		l.cursor = 0
	case l.cursor >= len(entries):
		l.cursor = len(entries) - 1
	}
	return nil
}

func (l *Listing) hasSelection() bool {
	for _, e := range l.entries {
		if e.selected {
			return true
		}
	}
	return false
}

// Depreciate marks the listing as stale so the next check-out re-scans it.
func (l *Listing) Depreciate() { l.outdated = true }

// NeedsUpdate reports whether Depreciate was called since the last scan.
func (l *Listing) NeedsUpdate() bool { return l.outdated }

func (l *Listing) Path() string       { return l.path }
func (l *Listing) Metadata() Metadata { return l.meta }
func (l *Listing) Len() int           { return len(l.entries) }
func (l *Listing) Offset() int        { return l.offset }

// Entries returns the entries in display order. The slice is shared; callers
// must not modify it.
func (l *Listing) Entries() []Entry { return l.entries }

// Index returns the cursor position, false when the listing is empty.
func (l *Listing) Index() (int, bool) {
	if l.cursor < 0 {
		return 0, false
	}
	return l.cursor, true
}

// SetIndex moves the cursor to i. Out-of-range values are ignored.
func (l *Listing) SetIndex(i int) bool {
	if i < 0 || i >= len(l.entries) {
		return false
	}
	l.cursor = i
	return true
}

// Current returns the entry under the cursor.
func (l *Listing) Current() (Entry, bool) {
	if l.cursor < 0 {
		return Entry{}, false
	}
	return l.entries[l.cursor], true
}

// IndexOfName returns the position of the entry called name, or -1.
func (l *Listing) IndexOfName(name string) int {
	for i, e := range l.entries {
		if e.name == name {
			return i
		}
	}
	return -1
}

// IndexOfPath returns the position of the entry at path, or -1.
func (l *Listing) IndexOfPath(path string) int {
	path = filepath.Clean(path)
	for i, e := range l.entries {
		if e.path == path {
			return i
		}
	}
	return -1
}

// SelectedPaths returns the explicitly selected entries in display order. When
// nothing is selected it falls back to the entry under the cursor.
func (l *Listing) SelectedPaths() []string {
	var paths []string
	for _, e := range l.entries {
		if e.selected {
			paths = append(paths, e.path)
		}
	}
	if len(paths) > 0 {
		return paths
	}
	if cur, ok := l.Current(); ok {
		return []string{cur.path}
	}
	return nil
}
