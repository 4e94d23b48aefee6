package listing

// Entry is one child of a listed directory.
type Entry struct {
	name     string
	path     string
	meta     Metadata
	selected bool
}

// NewEntry builds an entry. Exposed so tests and filters in other packages
// can construct fixtures without touching a filesystem.
func NewEntry(name, path string, meta Metadata) Entry {
	return Entry{name: name, path: path, meta: meta}
}

func (e Entry) Name() string       { return e.name }
func (e Entry) Path() string       { return e.path }
func (e Entry) Metadata() Metadata { return e.meta }
func (e Entry) IsDir() bool        { return e.meta.IsDir() }
func (e Entry) Selected() bool     { return e.selected }

// Hidden reports whether the entry follows the dot-file convention.
func (e Entry) Hidden() bool {
	return len(e.name) > 0 && e.name[0] == '.'
}
