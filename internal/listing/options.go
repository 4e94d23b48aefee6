package listing

import (
	"cmp"
	"strings"
)

// Comparator orders two entries; negative when a sorts before b.
type Comparator func(a, b Entry) int

// Options control which entries a listing keeps and how it orders them.
type Options struct {
	ShowHidden bool
	// Filter drops entries for which it returns false. Nil keeps everything.
	Filter func(Entry) bool
	// Compare orders entries. Nil falls back to ByName(false).
	Compare Comparator
}

// Keep applies the hidden-file rule and the injected filter.
func (o Options) Keep(e Entry) bool {
	if !o.ShowHidden && e.Hidden() {
		return false
	}
	if o.Filter != nil && !o.Filter(e) {
		return false
	}
	return true
}

func (o Options) comparator() Comparator {
	if o.Compare != nil {
		return o.Compare
	}
	return ByName(false)
}

// ByName compares entry names, folding case unless caseSensitive is set.
func ByName(caseSensitive bool) Comparator {
	if caseSensitive {
		return func(a, b Entry) int { return strings.Compare(a.name, b.name) }
	}
	return func(a, b Entry) int {
		if c := strings.Compare(strings.ToLower(a.name), strings.ToLower(b.name)); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	}
}

// BySize orders smaller entries first, ties broken by name.
func BySize(a, b Entry) int {
	if c := cmp.Compare(a.meta.Len, b.meta.Len); c != 0 {
		return c
	}
	return strings.Compare(a.name, b.name)
}

// ByModified orders older entries first, ties broken by name.
func ByModified(a, b Entry) int {
	if c := a.meta.Modified.Compare(b.meta.Modified); c != 0 {
		return c
	}
	return strings.Compare(a.name, b.name)
}

// DirectoriesFirst wraps next so directories sort ahead of everything else.
func DirectoriesFirst(next Comparator) Comparator {
	return func(a, b Entry) int {
		ad, bd := a.IsDir(), b.IsDir()
		switch {
		case ad && !bd:
			return -1
		case !ad && bd:
			return 1
		}
		return next(a, b)
	}
}

// Reverse inverts next.
func Reverse(next Comparator) Comparator {
	return func(a, b Entry) int { return next(b, a) }
}
