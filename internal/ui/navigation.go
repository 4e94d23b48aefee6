package ui

import (
	"path/filepath"

	"github.com/atomicstack/tabfm/internal/listing"
	"github.com/atomicstack/tabfm/internal/logging"
)

// panels holds what the side columns show for the current cursor position.
type panels struct {
	parent  *listing.Listing
	preview *listing.Listing
	file    *filePreview
	err     string
}

// sync refreshes everything View reads, so rendering never touches the
// filesystem or mutates a listing.
func (m *Model) sync() {
	if m.stripDirty {
		m.tabStrip = m.renderTabStrip()
		m.stripDirty = false
	}
	cur := m.session.Current()
	if cur != nil {
		cur.EnsureCursorVisible(m.listRows())
	}
	if !m.panelsDirty {
		return
	}
	m.panelsDirty = false
	m.panels = panels{}
	defer m.syncWatch()
	if cur == nil {
		return
	}
	m.panels.parent = m.sideListing(parentOf(cur.Path()))
	if p := m.panels.parent; p != nil {
		if i := p.IndexOfPath(cur.Path()); i >= 0 {
			p.SetIndex(i)
		}
		p.EnsureCursorVisible(m.listRows())
	}
	entry, ok := cur.Current()
	if !ok {
		return
	}
	if entry.IsDir() {
		m.panels.preview = m.sideListing(entry.Path())
		if m.panels.preview == nil {
			m.panels.err = "unreadable directory"
		} else {
			m.panels.preview.EnsureCursorVisible(m.listRows())
		}
		return
	}
	fp, err := loadFilePreview(m.session.Fs(), entry, m.listRows())
	if err != nil {
		m.panels.err = err.Error()
		return
	}
	m.panels.file = fp
}

// sideListing fetches a listing for a side column. Paths checked out by
// another tab are skipped.
func (m *Model) sideListing(path string) *listing.Listing {
	if path == "" {
		return nil
	}
	src := m.session.Source()
	l, err := m.session.Cache().GetOrCreate(src, path)
	if err != nil {
		return nil
	}
	if l.NeedsUpdate() {
		if err := l.UpdateContents(src); err != nil {
			logging.Error(err)
		}
	}
	return l
}

func parentOf(path string) string {
	parent := filepath.Dir(path)
	if parent == path {
		return ""
	}
	return parent
}
