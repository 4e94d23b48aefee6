package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/atomicstack/tabfm/internal/format/table"
	"github.com/atomicstack/tabfm/internal/listing"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// tab strip, path header, status line, prompt line
	chromeRows   = 4
	maxChordRows = 10
	columnGap    = "│"
)

// View implements tea.Model.
func (m *Model) View() string {
	width, height := m.size()
	lines := make([]string, 0, height)
	lines = append(lines, table.Fit(m.tabStrip, width))
	header := "(no directory)"
	if tab := m.session.CurrentTab(); tab != nil {
		header = tab.Path()
	}
	lines = append(lines, render(styles.Header, table.Fit(header, width)))

	rows := m.listRows()
	left, mid, right := m.columnWidths(width)
	parent := renderColumn(m.panels.parent, left, rows, false, false)
	current := renderColumn(m.session.Current(), mid, rows, true, true)
	preview := m.renderPreview(right, rows)
	gap := render(styles.ColumnSeparator, columnGap)
	for i := 0; i < rows; i++ {
		lines = append(lines, parent[i]+gap+current[i]+gap+preview[i])
	}

	for _, line := range m.chordLines() {
		lines = append(lines, table.Fit(line, width))
	}
	lines = append(lines, m.statusLine(width))
	if m.prompting {
		lines = append(lines, table.Fit(m.prompt.View(), width))
	} else {
		lines = append(lines, table.Fit("", width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) size() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

// listRows is the number of entries each column shows.
func (m *Model) listRows() int {
	_, height := m.size()
	remain := height - chromeRows - m.chordRows()
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) columnWidths(width int) (int, int, int) {
	total := width - 2*ansi.StringWidth(columnGap)
	if total < 3 {
		total = 3
	}
	sum := m.ratio[0] + m.ratio[1] + m.ratio[2]
	if sum <= 0 {
		return total / 3, total / 3, total - 2*(total/3)
	}
	left := total * m.ratio[0] / sum
	mid := total * m.ratio[1] / sum
	return left, mid, total - left - mid
}

func (m *Model) chordRows() int {
	return min(len(m.chord), maxChordRows)
}

// chordShown is how many continuations fit; on overflow the last row
// reports the hidden count instead.
func (m *Model) chordShown() int {
	if len(m.chord) > maxChordRows {
		return maxChordRows - 1
	}
	return len(m.chord)
}

func (m *Model) chordLines() []string {
	if len(m.chord) == 0 {
		return nil
	}
	shown := m.chordShown()
	rows := make([][]string, 0, shown)
	for _, opt := range m.chord[:shown] {
		rows = append(rows, []string{opt.Key, opt.Label})
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft})
	prefix := strings.Join(m.chordKeys, "")
	out := make([]string, len(formatted), m.chordRows())
	for i, line := range formatted {
		keyWidth := ansi.StringWidth(rows[i][0])
		pad := strings.Index(line, rows[i][0]) + keyWidth
		out[i] = render(styles.ChordKey, prefix+line[:pad]) + render(styles.ChordLabel, line[pad:])
	}
	if hidden := len(m.chord) - shown; hidden > 0 {
		out = append(out, render(styles.ChordLabel, fmt.Sprintf("%s… +%d more", prefix, hidden)))
	}
	return out
}

func (m *Model) statusLine(width int) string {
	status := m.session.Status()
	text := status.Text
	if n := len(m.session.Tasks()); n > 0 && text == "" {
		text = fmt.Sprintf("%d operation(s) running", n)
	}
	text = table.Fit(text, width)
	if status.Error {
		return render(styles.Error, text)
	}
	return render(styles.Status, text)
}

func (m *Model) renderTabStrip() string {
	tabs := m.session.Tabs()
	parts := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		name := filepath.Base(tab.Path())
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if i == m.session.CurrentIndex() {
			parts = append(parts, render(styles.TabActive, label))
		} else {
			parts = append(parts, render(styles.TabInactive, label))
		}
	}
	return strings.Join(parts, "")
}

func renderColumn(l *listing.Listing, width, rows int, active, sizes bool) []string {
	out := make([]string, rows)
	blank := table.Fit("", width)
	for i := range out {
		out[i] = blank
	}
	if l == nil || width <= 0 {
		return out
	}
	if l.Len() == 0 {
		out[0] = render(styles.Status, table.Fit(" (empty)", width))
		return out
	}
	cursor, hasCursor := l.Index()
	entries := l.Entries()
	for i := 0; i < rows; i++ {
		idx := l.Offset() + i
		if idx >= len(entries) {
			break
		}
		e := entries[idx]
		text := entryText(e, width, sizes)
		switch {
		case hasCursor && idx == cursor && active:
			out[i] = render(styles.CursorLine, text)
		case hasCursor && idx == cursor:
			out[i] = render(styles.CursorDimmed, text)
		default:
			out[i] = render(entryStyle(e), text)
		}
	}
	return out
}

func entryText(e listing.Entry, width int, sizes bool) string {
	mark := " "
	if e.Selected() {
		mark = "*"
	}
	name := mark + e.Name()
	if e.IsDir() {
		name += "/"
	}
	if !sizes || e.IsDir() {
		return table.Fit(name, width)
	}
	size := humanize.IBytes(uint64(max(e.Metadata().Len, 0)))
	nameWidth := width - ansi.StringWidth(size) - 1
	if nameWidth < 1 {
		return table.Fit(name, width)
	}
	return table.Fit(name, nameWidth) + " " + size
}

func entryStyle(e listing.Entry) *lipgloss.Style {
	switch {
	case e.Selected():
		return styles.Marked
	case e.IsDir():
		return styles.Directory
	case e.Metadata().IsSymlink():
		return styles.Symlink
	}
	return styles.Entry
}

func (m *Model) renderPreview(width, rows int) []string {
	if m.panels.preview != nil {
		return renderColumn(m.panels.preview, width, rows, false, false)
	}
	out := make([]string, rows)
	blank := table.Fit("", width)
	for i := range out {
		out[i] = blank
	}
	if width <= 0 {
		return out
	}
	if m.panels.err != "" {
		out[0] = render(styles.PreviewError, table.Fit(m.panels.err, width))
		return out
	}
	fp := m.panels.file
	if fp == nil {
		return out
	}
	out[0] = render(styles.PreviewTitle, table.Fit(fp.summary, width))
	if fp.binary && rows > 1 {
		out[1] = render(styles.PreviewBody, table.Fit("(binary)", width))
		return out
	}
	for i, line := range fp.lines {
		if i+1 >= rows {
			break
		}
		out[i+1] = render(styles.PreviewBody, table.Fit(ansi.Strip(line), width))
	}
	return out
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.panelsDirty = true
	return nil
}

func render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}
