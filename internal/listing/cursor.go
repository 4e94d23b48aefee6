package listing

// MoveCursorBy shifts the cursor by delta, clamping at both ends.
func (l *Listing) MoveCursorBy(delta int) bool {
	if len(l.entries) == 0 {
		return false
	}
	old := l.cursor
	next := l.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(l.entries) {
		next = len(l.entries) - 1
	}
	l.cursor = next
	return l.cursor != old
}

// MoveCursorHome moves the cursor to the first entry.
func (l *Listing) MoveCursorHome() bool {
	if len(l.entries) == 0 {
		return false
	}
	old := l.cursor
	l.cursor = 0
	return old != l.cursor
}

// MoveCursorEnd moves the cursor to the last entry.
func (l *Listing) MoveCursorEnd() bool {
	if len(l.entries) == 0 {
		return false
	}
	old := l.cursor
	l.cursor = len(l.entries) - 1
	return old != l.cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *Listing) MoveCursorPageUp(maxVisible int) bool {
	return l.MoveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *Listing) MoveCursorPageDown(maxVisible int) bool {
	return l.MoveCursorBy(l.pageSize(maxVisible))
}

func (l *Listing) pageSize(maxVisible int) int {
	total := len(l.entries)
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *Listing) EnsureCursorVisible(maxVisible int) {
	if len(l.entries) == 0 || maxVisible <= 0 {
		l.offset = 0
		return
	}
	maxOffset := len(l.entries) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
	if l.offset < 0 {
		l.offset = 0
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if upper := l.offset + maxVisible - 1; l.cursor > upper {
		l.offset = min(l.cursor-maxVisible+1, maxOffset)
	}
}
