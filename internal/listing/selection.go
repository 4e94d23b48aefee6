package listing

// ToggleCurrent flips the selection flag of the entry under the cursor.
func (l *Listing) ToggleCurrent() bool {
	if l.cursor < 0 {
		return false
	}
	l.entries[l.cursor].selected = !l.entries[l.cursor].selected
	return true
}

// SetSelected sets the selection flag at index i.
func (l *Listing) SetSelected(i int, selected bool) bool {
	if i < 0 || i >= len(l.entries) {
		return false
	}
	l.entries[i].selected = selected
	return true
}

// SelectAll selects every entry, or flips every flag when toggle is set.
func (l *Listing) SelectAll(toggle bool) {
	for i := range l.entries {
		if toggle {
			l.entries[i].selected = !l.entries[i].selected
		} else {
			l.entries[i].selected = true
		}
	}
}

// ClearSelection clears all selected entries.
func (l *Listing) ClearSelection() {
	for i := range l.entries {
		l.entries[i].selected = false
	}
}

// SelectedEntries returns the explicitly selected entries in display order.
func (l *Listing) SelectedEntries() []Entry {
	var selected []Entry
	for _, e := range l.entries {
		if e.selected {
			selected = append(selected, e)
		}
	}
	return selected
}
