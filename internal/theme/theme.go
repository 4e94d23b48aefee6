package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Entry           *lipgloss.Style
	Directory       *lipgloss.Style
	Symlink         *lipgloss.Style
	Marked          *lipgloss.Style
	CursorLine      *lipgloss.Style
	CursorDimmed    *lipgloss.Style
	TabActive       *lipgloss.Style
	TabInactive     *lipgloss.Style
	Header          *lipgloss.Style
	Status          *lipgloss.Style
	Error           *lipgloss.Style
	Prompt          *lipgloss.Style
	ChordKey        *lipgloss.Style
	ChordLabel      *lipgloss.Style
	PreviewTitle    *lipgloss.Style
	PreviewBody     *lipgloss.Style
	PreviewError    *lipgloss.Style
	ColumnSeparator *lipgloss.Style
}

var defaultStyles = Styles{
	Entry: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Directory: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Symlink: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
	),
	Marked: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	),
	CursorLine: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	CursorDimmed: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
	),
	TabActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Bold(true),
	),
	TabInactive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	ChordKey: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	),
	ChordLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	PreviewTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PreviewBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	PreviewError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	ColumnSeparator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
