package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// Theme defines the colors of the terminal UI.
type Theme struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
	Muted   lipgloss.Color
}

// DefaultTheme returns the default theme.
func DefaultTheme() Theme {
	return Theme{
		Primary: lipgloss.Color("12"),  // Blue
		Success: lipgloss.Color("10"),  // Green
		Warning: lipgloss.Color("11"),  // Yellow
		Error:   lipgloss.Color("9"),   // Red
		Info:    lipgloss.Color("14"),  // Cyan
		Muted:   lipgloss.Color("240"), // Gray
	}
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	Title       lipgloss.Style
	Cursor      lipgloss.Style
	Current     lipgloss.Style
	Muted       lipgloss.Style
	Dialog      lipgloss.Style
	Button      lipgloss.Style
	ButtonOn    lipgloss.Style
	severity    map[core.Severity]lipgloss.Style
}

// NewStyles builds Styles from theme.
func NewStyles(theme Theme) Styles {
	pane := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Muted).Padding(0, 1)
	return Styles{
		Pane:        pane,
		FocusedPane: pane.BorderForeground(theme.Primary),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Current:     lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
		Muted:       lipgloss.NewStyle().Foreground(theme.Muted),
		Dialog:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(theme.Warning).Padding(1, 2),
		Button:      lipgloss.NewStyle().Padding(0, 1).Foreground(theme.Muted),
		ButtonOn:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true),
		severity: map[core.Severity]lipgloss.Style{
			core.SeveritySuccess: lipgloss.NewStyle().Foreground(theme.Success),
			core.SeverityError:   lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
			core.SeverityWarning: lipgloss.NewStyle().Foreground(theme.Warning),
			core.SeverityInfo:    lipgloss.NewStyle().Foreground(theme.Info),
		},
	}
}

// Severity returns the style of a notification severity.
func (s Styles) Severity(sev core.Severity) lipgloss.Style {
	if st, ok := s.severity[sev]; ok {
		return st
	}
	return s.severity[core.SeveritySuccess]
}
