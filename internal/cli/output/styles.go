package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Current lipgloss.Style
}

// NewStyles builds styles bound to a lipgloss renderer so color output
// follows the writer, not the process stdout.
func NewStyles(lg *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  lg.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    lg.NewStyle().Bold(true),
		Muted:   lg.NewStyle().Foreground(lipgloss.Color("240")),
		Success: lg.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lg.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lg.NewStyle().Foreground(lipgloss.Color("11")),
		Info:    lg.NewStyle().Foreground(lipgloss.Color("14")),
		Current: lg.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
}

// Severity returns the style for a notification severity.
func (s *Styles) Severity(sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return s.Error
	case core.SeverityWarning:
		return s.Warning
	case core.SeverityInfo:
		return s.Info
	default:
		return s.Success
	}
}

// SeverityIcon returns the glyph shown before a notification.
func SeverityIcon(sev core.Severity) string {
	switch sev {
	case core.SeverityError:
		return "✗"
	case core.SeverityWarning:
		return "!"
	case core.SeverityInfo:
		return "i"
	default:
		return "✓"
	}
}
