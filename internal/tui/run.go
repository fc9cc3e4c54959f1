package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leapstack-labs/dbnav/internal/syncer"
)

// Run starts the terminal UI full screen and blocks until the user quits
// or ctx is done.
func Run(ctx context.Context, s *syncer.Syncer, opts ...tea.ProgramOption) error {
	m := New(ctx, s)
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}
