package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/dbnav/internal/syncer"
	"github.com/leapstack-labs/dbnav/internal/tui"
)

// NewTUICommand creates the tui command.
func NewTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse databases in a full-screen terminal UI",
		Long: `Open the terminal UI. Databases and their tables are listed on the left and
the selected table or query result on the right. Backend events are applied
while the UI is open.

Keys: r refresh, enter open, d remove, tab switch pane, q quit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			defer s.Close()

			g, ctx := errgroup.WithContext(cmd.Context())
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			dispatcher := syncer.NewDispatcher(s.syncer, s.logger)
			g.Go(func() error {
				if err := dispatcher.Listen(ctx, s.client); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				defer cancel()
				return tui.Run(ctx, s.syncer)
			})

			return g.Wait()
		},
	}
}
