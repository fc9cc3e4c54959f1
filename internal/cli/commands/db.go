package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// NewDBCommand creates the db command group.
func NewDBCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Create or remove databases",
	}
	cmd.AddCommand(newDBCreateCommand(), newDBRemoveCommand())
	return cmd
}

func newDBCreateCommand() *cobra.Command {
	req := core.CreateDBRequest{}

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a database in the backend's root folder",
		Example: `  dbnav db create scratch
  dbnav db create scratch --journal WAL --sync NORMAL`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(cmd)
			defer s.Close()

			req.Name = args[0]
			err := s.syncer.CreateDatabase(cmd.Context(), req)
			if err == nil {
				s.out.Notification(s.store.Alert().Current())
			}
			return err
		},
	}

	cmd.Flags().StringVar(&req.Cache, "cache", "", "Cache mode (shared or private)")
	cmd.Flags().StringVar(&req.Journal, "journal", "", "Journal mode")
	cmd.Flags().StringVar(&req.Sync, "sync", "", "Synchronous setting")
	cmd.Flags().StringVar(&req.Lock, "lock", "", "Locking mode")

	return cmd
}

func newDBRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Detach a database and delete its file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(cmd)
			defer s.Close()

			err := s.syncer.RemoveDatabase(cmd.Context(), args[0])
			if err == nil {
				s.out.Notification(s.store.Alert().Current())
			}
			return err
		},
	}
}
