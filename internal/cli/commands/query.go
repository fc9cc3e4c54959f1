package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Table       string
	Database    string
	Editable    bool
	Interactive bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Run SQL against the current database",
		Long: `Send a statement to the backend and print the result grid.

With no argument the statement is read from standard input. --table loads a
whole table instead, and --interactive opens a REPL.`,
		Example: `  # Run a statement
  dbnav query "SELECT * FROM users LIMIT 10"

  # Read from a file
  dbnav query < report.sql

  # Load a table from another database
  dbnav query --db sales.db --table orders

  # Interactive REPL
  dbnav query -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Table, "table", "t", "", "Load every row of a table")
	cmd.Flags().StringVar(&opts.Database, "db", "", "Select this database first")
	cmd.Flags().BoolVar(&opts.Editable, "editable", false, "Mark the result as editable")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "Start an interactive REPL")
	cmd.MarkFlagsMutuallyExclusive("table", "interactive")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	s := newSession(cmd)
	defer s.Close()
	ctx := cmd.Context()

	if opts.Database != "" {
		if err := s.syncer.SelectDatabase(ctx, opts.Database); err != nil {
			return err
		}
	}

	if opts.Interactive {
		return runQueryREPL(cmd, s)
	}

	if opts.Table != "" {
		if err := s.syncer.QueryTable(ctx, opts.Table); err != nil {
			return err
		}
		return renderQueryResult(s.out, s.store.Snapshot())
	}

	sql, err := querySource(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if err := s.syncer.RunQuery(ctx, core.QueryRequest{Query: sql, Editable: opts.Editable}); err != nil {
		return err
	}
	return renderQueryResult(s.out, s.store.Snapshot())
}

// querySource returns the statement from args, or from in when args is empty.
func querySource(in io.Reader, args []string) (string, error) {
	var sql string
	if len(args) > 0 {
		sql = args[0]
	} else {
		b, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read query: %w", err)
		}
		sql = string(b)
	}
	sql = strings.TrimSuffix(strings.TrimSpace(sql), ";")
	if sql == "" {
		return "", errors.New("query is empty")
	}
	return sql, nil
}
