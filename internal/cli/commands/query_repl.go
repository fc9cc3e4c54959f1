package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

const (
	replPrompt     = "dbnav> "
	replContPrompt = "   ...> "
)

func runQueryREPL(cmd *cobra.Command, s *session) error {
	ctx := cmd.Context()
	_ = s.syncer.RefreshNavigation(ctx)

	r := &repl{s: s, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		AutoComplete:    r.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(r.out, "dbnav query REPL (backend: %s)\n", s.cfg.Backend.URL)
	_, _ = fmt.Fprintln(r.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(r.out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			r.buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if r.handleLine(ctx, line) {
			return nil
		}
		if r.buf.Len() > 0 {
			rl.SetPrompt(replContPrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
		rl.Config.AutoComplete = r.completer()
	}
}

// historyFile returns the REPL history path in the user cache directory,
// or "" when it cannot be created.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "dbnav")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "query_history")
}

// repl holds the line state of an interactive query session.
type repl struct {
	s      *session
	out    io.Writer
	errOut io.Writer
	buf    strings.Builder
}

// handleLine processes one input line and reports whether the REPL should exit.
// SQL accumulates until a line ends with a semicolon.
func (r *repl) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if r.buf.Len() == 0 && strings.HasPrefix(line, ".") {
		return r.handleDotCommand(ctx, line)
	}

	r.buf.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		r.buf.WriteString(" ")
		return false
	}

	query := strings.TrimSuffix(r.buf.String(), ";")
	r.buf.Reset()

	if err := r.s.syncer.RunQuery(ctx, core.QueryRequest{Query: query}); err != nil {
		r.printErr(err)
		return false
	}
	r.render()
	return false
}

func (r *repl) handleDotCommand(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.out)

	case ".databases":
		if err := r.s.syncer.RefreshNavigation(ctx); err != nil {
			r.printErr(err)
			return false
		}
		nav := r.s.store.Navigation()
		for _, name := range nav.Names() {
			marker := "  "
			if name == nav.CurrentDatabase {
				marker = "* "
			}
			_, _ = fmt.Fprintln(r.out, marker+name)
		}

	case ".tables":
		nav := r.s.store.Navigation()
		info, ok := nav.Databases[nav.CurrentDatabase]
		if !ok {
			_, _ = fmt.Fprintln(r.errOut, "No database selected (use .use <name>)")
			return false
		}
		for _, t := range info.Tables {
			_, _ = fmt.Fprintln(r.out, t)
		}

	case ".use":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(r.errOut, "Usage: .use <database>")
			return false
		}
		if err := r.s.syncer.SelectDatabase(ctx, parts[1]); err != nil {
			r.printErr(err)
			return false
		}
		_, _ = fmt.Fprintf(r.out, "Using %s\n", r.s.store.Navigation().CurrentDatabase)

	case ".open":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(r.errOut, "Usage: .open <table>")
			return false
		}
		if err := r.s.syncer.QueryTable(ctx, parts[1]); err != nil {
			r.printErr(err)
			return false
		}
		r.render()

	case ".clear":
		_, _ = fmt.Fprint(r.out, "\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(r.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func (r *repl) render() {
	if err := renderQueryResult(r.s.out, r.s.store.Snapshot()); err != nil {
		r.printErr(err)
	}
	_, _ = fmt.Fprintln(r.out)
}

func (r *repl) printErr(err error) {
	_, _ = fmt.Fprintf(r.errOut, "Error: %v\n", err)
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .databases       List attached databases (* marks the current one)
  .tables          List tables of the current database
  .use <database>  Switch the current database
  .open <table>    Load every row of a table
  .clear           Clear the screen
  .quit / .exit    Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for table names
`
	_, _ = fmt.Fprintln(w, help)
}

// completer offers the current database's tables and the dot-commands.
func (r *repl) completer() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface

	nav := r.s.store.Navigation()
	tables := nav.Databases[nav.CurrentDatabase].Tables
	for _, t := range tables {
		items = append(items, readline.PcItem(t))
	}

	dbs := make([]readline.PrefixCompleterInterface, 0, len(nav.Databases))
	for _, name := range nav.Names() {
		dbs = append(dbs, readline.PcItem(name))
	}
	opens := make([]readline.PrefixCompleterInterface, 0, len(tables))
	for _, t := range tables {
		opens = append(opens, readline.PcItem(t))
	}

	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".databases"),
		readline.PcItem(".tables"),
		readline.PcItem(".use", dbs...),
		readline.PcItem(".open", opens...),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)

	return readline.NewPrefixCompleter(items...)
}
