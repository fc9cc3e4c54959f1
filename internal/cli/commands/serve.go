package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbnav/internal/ui"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long: `Start a local web server that mirrors the backend state in the browser.

The page receives state over a server-sent event stream. Backend events are
dispatched into the store for as long as the server runs, and the root folder
is watched for database files coming and going.`,
		Example: `  # Start on the configured port
  dbnav serve

  # Start on a custom port and open the browser
  dbnav serve --port 3000 --open

  # Disable the root folder watcher
  dbnav serve --watch=false`,
		RunE: runServe,
	}

	cmd.Flags().Int("port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().Bool("watch", true, "Refresh navigation when database files change")
	cmd.Flags().Bool("open", false, "Open the browser once the server starts")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	s := newSession(cmd)
	defer s.Close()

	server := ui.NewServer(ui.Config{
		Syncer: s.syncer,
		Events: s.client,
		Port:   s.cfg.UI.Port,
		Watch:  s.cfg.UI.Watch,
		Logger: s.logger,
	})

	url := fmt.Sprintf("http://localhost:%d", s.cfg.UI.Port)
	if s.cfg.UI.AutoOpen {
		go openBrowser(cmd.Context(), url)
	}

	s.out.StatusLine("Serving", url)
	s.out.StatusLine("Backend", s.cfg.Backend.URL)
	s.out.Println(s.out.Muted("Press Ctrl+C to stop"))

	return server.Serve(cmd.Context())
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(ctx context.Context, url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "linux":
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}
