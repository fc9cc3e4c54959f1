package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbnav/internal/bridge/httpbridge"
	"github.com/leapstack-labs/dbnav/internal/cli/config"
	"github.com/leapstack-labs/dbnav/internal/cli/output"
	"github.com/leapstack-labs/dbnav/internal/state"
	"github.com/leapstack-labs/dbnav/internal/syncer"
)

// session is the backend client, store and syncer one command works with.
type session struct {
	cfg    *config.Loaded
	logger *slog.Logger
	out    *output.Renderer
	client *httpbridge.Client
	store  *state.Store
	syncer *syncer.Syncer
}

// newSession builds a session from the config and logger in the command context.
func newSession(cmd *cobra.Command) *session {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := config.GetLogger(ctx)

	client := httpbridge.New(cfg.Backend.URL,
		httpbridge.WithTimeout(cfg.Backend.Timeout),
		httpbridge.WithLogger(logger),
	)
	store := state.New(state.Options{
		AlertDuration:  cfg.Alerts.Duration,
		ResultDuration: cfg.Alerts.ResultDuration,
	})

	logger.Debug("session ready", "backend", cfg.Backend.URL)
	return &session{
		cfg:    cfg,
		logger: logger,
		out:    output.FromContext(ctx),
		client: client,
		store:  store,
		syncer: syncer.New(client, store, logger),
	}
}

// Close stops the alert timers.
func (s *session) Close() {
	s.store.Close()
}
