// Package syncer reconciles backend responses and push events into the UI state.
//
// Every backend failure ends in an error alert; nothing here returns a
// failure the caller must surface itself. The returned errors exist so CLI
// commands can set an exit status.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/dbnav/internal/state"
	"github.com/leapstack-labs/dbnav/pkg/core"
)

// ErrBackend wraps every failure reported by the Backend Bridge.
var ErrBackend = errors.New("backend call failed")

// Syncer mediates between the Backend Bridge and the state store.
type Syncer struct {
	bridge core.Bridge
	store  *state.Store
	logger *slog.Logger
}

// New creates a Syncer. A nil logger discards output.
func New(bridge core.Bridge, store *state.Store, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Syncer{
		bridge: bridge,
		store:  store,
		logger: logger,
	}
}

// Store returns the state store the syncer writes to.
func (s *Syncer) Store() *state.Store {
	return s.store
}

// RefreshNavigation re-fetches the navigation tree and then the current
// database. A failed tree fetch keeps the previous tree. A failed
// current-database fetch keeps the new tree and leaves the old name.
func (s *Syncer) RefreshNavigation(ctx context.Context) error {
	nav, err := s.bridge.FetchNavigationData(ctx)
	if msg, failed := failure(nav, err); failed {
		s.logger.Error("navigation fetch failed", "error", msg)
		s.store.Alert().Show(msg, core.SeverityError)
		return fmt.Errorf("fetch navigation: %s: %w", msg, ErrBackend)
	}
	s.store.SetDatabases(nav.Results)
	s.logger.Debug("navigation refreshed", "databases", len(nav.Results))

	cur, err := s.bridge.FetchCurrentDatabase(ctx)
	if msg, failed := failure(cur, err); failed {
		s.logger.Error("current database fetch failed", "error", msg)
		s.store.Alert().Show(msg, core.SeverityError)
		return fmt.Errorf("fetch current database: %s: %w", msg, ErrBackend)
	}
	s.store.SetCurrentDatabase(cur.Results)
	return nil
}

// RefreshNavigationThenNotify refreshes navigation, then shows msg on the
// general alert whether or not the refresh succeeded.
func (s *Syncer) RefreshNavigationThenNotify(ctx context.Context, msg string, severity core.Severity) error {
	err := s.RefreshNavigation(ctx)
	s.store.Alert().Show(msg, severity)
	return err
}

// RefreshNavigationThenNotifyResult is RefreshNavigationThenNotify on the
// result alert channel.
func (s *Syncer) RefreshNavigationThenNotifyResult(ctx context.Context, msg string, severity core.Severity) error {
	err := s.RefreshNavigation(ctx)
	s.store.ResultAlert().Show(msg, severity)
	return err
}

// SetQueryResults replaces the result grid.
func (s *Syncer) SetQueryResults(r core.QueryResultSet) error {
	return s.store.SetQueryResults(r)
}

// SetDialog replaces the dialog descriptor.
func (s *Syncer) SetDialog(d core.Dialog) error {
	return s.store.SetDialog(d)
}

// LoadRootPath fetches the folder the backend is rooted at.
func (s *Syncer) LoadRootPath(ctx context.Context) error {
	res, err := s.bridge.FetchRootPath(ctx)
	if msg, failed := failure(res, err); failed {
		s.store.Alert().Show(msg, core.SeverityError)
		return fmt.Errorf("fetch root path: %s: %w", msg, ErrBackend)
	}
	s.store.SetRootPath(res.Results.Root)
	return nil
}

// SelectDatabase makes name the backend's current database.
func (s *Syncer) SelectDatabase(ctx context.Context, name string) error {
	res, err := s.bridge.SetCurrentDatabase(ctx, name)
	if msg, failed := failure(res, err); failed {
		s.store.Alert().Show(msg, core.SeverityError)
		return fmt.Errorf("select database %q: %s: %w", name, msg, ErrBackend)
	}
	selected := res.Results.Name
	if selected == "" {
		selected = name
	}
	s.store.SetCurrentDatabase(selected)
	return nil
}

// CreateDatabase asks the backend to create a database, then refreshes.
func (s *Syncer) CreateDatabase(ctx context.Context, req core.CreateDBRequest) error {
	res, err := s.bridge.CreateDatabase(ctx, req)
	if msg, failed := failure(res, err); failed {
		s.store.Alert().Show(msg, core.SeverityError)
		return fmt.Errorf("create database %q: %s: %w", req.Name, msg, ErrBackend)
	}
	return s.RefreshNavigationThenNotify(ctx, fmt.Sprintf("Database %s created", req.Name), core.SeveritySuccess)
}

// RemoveDatabase asks the backend to detach and delete a database, then refreshes.
func (s *Syncer) RemoveDatabase(ctx context.Context, name string) error {
	res, err := s.bridge.RemoveDatabase(ctx, name)
	if msg, failed := failure(res, err); failed {
		s.store.Alert().Show(msg, core.SeverityError)
		return fmt.Errorf("remove database %q: %s: %w", name, msg, ErrBackend)
	}
	return s.RefreshNavigationThenNotify(ctx, fmt.Sprintf("Database %s removed", name), core.SeveritySuccess)
}

// ConfirmRemoveDatabase opens a dialog asking before RemoveDatabase runs.
// The delete action outlives the caller's request, so it keeps ctx values
// but not its cancellation.
func (s *Syncer) ConfirmRemoveDatabase(ctx context.Context, name string) error {
	actionCtx := context.WithoutCancel(ctx)
	return s.store.SetDialog(core.Dialog{
		Title:   "Remove database",
		Message: fmt.Sprintf("Delete %s and its file? This cannot be undone.", name),
		Options: []string{"Cancel", "Delete"},
		Actions: []func(){
			nil,
			func() { _ = s.RemoveDatabase(actionCtx, name) },
		},
		ButtonStyles: []string{"btn-ghost", "btn-error"},
		Visible:      true,
	})
}

// failure reports the error text of a call, if it failed in transport or
// in the envelope.
func failure[T any](res core.Result[T], err error) (string, bool) {
	if err != nil {
		return err.Error(), true
	}
	if res.Failed() {
		return res.Error, true
	}
	return "", false
}
