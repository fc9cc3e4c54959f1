// Package state holds the process-wide UI state of dbnav.
//
// Every setter replaces one field group as a unit under the store lock and
// then pings the notifier, so renderers never observe rows from one result
// and columns from another. There is no cross-group atomicity.
package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leapstack-labs/dbnav/internal/alert"
	"github.com/leapstack-labs/dbnav/internal/ui/notifier"
	"github.com/leapstack-labs/dbnav/pkg/core"
)

// Errors returned by setters that reject a malformed value.
var (
	ErrRaggedRows   = errors.New("row width does not match column count")
	ErrDialogShape  = errors.New("dialog options, actions and styles are not aligned")
	ErrNoDialog     = errors.New("no dialog is open")
	ErrDialogOption = errors.New("dialog option out of range")
)

// Channel names.
const (
	ChannelAlert  = "alert"
	ChannelResult = "resultAlert"
)

// Options configures a Store.
type Options struct {
	Notifier       *notifier.Notifier
	AlertDuration  time.Duration
	ResultDuration time.Duration
}

// Store is the single UI state container.
type Store struct {
	notify *notifier.Notifier

	alert       *alert.Channel
	resultAlert *alert.Channel

	mu             sync.RWMutex
	nav            core.Navigation
	results        core.QueryResultSet
	dialog         core.Dialog
	rootPath       string
	selectedTable  string
	loadingResults bool
}

// New creates a Store with empty navigation, an empty result set and the
// default dialog.
func New(opts Options) *Store {
	if opts.Notifier == nil {
		opts.Notifier = notifier.New()
	}
	if opts.AlertDuration <= 0 {
		opts.AlertDuration = alert.DefaultDuration
	}
	if opts.ResultDuration <= 0 {
		opts.ResultDuration = alert.DefaultResultDuration
	}

	s := &Store{
		notify: opts.Notifier,
		nav: core.Navigation{
			Databases: map[string]core.DatabaseInfo{},
		},
		results: core.QueryResultSet{
			Columns: []string{},
			Rows:    [][]string{},
		},
		dialog: core.DefaultDialog(),
	}
	onAlert := func(core.Notification) { s.notify.Broadcast(notifier.TopicAlert) }
	s.alert = alert.NewChannel(ChannelAlert, opts.AlertDuration, onAlert)
	s.resultAlert = alert.NewChannel(ChannelResult, opts.ResultDuration, onAlert)
	return s
}

// Notifier returns the notifier renderers subscribe to.
func (s *Store) Notifier() *notifier.Notifier {
	return s.notify
}

// Alert returns the general notification channel.
func (s *Store) Alert() *alert.Channel {
	return s.alert
}

// ResultAlert returns the query-result notification channel.
func (s *Store) ResultAlert() *alert.Channel {
	return s.resultAlert
}

// Channel looks up a notification channel by name.
func (s *Store) Channel(name string) (*alert.Channel, bool) {
	switch name {
	case ChannelAlert:
		return s.alert, true
	case ChannelResult:
		return s.resultAlert, true
	default:
		return nil, false
	}
}

// Close stops pending alert timers.
func (s *Store) Close() {
	s.alert.Close()
	s.resultAlert.Close()
}

// SetDatabases replaces the navigation databases wholesale.
// A nil map is stored as an empty one.
func (s *Store) SetDatabases(dbs map[string]core.DatabaseInfo) {
	s.mu.Lock()
	s.nav.Databases = core.CloneDatabases(dbs)
	s.mu.Unlock()
	s.notify.Broadcast(notifier.TopicNavigation)
}

// SetCurrentDatabase replaces the selected database name.
func (s *Store) SetCurrentDatabase(name string) {
	s.mu.Lock()
	s.nav.CurrentDatabase = name
	s.mu.Unlock()
	s.notify.Broadcast(notifier.TopicNavigation)
}

// Navigation returns a copy of the navigation snapshot.
func (s *Store) Navigation() core.Navigation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav.Clone()
}

// SetQueryResults replaces all four result fields together.
func (s *Store) SetQueryResults(r core.QueryResultSet) error {
	if i := r.RaggedRow(); i >= 0 {
		return fmt.Errorf("row %d has %d cells for %d columns: %w", i, len(r.Rows[i]), len(r.Columns), ErrRaggedRows)
	}
	r = r.Clone()

	s.mu.Lock()
	s.results = r
	s.mu.Unlock()
	s.notify.Broadcast(notifier.TopicQuery)
	return nil
}

// QueryResults returns a copy of the current result set.
func (s *Store) QueryResults() core.QueryResultSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results.Clone()
}

// SetDialog replaces every dialog field together.
func (s *Store) SetDialog(d core.Dialog) error {
	if !d.Aligned() {
		return fmt.Errorf("%d options, %d actions, %d styles: %w", len(d.Options), len(d.Actions), len(d.ButtonStyles), ErrDialogShape)
	}
	d = d.Clone()

	s.mu.Lock()
	s.dialog = d
	s.mu.Unlock()
	s.notify.Broadcast(notifier.TopicDialog)
	return nil
}

// Dialog returns a copy of the dialog descriptor.
func (s *Store) Dialog() core.Dialog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dialog.Clone()
}

// ResolveDialog hides the open dialog and runs the action bound to option.
// The action runs after the lock is released and may set a new dialog.
func (s *Store) ResolveDialog(option int) error {
	s.mu.Lock()
	if !s.dialog.Visible {
		s.mu.Unlock()
		return ErrNoDialog
	}
	if option < 0 || option >= len(s.dialog.Options) {
		n := len(s.dialog.Options)
		s.mu.Unlock()
		return fmt.Errorf("option %d of %d: %w", option, n, ErrDialogOption)
	}
	action := s.dialog.Actions[option]
	s.dialog.Visible = false
	s.mu.Unlock()
	s.notify.Broadcast(notifier.TopicDialog)

	if action != nil {
		action()
	}
	return nil
}

// SetRootPath records the folder the backend was opened on.
func (s *Store) SetRootPath(path string) {
	s.mu.Lock()
	s.rootPath = path
	s.mu.Unlock()
	s.notify.Broadcast(notifier.TopicSession)
}

// SetSelectedTable records the table whose rows are in the grid.
func (s *Store) SetSelectedTable(table string) {
	s.mu.Lock()
	s.selectedTable = table
	s.mu.Unlock()
	s.notify.Broadcast(notifier.TopicSession)
}

// SelectedTable returns the table whose rows are in the grid.
func (s *Store) SelectedTable() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedTable
}

// SetLoadingResults toggles the grid loading indicator.
func (s *Store) SetLoadingResults(loading bool) {
	s.mu.Lock()
	s.loadingResults = loading
	s.mu.Unlock()
	s.notify.Broadcast(notifier.TopicSession)
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	snap := Snapshot{
		RootPath:       s.rootPath,
		CurrentDB:      s.nav.CurrentDatabase,
		NavData:        core.CloneDatabases(s.nav.Databases),
		QueryResults:   s.results.Clone(),
		SelectedTable:  s.selectedTable,
		LoadingResults: s.loadingResults,
		Dialog:         s.dialog.Clone(),
	}
	s.mu.RUnlock()

	snap.Alert = s.alert.Current()
	snap.ResultAlert = s.resultAlert.Current()
	return snap
}
