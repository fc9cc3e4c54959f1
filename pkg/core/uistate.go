package core

import (
	"maps"
	"slices"
	"time"
)

// =============================================================================
// Navigation
// =============================================================================

// DatabaseInfo describes one attached database in the navigation tree.
type DatabaseInfo struct {
	Tables     []string `json:"tables" yaml:"tables"`
	AppCreated bool     `json:"appCreated" yaml:"app_created"`
}

// Navigation is the latest navigation snapshot: every attached database
// keyed by name, and the database currently selected by the backend.
type Navigation struct {
	Databases       map[string]DatabaseInfo `json:"databases" yaml:"databases"`
	CurrentDatabase string                  `json:"currentDatabase" yaml:"current_database"`
}

// Clone returns a deep copy of the snapshot.
func (n Navigation) Clone() Navigation {
	return Navigation{
		Databases:       CloneDatabases(n.Databases),
		CurrentDatabase: n.CurrentDatabase,
	}
}

// Names returns the database names in sorted order.
func (n Navigation) Names() []string {
	return slices.Sorted(maps.Keys(n.Databases))
}

// CloneDatabases deep-copies a databases map. A nil map clones to an empty one.
func CloneDatabases(in map[string]DatabaseInfo) map[string]DatabaseInfo {
	out := make(map[string]DatabaseInfo, len(in))
	for name, info := range in {
		out[name] = DatabaseInfo{
			Tables:     slices.Clone(info.Tables),
			AppCreated: info.AppCreated,
		}
	}
	return out
}

// =============================================================================
// Query results
// =============================================================================

// QueryResultSet is the tabular result currently shown in the grid.
// Every row has exactly len(Columns) cells.
type QueryResultSet struct {
	HasPrimaryKey bool       `json:"pk" yaml:"pk"`
	Columns       []string   `json:"cols" yaml:"cols"`
	Rows          [][]string `json:"rows" yaml:"rows"`
	Editable      bool       `json:"editable" yaml:"editable"`
}

// Clone returns a deep copy of the result set. Nil columns and rows come
// back empty.
func (q QueryResultSet) Clone() QueryResultSet {
	rows := make([][]string, len(q.Rows))
	for i, r := range q.Rows {
		rows[i] = slices.Clone(r)
	}
	cols := make([]string, len(q.Columns))
	copy(cols, q.Columns)
	return QueryResultSet{
		HasPrimaryKey: q.HasPrimaryKey,
		Columns:       cols,
		Rows:          rows,
		Editable:      q.Editable,
	}
}

// RaggedRow returns the index of the first row whose width differs from
// the column count, or -1 if the set is rectangular.
func (q QueryResultSet) RaggedRow() int {
	for i, r := range q.Rows {
		if len(r) != len(q.Columns) {
			return i
		}
	}
	return -1
}

// =============================================================================
// Dialog
// =============================================================================

// Dialog describes a modal confirmation or prompt. Options, Actions and
// ButtonStyles are index-aligned.
type Dialog struct {
	Title        string   `json:"title" yaml:"title"`
	Message      string   `json:"msg" yaml:"msg"`
	Options      []string `json:"options" yaml:"options"`
	Actions      []func() `json:"-" yaml:"-"`
	ButtonStyles []string `json:"btnStyles" yaml:"btn_styles"`
	Visible      bool     `json:"show" yaml:"show"`
}

// Aligned reports whether options, actions and styles have equal length.
func (d Dialog) Aligned() bool {
	return len(d.Options) == len(d.Actions) && len(d.Options) == len(d.ButtonStyles)
}

// Clone returns a copy with its own slices. Actions are shared.
func (d Dialog) Clone() Dialog {
	return Dialog{
		Title:        d.Title,
		Message:      d.Message,
		Options:      slices.Clone(d.Options),
		Actions:      slices.Clone(d.Actions),
		ButtonStyles: slices.Clone(d.ButtonStyles),
		Visible:      d.Visible,
	}
}

// DefaultDialog is the dialog value at startup.
func DefaultDialog() Dialog {
	return Dialog{
		Title:        "New Dialogue",
		Options:      []string{"Cancel", "OK"},
		Actions:      []func(){nil, nil},
		ButtonStyles: []string{"", ""},
	}
}

// =============================================================================
// Notification
// =============================================================================

// Notification is the state of one transient alert channel.
type Notification struct {
	Message  string        `json:"msg" yaml:"msg"`
	Severity Severity      `json:"type" yaml:"type"`
	Visible  bool          `json:"show" yaml:"show"`
	Duration time.Duration `json:"-" yaml:"-"`
}
