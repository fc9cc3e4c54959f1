// Package common provides shared types and utilities for UI features.
package common

import "github.com/leapstack-labs/dbnav/pkg/core"

// StateSignals are the scalar bindings of the page. The tree, the grid and
// the dialog are rendered on the server and patched as elements.
type StateSignals struct {
	RootPath      string            `json:"rootPath"`
	CurrentDB     string            `json:"currentDB"`
	SelectedTable string            `json:"selectedTable"`
	Editable      bool              `json:"gridEditable"`
	Loading       bool              `json:"loading"`
	Alert         core.Notification `json:"alert"`
	ResultAlert   core.Notification `json:"resultAlert"`
}
