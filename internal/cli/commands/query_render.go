package commands

import (
	"github.com/leapstack-labs/dbnav/internal/cli/output"
	"github.com/leapstack-labs/dbnav/internal/state"
)

// queryOutput is the structured form of a query result.
type queryOutput struct {
	Columns  []string   `json:"columns" yaml:"columns"`
	Rows     [][]string `json:"rows" yaml:"rows"`
	Editable bool       `json:"editable" yaml:"editable"`
	Message  string     `json:"message" yaml:"message"`
}

// renderQueryResult prints the grid and the result alert from snap.
// A statement without a result set prints only the alert.
func renderQueryResult(r *output.Renderer, snap state.Snapshot) error {
	res := snap.QueryResults
	if ok, err := r.Structured(queryOutput{
		Columns:  res.Columns,
		Rows:     res.Rows,
		Editable: res.Editable,
		Message:  snap.ResultAlert.Message,
	}); ok {
		return err
	}

	if len(res.Columns) > 0 {
		r.Table(res.Columns, res.Rows)
	}
	if snap.ResultAlert.Visible {
		r.Notification(snap.ResultAlert)
	}
	return nil
}
