package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// RunQuery sends a statement to the backend and shows the outcome on the
// result alert. Rows from a select replace the grid; a statement without
// rows clears it. On failure the grid keeps its previous contents.
func (s *Syncer) RunQuery(ctx context.Context, req core.QueryRequest) error {
	s.store.SetLoadingResults(true)
	defer s.store.SetLoadingResults(false)

	res, err := s.bridge.Query(ctx, req)
	if msg, failed := failure(res, err); failed {
		s.logger.Error("query failed", "query", req.Query, "error", msg)
		s.store.ResultAlert().Show(msg, core.SeverityError)
		return fmt.Errorf("query: %s: %w", msg, ErrBackend)
	}

	if n := res.Results.RowsAffected; n != nil {
		if err := s.store.SetQueryResults(core.QueryResultSet{}); err != nil {
			return err
		}
		s.store.ResultAlert().Show(fmt.Sprintf("%d rows affected", *n), core.SeveritySuccess)
		return nil
	}

	set := toResultSet(res.Results)
	set.Editable = set.Editable || req.Editable
	if err := s.store.SetQueryResults(set); err != nil {
		s.store.ResultAlert().Show(err.Error(), core.SeverityError)
		return err
	}
	s.store.ResultAlert().Show(rowCount(len(set.Rows)), core.SeveritySuccess)
	return nil
}

// QueryTable loads the first page of table into an editable grid.
func (s *Syncer) QueryTable(ctx context.Context, table string) error {
	s.store.SetSelectedTable(table)
	if err := s.loadTable(ctx, table); err != nil {
		return err
	}
	s.store.ResultAlert().Show(rowCount(len(s.store.QueryResults().Rows)), core.SeveritySuccess)
	return nil
}

// UpdateCell writes one cell through the backend and reloads the selected table.
func (s *Syncer) UpdateCell(ctx context.Context, req core.UpdateRequest) error {
	res, err := s.bridge.UpdateCell(ctx, req)
	if msg, failed := failure(res, err); failed {
		s.store.ResultAlert().Show(msg, core.SeverityError)
		return fmt.Errorf("update %s.%s: %s: %w", req.Table, req.Column, msg, ErrBackend)
	}

	if table := s.store.SelectedTable(); table != "" {
		if err := s.loadTable(ctx, table); err != nil {
			return err
		}
	}
	s.store.ResultAlert().Show("Cell updated", core.SeveritySuccess)
	return nil
}

func (s *Syncer) loadTable(ctx context.Context, table string) error {
	s.store.SetLoadingResults(true)
	defer s.store.SetLoadingResults(false)

	res, err := s.bridge.QueryAll(ctx, table)
	if msg, failed := failure(res, err); failed {
		s.store.ResultAlert().Show(msg, core.SeverityError)
		return fmt.Errorf("query table %q: %s: %w", table, msg, ErrBackend)
	}

	set := toResultSet(res.Results)
	set.Editable = true
	if err := s.store.SetQueryResults(set); err != nil {
		s.store.ResultAlert().Show(err.Error(), core.SeverityError)
		return err
	}
	return nil
}

func toResultSet(p core.QueryPayload) core.QueryResultSet {
	rows := make([][]string, len(p.Rows))
	for i, r := range p.Rows {
		cells := make([]string, len(r))
		for j, v := range r {
			cells[j] = FormatValue(v)
		}
		rows[i] = cells
	}
	cols := p.Columns
	if cols == nil {
		cols = []string{}
	}
	return core.QueryResultSet{
		HasPrimaryKey: p.PrimaryKey,
		Columns:       cols,
		Rows:          rows,
		Editable:      p.Editable,
	}
}

// FormatValue renders a decoded JSON cell for the grid.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func rowCount(n int) string {
	if n == 1 {
		return "1 row returned"
	}
	return fmt.Sprintf("%d rows returned", n)
}
