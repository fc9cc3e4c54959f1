package results

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/dbnav/internal/syncer"
	"github.com/leapstack-labs/dbnav/internal/ui/features/common"
	"github.com/leapstack-labs/dbnav/pkg/core"
)

// QuerySignals represents the editor signals sent from the frontend.
type QuerySignals struct {
	SQL      string `json:"sql"`
	Editable bool   `json:"editable"`
}

// TableSignals carries the database the clicked table belongs to.
type TableSignals struct {
	Database string `json:"database"`
}

// CellSignals carries one edited cell.
type CellSignals struct {
	Cell core.UpdateRequest `json:"cell"`
}

// Handlers provides HTTP handlers for the results feature.
type Handlers struct {
	syncer *syncer.Syncer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sync *syncer.Syncer) *Handlers {
	return &Handlers{syncer: sync}
}

// Query runs the editor contents.
func (h *Handlers) Query(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals QuerySignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		common.RespondError(w, r, err)
		return
	}
	query := strings.TrimSpace(signals.SQL)
	if query == "" {
		common.RespondError(w, r, errors.New("query is empty"))
		return
	}

	_ = h.syncer.RunQuery(r.Context(), core.QueryRequest{Query: query, Editable: signals.Editable})
	common.Respond(w, r, h.syncer.Store())
}

// Table loads a whole table into the editable grid, switching to the
// table's database first when it is not the current one.
func (h *Handlers) Table(w http.ResponseWriter, r *http.Request) {
	var signals TableSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		common.RespondError(w, r, err)
		return
	}
	store := h.syncer.Store()
	if db := strings.TrimSpace(signals.Database); db != "" && db != store.Navigation().CurrentDatabase {
		if err := h.syncer.SelectDatabase(r.Context(), db); err != nil {
			common.Respond(w, r, store)
			return
		}
	}

	_ = h.syncer.QueryTable(r.Context(), chi.URLParam(r, "table"))
	common.Respond(w, r, store)
}

// UpdateCell writes one edited cell. The database defaults to the current one.
func (h *Handlers) UpdateCell(w http.ResponseWriter, r *http.Request) {
	var signals CellSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		common.RespondError(w, r, err)
		return
	}
	req := signals.Cell
	if req.DB == "" {
		req.DB = h.syncer.Store().Navigation().CurrentDatabase
	}
	if req.Table == "" {
		req.Table = h.syncer.Store().SelectedTable()
	}
	if req.Table == "" || req.Column == "" {
		common.RespondError(w, r, errors.New("cell update needs a table and a column"))
		return
	}

	_ = h.syncer.UpdateCell(r.Context(), req)
	common.Respond(w, r, h.syncer.Store())
}
