package navigation

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

// SelectSignals carries the database the user clicked.
type SelectSignals struct {
	Database string `json:"database"`
}

// CreateSignals carries the new-database form.
type CreateSignals struct {
	NewDB core.CreateDBRequest `json:"newdb"`
}

// Handlers provides HTTP handlers for the navigation feature.
type Handlers struct {
	syncer *syncer.Syncer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sync *syncer.Syncer) *Handlers {
	return &Handlers{syncer: sync}
}

// Refresh re-fetches the navigation tree.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	_ = h.syncer.RefreshNavigation(r.Context())
	common.Respond(w, r, h.syncer.Store())
}

// Select makes the signalled database current.
func (h *Handlers) Select(w http.ResponseWriter, r *http.Request) {
	var signals SelectSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		common.RespondError(w, r, err)
		return
	}
	name := strings.TrimSpace(signals.Database)
	if name == "" {
		common.RespondError(w, r, errors.New("no database given"))
		return
	}

	_ = h.syncer.SelectDatabase(r.Context(), name)
	common.Respond(w, r, h.syncer.Store())
}

// Create asks the backend for a new database.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var signals CreateSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		common.RespondError(w, r, err)
		return
	}
	if strings.TrimSpace(signals.NewDB.Name) == "" {
		common.RespondError(w, r, errors.New("database name is required"))
		return
	}

	_ = h.syncer.CreateDatabase(r.Context(), signals.NewDB)
	common.Respond(w, r, h.syncer.Store())
}

// ConfirmRemove opens the remove confirmation dialog.
func (h *Handlers) ConfirmRemove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.syncer.ConfirmRemoveDatabase(r.Context(), name); err != nil {
		common.RespondError(w, r, err)
		return
	}
	common.Respond(w, r, h.syncer.Store())
}
