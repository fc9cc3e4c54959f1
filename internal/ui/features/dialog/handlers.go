package dialog

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/dbnav/internal/state"
	"github.com/leapstack-labs/dbnav/internal/ui/features/common"
)

// Handlers provides HTTP handlers for the dialog feature.
type Handlers struct {
	store *state.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *state.Store) *Handlers {
	return &Handlers{store: store}
}

// Resolve runs the action of the chosen option and hides the dialog.
func (h *Handlers) Resolve(w http.ResponseWriter, r *http.Request) {
	option, err := strconv.Atoi(chi.URLParam(r, "option"))
	if err != nil {
		common.RespondError(w, r, fmt.Errorf("dialog option: %w", err))
		return
	}
	if err := h.store.ResolveDialog(option); err != nil {
		common.RespondError(w, r, err)
		return
	}
	common.Respond(w, r, h.store)
}
