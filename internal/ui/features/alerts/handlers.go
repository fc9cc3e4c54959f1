package alerts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/dbnav/internal/state"
	"github.com/leapstack-labs/dbnav/internal/ui/features/common"
)

// Handlers provides HTTP handlers for the alerts feature.
type Handlers struct {
	store *state.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *state.Store) *Handlers {
	return &Handlers{store: store}
}

// Dismiss hides a channel and cancels its pending expiry.
func (h *Handlers) Dismiss(w http.ResponseWriter, r *http.Request) {
	ch, ok := h.store.Channel(chi.URLParam(r, "channel"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	ch.Dismiss()
	common.Respond(w, r, h.store)
}
