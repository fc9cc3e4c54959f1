package home

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/dbnav/internal/state"
	"github.com/leapstack-labs/dbnav/internal/ui/features/common"
	"github.com/leapstack-labs/dbnav/internal/ui/notifier"
	"github.com/leapstack-labs/dbnav/internal/ui/resources"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	store *state.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *state.Store) *Handlers {
	return &Handlers{store: store}
}

// HomePage writes the page shell. All content arrives over /api/state.
func (h *Handlers) HomePage(w http.ResponseWriter, _ *http.Request) {
	page, err := resources.Page("index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// StateUpdates is the long-lived SSE endpoint. It sends the whole state
// once, then again after every store change until the client goes away.
func (h *Handlers) StateUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.store.Notifier().Subscribe(notifier.TopicAll)
	defer h.store.Notifier().Unsubscribe(updates)

	if err := common.PatchState(sse, h.store); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := common.PatchState(sse, h.store); err != nil {
				_ = sse.ConsoleError(err)
				// keep going; the next change retries
			}
		}
	}
}
