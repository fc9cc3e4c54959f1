// Package dialog resolves the modal dialog.
package dialog

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/dbnav/internal/state"
)

// SetupRoutes registers the dialog feature routes.
func SetupRoutes(router chi.Router, store *state.Store) error {
	handlers := NewHandlers(store)

	router.Post("/api/dialog/{option}", handlers.Resolve)

	return nil
}
