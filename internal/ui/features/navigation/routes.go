// Package navigation handles the database tree: refresh, selection,
// creation and removal.
package navigation

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/dbnav/internal/syncer"
)

// SetupRoutes registers the navigation feature routes.
func SetupRoutes(router chi.Router, sync *syncer.Syncer) error {
	handlers := NewHandlers(sync)

	router.Route("/api/nav", func(r chi.Router) {
		r.Post("/refresh", handlers.Refresh)
		r.Post("/select", handlers.Select)
	})
	router.Route("/api/databases", func(r chi.Router) {
		r.Post("/", handlers.Create)
		r.Delete("/{name}", handlers.ConfirmRemove)
	})

	return nil
}
