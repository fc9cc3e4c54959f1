// Package alerts lets the page close a notification early.
package alerts

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/dbnav/internal/state"
)

// SetupRoutes registers the alerts feature routes.
func SetupRoutes(router chi.Router, store *state.Store) error {
	handlers := NewHandlers(store)

	router.Post("/api/alerts/{channel}/dismiss", handlers.Dismiss)

	return nil
}
