// Package home serves the page shell and the long-lived state stream.
package home

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/dbnav/internal/state"
)

// SetupRoutes configures routes for the home feature.
func SetupRoutes(router chi.Router, store *state.Store) error {
	handlers := NewHandlers(store)

	router.Get("/", handlers.HomePage)
	router.Get("/api/state", handlers.StateUpdates)

	return nil
}
