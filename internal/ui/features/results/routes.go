// Package results runs statements and edits cells of the result grid.
package results

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/dbnav/internal/syncer"
)

// SetupRoutes registers the results feature routes.
func SetupRoutes(router chi.Router, sync *syncer.Syncer) error {
	handlers := NewHandlers(sync)

	router.Post("/api/query", handlers.Query)
	router.Post("/api/tables/{table}", handlers.Table)
	router.Post("/api/cells", handlers.UpdateCell)

	return nil
}
