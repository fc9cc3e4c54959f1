// Package router sets up HTTP routes for the UI server.
package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/dbnav/internal/syncer"
	alertsFeature "github.com/leapstack-labs/dbnav/internal/ui/features/alerts"
	dialogFeature "github.com/leapstack-labs/dbnav/internal/ui/features/dialog"
	homeFeature "github.com/leapstack-labs/dbnav/internal/ui/features/home"
	navigationFeature "github.com/leapstack-labs/dbnav/internal/ui/features/navigation"
	resultsFeature "github.com/leapstack-labs/dbnav/internal/ui/features/results"
	"github.com/leapstack-labs/dbnav/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, sync *syncer.Syncer) error {
	store := sync.Store()

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := homeFeature.SetupRoutes(router, store); err != nil {
		return err
	}

	if err := navigationFeature.SetupRoutes(router, sync); err != nil {
		return err
	}

	if err := resultsFeature.SetupRoutes(router, sync); err != nil {
		return err
	}

	if err := dialogFeature.SetupRoutes(router, store); err != nil {
		return err
	}

	if err := alertsFeature.SetupRoutes(router, store); err != nil {
		return err
	}

	return nil
}
