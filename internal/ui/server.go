// Package ui provides the browser front end of dbnav.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/dbnav/internal/syncer"
	"github.com/leapstack-labs/dbnav/internal/ui/notifier"
	"github.com/leapstack-labs/dbnav/internal/ui/router"
	"github.com/leapstack-labs/dbnav/pkg/core"
)

const watchDebounce = 250 * time.Millisecond

// Server is the main UI server.
type Server struct {
	syncer *syncer.Syncer
	events core.EventSource
	port   int
	watch  bool
	logger *slog.Logger
}

// Config holds configuration for the UI server.
type Config struct {
	Syncer *syncer.Syncer
	// Events, when set, is dispatched into the store for the server's lifetime.
	Events core.EventSource
	Port   int
	Watch  bool
	Logger *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		syncer: cfg.Syncer,
		events: cfg.Events,
		port:   cfg.Port,
		watch:  cfg.Watch,
		logger: logger,
	}
}

// Handler builds the router with middleware and every feature route.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.syncer); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Initial load before the first page asks for state
	_ = s.syncer.LoadRootPath(egctx)
	_ = s.syncer.RefreshNavigation(egctx)

	if s.events != nil {
		dispatcher := syncer.NewDispatcher(s.syncer, s.logger)
		eg.Go(func() error {
			if err := dispatcher.Listen(egctx, s.events); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if s.watch {
		eg.Go(func() error {
			return s.watchRoot(egctx)
		})
	}

	eg.Go(func() error {
		s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchRoot refreshes navigation when a database file in the root folder
// appears, changes or goes away. The watch follows the root path when a
// folder is reopened.
func (s *Server) watchRoot(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	store := s.syncer.Store()
	session := store.Notifier().Subscribe(notifier.TopicSession)
	defer store.Notifier().Unsubscribe(session)

	var watched string
	retarget := func() {
		root := store.Snapshot().RootPath
		if root == watched {
			return
		}
		if watched != "" {
			_ = watcher.Remove(watched)
		}
		watched = ""
		if root == "" {
			return
		}
		if err := watcher.Add(root); err != nil {
			// Don't fail - continue without watching
			s.logger.Error("failed to watch root folder", "path", root, "error", err)
			return
		}
		watched = root
		s.logger.Debug("watching root folder", "path", root)
	}
	retarget()

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-session:
			retarget()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !IsDatabaseChange(event) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				s.logger.Debug("database file changed, refreshing", "file", event.Name)
				_ = s.syncer.RefreshNavigation(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// IsDatabaseChange reports whether event touches a SQLite file in a way
// that can change the navigation tree.
func IsDatabaseChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}
