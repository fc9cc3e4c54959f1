package ui

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbnav/internal/bridge/bridgetest"
	"github.com/leapstack-labs/dbnav/internal/state"
	"github.com/leapstack-labs/dbnav/internal/syncer"
	"github.com/leapstack-labs/dbnav/internal/testutil"
	"github.com/leapstack-labs/dbnav/pkg/core"
)

func setupTestServer(t *testing.T, logger *slog.Logger) (*Server, *bridgetest.Bridge) {
	t.Helper()
	b := bridgetest.New()
	store := state.New(state.Options{})
	t.Cleanup(store.Close)
	return NewServer(Config{
		Syncer: syncer.New(b, store, logger),
		Events: b,
		Watch:  true,
		Logger: logger,
	}), b
}

func TestIsDatabaseChange(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"create db", fsnotify.Event{Name: "/d/a.db", Op: fsnotify.Create}, true},
		{"write sqlite", fsnotify.Event{Name: "/d/a.sqlite", Op: fsnotify.Write}, true},
		{"remove sqlite3 upper", fsnotify.Event{Name: "/d/A.SQLITE3", Op: fsnotify.Remove}, true},
		{"rename db", fsnotify.Event{Name: "/d/a.db", Op: fsnotify.Rename}, true},
		{"chmod db", fsnotify.Event{Name: "/d/a.db", Op: fsnotify.Chmod}, false},
		{"journal", fsnotify.Event{Name: "/d/a.db-journal", Op: fsnotify.Write}, false},
		{"text file", fsnotify.Event{Name: "/d/notes.txt", Op: fsnotify.Create}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDatabaseChange(tt.event))
		})
	}
}

func TestHandler_Routes(t *testing.T) {
	s, _ := setupTestServer(t, testutil.NewTestLogger(t))
	h, err := s.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWatchRoot_RefreshesOnDatabaseFile(t *testing.T) {
	// The debounced refresh can outlive the test, so nothing logs to t.
	s, b := setupTestServer(t, nil)
	dir := t.TempDir()
	s.syncer.Store().SetRootPath(dir)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watchRoot(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher a moment to register the directory
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.db"), nil, 0o600))

	assert.Eventually(t, func() bool {
		return b.Calls("FetchNavigationData") >= 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestServe_DispatchesEvents(t *testing.T) {
	s, b := setupTestServer(t, testutil.NewTestLogger(t))
	s.port = freePort(t)
	s.watch = false
	b.Root = core.Result[core.RootPath]{Results: core.RootPath{Root: "/data"}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	b.Emit(core.EventUploadFailed, map[string]string{"msg": "disk full"})

	assert.Eventually(t, func() bool {
		return s.syncer.Store().Alert().Current().Message == "disk full"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "/data", s.syncer.Store().Snapshot().RootPath)

	cancel()
	assert.NoError(t, <-done)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}
