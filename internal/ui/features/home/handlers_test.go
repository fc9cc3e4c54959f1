package home_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbnav/internal/syncer"
	"github.com/leapstack-labs/dbnav/internal/ui/features"
	"github.com/leapstack-labs/dbnav/internal/ui/features/home"
	"github.com/leapstack-labs/dbnav/pkg/core"
)

func setup(t *testing.T) *features.TestFixture {
	t.Helper()
	return features.SetupTestFixture(t, func(r chi.Router, s *syncer.Syncer) error {
		return home.SetupRoutes(r, s.Store())
	})
}

func TestHomePage(t *testing.T) {
	f := setup(t)

	rec := httptest.NewRecorder()
	f.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/api/state")
}

// streamRecorder is a ResponseRecorder that can be read while the handler
// is still writing.
type streamRecorder struct {
	mu  sync.Mutex
	rec *httptest.ResponseRecorder
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{rec: httptest.NewRecorder()}
}

func (s *streamRecorder) Header() http.Header { return s.rec.Header() }

func (s *streamRecorder) WriteHeader(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.WriteHeader(code)
}

func (s *streamRecorder) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Write(b)
}

func (s *streamRecorder) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.Flush()
}

func (s *streamRecorder) Body() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Body.String()
}

// serveState runs the state stream until the returned cancel is called.
func serveState(t *testing.T, f *features.TestFixture) (*streamRecorder, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	rec := newStreamRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.Router.ServeHTTP(rec, req)
	}()

	stop := func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("state stream did not stop")
		}
	}
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return rec, stop
}

func TestStateUpdates_SendsInitialState(t *testing.T) {
	f := setup(t)
	f.Store.SetRootPath("/srv/data")
	f.Store.SetDatabases(map[string]core.DatabaseInfo{"main": {Tables: []string{"users"}}})

	rec, stop := serveState(t, f)

	assert.Eventually(t, func() bool {
		return strings.Contains(rec.Body(), `id="dialog"`)
	}, 2*time.Second, 10*time.Millisecond)
	body := rec.Body()
	assert.Contains(t, body, `"rootPath":"/srv/data"`)
	assert.Contains(t, body, `>main</summary>`)
	assert.Contains(t, body, `<table id="grid">`)
	assert.Equal(t, 1, f.Store.Notifier().Len())

	stop()
	assert.Zero(t, f.Store.Notifier().Len(), "subscription is released")
}

func TestStateUpdates_PushesChanges(t *testing.T) {
	f := setup(t)

	rec, stop := serveState(t, f)
	defer stop()

	assert.Eventually(t, func() bool {
		return f.Store.Notifier().Len() == 1 && strings.Contains(rec.Body(), `id="dialog"`)
	}, 2*time.Second, 10*time.Millisecond)

	f.Store.Alert().Show("saved", core.SeveritySuccess)

	assert.Eventually(t, func() bool {
		return strings.Contains(rec.Body(), `"msg":"saved"`)
	}, 2*time.Second, 10*time.Millisecond)
}
