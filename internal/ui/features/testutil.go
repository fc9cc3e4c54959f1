// Package features provides shared test utilities for UI feature tests.
package features

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbnav/internal/bridge/bridgetest"
	"github.com/leapstack-labs/dbnav/internal/state"
	"github.com/leapstack-labs/dbnav/internal/syncer"
	"github.com/leapstack-labs/dbnav/internal/testutil"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Bridge *bridgetest.Bridge
	Store  *state.Store
	Syncer *syncer.Syncer
	Router chi.Router

	t *testing.T
}

// SetupTestFixture creates a fixture with a scripted bridge and a fresh store.
// Routes are registered by the caller through setup.
func SetupTestFixture(t *testing.T, setup func(r chi.Router, s *syncer.Syncer) error) *TestFixture {
	t.Helper()

	b := bridgetest.New()
	store := state.New(state.Options{})
	t.Cleanup(store.Close)
	sync := syncer.New(b, store, testutil.NewTestLogger(t))

	r := chi.NewRouter()
	require.NoError(t, setup(r, sync))

	return &TestFixture{
		Bridge: b,
		Store:  store,
		Syncer: sync,
		Router: r,
		t:      t,
	}
}

// Post sends signals as a datastar POST body and returns the recorded response.
func (f *TestFixture) Post(path string, signals any) *httptest.ResponseRecorder {
	return f.Do(http.MethodPost, path, signals)
}

// Do sends a request with a JSON signals body. A nil signals sends "{}".
func (f *TestFixture) Do(method, path string, signals any) *httptest.ResponseRecorder {
	f.t.Helper()
	if signals == nil {
		signals = map[string]any{}
	}
	body, err := json.Marshal(signals)
	require.NoError(f.t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	rec := httptest.NewRecorder()
	f.Router.ServeHTTP(rec, req)
	return rec
}
