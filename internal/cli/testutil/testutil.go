// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/leapstack-labs/dbnav/internal/cli/output"
)

// Backend is an httptest server speaking the backend binding protocol.
// Each binding answers with a fixed envelope; /api/events streams Events
// once and then holds the connection until the client leaves.
type Backend struct {
	URL string

	mu        sync.Mutex
	responses map[string]string
	args      map[string][]json.RawMessage
	events    string
}

// NewBackend starts a Backend answering with responses, keyed by binding name.
func NewBackend(t *testing.T, responses map[string]string) *Backend {
	t.Helper()
	b := &Backend{responses: responses, args: map[string][]json.RawMessage{}}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	b.URL = srv.URL
	return b
}

// Respond sets the envelope returned for method.
func (b *Backend) Respond(method, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[method] = body
}

// SetEvents sets the raw text/event-stream body served to subscribers.
func (b *Backend) SetEvents(stream string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = stream
}

// Event formats one server-sent event.
func Event(name, data string) string {
	return fmt.Sprintf("event: %s\ndata: %s\n\n", name, data)
}

// Args returns the argument arrays method was called with, in order.
func (b *Backend) Args(method string) []json.RawMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]json.RawMessage(nil), b.args[method]...)
}

// ServeHTTP implements http.Handler.
func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := strings.TrimPrefix(r.URL.Path, "/api/")

	if method == "events" && r.Method == http.MethodGet {
		b.mu.Lock()
		stream := b.events
		b.mu.Unlock()
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(stream))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-r.Context().Done()
		return
	}

	var args json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	b.args[method] = append(b.args[method], args)
	body, ok := b.responses[method]
	b.mu.Unlock()
	if !ok {
		http.Error(w, "no such binding", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode.
// Output is captured in buffers, which are never terminals.
func NewTestRenderer(mode output.Mode) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRenderer(out, errOut, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
