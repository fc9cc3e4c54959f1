// Package httpbridge talks to a dbnav backend over HTTP.
//
// Bindings are invoked as POST {base}/api/{Method} with a JSON array of
// arguments and answer with a Result envelope. Push events stream from
// GET {base}/api/events as text/event-stream.
package httpbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// ErrStatus is returned when the backend answers with a non-2xx status.
var ErrStatus = errors.New("unexpected backend status")

// Backend binding names.
const (
	MethodGetNavData    = "GetNavData"
	MethodGetCurrentDB  = "GetCurrentDB"
	MethodGetRootPath   = "GetRootPath"
	MethodSetCurrentDB  = "SetCurrentDB"
	MethodQuery         = "Query"
	MethodQueryAll      = "QueryAll"
	MethodUpdateDB      = "UpdateDB"
	MethodCreateDB      = "CreateDB"
	MethodRemoveDB      = "RemoveDB"
	eventsPath          = "/api/events"
	defaultTimeout      = 30 * time.Second
	defaultMinBackoff   = 250 * time.Millisecond
	defaultMaxBackoff   = 10 * time.Second
	maxErrorBodyPreview = 512
)

// Client implements core.Bridge and core.EventSource against an HTTP backend.
type Client struct {
	base       string
	client     *http.Client
	stream     *http.Client
	logger     *slog.Logger
	minBackoff time.Duration
	maxBackoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the client used for binding calls.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.client = c }
}

// WithTimeout sets the per-call timeout. The event stream has none.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.client = &http.Client{Timeout: d} }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// WithBackoff bounds the delay between event stream reconnects.
func WithBackoff(minDelay, maxDelay time.Duration) Option {
	return func(cl *Client) { cl.minBackoff, cl.maxBackoff = minDelay, maxDelay }
}

// New creates a Client for the backend at base, e.g. "http://127.0.0.1:34115".
func New(base string, opts ...Option) *Client {
	c := &Client{
		base:       strings.TrimRight(base, "/"),
		client:     &http.Client{Timeout: defaultTimeout},
		stream:     &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
		minBackoff: defaultMinBackoff,
		maxBackoff: defaultMaxBackoff,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// call posts args to method and decodes the envelope into out.
func call[T any](ctx context.Context, c *Client, method string, args ...any) (core.Result[T], error) {
	var res core.Result[T]
	if args == nil {
		args = []any{}
	}
	body, err := json.Marshal(args)
	if err != nil {
		return res, fmt.Errorf("%s: marshal arguments: %w", method, err)
	}

	url := c.base + "/api/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return res, fmt.Errorf("%s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return res, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyPreview))
		return res, fmt.Errorf("%s: HTTP %d: %s: %w", method, resp.StatusCode, strings.TrimSpace(string(preview)), ErrStatus)
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return res, fmt.Errorf("%s: decode response: %w", method, err)
	}
	c.logger.Debug("backend call", "method", method, "failed", res.Failed())
	return res, nil
}

// FetchNavigationData implements core.Bridge.
func (c *Client) FetchNavigationData(ctx context.Context) (core.Result[map[string]core.DatabaseInfo], error) {
	return call[map[string]core.DatabaseInfo](ctx, c, MethodGetNavData)
}

// FetchCurrentDatabase implements core.Bridge.
func (c *Client) FetchCurrentDatabase(ctx context.Context) (core.Result[string], error) {
	return call[string](ctx, c, MethodGetCurrentDB)
}

// FetchRootPath implements core.Bridge.
func (c *Client) FetchRootPath(ctx context.Context) (core.Result[core.RootPath], error) {
	return call[core.RootPath](ctx, c, MethodGetRootPath)
}

// SetCurrentDatabase implements core.Bridge.
func (c *Client) SetCurrentDatabase(ctx context.Context, name string) (core.Result[core.CurrentDB], error) {
	return call[core.CurrentDB](ctx, c, MethodSetCurrentDB, name)
}

// Query implements core.Bridge.
func (c *Client) Query(ctx context.Context, req core.QueryRequest) (core.Result[core.QueryPayload], error) {
	return call[core.QueryPayload](ctx, c, MethodQuery, req)
}

// QueryAll implements core.Bridge.
func (c *Client) QueryAll(ctx context.Context, table string) (core.Result[core.QueryPayload], error) {
	return call[core.QueryPayload](ctx, c, MethodQueryAll, table)
}

// UpdateCell implements core.Bridge.
func (c *Client) UpdateCell(ctx context.Context, req core.UpdateRequest) (core.Result[json.RawMessage], error) {
	return call[json.RawMessage](ctx, c, MethodUpdateDB, req)
}

// CreateDatabase implements core.Bridge.
func (c *Client) CreateDatabase(ctx context.Context, req core.CreateDBRequest) (core.Result[json.RawMessage], error) {
	return call[json.RawMessage](ctx, c, MethodCreateDB, req)
}

// RemoveDatabase implements core.Bridge.
func (c *Client) RemoveDatabase(ctx context.Context, name string) (core.Result[json.RawMessage], error) {
	return call[json.RawMessage](ctx, c, MethodRemoveDB, name)
}

var (
	_ core.Bridge      = (*Client)(nil)
	_ core.EventSource = (*Client)(nil)
)
