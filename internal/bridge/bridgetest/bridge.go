// Package bridgetest provides a scriptable in-memory Backend Bridge for tests.
package bridgetest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// Bridge implements core.Bridge and core.EventSource. Each method returns
// the matching field, or the result of the matching func when set.
// Calls are counted by method name.
type Bridge struct {
	mu    sync.Mutex
	calls map[string]int

	Nav       core.Result[map[string]core.DatabaseInfo]
	NavErr    error
	Current   core.Result[string]
	CurErr    error
	Root      core.Result[core.RootPath]
	SetDB     core.Result[core.CurrentDB]
	QueryRes  core.Result[core.QueryPayload]
	QueryErr  error
	UpdateRes core.Result[json.RawMessage]
	CreateRes core.Result[json.RawMessage]
	RemoveRes core.Result[json.RawMessage]

	// NavFunc overrides Nav/NavErr when set.
	NavFunc func(ctx context.Context) (core.Result[map[string]core.DatabaseInfo], error)
	// QueryFunc overrides QueryRes/QueryErr for Query and QueryAll.
	QueryFunc func(ctx context.Context, query string) (core.Result[core.QueryPayload], error)

	// LastQuery, LastTable, LastUpdate and LastSelected record the latest arguments.
	LastQuery    core.QueryRequest
	LastTable    string
	LastUpdate   core.UpdateRequest
	LastSelected string
	LastCreate   core.CreateDBRequest
	LastRemove   string

	events chan core.Event
}

// New returns a Bridge whose navigation and current database calls succeed
// with empty results.
func New() *Bridge {
	return &Bridge{
		calls:  make(map[string]int),
		Nav:    core.Result[map[string]core.DatabaseInfo]{Results: map[string]core.DatabaseInfo{}},
		events: make(chan core.Event, 64),
	}
}

// Calls returns how many times method was called.
func (b *Bridge) Calls(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method]
}

func (b *Bridge) record(method string) {
	b.mu.Lock()
	b.calls[method]++
	b.mu.Unlock()
}

// Emit queues an event for subscribers. Payload is marshaled to JSON;
// a json.RawMessage or []byte is used as is.
func (b *Bridge) Emit(name string, payload any) {
	var raw json.RawMessage
	switch p := payload.(type) {
	case nil:
	case json.RawMessage:
		raw = p
	case []byte:
		raw = p
	default:
		raw, _ = json.Marshal(p)
	}
	b.events <- core.Event{Name: name, Payload: raw}
}

// Subscribe forwards emitted events until ctx is done.
func (b *Bridge) Subscribe(ctx context.Context) (<-chan core.Event, error) {
	b.record("Subscribe")
	out := make(chan core.Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-b.events:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// FetchNavigationData implements core.Bridge.
func (b *Bridge) FetchNavigationData(ctx context.Context) (core.Result[map[string]core.DatabaseInfo], error) {
	b.record("FetchNavigationData")
	if b.NavFunc != nil {
		return b.NavFunc(ctx)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Nav, b.NavErr
}

// FetchCurrentDatabase implements core.Bridge.
func (b *Bridge) FetchCurrentDatabase(_ context.Context) (core.Result[string], error) {
	b.record("FetchCurrentDatabase")
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Current, b.CurErr
}

// FetchRootPath implements core.Bridge.
func (b *Bridge) FetchRootPath(_ context.Context) (core.Result[core.RootPath], error) {
	b.record("FetchRootPath")
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Root, nil
}

// SetCurrentDatabase implements core.Bridge.
func (b *Bridge) SetCurrentDatabase(_ context.Context, name string) (core.Result[core.CurrentDB], error) {
	b.record("SetCurrentDatabase")
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LastSelected = name
	res := b.SetDB
	if !res.Failed() && res.Results.Name == "" {
		res.Results.Name = name
	}
	return res, nil
}

// Query implements core.Bridge.
func (b *Bridge) Query(ctx context.Context, req core.QueryRequest) (core.Result[core.QueryPayload], error) {
	b.record("Query")
	b.mu.Lock()
	b.LastQuery = req
	b.mu.Unlock()
	return b.query(ctx, req.Query)
}

// QueryAll implements core.Bridge.
func (b *Bridge) QueryAll(ctx context.Context, table string) (core.Result[core.QueryPayload], error) {
	b.record("QueryAll")
	b.mu.Lock()
	b.LastTable = table
	b.mu.Unlock()
	return b.query(ctx, "SELECT * FROM "+table)
}

func (b *Bridge) query(ctx context.Context, q string) (core.Result[core.QueryPayload], error) {
	if b.QueryFunc != nil {
		return b.QueryFunc(ctx, q)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.QueryRes, b.QueryErr
}

// UpdateCell implements core.Bridge.
func (b *Bridge) UpdateCell(_ context.Context, req core.UpdateRequest) (core.Result[json.RawMessage], error) {
	b.record("UpdateCell")
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LastUpdate = req
	return b.UpdateRes, nil
}

// CreateDatabase implements core.Bridge.
func (b *Bridge) CreateDatabase(_ context.Context, req core.CreateDBRequest) (core.Result[json.RawMessage], error) {
	b.record("CreateDatabase")
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LastCreate = req
	return b.CreateRes, nil
}

// RemoveDatabase implements core.Bridge.
func (b *Bridge) RemoveDatabase(_ context.Context, name string) (core.Result[json.RawMessage], error) {
	b.record("RemoveDatabase")
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LastRemove = name
	return b.RemoveRes, nil
}

var (
	_ core.Bridge      = (*Bridge)(nil)
	_ core.EventSource = (*Bridge)(nil)
)

// SetNav replaces the navigation response while other goroutines may be calling.
func (b *Bridge) SetNav(res core.Result[map[string]core.DatabaseInfo], err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Nav, b.NavErr = res, err
}

// SetCurrent replaces the current-database response.
func (b *Bridge) SetCurrent(res core.Result[string], err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Current, b.CurErr = res, err
}
