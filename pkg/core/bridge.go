package core

import (
	"context"
	"encoding/json"
)

// Result is the uniform envelope every backend call returns.
// Error is empty on success.
type Result[T any] struct {
	Error   string `json:"error,omitempty"`
	Results T      `json:"results"`
}

// Failed reports whether the backend set the error field.
func (r Result[T]) Failed() bool {
	return r.Error != ""
}

// RootPath is the payload of GetRootPath.
type RootPath struct {
	Root string `json:"root"`
}

// CurrentDB is the payload of SetCurrentDB.
type CurrentDB struct {
	Name string `json:"name"`
}

// QueryPayload is the payload of Query and QueryAll. Select statements fill
// Columns and Rows; other statements report RowsAffected.
type QueryPayload struct {
	PrimaryKey   bool     `json:"pk"`
	Columns      []string `json:"cols"`
	Rows         [][]any  `json:"rows"`
	Editable     bool     `json:"editable"`
	RowsAffected *int64   `json:"rowsAffected,omitempty"`
}

// Bridge is the request/response half of the Backend Bridge.
//
// A non-nil error means the call never produced an envelope (transport
// failure, cancelled context). Backend failures arrive as Result.Error.
type Bridge interface {
	FetchNavigationData(ctx context.Context) (Result[map[string]DatabaseInfo], error)
	FetchCurrentDatabase(ctx context.Context) (Result[string], error)
	FetchRootPath(ctx context.Context) (Result[RootPath], error)
	SetCurrentDatabase(ctx context.Context, name string) (Result[CurrentDB], error)
	Query(ctx context.Context, req QueryRequest) (Result[QueryPayload], error)
	QueryAll(ctx context.Context, table string) (Result[QueryPayload], error)
	UpdateCell(ctx context.Context, req UpdateRequest) (Result[json.RawMessage], error)
	CreateDatabase(ctx context.Context, req CreateDBRequest) (Result[json.RawMessage], error)
	RemoveDatabase(ctx context.Context, name string) (Result[json.RawMessage], error)
}

// Event is one push notification from the backend.
// Payload is the raw JSON body and may be empty.
type Event struct {
	ID      string          `json:"id,omitempty"`
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// EventSource is the push half of the Backend Bridge. Subscribe delivers
// events in emission order until ctx is done, then closes the channel.
type EventSource interface {
	Subscribe(ctx context.Context) (<-chan Event, error)
}
