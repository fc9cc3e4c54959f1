// Package core defines the shared language of dbnav.
//
// This package contains:
//   - UI state entities (Navigation, QueryResultSet, Dialog, Notification)
//   - Backend data-transfer objects (QueryRequest, UpdateRequest, CreateDBRequest)
//   - The Backend Bridge contract (Bridge, EventSource, Result, Event)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
