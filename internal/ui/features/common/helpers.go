package common

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/dbnav/internal/state"
	"github.com/leapstack-labs/dbnav/internal/ui/features/common/components"
)

// Signals converts a store snapshot into page signals.
func Signals(snap state.Snapshot) StateSignals {
	return StateSignals{
		RootPath:      snap.RootPath,
		CurrentDB:     snap.CurrentDB,
		SelectedTable: snap.SelectedTable,
		Editable:      snap.QueryResults.Editable,
		Loading:       snap.LoadingResults,
		Alert:         snap.Alert,
		ResultAlert:   snap.ResultAlert,
	}
}

// PatchState sends one snapshot of the store to the client: the scalar
// signals, then the tree, grid and dialog fragments.
func PatchState(sse *datastar.ServerSentEventGenerator, store *state.Store) error {
	snap := store.Snapshot()
	if err := sse.MarshalAndPatchSignals(Signals(snap)); err != nil {
		return err
	}
	if err := sse.PatchElementTempl(components.NavTree(BuildNavTree(snap.Navigation()))); err != nil {
		return err
	}
	if err := sse.PatchElementTempl(components.ResultGrid(snap.QueryResults, snap.LoadingResults)); err != nil {
		return err
	}
	return sse.PatchElementTempl(components.DialogBox(snap.Dialog))
}

// Respond opens an SSE response and patches the current state.
// Signals must be read before calling it.
func Respond(w http.ResponseWriter, r *http.Request, store *state.Store) {
	sse := datastar.NewSSE(w, r)
	if err := PatchState(sse, store); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// RespondError reports a request the handler could not act on.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	sse := datastar.NewSSE(w, r)
	_ = sse.ConsoleError(err)
}
