package state

import "github.com/leapstack-labs/dbnav/pkg/core"

// Snapshot is a point-in-time copy of the store, shaped for renderers.
// JSON field names match the signals the web UI binds to.
type Snapshot struct {
	RootPath       string                       `json:"rootPath" yaml:"root_path"`
	CurrentDB      string                       `json:"currentDB" yaml:"current_db"`
	NavData        map[string]core.DatabaseInfo `json:"navData" yaml:"nav_data"`
	QueryResults   core.QueryResultSet          `json:"queryResults" yaml:"query_results"`
	SelectedTable  string                       `json:"selectedTable" yaml:"selected_table"`
	LoadingResults bool                         `json:"loadingQueryResults" yaml:"loading_query_results"`
	Alert          core.Notification            `json:"alert" yaml:"alert"`
	ResultAlert    core.Notification            `json:"resultAlert" yaml:"result_alert"`
	Dialog         core.Dialog                  `json:"dialog" yaml:"dialog"`
}

// Navigation returns the navigation part of the snapshot.
func (s Snapshot) Navigation() core.Navigation {
	return core.Navigation{Databases: s.NavData, CurrentDatabase: s.CurrentDB}
}
