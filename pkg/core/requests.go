package core

// QueryRequest asks the backend to run a statement.
type QueryRequest struct {
	Query    string `json:"query"`
	Editable bool   `json:"editable"`
}

// UpdateRequest asks the backend to change one cell. Row carries the
// column names in Row[0] and the original values in Row[1].
type UpdateRequest struct {
	DB     string  `json:"db"`
	Table  string  `json:"table"`
	Row    [][]any `json:"row"`
	Column string  `json:"column"`
	Value  string  `json:"value"`
}

// CreateDBRequest asks the backend to create and attach a new database.
type CreateDBRequest struct {
	Name    string `json:"name"`
	Cache   string `json:"cache"`
	Journal string `json:"journal"`
	Sync    string `json:"sync"`
	Lock    string `json:"lock"`
}
