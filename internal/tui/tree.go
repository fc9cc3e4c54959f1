package tui

import (
	"strings"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// treeRow is one visible line of the navigation pane.
type treeRow struct {
	Database string
	Table    string // empty for a database row
}

// IsTable reports whether the row is a table under a database.
func (r treeRow) IsTable() bool { return r.Table != "" }

// flattenTree lists databases sorted by name, each followed by its tables.
func flattenTree(nav core.Navigation) []treeRow {
	var rows []treeRow
	for _, name := range nav.Names() {
		rows = append(rows, treeRow{Database: name})
		for _, table := range nav.Databases[name].Tables {
			rows = append(rows, treeRow{Database: name, Table: table})
		}
	}
	return rows
}

// renderTree draws the navigation pane with the cursor row highlighted.
func renderTree(rows []treeRow, cursor int, current string, styles Styles) string {
	if len(rows) == 0 {
		return styles.Muted.Render("No databases attached")
	}

	var sb strings.Builder
	for i, row := range rows {
		var line string
		switch {
		case row.IsTable():
			line = "  " + row.Table
		case row.Database == current:
			line = styles.Current.Render("● " + row.Database)
		default:
			line = "○ " + row.Database
		}
		if i == cursor {
			line = styles.Cursor.Render(line)
		}
		sb.WriteString(line)
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
