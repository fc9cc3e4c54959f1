package tui

import (
	"context"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbnav/internal/bridge/bridgetest"
	"github.com/leapstack-labs/dbnav/internal/state"
	"github.com/leapstack-labs/dbnav/internal/syncer"
	"github.com/leapstack-labs/dbnav/internal/testutil"
	"github.com/leapstack-labs/dbnav/pkg/core"
)

func setupTestModel(t *testing.T) (Model, *bridgetest.Bridge) {
	t.Helper()
	b := bridgetest.New()
	b.SetNav(core.Result[map[string]core.DatabaseInfo]{Results: map[string]core.DatabaseInfo{
		"a.db": {Tables: []string{"t1", "t2"}},
		"b.db": {},
	}}, nil)
	b.SetCurrent(core.Result[string]{Results: "a.db"}, nil)
	b.QueryRes = core.Result[core.QueryPayload]{Results: core.QueryPayload{
		Columns: []string{"id", "name"},
		Rows:    [][]any{{float64(1), "alice"}},
	}}

	store := state.New(state.Options{})
	t.Cleanup(store.Close)
	s := syncer.New(b, store, testutil.NewTestLogger(t))
	require.NoError(t, s.RefreshNavigation(context.Background()))

	m := New(context.Background(), s)
	t.Cleanup(m.Close)
	return m, b
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends key and runs any resulting command to completion.
func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(key)
	m = next.(Model)
	if cmd != nil {
		next, _ = m.Update(cmd())
		m = next.(Model)
	}
	return m
}

// =============================================================================
// Navigation pane
// =============================================================================

func TestFlattenTree(t *testing.T) {
	rows := flattenTree(core.Navigation{Databases: map[string]core.DatabaseInfo{
		"z.db": {Tables: []string{"x"}},
		"a.db": {},
	}})

	assert.Equal(t, []treeRow{
		{Database: "a.db"},
		{Database: "z.db"},
		{Database: "z.db", Table: "x"},
	}, rows)
}

func TestModel_CursorMovement(t *testing.T) {
	m, _ := setupTestModel(t)
	require.Len(t, m.rows, 4)

	m = press(t, m, runes("k"))
	assert.Equal(t, 0, m.cursor, "cursor stops at the top")

	for range 10 {
		m = press(t, m, runes("j"))
	}
	assert.Equal(t, 3, m.cursor, "cursor stops at the bottom")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, m.cursor)
}

func TestModel_EnterOpensTable(t *testing.T) {
	m, b := setupTestModel(t)

	m = press(t, m, runes("j"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "t1", b.LastTable)
	assert.Zero(t, b.Calls("SetCurrentDatabase"), "table is in the current database")
	assert.Equal(t, []string{"id", "name"}, m.snap.QueryResults.Columns)
	require.Len(t, m.grid.Rows(), 1)
	assert.Equal(t, table.Row{"1", "alice"}, m.grid.Rows()[0])
	assert.Contains(t, m.View(), "1 row returned")
}

func TestModel_EnterSelectsDatabase(t *testing.T) {
	m, b := setupTestModel(t)

	for range 3 {
		m = press(t, m, runes("j"))
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "b.db", b.LastSelected)
	assert.Equal(t, "b.db", m.snap.CurrentDB)
}

func TestModel_RefreshKey(t *testing.T) {
	m, b := setupTestModel(t)
	before := b.Calls("FetchNavigationData")

	press(t, m, runes("r"))

	assert.Equal(t, before+1, b.Calls("FetchNavigationData"))
}

func TestModel_TabSwitchesPane(t *testing.T) {
	m, _ := setupTestModel(t)
	assert.Equal(t, TreePane, m.focus)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, GridPane, m.focus)
	assert.True(t, m.grid.Focused())

	m = press(t, m, runes("j"))
	assert.Equal(t, 0, m.cursor, "tree cursor ignores keys while the grid has focus")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TreePane, m.focus)
}

func TestModel_Quit(t *testing.T) {
	m, _ := setupTestModel(t)

	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

// =============================================================================
// Dialog
// =============================================================================

func TestModel_RemoveDatabaseDialog(t *testing.T) {
	m, b := setupTestModel(t)

	for range 3 {
		m = press(t, m, runes("j"))
	}
	m = press(t, m, runes("d"))
	require.True(t, m.snap.Dialog.Visible)
	assert.Contains(t, m.View(), "Remove database")
	assert.Equal(t, 0, m.choice)

	m = press(t, m, runes("q"))
	assert.True(t, m.snap.Dialog.Visible, "dialog swallows keys")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.choice, "choice stops at the last option")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.snap.Dialog.Visible)
	assert.Equal(t, "b.db", b.LastRemove)
}

func TestModel_DialogEscapeCancels(t *testing.T) {
	m, b := setupTestModel(t)

	for range 3 {
		m = press(t, m, runes("j"))
	}
	m = press(t, m, runes("d"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.snap.Dialog.Visible)
	assert.Zero(t, b.Calls("RemoveDatabase"))
}

func TestModel_RemoveIgnoresTableRows(t *testing.T) {
	m, _ := setupTestModel(t)

	m = press(t, m, runes("j"))
	_, cmd := m.Update(runes("d"))

	assert.Nil(t, cmd)
}

// =============================================================================
// Store updates
// =============================================================================

func TestModel_WaitForChange(t *testing.T) {
	m, _ := setupTestModel(t)

	m.store.SetRootPath("/srv/data")
	msg := m.waitForChange()()
	require.IsType(t, stateChangedMsg{}, msg)

	next, cmd := m.Update(msg)
	m = next.(Model)
	assert.NotNil(t, cmd, "wait is re-armed")
	assert.Contains(t, m.View(), "/srv/data")
}

func TestModel_ViewShowsAlerts(t *testing.T) {
	m, _ := setupTestModel(t)

	m.store.Alert().Show("Folder opened", core.SeveritySuccess)
	m.store.ResultAlert().Show("syntax error", core.SeverityError)
	next, _ := m.Update(stateChangedMsg{})
	view := next.(Model).View()

	assert.Contains(t, view, "Folder opened")
	assert.Contains(t, view, "syntax error")
	assert.Contains(t, view, "a.db")
}

func TestGridData(t *testing.T) {
	long := "0123456789012345678901234567890123456789"
	cols, rows := gridData([]string{"id", "text"}, [][]string{{"1", long}})

	require.Len(t, cols, 2)
	assert.Equal(t, 2, cols[0].Width)
	assert.Equal(t, maxColumnWidth, cols[1].Width)
	assert.Len(t, rows, 1)
}
