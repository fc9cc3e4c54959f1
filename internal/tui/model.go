// Package tui is the terminal front end of dbnav. It renders the shared
// state store and drives the syncer from key presses.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/dbnav/internal/state"
	"github.com/leapstack-labs/dbnav/internal/syncer"
	"github.com/leapstack-labs/dbnav/internal/ui/notifier"
)

const maxColumnWidth = 30

// Pane identifies which pane receives movement keys.
type Pane int

const (
	// TreePane is the database navigation list.
	TreePane Pane = iota
	// GridPane is the result table.
	GridPane
)

// stateChangedMsg is sent when the store pings the notifier.
type stateChangedMsg struct{}

// opDoneMsg is sent when a syncer call returns. Failures already show as alerts.
type opDoneMsg struct{ err error }

// Model is the Bubble Tea model for the terminal UI.
type Model struct {
	ctx     context.Context
	syncer  *syncer.Syncer
	store   *state.Store
	updates chan struct{}
	styles  Styles

	snap   state.Snapshot
	rows   []treeRow
	cursor int
	focus  Pane
	grid   table.Model
	choice int // highlighted dialog option

	width  int
	height int
}

// New creates a Model bound to s. ctx bounds every backend call the UI starts.
func New(ctx context.Context, s *syncer.Syncer) Model {
	grid := table.New(table.WithHeight(10))
	m := Model{
		ctx:     ctx,
		syncer:  s,
		store:   s.Store(),
		updates: s.Store().Notifier().Subscribe(notifier.TopicAll),
		styles:  NewStyles(DefaultTheme()),
		grid:    grid,
	}
	m.sync()
	return m
}

// Close releases the store subscription.
func (m Model) Close() {
	m.store.Notifier().Unsubscribe(m.updates)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForChange(), m.run(func(ctx context.Context) error {
		_ = m.syncer.LoadRootPath(ctx)
		return m.syncer.RefreshNavigation(ctx)
	}))
}

// waitForChange blocks until the store changes.
func (m Model) waitForChange() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

// run wraps a syncer call as a command.
func (m Model) run(op func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{err: op(ctx)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.grid.SetHeight(max(msg.Height-10, 3))
		m.grid.SetWidth(max(msg.Width-30, 20))

	case stateChangedMsg:
		m.sync()
		return m, m.waitForChange()

	case opDoneMsg:
		m.sync()
	}

	return m, nil
}

// sync copies the store into the view model.
func (m *Model) sync() {
	prevDialog := m.snap.Dialog.Visible
	m.snap = m.store.Snapshot()
	m.rows = flattenTree(m.snap.Navigation())
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	if m.snap.Dialog.Visible && !prevDialog {
		m.choice = 0
	}

	cols, rows := gridData(m.snap.QueryResults.Columns, m.snap.QueryResults.Rows)
	// Rows first: SetColumns renders existing rows against the new columns.
	m.grid.SetRows(nil)
	m.grid.SetColumns(cols)
	m.grid.SetRows(rows)
}

// handleKeyPress processes keyboard input and returns updated model with optional command.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.snap.Dialog.Visible {
		return m.handleDialogKeys(key)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "r":
		return m, m.run(m.syncer.RefreshNavigation)
	case "tab":
		if m.focus == TreePane {
			m.focus = GridPane
			m.grid.Focus()
		} else {
			m.focus = TreePane
			m.grid.Blur()
		}
		return m, nil
	}

	if m.focus == GridPane {
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd
	}
	return m.handleTreeKeys(key)
}

// handleTreeKeys processes keyboard input in the navigation pane.
func (m Model) handleTreeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.rows) == 0 {
			return m, nil
		}
		row := m.rows[m.cursor]
		if row.IsTable() {
			return m, m.run(func(ctx context.Context) error {
				if row.Database != m.snap.CurrentDB {
					if err := m.syncer.SelectDatabase(ctx, row.Database); err != nil {
						return err
					}
				}
				return m.syncer.QueryTable(ctx, row.Table)
			})
		}
		return m, m.run(func(ctx context.Context) error {
			return m.syncer.SelectDatabase(ctx, row.Database)
		})
	case "d":
		if len(m.rows) == 0 || m.rows[m.cursor].IsTable() {
			return m, nil
		}
		name := m.rows[m.cursor].Database
		return m, m.run(func(ctx context.Context) error {
			return m.syncer.ConfirmRemoveDatabase(ctx, name)
		})
	}
	return m, nil
}

// handleDialogKeys processes keyboard input while the dialog is open.
func (m Model) handleDialogKeys(key string) (tea.Model, tea.Cmd) {
	n := len(m.snap.Dialog.Options)
	switch key {
	case "left", "h", "shift+tab":
		if m.choice > 0 {
			m.choice--
		}
	case "right", "l", "tab":
		if m.choice < n-1 {
			m.choice++
		}
	case "esc":
		return m, m.resolve(0)
	case "enter":
		return m, m.resolve(m.choice)
	}
	return m, nil
}

func (m Model) resolve(option int) tea.Cmd {
	return m.run(func(context.Context) error {
		return m.store.ResolveDialog(option)
	})
}

// View implements tea.Model.
func (m Model) View() string {
	header := m.styles.Title.Render("dbnav") + "  " + m.styles.Muted.Render(m.snap.RootPath)

	treeStyle, gridStyle := m.styles.FocusedPane, m.styles.Pane
	if m.focus == GridPane {
		treeStyle, gridStyle = m.styles.Pane, m.styles.FocusedPane
	}
	tree := treeStyle.Render(renderTree(m.rows, m.cursor, m.snap.CurrentDB, m.styles))

	gridBody := m.grid.View()
	if m.snap.LoadingResults {
		gridBody = m.styles.Muted.Render("Loading...")
	} else if len(m.snap.QueryResults.Columns) == 0 {
		gridBody = m.styles.Muted.Render("No results")
	}
	grid := gridStyle.Render(gridBody)

	lines := []string{
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, tree, grid),
	}
	if n := m.snap.ResultAlert; n.Visible {
		lines = append(lines, m.styles.Severity(n.Severity).Render(n.Message))
	}
	if n := m.snap.Alert; n.Visible {
		lines = append(lines, m.styles.Severity(n.Severity).Render(n.Message))
	}
	if m.snap.Dialog.Visible {
		lines = append(lines, m.renderDialog())
	}
	lines = append(lines, m.styles.Muted.Render("r refresh · enter open · d remove · tab switch pane · q quit"))

	return strings.Join(lines, "\n")
}

func (m Model) renderDialog() string {
	d := m.snap.Dialog
	buttons := make([]string, len(d.Options))
	for i, opt := range d.Options {
		style := m.styles.Button
		if i == m.choice {
			style = m.styles.ButtonOn
		}
		buttons[i] = style.Render(opt)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(d.Title),
		d.Message,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
	)
	return m.styles.Dialog.Render(body)
}

// gridData sizes columns to their widest cell, capped at maxColumnWidth.
func gridData(cols []string, rows [][]string) ([]table.Column, []table.Row) {
	columns := make([]table.Column, len(cols))
	for i, c := range cols {
		w := lipgloss.Width(c)
		for _, r := range rows {
			if i < len(r) {
				w = max(w, lipgloss.Width(r[i]))
			}
		}
		columns[i] = table.Column{Title: c, Width: min(w, maxColumnWidth)}
	}
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row(r)
	}
	return columns, out
}
