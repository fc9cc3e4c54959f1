// Package components renders the server-side fragments of the page: the
// navigation tree, the result grid and the modal dialog. Each fragment's
// root element carries a fixed id so a datastar patch morphs it in place.
package components

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// Element ids the page shell reserves for patched fragments.
const (
	TreeID   = "tree"
	GridID   = "grid"
	DialogID = "dialog"
)

// TreeNode is a node of the navigation tree.
type TreeNode struct {
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	Type       string     `json:"type"` // "database" or "table"
	Current    bool       `json:"current,omitempty"`
	AppCreated bool       `json:"appCreated,omitempty"`
	Children   []TreeNode `json:"children,omitempty"`
}

// NavTree renders the attached databases and their tables.
func NavTree(nodes []TreeNode) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div id="` + TreeID + `">`)
		if len(nodes) == 0 {
			h.raw(`<p class="muted">No databases attached</p>`)
		}
		for _, db := range nodes {
			h.raw(`<details open class="db`)
			if db.Current {
				h.raw(` current`)
			}
			h.raw(`"><summary data-on:click="`)
			h.text(`$database = ` + jsString(db.Name) + `; @post('/api/nav/select')`)
			h.raw(`">`)
			h.text(db.Name)
			h.raw(`</summary><ul>`)
			for _, tbl := range db.Children {
				h.raw(`<li data-on:click="`)
				h.text(`$database = ` + jsString(db.Name) + `; @post(` + jsString("/api/tables/"+url.PathEscape(tbl.Name)) + `)`)
				h.raw(`">`)
				h.text(tbl.Name)
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
			if db.AppCreated {
				h.raw(`<button class="danger" data-on:click="`)
				h.text(`@delete(` + jsString("/api/databases/"+url.PathEscape(db.Name)) + `)`)
				h.raw(`">Remove</button>`)
			}
			h.raw(`</details>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// ResultGrid renders the current result set. Editable grids open a prompt
// on double click and post the edited cell.
func ResultGrid(res core.QueryResultSet, loading bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<table id="` + GridID + `"`)
		if res.Editable {
			h.raw(` class="editable"`)
		}
		h.raw(`>`)
		switch {
		case loading:
			h.raw(`<caption>Loading...</caption>`)
		case len(res.Columns) == 0:
			h.raw(`<caption class="muted">No results</caption>`)
		default:
			h.raw(`<caption class="muted">`)
			h.text(rowCount(len(res.Rows)))
			h.raw(`</caption>`)
		}
		h.raw(`<thead><tr>`)
		for _, col := range res.Columns {
			h.raw(`<th>`)
			h.text(col)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		for _, row := range res.Rows {
			h.raw(`<tr>`)
			for i, v := range row {
				if res.Editable {
					h.raw(`<td data-on:dblclick="`)
					h.text(editCell(res.Columns, row, i))
					h.raw(`">`)
				} else {
					h.raw(`<td>`)
				}
				h.text(v)
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table>`)
		return h.err
	})
}

// DialogBox renders the modal dialog, or an empty placeholder when hidden.
func DialogBox(d core.Dialog) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		if !d.Visible {
			h.raw(`<div id="` + DialogID + `"></div>`)
			return h.err
		}
		h.raw(`<div id="` + DialogID + `" class="modal" role="dialog"><div class="dialog-box"><h3>`)
		h.text(d.Title)
		h.raw(`</h3><p>`)
		h.text(d.Message)
		h.raw(`</p><div class="buttons">`)
		for i, opt := range d.Options {
			h.raw(`<button`)
			if i < len(d.ButtonStyles) && d.ButtonStyles[i] != "" {
				h.raw(` class="`)
				h.text(d.ButtonStyles[i])
				h.raw(`"`)
			}
			h.raw(` data-on:click="@post('/api/dialog/` + strconv.Itoa(i) + `')">`)
			h.text(opt)
			h.raw(`</button>`)
		}
		h.raw(`</div></div></div>`)
		return h.err
	})
}

// editCell builds the click expression for one cell. The row goes along as
// column names and original values so the backend can locate it.
func editCell(cols, row []string, i int) string {
	return `const v = prompt(` + jsString(cols[i]) + `, ` + jsString(row[i]) + `); ` +
		`if (v !== null) { $cell.row = ` + jsValue([][]string{cols, row}) +
		`; $cell.column = ` + jsString(cols[i]) + `; $cell.value = v; @post('/api/cells') }`
}

func rowCount(n int) string {
	if n == 1 {
		return "1 row"
	}
	return strconv.Itoa(n) + " rows"
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	return jsValue(s)
}

func jsValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// html writes markup and keeps the first write error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}
