// Package output renders CLI results as styled text, markdown, JSON or YAML.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// rendererKey is used to store the renderer in context.
type rendererKey struct{}

// WithRenderer stores r in ctx.
func WithRenderer(ctx context.Context, r *Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// FromContext retrieves the renderer from the command context.
func FromContext(ctx context.Context) *Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*Renderer); ok {
		return r
	}
	return NewRenderer(os.Stdout, os.Stderr, ModeAuto)
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer. Auto mode resolves to text on a terminal
// and markdown otherwise. Colors are dropped when out is not a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	tty := isTerminal(out)

	lg := lipgloss.NewRenderer(out)
	if !tty {
		lg.SetColorProfile(termenv.Ascii)
	}

	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  tty,
		styles: NewStyles(lg),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves auto to a concrete mode.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the diagnostic writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the text styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a section title.
func (r *Renderer) Header(title string) {
	r.Println(FormatHeader(title, r.EffectiveMode(), r.styles))
}

// StatusLine writes a "label: value" line.
func (r *Renderer) StatusLine(label, value string) {
	r.Println(FormatKeyValue(label, value, r.EffectiveMode(), r.styles))
}

// Muted renders s de-emphasised in text mode.
func (r *Renderer) Muted(s string) string {
	if r.EffectiveMode() != ModeText {
		return s
	}
	return r.styles.Muted.Render(s)
}

// Notification writes an alert line. Errors go to the diagnostic writer.
func (r *Renderer) Notification(n core.Notification) {
	line := SeverityIcon(n.Severity) + " " + n.Message
	if r.EffectiveMode() == ModeText {
		line = r.styles.Severity(n.Severity).Render(line)
	}
	w := r.out
	if n.Severity == core.SeverityError {
		w = r.errOut
	}
	_, _ = fmt.Fprintln(w, line)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Structured writes v as JSON or YAML when one of those modes is active.
// It reports false in text and markdown modes so the caller renders itself.
func (r *Renderer) Structured(v any) (bool, error) {
	switch r.EffectiveMode() {
	case ModeJSON:
		return true, r.JSON(v)
	case ModeYAML:
		return true, r.YAML(v)
	default:
		return false, nil
	}
}

// Table renders a result grid. Markdown mode emits a pipe table.
func (r *Renderer) Table(cols []string, rows [][]string) {
	if len(cols) == 0 {
		r.Println(r.Muted("(no columns)"))
		return
	}

	t := table.NewWriter()
	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = v
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeMarkdown {
		r.Println(t.RenderMarkdown())
		return
	}

	t.SetStyle(table.StyleLight)
	r.Println(t.Render())
	r.Println(r.Muted(fmt.Sprintf("(%d rows)", len(rows))))
}

// FormatHeader formats a section title for mode.
func FormatHeader(title string, mode Mode, styles *Styles) string {
	switch mode {
	case ModeMarkdown:
		return "## " + title
	case ModeText:
		return styles.Header.Render(title)
	default:
		return title
	}
}

// FormatKeyValue formats a label and value for mode.
func FormatKeyValue(label, value string, mode Mode, styles *Styles) string {
	switch mode {
	case ModeMarkdown:
		return "- **" + label + ":** " + value
	case ModeText:
		return styles.Bold.Render(label+":") + " " + value
	default:
		return label + ": " + value
	}
}

// Indent prefixes every line of s with n spaces.
func Indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
