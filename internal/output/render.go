package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/starward/internal/verbose"
)

// Field is one labelled value of a result.
type Field struct {
	Key   string // JSON key
	Label string // text label
	Value any    // JSON value
	Text  string // text rendering
}

// Result is a titled list of fields.
type Result struct {
	Title  string
	Fields []Field
}

// NewResult starts a result with the given title.
func NewResult(title string) *Result {
	return &Result{Title: title}
}

// Add appends a field. An empty text renders the value with fmt.
func (r *Result) Add(key, label string, value any, text string) *Result {
	if text == "" {
		text = fmt.Sprint(value)
	}
	r.Fields = append(r.Fields, Field{Key: key, Label: label, Value: value, Text: text})
	return r
}

// Map returns the fields keyed for JSON.
func (r *Result) Map() map[string]any {
	m := make(map[string]any, len(r.Fields)+1)
	if r.Title != "" {
		m["title"] = r.Title
	}
	for _, f := range r.Fields {
		m[f.Key] = f.Value
	}
	return m
}

// Table is a titled grid; Records carries the JSON form of each row.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
	Records []map[string]any
}

type styles struct {
	header    lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	column    lipgloss.Style
	stepTitle lipgloss.Style
	dim       lipgloss.Style
}

func newStyles() styles {
	return styles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		column:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		stepTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Renderer writes results in one format and precision.
type Renderer struct {
	w      io.Writer
	format Format
	prec   Precision
	color  bool
	st     styles
}

// New creates a renderer. Color applies to plain output only.
func New(w io.Writer, format Format, prec Precision, color bool) *Renderer {
	return &Renderer{w: w, format: format, prec: prec, color: color, st: newStyles()}
}

// Precision returns the renderer's precision.
func (r *Renderer) Precision() Precision { return r.prec }

// Format returns the renderer's format.
func (r *Renderer) Format() Format { return r.format }

// Color reports whether plain output is styled.
func (r *Renderer) Color() bool { return r.color }

func (r *Renderer) paint(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Result writes res, followed by the trace steps when tr is non-empty.
func (r *Renderer) Result(res *Result, tr *verbose.Trace) error {
	if r.format == FormatJSON {
		m := res.Map()
		if tr.Len() > 0 {
			m["steps"] = tr.Records()
		}
		return r.writeJSON(m)
	}

	var b strings.Builder
	r.writeTrace(&b, tr)
	if res.Title != "" {
		b.WriteString(r.paint(r.st.header, res.Title))
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("─", lipgloss.Width(res.Title)+4))
		b.WriteByte('\n')
	}

	width := 0
	for _, f := range res.Fields {
		width = max(width, lipgloss.Width(f.Label))
	}
	for _, f := range res.Fields {
		pad := strings.Repeat(" ", width-lipgloss.Width(f.Label))
		b.WriteString(r.paint(r.st.label, f.Label+":"))
		b.WriteString(pad)
		b.WriteString("  ")
		b.WriteString(r.paint(r.st.value, f.Text))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Table writes t as aligned columns or a JSON array of records.
func (r *Renderer) Table(t *Table, tr *verbose.Trace) error {
	if r.format == FormatJSON {
		m := map[string]any{"rows": t.Records}
		if t.Title != "" {
			m["title"] = t.Title
		}
		if tr.Len() > 0 {
			m["steps"] = tr.Records()
		}
		return r.writeJSON(m)
	}

	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range t.Rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	r.writeTrace(&b, tr)
	if t.Title != "" {
		b.WriteString(r.paint(r.st.header, t.Title))
		b.WriteString("\n\n")
	}
	b.WriteString(r.paint(r.st.column, joinPadded(t.Columns, widths)))
	b.WriteByte('\n')
	for _, row := range t.Rows {
		b.WriteString(r.paint(r.st.value, joinPadded(row, widths)))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Message writes a single line of plain text, or {"message": ...} as JSON.
func (r *Renderer) Message(msg string) error {
	if r.format == FormatJSON {
		return r.writeJSON(map[string]any{"message": msg})
	}
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

func (r *Renderer) writeJSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeTrace renders steps as indented boxes, styled when colour is on.
func (r *Renderer) writeTrace(b *strings.Builder, tr *verbose.Trace) {
	steps := tr.Steps()
	if len(steps) == 0 {
		return
	}
	for _, s := range steps {
		indent := strings.Repeat("  ", s.Level)
		b.WriteString(indent)
		b.WriteString(r.paint(r.st.dim, "┌─ "))
		b.WriteString(r.paint(r.st.stepTitle, s.Title))
		b.WriteByte('\n')
		if s.Content != "" {
			for _, line := range strings.Split(s.Content, "\n") {
				b.WriteString(indent)
				b.WriteString(r.paint(r.st.dim, "│  "))
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
		b.WriteString(indent)
		b.WriteString(r.paint(r.st.dim, "└"+strings.Repeat("─", 40)))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}

func joinPadded(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i == len(widths)-1 {
			parts[i] = cell
			continue
		}
		parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
	}
	return strings.Join(parts, "  ")
}
