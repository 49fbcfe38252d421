// Package verbose records the intermediate steps of a calculation.
//
// A *Trace is passed as the last argument of every computational function in
// package astro. A nil *Trace is valid and records nothing; all methods check
// for a nil receiver first, and Stepf defers formatting until the trace is
// known to be live.
//
// A Trace is not safe for concurrent writers. Use one per goroutine.
package verbose

import (
	"fmt"
	"strings"
)

// Step is one recorded derivation step.
type Step struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Level   int    `json:"level"`
}

// Trace is an append-only list of steps owned by the caller.
type Trace struct {
	steps []Step
	level int
}

// New returns an empty trace.
func New() *Trace {
	return &Trace{}
}

// Enabled reports whether steps are being recorded.
func (t *Trace) Enabled() bool {
	return t != nil
}

// Step appends a step with preformatted content.
func (t *Trace) Step(title, content string) {
	if t == nil {
		return
	}
	t.steps = append(t.steps, Step{Title: title, Content: content, Level: t.level})
}

// Stepf appends a step, formatting content only when the trace is live.
func (t *Trace) Stepf(title, format string, args ...any) {
	if t == nil {
		return
	}
	t.Step(title, fmt.Sprintf(format, args...))
}

// Section opens a nested group of steps. Call the returned func to close it:
//
//	defer tr.Section("Sun position")()
func (t *Trace) Section(name string) func() {
	if t == nil {
		return func() {}
	}
	t.steps = append(t.steps, Step{Title: name, Level: t.level})
	t.level++
	return func() {
		if t.level > 0 {
			t.level--
		}
	}
}

// Len returns the number of recorded steps.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.steps)
}

// Steps returns a copy of the recorded steps.
func (t *Trace) Steps() []Step {
	if t == nil {
		return nil
	}
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// Records returns the steps as plain maps, ready for JSON encoding.
func (t *Trace) Records() []map[string]any {
	if t == nil {
		return nil
	}
	out := make([]map[string]any, 0, len(t.steps))
	for _, s := range t.steps {
		out = append(out, map[string]any{
			"title":   s.Title,
			"content": s.Content,
			"level":   s.Level,
		})
	}
	return out
}

// Clear drops all steps so the trace can be reused.
func (t *Trace) Clear() {
	if t == nil {
		return
	}
	t.steps = t.steps[:0]
	t.level = 0
}

// Format renders the steps as boxed text blocks, indented by nesting level.
func (t *Trace) Format() string {
	if t == nil || len(t.steps) == 0 {
		return ""
	}

	var b strings.Builder
	for _, s := range t.steps {
		indent := strings.Repeat("  ", s.Level)
		b.WriteString(indent)
		b.WriteString("┌─ ")
		b.WriteString(s.Title)
		b.WriteByte('\n')
		if s.Content != "" {
			for _, line := range strings.Split(s.Content, "\n") {
				b.WriteString(indent)
				b.WriteString("│  ")
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
		b.WriteString(indent)
		b.WriteString("└")
		b.WriteString(strings.Repeat("─", 40))
		b.WriteByte('\n')
	}
	return b.String()
}
