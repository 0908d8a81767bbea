// Package render formats diagnostics for a terminal or log sink: a
// severity label, a file/line/column pointer, the offending source line,
// and a caret marker under the reported column, plus a final
// error/warning count summary. This is the "standardized" rendering
// spec.md §6 describes for CLI/LSP collaborators; it is not itself part
// of the compiler core.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/al-lang/al/internal/diagnostics"
)

// Renderer formats diagnostics against a given source text.
type Renderer struct {
	Source string
	Color  bool
	Out    io.Writer
}

// New builds a Renderer for the given source, auto-detecting color support
// from out the same way the teacher's terminal builtins do: isatty on a
// real file descriptor, never on a redirected pipe.
func New(source string, out io.Writer) *Renderer {
	color := false
	if f, ok := out.(*os.File); ok {
		fd := f.Fd()
		color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &Renderer{Source: source, Color: color, Out: out}
}

func (r *Renderer) sourceLine(n int) string {
	ls := strings.Split(r.Source, "\n")
	if n < 1 || n > len(ls) {
		return ""
	}
	return ls[n-1]
}

func (r *Renderer) colorize(code string, s string) string {
	if !r.Color {
		return s
	}
	return code + s + "\x1b[0m"
}

func severityColor(sev diagnostics.Severity) string {
	switch sev {
	case diagnostics.Error:
		return "\x1b[31;1m"
	case diagnostics.Warning:
		return "\x1b[33;1m"
	default:
		return "\x1b[36;1m"
	}
}

// RenderAll writes every diagnostic followed by a final summary line.
func (r *Renderer) RenderAll(file string, ds []*diagnostics.DiagnosticError) {
	errs, warns := 0, 0
	for _, d := range ds {
		r.Render(file, d)
		switch d.Severity {
		case diagnostics.Error:
			errs++
		case diagnostics.Warning:
			warns++
		}
	}
	fmt.Fprintf(r.Out, "%d error(s), %d warning(s)\n", errs, warns)
}

// Render writes a single diagnostic: "file:line:col: severity[code]: msg",
// the source line, and a caret under the column.
func (r *Renderer) Render(file string, d *diagnostics.DiagnosticError) {
	label := r.colorize(severityColor(d.Severity), fmt.Sprintf("%s[%s]", d.Severity, d.Code))
	fmt.Fprintf(r.Out, "%s:%d:%d: %s: %s\n", file, d.Span.StartLine, d.Span.StartColumn, label, d.Message)

	line := r.sourceLine(d.Span.StartLine)
	if line == "" {
		return
	}
	fmt.Fprintln(r.Out, line)
	col := d.Span.StartColumn
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + r.colorize(severityColor(d.Severity), "^")
	fmt.Fprintln(r.Out, caret)
}
