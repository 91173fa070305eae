package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"rapcfg/internal/parser"
)

// Severity of a diagnostic.
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
	Note    Severity = "note"
)

// Diagnostic is a renderable problem with a source location.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int // 1-based
	Column   int // 1-based
	Length   int // characters covered, at least 1
}

// FromParseErrors converts parser errors into diagnostics.
func FromParseErrors(errs []parser.ParseError) []Diagnostic {
	diags := make([]Diagnostic, 0, len(errs))
	for _, e := range errs {
		diags = append(diags, Diagnostic{
			Severity: Error,
			Message:  e.Message,
			Line:     e.Position.Line,
			Column:   e.Position.Column,
			Length:   e.Length,
		})
	}
	return diags
}

// Reporter renders diagnostics against their source file with caret
// underlines, for terminal display.
type Reporter struct {
	filename string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// Format renders one diagnostic.
func (r *Reporter) Format(d Diagnostic) string {
	var b strings.Builder

	levelColor := r.severityColor(d.Severity)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	b.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Severity)), d.Message))

	width := len(fmt.Sprintf("%d", d.Line))
	if width < 3 {
		width = 3
	}
	indent := strings.Repeat(" ", width)

	b.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), r.filename, d.Line, d.Column))
	b.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if d.Line > 0 && d.Line <= len(r.lines) {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, d.Line)),
			dim("│"),
			r.lines[d.Line-1]))

		marker := strings.Repeat(" ", max(0, d.Column-1)) +
			levelColor(strings.Repeat("^", max(1, d.Length)))
		b.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}

	return b.String()
}

// FormatAll renders a batch of diagnostics separated by blank lines.
func (r *Reporter) FormatAll(diags []Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(r.Format(d))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Reporter) severityColor(s Severity) func(...interface{}) string {
	switch s {
	case Warning:
		return color.New(color.FgYellow).SprintFunc()
	case Note:
		return color.New(color.FgCyan).SprintFunc()
	default:
		return color.New(color.FgRed).SprintFunc()
	}
}
