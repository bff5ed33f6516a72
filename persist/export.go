package persist

import (
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/nbkernel/core"
	"github.com/hupe1980/nbkernel/notebook"
)

// ExportFormat selects the rendering of a one-way notebook export.
type ExportFormat string

const (
	// ExportFormatJSON is the full nbformat file, identical to a save.
	ExportFormatJSON ExportFormat = "json"
	// ExportFormatSource renders a commented Go source file. The legacy wire
	// value "py" is accepted as an alias.
	ExportFormatSource ExportFormat = "go"
	// ExportFormatMarkdown renders a Markdown report with fenced code blocks
	// and captured outputs.
	ExportFormatMarkdown ExportFormat = "md"
)

// legacy alias kept for compatibility with older callers.
const exportFormatSourceAlias ExportFormat = "py"

// renderSource renders the notebook as a single commented Go source file:
// markdown cells become comment blocks, code cells are emitted verbatim.
func renderSource(snap notebook.Snapshot, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("// Notebook exported to Go source\n")
	fmt.Fprintf(&b, "// Generated on %s\n\n", generatedAt.Format(time.RFC3339))

	for i, cell := range snap.Cells {
		switch c := cell.(type) {
		case *core.MarkdownCell:
			fmt.Fprintf(&b, "// Cell %d - Markdown\n", i)
			for _, line := range strings.Split(c.Src, "\n") {
				fmt.Fprintf(&b, "// %s\n", line)
			}
			b.WriteString("\n")
		case *core.CodeCell:
			fmt.Fprintf(&b, "// Cell %d - Code\n", i)
			if c.ExecutionCount != nil {
				fmt.Fprintf(&b, "// Execution count: %d\n", *c.ExecutionCount)
			}
			b.WriteString(c.Src)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// renderMarkdown renders the notebook as a Markdown report: markdown cells
// as-is, code cells as fenced blocks followed by stream/result outputs as
// fenced plain-text blocks.
func renderMarkdown(snap notebook.Snapshot, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("# Notebook\n\n")
	fmt.Fprintf(&b, "*Exported on %s*\n\n", generatedAt.Format(time.RFC3339))

	for _, cell := range snap.Cells {
		switch c := cell.(type) {
		case *core.MarkdownCell:
			b.WriteString(c.Src)
			b.WriteString("\n\n")
		case *core.CodeCell:
			b.WriteString("```go\n")
			b.WriteString(c.Src)
			b.WriteString("\n```\n\n")
			for _, out := range c.Outputs {
				switch o := out.(type) {
				case core.StreamOutput:
					b.WriteString("```\n")
					b.WriteString(o.Text)
					b.WriteString("\n```\n\n")
				case core.ResultOutput:
					b.WriteString("```\n")
					b.WriteString(o.Text)
					b.WriteString("\n```\n\n")
				}
			}
		}
	}
	return b.String()
}
