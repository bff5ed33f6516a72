package testutil

import (
	"github.com/hupe1980/nbkernel/core"
	"github.com/hupe1980/nbkernel/notebook"
)

// DocumentBuilder helps construct documents with fluent chaining for tests.
// Example:
//
//	doc := NewDocumentBuilder(exec).Markdown("# Title").Code("x := 1").Build()
type DocumentBuilder struct {
	exec  core.Executor
	cells []struct {
		cellType core.CellType
		source   string
	}
}

// NewDocumentBuilder creates a new builder. A nil executor falls back to the
// document's default kernel.
func NewDocumentBuilder(exec core.Executor) *DocumentBuilder {
	return &DocumentBuilder{exec: exec}
}

// Markdown appends a markdown cell (chainable).
func (b *DocumentBuilder) Markdown(source string) *DocumentBuilder {
	return b.cell(core.CellTypeMarkdown, source)
}

// Code appends a code cell (chainable).
func (b *DocumentBuilder) Code(source string) *DocumentBuilder {
	return b.cell(core.CellTypeCode, source)
}

func (b *DocumentBuilder) cell(cellType core.CellType, source string) *DocumentBuilder {
	b.cells = append(b.cells, struct {
		cellType core.CellType
		source   string
	}{cellType, source})
	return b
}

// Build returns a *notebook.Document pre-populated with the queued cells.
// Build panics when a queued cell fails validation; tests should only queue
// valid sources and assert validation separately.
func (b *DocumentBuilder) Build() *notebook.Document {
	doc := notebook.New(func(o *notebook.Options) {
		if b.exec != nil {
			o.Executor = b.exec
		}
	})
	for _, c := range b.cells {
		if res := doc.CreateCell(c.cellType, c.source); !res.Created {
			panic("testutil: invalid cell in builder: " + res.Message)
		}
	}
	return doc
}
