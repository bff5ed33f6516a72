package core

import "strings"

// CellType distinguishes the two kinds of notebook cells.
type CellType string

const (
	// CellTypeMarkdown identifies rendered text cells.
	CellTypeMarkdown CellType = "markdown"
	// CellTypeCode identifies executable source cells.
	CellTypeCode CellType = "code"
)

// Cell represents one unit of notebook content. Concrete cell types implement
// the closed set (MarkdownCell, CodeCell). The cell type is fixed at
// construction; only the source can be replaced afterwards.
type Cell interface {
	// Type returns the immutable cell type.
	Type() CellType
	// Source returns the current source text.
	Source() string
	// SetSource replaces the source text in place.
	SetSource(source string)
	// Meta returns the free-form, caller-opaque metadata map.
	Meta() map[string]any
	// Clone returns a deep copy safe for independent mutation.
	Clone() Cell
}

// MarkdownCell is a rendered text cell.
type MarkdownCell struct {
	Src         string
	Metadata    map[string]any
	Attachments map[string]map[string]any
}

// NewMarkdownCell creates a markdown cell from trimmed source. It returns an
// EmptyContent error when the source is blank.
func NewMarkdownCell(source string) (*MarkdownCell, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return nil, NewError(ErrEmptyContent, "Content cannot be empty")
	}
	return &MarkdownCell{Src: trimmed, Metadata: map[string]any{}}, nil
}

// Type returns CellTypeMarkdown.
func (c *MarkdownCell) Type() CellType { return CellTypeMarkdown }

// Source returns the markdown source text.
func (c *MarkdownCell) Source() string { return c.Src }

// SetSource replaces the markdown source text.
func (c *MarkdownCell) SetSource(source string) { c.Src = source }

// Meta returns the metadata map, allocating it lazily.
func (c *MarkdownCell) Meta() map[string]any {
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
	return c.Metadata
}

// Clone returns a deep copy of the cell.
func (c *MarkdownCell) Clone() Cell {
	clone := &MarkdownCell{Src: c.Src, Metadata: cloneMeta(c.Metadata)}
	if c.Attachments != nil {
		clone.Attachments = make(map[string]map[string]any, len(c.Attachments))
		for k, v := range c.Attachments {
			clone.Attachments[k] = cloneMeta(v)
		}
	}
	return clone
}

// CodeCell is an executable source cell carrying execution bookkeeping.
// ExecutionCount stays nil until the cell runs for the first time.
type CodeCell struct {
	Src            string
	Metadata       map[string]any
	ExecutionCount *int
	Outputs        []Output
}

// NewCodeCell creates a code cell from trimmed source. It returns an
// EmptyContent error when the source is blank.
func NewCodeCell(source string) (*CodeCell, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return nil, NewError(ErrEmptyContent, "Content cannot be empty")
	}
	return &CodeCell{Src: trimmed, Metadata: map[string]any{}}, nil
}

// Type returns CellTypeCode.
func (c *CodeCell) Type() CellType { return CellTypeCode }

// Source returns the code source text.
func (c *CodeCell) Source() string { return c.Src }

// SetSource replaces the code source text.
func (c *CodeCell) SetSource(source string) { c.Src = source }

// Meta returns the metadata map, allocating it lazily.
func (c *CodeCell) Meta() map[string]any {
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
	return c.Metadata
}

// Clone returns a deep copy of the cell including outputs and count.
func (c *CodeCell) Clone() Cell {
	clone := &CodeCell{Src: c.Src, Metadata: cloneMeta(c.Metadata)}
	if c.ExecutionCount != nil {
		count := *c.ExecutionCount
		clone.ExecutionCount = &count
	}
	if c.Outputs != nil {
		clone.Outputs = make([]Output, len(c.Outputs))
		copy(clone.Outputs, c.Outputs)
	}
	return clone
}

// NewCell constructs a cell of the given type. Unknown types are rejected
// with a WrongCellType error.
func NewCell(cellType CellType, source string) (Cell, error) {
	switch cellType {
	case CellTypeMarkdown:
		return NewMarkdownCell(source)
	case CellTypeCode:
		return NewCodeCell(source)
	default:
		return nil, NewError(ErrWrongCellType, "Unknown cell type: %s", cellType)
	}
}

func cloneMeta(meta map[string]any) map[string]any {
	clone := make(map[string]any, len(meta))
	for k, v := range meta {
		clone[k] = v
	}
	return clone
}
