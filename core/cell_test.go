package core

import (
	"errors"
	"testing"
)

// Interface compliance (compile-time assertions)
var (
	_ Cell = (*MarkdownCell)(nil)
	_ Cell = (*CodeCell)(nil)
)

func TestNewCell_Validation(t *testing.T) {
	tests := []struct {
		name     string
		cellType CellType
		source   string
		wantCode ErrorCode
	}{
		{"markdown ok", CellTypeMarkdown, "# Title", ""},
		{"code ok", CellTypeCode, "x := 1", ""},
		{"markdown empty", CellTypeMarkdown, "", ErrEmptyContent},
		{"code whitespace only", CellTypeCode, "   \n\t", ErrEmptyContent},
		{"unknown type", CellType("raw"), "content", ErrWrongCellType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell, err := NewCell(tt.cellType, tt.source)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if cell.Type() != tt.cellType {
					t.Fatalf("expected type %s, got %s", tt.cellType, cell.Type())
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !IsCode(err, tt.wantCode) {
				t.Fatalf("expected code %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestNewCell_TrimsSource(t *testing.T) {
	cell, err := NewCodeCell("  x := 1  \n")
	if err != nil {
		t.Fatal(err)
	}
	if cell.Source() != "x := 1" {
		t.Fatalf("expected trimmed source, got %q", cell.Source())
	}
}

func TestCodeCell_CloneIsolation(t *testing.T) {
	count := 3
	cell := &CodeCell{
		Src:            "x := 1",
		Metadata:       map[string]any{"tag": "a"},
		ExecutionCount: &count,
		Outputs:        []Output{StreamOutput{Name: "stdout", Text: "hi\n"}},
	}
	clone := cell.Clone().(*CodeCell)

	*cell.ExecutionCount = 9
	cell.Metadata["tag"] = "b"
	cell.SetSource("y := 2")

	if *clone.ExecutionCount != 3 {
		t.Fatalf("clone count mutated: %d", *clone.ExecutionCount)
	}
	if clone.Metadata["tag"] != "a" {
		t.Fatalf("clone metadata mutated: %v", clone.Metadata)
	}
	if clone.Source() != "x := 1" {
		t.Fatalf("clone source mutated: %q", clone.Source())
	}
	if len(clone.Outputs) != 1 {
		t.Fatalf("clone outputs lost: %v", clone.Outputs)
	}
}

func TestMarkdownCell_CloneIsolation(t *testing.T) {
	cell := &MarkdownCell{
		Src:         "# Title",
		Metadata:    map[string]any{"k": 1},
		Attachments: map[string]map[string]any{"img": {"mime": "image/png"}},
	}
	clone := cell.Clone().(*MarkdownCell)
	cell.Attachments["img"]["mime"] = "image/jpeg"
	if clone.Attachments["img"]["mime"] != "image/png" {
		t.Fatal("attachment map shared between clone and original")
	}
}

func TestErrorCode_Extraction(t *testing.T) {
	err := NewError(ErrIndexOutOfRange, "Invalid index. History contains %d cells (0-%d)", 3, 2)
	if CodeOf(err) != ErrIndexOutOfRange {
		t.Fatalf("expected index_out_of_range, got %s", CodeOf(err))
	}
	if CodeOf(errors.New("disk gone")) != ErrIOFailure {
		t.Fatal("unclassified errors should fall back to io_failure")
	}
	if IsCode(err, ErrEmptyContent) {
		t.Fatal("IsCode matched wrong code")
	}
}

type panickyStringer struct{}

func (panickyStringer) String() string { panic("broken stringer") }

func TestRenderValue_NeverPanics(t *testing.T) {
	if got := RenderValue(42); got != "42" {
		t.Fatalf("expected 42, got %q", got)
	}
	// fmt survives panicking Stringers, RenderValue must too.
	got := RenderValue(panickyStringer{})
	if got == "" {
		t.Fatal("expected non-empty rendering for panicking stringer")
	}
}
