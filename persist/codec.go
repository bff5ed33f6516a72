package persist

import (
	"encoding/json"
	"strings"

	"github.com/hupe1980/nbkernel/core"
	"github.com/hupe1980/nbkernel/notebook"
)

// nbformat version markers written to every notebook file. Minor version 5
// is the first to carry per-cell ids.
const (
	nbFormat      = 4
	nbFormatMinor = 5
)

// Kernel descriptor for the embedded Go interpreter, stored under
// metadata.kernelspec / metadata.language_info.
const (
	kernelDisplayName = "Go (yaegi)"
	kernelLanguage    = "go"
	kernelName        = "go"
	languageVersion   = "1.24"
)

type kernelspecJSON struct {
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
	Name        string `json:"name"`
}

type languageInfoJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type metadataJSON struct {
	Kernelspec   kernelspecJSON   `json:"kernelspec"`
	LanguageInfo languageInfoJSON `json:"language_info"`
}

// notebookJSON is the top-level file structure. Cells stay raw so markdown
// and code cells can carry different field sets; user_variables and
// global_execution_count are additive extensions to the standard format.
type notebookJSON struct {
	Cells                []json.RawMessage `json:"cells"`
	Metadata             metadataJSON      `json:"metadata"`
	NBFormat             int               `json:"nbformat"`
	NBFormatMinor        int               `json:"nbformat_minor"`
	UserVariables        map[string]string `json:"user_variables"`
	GlobalExecutionCount int               `json:"global_execution_count"`
}

type markdownCellJSON struct {
	CellType    string                    `json:"cell_type"`
	ID          string                    `json:"id"`
	Metadata    map[string]any            `json:"metadata"`
	Source      []string                  `json:"source"`
	Attachments map[string]map[string]any `json:"attachments,omitempty"`
}

type codeCellJSON struct {
	CellType       string         `json:"cell_type"`
	ID             string         `json:"id"`
	Metadata       map[string]any `json:"metadata"`
	Source         []string       `json:"source"`
	ExecutionCount *int           `json:"execution_count"` // null until first run
	Outputs        []outputJSON   `json:"outputs"`
}

// probeCellJSON is the union of all cell fields, used on load.
type probeCellJSON struct {
	CellType       string                    `json:"cell_type"`
	Metadata       map[string]any            `json:"metadata"`
	Source         json.RawMessage           `json:"source"`
	Attachments    map[string]map[string]any `json:"attachments"`
	ExecutionCount *int                      `json:"execution_count"`
	Outputs        []outputJSON              `json:"outputs"`
}

// outputJSON is the union of the three nbformat output shapes.
type outputJSON struct {
	OutputType     string            `json:"output_type"`
	Name           string            `json:"name,omitempty"`
	Text           string            `json:"text,omitempty"`
	ExecutionCount *int              `json:"execution_count,omitempty"`
	Data           map[string]string `json:"data,omitempty"`
	EName          string            `json:"ename,omitempty"`
	EValue         string            `json:"evalue,omitempty"`
	Traceback      []string          `json:"traceback,omitempty"`
}

// Marshal renders a document snapshot as indented nbformat-4 JSON. Any
// failure is classified as SerializationFailure; callers must not write
// anything to a store unless Marshal succeeded.
func Marshal(snap notebook.Snapshot) ([]byte, error) {
	nb := notebookJSON{
		Cells: make([]json.RawMessage, 0, len(snap.Cells)),
		Metadata: metadataJSON{
			Kernelspec:   kernelspecJSON{DisplayName: kernelDisplayName, Language: kernelLanguage, Name: kernelName},
			LanguageInfo: languageInfoJSON{Name: kernelLanguage, Version: languageVersion},
		},
		NBFormat:             nbFormat,
		NBFormatMinor:        nbFormatMinor,
		UserVariables:        snap.UserVariables,
		GlobalExecutionCount: snap.GlobalExecutionCount,
	}
	if nb.UserVariables == nil {
		nb.UserVariables = map[string]string{}
	}

	for _, cell := range snap.Cells {
		raw, err := marshalCell(cell)
		if err != nil {
			return nil, err
		}
		nb.Cells = append(nb.Cells, raw)
	}

	data, err := json.MarshalIndent(nb, "", "  ")
	if err != nil {
		return nil, core.NewError(core.ErrSerializationFailure, "Failed to serialize notebook data to JSON: %s", err)
	}
	return data, nil
}

func marshalCell(cell core.Cell) (json.RawMessage, error) {
	var payload any
	switch c := cell.(type) {
	case *core.MarkdownCell:
		payload = markdownCellJSON{
			CellType:    string(core.CellTypeMarkdown),
			ID:          core.NewID(),
			Metadata:    metaOrEmpty(c.Metadata),
			Source:      splitSource(c.Src),
			Attachments: c.Attachments,
		}
	case *core.CodeCell:
		payload = codeCellJSON{
			CellType:       string(core.CellTypeCode),
			ID:             core.NewID(),
			Metadata:       metaOrEmpty(c.Metadata),
			Source:         splitSource(c.Src),
			ExecutionCount: c.ExecutionCount,
			Outputs:        marshalOutputs(c.Outputs),
		}
	default:
		return nil, core.NewError(core.ErrSerializationFailure, "Failed to serialize notebook data to JSON: unknown cell type %T", cell)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, core.NewError(core.ErrSerializationFailure, "Failed to serialize notebook data to JSON: %s", err)
	}
	return raw, nil
}

func marshalOutputs(outputs []core.Output) []outputJSON {
	rendered := make([]outputJSON, 0, len(outputs))
	for _, out := range outputs {
		switch o := out.(type) {
		case core.StreamOutput:
			rendered = append(rendered, outputJSON{OutputType: "stream", Name: o.Name, Text: o.Text})
		case core.ResultOutput:
			count := o.ExecutionCount
			rendered = append(rendered, outputJSON{
				OutputType:     "execute_result",
				ExecutionCount: &count,
				Data:           map[string]string{"text/plain": o.Text},
			})
		case core.ErrorOutput:
			rendered = append(rendered, outputJSON{OutputType: "error", EName: o.Name, EValue: o.Message, Traceback: o.Traceback})
		}
	}
	return rendered
}

// Unmarshal parses nbformat JSON back into cells and the global execution
// counter. Cells with unknown types are skipped, not fatal; a malformed
// top-level document is a SerializationFailure.
func Unmarshal(data []byte) ([]core.Cell, int, error) {
	var nb struct {
		Cells                []probeCellJSON `json:"cells"`
		GlobalExecutionCount int             `json:"global_execution_count"`
	}
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, 0, core.NewError(core.ErrSerializationFailure, "Failed to parse notebook file: %s", err)
	}

	cells := make([]core.Cell, 0, len(nb.Cells))
	for _, probe := range nb.Cells {
		source := joinSource(probe.Source)
		switch core.CellType(probe.CellType) {
		case core.CellTypeMarkdown:
			cells = append(cells, &core.MarkdownCell{
				Src:         source,
				Metadata:    metaOrEmpty(probe.Metadata),
				Attachments: probe.Attachments,
			})
		case core.CellTypeCode:
			cells = append(cells, &core.CodeCell{
				Src:            source,
				Metadata:       metaOrEmpty(probe.Metadata),
				ExecutionCount: probe.ExecutionCount,
				Outputs:        unmarshalOutputs(probe.Outputs),
			})
		default:
			// Unknown cell types are skipped on load.
			continue
		}
	}
	return cells, nb.GlobalExecutionCount, nil
}

func unmarshalOutputs(outputs []outputJSON) []core.Output {
	var parsed []core.Output
	for _, out := range outputs {
		switch out.OutputType {
		case "stream":
			parsed = append(parsed, core.StreamOutput{Name: out.Name, Text: out.Text})
		case "execute_result":
			count := 0
			if out.ExecutionCount != nil {
				count = *out.ExecutionCount
			}
			parsed = append(parsed, core.ResultOutput{ExecutionCount: count, Text: out.Data["text/plain"]})
		case "error":
			parsed = append(parsed, core.ErrorOutput{Name: out.EName, Message: out.EValue, Traceback: out.Traceback})
		}
	}
	return parsed
}

// splitSource stores source as an array of lines for diff-friendliness.
func splitSource(source string) []string {
	if source == "" {
		return []string{""}
	}
	return strings.Split(source, "\n")
}

// joinSource accepts both the array-of-lines convention and a plain string.
func joinSource(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "\n")
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	return ""
}

func metaOrEmpty(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
