// Package notebook flattens Jupyter notebooks (.ipynb) into plain text.
package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidNotebook indicates the document is not a notebook with a cells list.
var ErrInvalidNotebook = errors.New("invalid notebook")

// Text is a notebook string field, stored either as one string or as a list of lines.
type Text string

// UnmarshalJSON accepts both the string and the list-of-strings forms.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*t = Text(strings.Join(lines, ""))
	return nil
}

// Output is one output of a code cell.
type Output struct {
	OutputType string                     `json:"output_type"`
	Text       *Text                      `json:"text,omitempty"`
	Data       map[string]json.RawMessage `json:"data,omitempty"`
}

// Cell is a notebook cell.
type Cell struct {
	CellType string   `json:"cell_type"`
	Source   Text     `json:"source"`
	Outputs  []Output `json:"outputs,omitempty"`
}

// Notebook is the subset of the nbformat document that is flattened.
type Notebook struct {
	Cells []Cell `json:"cells"`
}

// Parse decodes a notebook document.
func Parse(data []byte) (*Notebook, error) {
	var doc struct {
		Cells *[]Cell `json:"cells"`
	}
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotebook, err)
	}
	if doc.Cells == nil {
		return nil, fmt.Errorf("%w: missing cells", ErrInvalidNotebook)
	}
	return &Notebook{Cells: *doc.Cells}, nil
}

// Load reads and decodes the notebook at path.
func Load(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notebook: %w", err)
	}
	nb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nb, nil
}

// Format renders every cell and joins them with newlines.
func Format(nb *Notebook) string {
	formatted := make([]string, 0, len(nb.Cells))
	for _, cell := range nb.Cells {
		formatted = append(formatted, FormatCell(cell))
	}
	return strings.Join(formatted, "\n")
}

// FormatCell renders markdown and code cells. Other cell types render as "".
func FormatCell(cell Cell) string {
	switch cell.CellType {
	case "markdown":
		return fmt.Sprintf("### Markdown Cell:\n%s\n", cell.Source)
	case "code":
		return fmt.Sprintf("### Code Cell:\n```python\n%s\n```\n### Output:\n%s\n",
			cell.Source, strings.Join(outputTexts(cell.Outputs), "\n"))
	default:
		return ""
	}
}

// outputTexts prefers an output's stream text and falls back to its text/plain data.
func outputTexts(outputs []Output) []string {
	var texts []string
	for _, out := range outputs {
		if out.Text != nil {
			texts = append(texts, string(*out.Text))
			continue
		}
		raw, ok := out.Data["text/plain"]
		if !ok {
			continue
		}
		var plain Text
		if err := json.Unmarshal(raw, &plain); err != nil {
			continue
		}
		texts = append(texts, string(plain))
	}
	return texts
}
