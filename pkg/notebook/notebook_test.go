package notebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNotebook = `{
  "cells": [
    {"cell_type": "markdown", "source": ["# Title\n", "Intro"]},
    {
      "cell_type": "code",
      "source": "print(1)\nx = 2",
      "outputs": [
        {"output_type": "stream", "text": ["1\n"]},
        {"output_type": "execute_result", "data": {"text/plain": ["2"], "application/json": {"a": 1}}},
        {"output_type": "display_data", "data": {"image/png": "iVBOR"}}
      ]
    },
    {"cell_type": "raw", "source": "ignored"}
  ],
  "metadata": {},
  "nbformat": 4
}`

func TestFormat(t *testing.T) {
	nb, err := Parse([]byte(sampleNotebook))
	require.NoError(t, err)
	require.Len(t, nb.Cells, 3)

	want := "### Markdown Cell:\n# Title\nIntro\n" +
		"\n" +
		"### Code Cell:\n```python\nprint(1)\nx = 2\n```\n### Output:\n1\n\n2\n" +
		"\n"
	assert.Equal(t, want, Format(nb))
}

func TestFormatCell_CodeWithoutOutputs(t *testing.T) {
	got := FormatCell(Cell{CellType: "code", Source: "pass"})
	assert.Equal(t, "### Code Cell:\n```python\npass\n```\n### Output:\n\n", got)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("not json"))
	assert.ErrorIs(t, err, ErrInvalidNotebook)

	_, err = Parse([]byte(`{"metadata": {}}`))
	assert.ErrorIs(t, err, ErrInvalidNotebook)

	_, err = Parse([]byte(`{"cells": [{"cell_type": "code", "source": 3}]}`))
	assert.ErrorIs(t, err, ErrInvalidNotebook)
}

func TestParse_EmptyCells(t *testing.T) {
	nb, err := Parse([]byte(`{"cells": []}`))
	require.NoError(t, err)
	assert.Equal(t, "", Format(nb))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nb.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(sampleNotebook), 0644))

	nb, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, nb.Cells, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.ipynb"))
	assert.Error(t, err)
}
