package notebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	data := `{
		"cells": [
			{"cell_type": "markdown", "source": ["# Title\n"], "metadata": {}},
			{"cell_type": "code", "source": ["a = 1\n", "print(a)\n"], "metadata": {"tags": ["parameters"]}}
		],
		"metadata": {"kernelspec": {"name": "python3"}},
		"nbformat": 4
	}`

	doc, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, doc.Cells, 2)

	assert.Equal(t, CellTypeMarkdown, doc.Cells[0].Type)
	assert.Equal(t, []string{"# Title\n"}, doc.Cells[0].Source)
	assert.False(t, doc.Cells[0].IsParameters())

	assert.Equal(t, CellTypeCode, doc.Cells[1].Type)
	assert.Equal(t, []string{"a = 1\n", "print(a)\n"}, doc.Cells[1].Source)
	assert.True(t, doc.Cells[1].IsParameters())
}

func TestParseStringSource(t *testing.T) {
	data := `{"cells": [{"cell_type": "code", "source": "a = 1\nprint(a)", "metadata": {}}]}`

	doc, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, doc.Cells, 1)
	assert.Equal(t, []string{"a = 1\n", "print(a)"}, doc.Cells[0].Source)
}

func TestParseEmptyStringSource(t *testing.T) {
	data := `{"cells": [{"cell_type": "code", "source": "", "metadata": {}}]}`

	doc, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, doc.Cells, 1)
	assert.True(t, doc.Cells[0].IsEmpty())
}

func TestParseMalformedTagsTreatedAsAbsent(t *testing.T) {
	cases := []string{
		`{"cells": [{"cell_type": "code", "source": ["x\n"], "metadata": {"tags": "parameters"}}]}`,
		`{"cells": [{"cell_type": "code", "source": ["x\n"], "metadata": {"tags": 42}}]}`,
		`{"cells": [{"cell_type": "code", "source": ["x\n"], "metadata": {"tags": {"parameters": true}}}]}`,
		`{"cells": [{"cell_type": "code", "source": ["x\n"], "metadata": {}}]}`,
		`{"cells": [{"cell_type": "code", "source": ["x\n"]}]}`,
	}

	for _, data := range cases {
		doc, err := Parse([]byte(data))
		require.NoError(t, err, data)
		require.Len(t, doc.Cells, 1)
		assert.Nil(t, doc.Cells[0].Tags, data)
		assert.False(t, doc.Cells[0].IsParameters())
	}
}

func TestParseMissingSource(t *testing.T) {
	data := `{"cells": [{"cell_type": "code", "metadata": {}}]}`

	doc, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, doc.Cells, 1)
	assert.True(t, doc.Cells[0].IsEmpty())
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing notebook")
}
