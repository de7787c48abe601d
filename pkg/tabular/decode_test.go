package tabular

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testReading struct {
	Line    string  `tab:"line"`
	Batch   int     `tab:"batch"`
	Value   float64 `tab:"value"`
	Passed  bool    `tab:"passed"`
	Comment string
}

func TestFromValues_TrimsHeader(t *testing.T) {
	table, err := FromValues([][]interface{}{
		{" line ", "\ufeffbatch", "value\t"},
		{"L1", "3", "1.5"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"line", "batch", "value"}, table.Header)
	assert.Len(t, table.Rows, 1)
}

func TestFromValues_Empty(t *testing.T) {
	_, err := FromValues(nil)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestMissing_PreservesRequestedOrder(t *testing.T) {
	table, err := FromRecords([][]string{{"value", "line"}})
	require.NoError(t, err)

	missing := table.Missing([]string{"passed", "line", "batch", "value"})
	assert.Equal(t, []string{"passed", "batch"}, missing)
}

func TestIndex_FirstOccurrenceWins(t *testing.T) {
	table := &Table{Header: []string{"a", "b", "a"}}
	assert.Equal(t, 0, table.Index()["a"])
	assert.Equal(t, 1, table.Index()["b"])
}

func TestFieldKeys(t *testing.T) {
	keys, err := FieldKeys(&testReading{})
	require.NoError(t, err)
	assert.Equal(t, []string{"line", "batch", "value", "passed"}, keys)

	_, err = FieldKeys(42)
	assert.Error(t, err)

	_, err = FieldKeys(struct{ A string }{})
	assert.Error(t, err)
}

func TestValues(t *testing.T) {
	row := Values(testReading{Line: "L1", Batch: 2, Value: 0.5, Passed: true, Comment: "x"})
	assert.Equal(t, []interface{}{"L1", 2, 0.5, true}, row)
}

func TestDecodeRows_MapsLabels(t *testing.T) {
	table, err := FromValues([][]interface{}{
		{"Line name ", "batch", "Reading", "passed"},
		{" L1 ", "3", "1,25", "true"},
		{"", "", "", nil},
		{"L2", "", 2.5, ""},
		{"L3"},
	})
	require.NoError(t, err)

	rows, err := DecodeRows[testReading](table, map[string]string{
		"line":  "Line name",
		"value": "Reading",
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "L1", rows[0].Line)
	assert.Equal(t, 3, rows[0].Batch)
	assert.Equal(t, 1.25, rows[0].Value)
	assert.True(t, rows[0].Passed)

	assert.Equal(t, "L2", rows[1].Line)
	assert.Equal(t, 0, rows[1].Batch)
	assert.Equal(t, 2.5, rows[1].Value)
	assert.False(t, rows[1].Passed)

	// Short rows read as empty cells
	assert.Equal(t, "L3", rows[2].Line)
	assert.True(t, math.IsNaN(rows[2].Value))
}

func TestDecodeRows_ParseError(t *testing.T) {
	table, err := FromRecords([][]string{
		{"line", "batch", "value", "passed"},
		{"L1", "1", "1.0", "true"},
		{"L2", "1", "abc", "true"},
	})
	require.NoError(t, err)

	_, err = DecodeRows[testReading](table, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3, column value")
}

func TestDecodeRows_MissingColumn(t *testing.T) {
	table, err := FromRecords([][]string{{"line", "batch"}})
	require.NoError(t, err)

	_, err = DecodeRows[testReading](table, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"value"`)
}

func TestCellFloat(t *testing.T) {
	tests := []struct {
		name  string
		cell  interface{}
		want  float64
		isNaN bool
	}{
		{"nil", nil, 0, true},
		{"empty string", "  ", 0, true},
		{"nan text", "NaN", 0, true},
		{"float", 1.5, 1.5, false},
		{"int64", int64(4), 4, false},
		{"text", " 2.75 ", 2.75, false},
		{"decimal comma", "3,5", 3.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cellFloat(tt.cell)
			require.NoError(t, err)
			if tt.isNaN {
				assert.True(t, math.IsNaN(got))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
