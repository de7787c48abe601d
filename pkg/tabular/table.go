package tabular

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoHeader is returned when a source has no header row
var ErrNoHeader = errors.New("no header row found")

// Table is a header row plus data rows as read from a spreadsheet-like source.
// Cells keep the type the source produced (string, float64, int64, bool or nil).
type Table struct {
	Header []string
	Rows   [][]interface{}
}

// NormalizeHeader strips incidental whitespace from a column label
func NormalizeHeader(label string) string {
	return strings.TrimSpace(strings.TrimPrefix(label, "\ufeff"))
}

// FromValues builds a Table from raw values where the first row is the header
func FromValues(values [][]interface{}) (*Table, error) {
	if len(values) == 0 {
		return nil, ErrNoHeader
	}

	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = NormalizeHeader(cellString(cell))
	}

	return &Table{
		Header: header,
		Rows:   values[1:],
	}, nil
}

// FromRecords builds a Table from string records where the first record is the header
func FromRecords(records [][]string) (*Table, error) {
	values := make([][]interface{}, len(records))
	for i, record := range records {
		row := make([]interface{}, len(record))
		for j, cell := range record {
			row[j] = cell
		}
		values[i] = row
	}
	return FromValues(values)
}

// Index returns the column index for each header label.
// When a label repeats, the first occurrence wins.
func (t *Table) Index() map[string]int {
	index := make(map[string]int, len(t.Header))
	for i, label := range t.Header {
		if _, exists := index[label]; !exists {
			index[label] = i
		}
	}
	return index
}

// Missing returns the labels, in the given order, that are absent from the header
func (t *Table) Missing(labels []string) []string {
	index := t.Index()
	var missing []string
	for _, label := range labels {
		if _, ok := index[NormalizeHeader(label)]; !ok {
			missing = append(missing, label)
		}
	}
	return missing
}

// isBlankRow reports whether every cell in the row is empty
func isBlankRow(row []interface{}) bool {
	for _, cell := range row {
		if strings.TrimSpace(cellString(cell)) != "" {
			return false
		}
	}
	return true
}

// cellString renders a cell as text
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
