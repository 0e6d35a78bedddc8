// Package table holds the tabular result type that decoders produce and
// that the cache serializes to disk.
package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Table is a rectangular set of string cells with named columns. It is the
// result type of every API call.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Decoder converts a raw response body into a Table. Implementations must
// not panic on malformed input; they return an error (or a nil table)
// instead, which the caller reports as a no-data result.
type Decoder func(body []byte) (*Table, error)

// New creates an empty table with the given column names.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds one row. The number of cells must match the number of columns.
func (t *Table) Append(cells ...string) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("table: row has %d cells, want %d", len(cells), len(t.Columns))
	}
	t.Rows = append(t.Rows, cells)
	return nil
}

// NumRows returns the number of data rows (excluding the header).
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Get returns the cell at row i in the named column.
func (t *Table) Get(i int, column string) (string, bool) {
	if i < 0 || i >= len(t.Rows) {
		return "", false
	}
	for j, c := range t.Columns {
		if c == column {
			return t.Rows[i][j], true
		}
	}
	return "", false
}

// MarshalCSV serializes the table as CSV with a header row. This is the
// on-disk cache format; files are plain text and safe to inspect or delete.
func (t *Table) MarshalCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadCSV parses a CSV document produced by MarshalCSV back into a Table.
func ReadCSV(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table: CSV document has no header row")
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}
