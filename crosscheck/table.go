package crosscheck

import "fmt"

// Column names carried over from CrosscheckFingerprints output.
const (
	LeftGroupValue  = "LEFT_GROUP_VALUE"
	RightGroupValue = "RIGHT_GROUP_VALUE"
	LODScore        = "LOD_SCORE"
)

// Table is an ordered set of named columns. Each row holds one Value per
// column, in column order.
type Table struct {
	Columns []string
	Rows    [][]Value
}

func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)

	return &Table{Columns: cols}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}

	return -1
}

// MustIndex is Index, but a missing column is an error.
func (t *Table) MustIndex(name string) (int, error) {
	i := t.Index(name)
	if i < 0 {
		return -1, fmt.Errorf("column %q not found", name)
	}

	return i, nil
}

// Append adds a row. The row must have one value per column.
func (t *Table) Append(row []Value) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d values but the table has %d columns", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)

	return nil
}

// Hashable reports whether every cell of column i can be used as a grouping
// key.
func (t *Table) Hashable(i int) bool {
	for _, row := range t.Rows {
		if !row[i].Hashable() {
			return false
		}
	}

	return true
}

// Records renders the table, header first, as strings.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)

	header := make([]string, len(t.Columns))
	copy(header, t.Columns)
	out = append(out, header)

	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = v.String()
		}
		out = append(out, rec)
	}

	return out
}
