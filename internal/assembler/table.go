package assembler

import (
	"sort"
)

// Table is a dense feature-attribute table: rows are feature labels in
// insertion order, columns are the category's global key universe in its
// sorted order. Cells are optional strings; an unset cell is distinct
// from an explicitly empty tag value.
type Table struct {
	rows     []string
	columns  []string
	colIndex map[string]int
	cells    []tableCell // row-major, len(rows) * len(columns)
}

type tableCell struct {
	value string
	set   bool
}

// NewTable creates an empty table over the given column universe. The
// column set is fixed before population and never grows.
func NewTable(columns []string) *Table {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	return &Table{
		columns:  columns,
		colIndex: idx,
	}
}

// AppendRow adds one feature row, mapping the feature's tags onto the
// column universe. Keys outside the universe are dropped and returned in
// sorted order; such keys can only occur if the universe was computed
// incorrectly upstream, a non-fatal condition the caller may surface.
func (t *Table) AppendRow(label string, tags Tags) (dropped []string) {
	t.rows = append(t.rows, label)
	t.cells = append(t.cells, make([]tableCell, len(t.columns))...)
	row := len(t.rows) - 1
	for k, v := range tags {
		col, ok := t.colIndex[k]
		if !ok {
			dropped = append(dropped, k)
			continue
		}
		t.cells[row*len(t.columns)+col] = tableCell{value: v, set: true}
	}
	sort.Strings(dropped)
	return dropped
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// RowLabels returns the row labels in insertion order.
func (t *Table) RowLabels() []string { return t.rows }

// Columns returns the column labels in their fixed order.
func (t *Table) Columns() []string { return t.columns }

// Value returns the cell at (row, column name). ok is false for an
// unset cell or an unknown column.
func (t *Table) Value(row int, column string) (string, bool) {
	col, ok := t.colIndex[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return "", false
	}
	c := t.cells[row*len(t.columns)+col]
	return c.value, c.set
}
