package table

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrRaggedColumns = errors.New("columns have differing row counts")
	ErrColumnUnknown = errors.New("column not present in table")
)

// Table is an ordered set of named columns with rows aligned by position.
// It is read-only input: build it once, then only query it.
type Table struct {
	columns []Column
	rows    int
}

// New builds a table from columns. All columns must have the same number of
// rows.
func New(columns ...Column) (*Table, error) {
	rows := 0
	for i, col := range columns {
		if i == 0 {
			rows = len(col.Cells)
			continue
		}
		if len(col.Cells) != rows {
			return nil, fmt.Errorf("%w: column %s has %d rows, expected %d",
				ErrRaggedColumns, col.ID, len(col.Cells), rows)
		}
	}
	copied := make([]Column, len(columns))
	copy(copied, columns)
	return &Table{columns: copied, rows: rows}, nil
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// Column returns the column at position pos.
func (t *Table) Column(pos int) Column {
	return t.columns[pos]
}

// ColumnIDs returns the identifiers of all columns in table order.
func (t *Table) ColumnIDs() []ColumnID {
	ids := make([]ColumnID, len(t.columns))
	for i, col := range t.columns {
		ids[i] = col.ID
	}
	return ids
}

// Position returns the position of the column with the given identifier.
func (t *Table) Position(id ColumnID) (int, error) {
	for i, col := range t.columns {
		if col.ID.Equal(id) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrColumnUnknown, id)
}

// Cell returns the cell at (row, column position).
func (t *Table) Cell(row, pos int) Cell {
	return t.columns[pos].Cells[row]
}

// SelectNumeric returns the positions, in table order, of the requested
// columns that are both present and numeric. Absent or non-numeric columns
// are silently excluded.
func (t *Table) SelectNumeric(ids []ColumnID) []int {
	positions := make([]int, 0, len(ids))
	for pos, col := range t.columns {
		if !containsID(ids, col.ID) {
			continue
		}
		if !col.IsNumeric() {
			continue
		}
		positions = append(positions, pos)
	}
	return positions
}

// Excluding returns all column identifiers except those listed.
func (t *Table) Excluding(exclude []ColumnID) []ColumnID {
	ids := make([]ColumnID, 0, len(t.columns))
	for _, col := range t.columns {
		if containsID(exclude, col.ID) {
			continue
		}
		ids = append(ids, col.ID)
	}
	return ids
}

func containsID(ids []ColumnID, id ColumnID) bool {
	for _, candidate := range ids {
		if candidate.Equal(id) {
			return true
		}
	}
	return false
}
