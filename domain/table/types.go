// Package table defines the read-only tabular input model: named columns of
// scalar cells, rows aligned by position.
package table

import (
	"strings"
)

// ColumnID identifies a column by name. A simple name has one level; a
// composite (multi-level) name has several, mirroring a multi-level header.
type ColumnID struct {
	levels []string
}

// Simple returns a single-level column identifier.
func Simple(name string) ColumnID {
	return ColumnID{levels: []string{name}}
}

// Composite returns a multi-level column identifier.
func Composite(levels ...string) ColumnID {
	copied := make([]string, len(levels))
	copy(copied, levels)
	return ColumnID{levels: copied}
}

// Levels returns the name levels of the identifier.
func (id ColumnID) Levels() []string {
	return id.levels
}

// IsComposite reports whether the identifier has more than one level.
func (id ColumnID) IsComposite() bool {
	return len(id.levels) > 1
}

// Equal reports level-wise equality.
func (id ColumnID) Equal(other ColumnID) bool {
	if len(id.levels) != len(other.levels) {
		return false
	}
	for i := range id.levels {
		if id.levels[i] != other.levels[i] {
			return false
		}
	}
	return true
}

func (id ColumnID) String() string {
	return strings.Join(id.levels, " / ")
}

// CellKind discriminates the scalar kinds a cell can hold.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
)

// Cell is one scalar value in a column. Empty cells are missing values and
// never participate in bound calculation or classification.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

// TextCell returns a non-numeric cell.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// EmptyCell returns a missing-value cell.
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// Value returns the cell's scalar as an interface value, or nil when empty.
func (c Cell) Value() interface{} {
	switch c.Kind {
	case CellNumber:
		return c.Number
	case CellText:
		return c.Text
	default:
		return nil
	}
}

// Column is an ordered sequence of cells under one identifier.
type Column struct {
	ID    ColumnID
	Cells []Cell
}

// IsNumeric reports whether the column participates in bound calculation:
// at least one numeric cell and no text cells. Empty cells are allowed.
func (c Column) IsNumeric() bool {
	numbers := 0
	for _, cell := range c.Cells {
		switch cell.Kind {
		case CellText:
			return false
		case CellNumber:
			numbers++
		}
	}
	return numbers > 0
}

// NumericValues returns the numeric cells of the column in row order,
// skipping empty cells.
func (c Column) NumericValues() []float64 {
	values := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Kind == CellNumber {
			values = append(values, cell.Number)
		}
	}
	return values
}
