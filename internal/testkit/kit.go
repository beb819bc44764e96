// Package testkit provides table fixtures and an in-memory sink shared by
// tests across the module.
package testkit

import (
	"fmt"

	"sheettint/domain/table"
)

// Example instruction string exercising every key.
const Instructions = "M 5.0 m 10.0 C g c r p 10.0 s b o 1 O 0"

// ScoreTable returns a single numeric column score=[10,20,30,40,100].
func ScoreTable() *table.Table {
	return mustTable(table.Column{
		ID: table.Simple("score"),
		Cells: []table.Cell{
			table.NumberCell(10),
			table.NumberCell(20),
			table.NumberCell(30),
			table.NumberCell(40),
			table.NumberCell(100),
		},
	})
}

// MajorityTable returns a single numeric column value=[5,5,5,5,1], whose max
// is a majority value at any threshold up to 80%.
func MajorityTable() *table.Table {
	return mustTable(table.Column{
		ID: table.Simple("value"),
		Cells: []table.Cell{
			table.NumberCell(5),
			table.NumberCell(5),
			table.NumberCell(5),
			table.NumberCell(5),
			table.NumberCell(1),
		},
	})
}

// MixedTable returns a numeric column, a text column, and a sparse numeric
// column with a missing cell.
func MixedTable() *table.Table {
	return mustTable(
		table.Column{
			ID: table.Simple("score"),
			Cells: []table.Cell{
				table.NumberCell(1),
				table.NumberCell(2),
				table.NumberCell(3),
			},
		},
		table.Column{
			ID: table.Simple("label"),
			Cells: []table.Cell{
				table.TextCell("a"),
				table.TextCell("b"),
				table.TextCell("c"),
			},
		},
		table.Column{
			ID: table.Simple("sparse"),
			Cells: []table.Cell{
				table.NumberCell(7),
				table.EmptyCell(),
				table.NumberCell(9),
			},
		},
	)
}

// MultiLevelTable returns two numeric columns under composite identifiers,
// ("A", "mean") and ("B", "missing").
func MultiLevelTable() *table.Table {
	return mustTable(
		table.Column{
			ID: table.Composite("A", "mean"),
			Cells: []table.Cell{
				table.NumberCell(1.5),
				table.NumberCell(2.5),
				table.NumberCell(3.5),
			},
		},
		table.Column{
			ID: table.Composite("B", "missing"),
			Cells: []table.Cell{
				table.NumberCell(0),
				table.NumberCell(1),
				table.NumberCell(2),
			},
		},
	)
}

// Sheets wraps a single table under a sheet name.
func Sheets(name string, tbl *table.Table) map[string]*table.Table {
	return map[string]*table.Table{name: tbl}
}

func mustTable(columns ...table.Column) *table.Table {
	tbl, err := table.New(columns...)
	if err != nil {
		panic(fmt.Sprintf("testkit fixture is ragged: %v", err))
	}
	return tbl
}
