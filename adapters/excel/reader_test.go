package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sheettint/domain/table"
)

func TestTableFromRows_SimpleHeader(t *testing.T) {
	rows := [][]string{
		{"name", "score"},
		{"alice", "10"},
		{"bob", "20.5"},
	}

	tbl, err := TableFromRows(rows, 1)
	require.NoError(t, err)

	require.Equal(t, 2, tbl.ColumnCount())
	require.Equal(t, 2, tbl.RowCount())

	name := tbl.Column(0)
	assert.True(t, name.ID.Equal(table.Simple("name")))
	assert.False(t, name.IsNumeric())

	score := tbl.Column(1)
	assert.True(t, score.IsNumeric())
	assert.Equal(t, []float64{10, 20.5}, score.NumericValues())
}

func TestTableFromRows_CompositeHeaderCarriesMergedCells(t *testing.T) {
	// excelize returns merged header cells as blanks after the first
	rows := [][]string{
		{"A", "", "B", ""},
		{"mean", "missing", "mean", "missing"},
		{"1", "0", "2", "3"},
	}

	tbl, err := TableFromRows(rows, 2)
	require.NoError(t, err)
	require.Equal(t, 4, tbl.ColumnCount())

	assert.True(t, tbl.Column(0).ID.Equal(table.Composite("A", "mean")))
	assert.True(t, tbl.Column(1).ID.Equal(table.Composite("A", "missing")))
	assert.True(t, tbl.Column(2).ID.Equal(table.Composite("B", "mean")))
	assert.True(t, tbl.Column(3).ID.Equal(table.Composite("B", "missing")))
}

func TestTableFromRows_BlankAndNaNBecomeMissing(t *testing.T) {
	rows := [][]string{
		{"score"},
		{"1"},
		{""},
		{"NaN"},
		{"4"},
	}

	tbl, err := TableFromRows(rows, 1)
	require.NoError(t, err)

	col := tbl.Column(0)
	assert.True(t, col.IsNumeric())
	assert.Equal(t, []float64{1, 4}, col.NumericValues())
	assert.Equal(t, table.CellEmpty, col.Cells[1].Kind)
	assert.Equal(t, table.CellEmpty, col.Cells[2].Kind)
}

func TestTableFromRows_RaggedRowsArePadded(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"1"},
		{"2", "3"},
	}

	tbl, err := TableFromRows(rows, 1)
	require.NoError(t, err)

	b := tbl.Column(1)
	assert.Equal(t, table.CellEmpty, b.Cells[0].Kind)
	assert.Equal(t, []float64{3}, b.NumericValues())
}

func TestTableFromRows_Errors(t *testing.T) {
	_, err := TableFromRows([][]string{{"only", "header"}}, 1)
	assert.Error(t, err)

	_, err = TableFromRows([][]string{{"h"}, {"1"}}, 0)
	assert.Error(t, err)
}

func TestReader_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("score,label\n10,a\n20,b\n"), 0o644))

	reader := NewReader(path, ReaderConfig{})
	tables, err := reader.Tables(context.Background())
	require.NoError(t, err)

	tbl, ok := tables[DefaultSheetName]
	require.True(t, ok)
	assert.Equal(t, 2, tbl.RowCount())
	assert.True(t, tbl.Column(0).IsNumeric())
	assert.False(t, tbl.Column(1).IsNumeric())
}

func TestReader_WorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "score"))
	for i, v := range []float64{10, 20, 30} {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	reader := NewReader(path, ReaderConfig{})
	tables, err := reader.Tables(context.Background())
	require.NoError(t, err)

	tbl, ok := tables["Sheet1"]
	require.True(t, ok)
	require.Equal(t, 1, tbl.ColumnCount())
	assert.Equal(t, []float64{10, 20, 30}, tbl.Column(0).NumericValues())
}

func TestReader_MissingFile(t *testing.T) {
	reader := NewReader(filepath.Join(t.TempDir(), "absent.xlsx"), ReaderConfig{})
	_, err := reader.Tables(context.Background())
	assert.ErrorContains(t, err, "not found")
}
