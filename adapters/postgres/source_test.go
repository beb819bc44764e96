package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheettint/domain/table"
)

func TestBuildTable_CoercesDriverValues(t *testing.T) {
	columns := []string{"id", "amount", "note"}
	records := [][]interface{}{
		{int64(1), []byte("10.5"), "first"},
		{int64(2), nil, "second"},
		{int64(3), []byte("30"), "third"},
	}

	tbl, err := BuildTable(columns, records)
	require.NoError(t, err)

	require.Equal(t, 3, tbl.ColumnCount())
	require.Equal(t, 3, tbl.RowCount())

	id := tbl.Column(0)
	assert.True(t, id.ID.Equal(table.Simple("id")))
	assert.True(t, id.IsNumeric())
	assert.Equal(t, []float64{1, 2, 3}, id.NumericValues())

	// NUMERIC comes back as bytes, NULL as nil
	amount := tbl.Column(1)
	assert.True(t, amount.IsNumeric())
	assert.Equal(t, []float64{10.5, 30}, amount.NumericValues())
	assert.Equal(t, table.CellEmpty, amount.Cells[1].Kind)

	note := tbl.Column(2)
	assert.False(t, note.IsNumeric())
}

func TestBuildTable_NonNumericKinds(t *testing.T) {
	when := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	columns := []string{"flag", "created_at", "blob"}
	records := [][]interface{}{
		{true, when, []byte("not a number")},
	}

	tbl, err := BuildTable(columns, records)
	require.NoError(t, err)

	assert.Equal(t, table.TextCell("true"), tbl.Cell(0, 0))
	assert.Equal(t, table.TextCell("2026-08-30T12:00:00Z"), tbl.Cell(0, 1))
	assert.Equal(t, table.TextCell("not a number"), tbl.Cell(0, 2))
}

func TestBuildTable_EmptyResultSet(t *testing.T) {
	tbl, err := BuildTable([]string{"a"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.RowCount())
	assert.False(t, tbl.Column(0).IsNumeric())

	_, err = BuildTable(nil, nil)
	assert.Error(t, err)
}

func TestBuildTable_ShortRecordPadsWithMissing(t *testing.T) {
	tbl, err := BuildTable([]string{"a", "b"}, [][]interface{}{
		{float64(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, table.CellEmpty, tbl.Cell(0, 1).Kind)
}
