package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"sheettint/domain/table"
)

// MaterializeCSV reads CSV input into a fresh workbook, header rows
// included, and returns the writer together with the parsed table. The
// colourization pass needs the cells present in the workbook before it can
// overwrite them.
func MaterializeCSV(r io.Reader, config ReaderConfig) (*Writer, map[string]*table.Table, error) {
	config = config.withDefaults()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV input: %w", err)
	}

	tbl, err := TableFromRows(rows, config.HeaderRows)
	if err != nil {
		return nil, nil, err
	}

	writer := NewEmptyWriter()
	for i, row := range rows {
		for j, cell := range row {
			if err := writer.WritePlain(config.CSVSheetName, i, j, rawValue(cell)); err != nil {
				writer.Close()
				return nil, nil, err
			}
		}
	}
	return writer, map[string]*table.Table{config.CSVSheetName: tbl}, nil
}

// WriteTable writes a table into a sheet of the workbook: header rows built
// from the column identifiers, then the data rows. Returns the header depth
// so callers can align their write offsets.
func WriteTable(w *Writer, sheet string, tbl *table.Table) (int, error) {
	if err := w.RegisterSheet(sheet); err != nil {
		return 0, err
	}

	depth := 1
	for _, id := range tbl.ColumnIDs() {
		if len(id.Levels()) > depth {
			depth = len(id.Levels())
		}
	}

	for pos, id := range tbl.ColumnIDs() {
		for d, level := range id.Levels() {
			if err := w.WritePlain(sheet, d, pos, level); err != nil {
				return 0, err
			}
		}
	}

	for row := 0; row < tbl.RowCount(); row++ {
		for pos := 0; pos < tbl.ColumnCount(); pos++ {
			cell := tbl.Cell(row, pos)
			if cell.Kind == table.CellEmpty {
				continue
			}
			if err := w.WritePlain(sheet, depth+row, pos, cell.Value()); err != nil {
				return 0, err
			}
		}
	}
	return depth, nil
}

// rawValue keeps numbers numeric when copying raw strings into a workbook.
func rawValue(raw string) interface{} {
	trimmed := strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return trimmed
}
