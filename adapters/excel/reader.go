package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sheettint/domain/table"
	"sheettint/ports"
)

// Reader loads Excel and CSV files into the table model, one table per
// sheet. It implements ports.TableSourcePort.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ReaderConfig
}

var _ ports.TableSourcePort = (*Reader)(nil)

// NewReader creates a reader for an .xlsx or .csv file.
func NewReader(filePath string, config ReaderConfig) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType, config: config.withDefaults()}
}

// Tables reads every sheet of the file into a table. CSV input yields a
// single table under the default sheet name.
func (r *Reader) Tables(ctx context.Context) (map[string]*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readWorkbook()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *Reader) readWorkbook() (map[string]*table.Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	log.Printf("[Reader] Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	return TablesFromWorkbook(f, r.config)
}

func (r *Reader) readCSV() (map[string]*table.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	tbl, err := TableFromRows(rows, r.config.HeaderRows)
	if err != nil {
		return nil, err
	}
	log.Printf("[Reader] CSV file processed (%d columns, %d rows)", tbl.ColumnCount(), tbl.RowCount())
	return map[string]*table.Table{r.config.CSVSheetName: tbl}, nil
}

// TablesFromWorkbook converts every non-empty sheet of an open workbook.
// Sheets without data rows below the header are skipped.
func TablesFromWorkbook(f *excelize.File, config ReaderConfig) (map[string]*table.Table, error) {
	config = config.withDefaults()
	tables := make(map[string]*table.Table)
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		if len(rows) <= config.HeaderRows {
			log.Printf("[Reader] Sheet %q has no data rows, skipping", sheet)
			continue
		}
		tbl, err := TableFromRows(rows, config.HeaderRows)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		log.Printf("[Reader] Sheet %q processed (%d columns, %d rows)", sheet, tbl.ColumnCount(), tbl.RowCount())
		tables[sheet] = tbl
	}
	return tables, nil
}

// TableFromRows builds a table from raw string rows. The first headerRows
// rows form the column names; with headerRows > 1 the names are composite
// and blank upper-level header cells inherit the value to their left, the
// way merged header cells come back from excelize.
func TableFromRows(rows [][]string, headerRows int) (*table.Table, error) {
	if headerRows < 1 {
		return nil, fmt.Errorf("header depth must be at least 1, got %d", headerRows)
	}
	if len(rows) <= headerRows {
		return nil, fmt.Errorf("need at least one data row below %d header row(s)", headerRows)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("no columns found")
	}

	ids := headerIDs(rows[:headerRows], width)

	columns := make([]table.Column, width)
	for j := 0; j < width; j++ {
		cells := make([]table.Cell, 0, len(rows)-headerRows)
		for i := headerRows; i < len(rows); i++ {
			cells = append(cells, parseCell(cellAt(rows[i], j)))
		}
		columns[j] = table.Column{ID: ids[j], Cells: cells}
	}
	return table.New(columns...)
}

func headerIDs(headerRows [][]string, width int) []table.ColumnID {
	depth := len(headerRows)
	levels := make([][]string, depth)
	for d := 0; d < depth; d++ {
		levels[d] = make([]string, width)
		carried := ""
		for j := 0; j < width; j++ {
			name := strings.TrimSpace(cellAt(headerRows[d], j))
			// only upper levels carry merged values forward
			if name == "" && d < depth-1 {
				name = carried
			}
			carried = name
			levels[d][j] = name
		}
	}

	ids := make([]table.ColumnID, width)
	for j := 0; j < width; j++ {
		if depth == 1 {
			ids[j] = table.Simple(levels[0][j])
			continue
		}
		parts := make([]string, depth)
		for d := 0; d < depth; d++ {
			parts[d] = levels[d][j]
		}
		ids[j] = table.Composite(parts...)
	}
	return ids
}

func cellAt(row []string, j int) string {
	if j < len(row) {
		return row[j]
	}
	return ""
}

// parseCell coerces a raw cell string: blank and NaN become missing values,
// parseable numbers become numeric cells, everything else stays text.
func parseCell(raw string) table.Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return table.EmptyCell()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if math.IsNaN(f) {
			return table.EmptyCell()
		}
		return table.NumberCell(f)
	}
	return table.TextCell(trimmed)
}
