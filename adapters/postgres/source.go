// Package postgres loads SQL query results as tables, so database-backed
// reports can be exported and colourized like any other sheet.
package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"sheettint/domain/table"
	"sheettint/ports"
)

// QuerySource materializes one SQL query as a single named table. It
// implements ports.TableSourcePort.
type QuerySource struct {
	db        *sqlx.DB
	sheetName string
	query     string
	args      []interface{}
}

var _ ports.TableSourcePort = (*QuerySource)(nil)

// NewQuerySource creates a source that runs query with args and exposes the
// result set under sheetName.
func NewQuerySource(db *sqlx.DB, sheetName, query string, args ...interface{}) *QuerySource {
	return &QuerySource{db: db, sheetName: sheetName, query: query, args: args}
}

// Tables runs the query and converts the result set.
func (s *QuerySource) Tables(ctx context.Context) (map[string]*table.Table, error) {
	rows, err := s.db.QueryxContext(ctx, s.query, s.args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var records [][]interface{}
	for rows.Next() {
		record, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("result iteration failed: %w", err)
	}

	tbl, err := BuildTable(columns, records)
	if err != nil {
		return nil, err
	}
	return map[string]*table.Table{s.sheetName: tbl}, nil
}

// BuildTable converts a scanned result set into a table. Split out from the
// query path so the coercion rules are testable without a database.
func BuildTable(columns []string, records [][]interface{}) (*table.Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("result set has no columns")
	}

	cols := make([]table.Column, len(columns))
	for j, name := range columns {
		cells := make([]table.Cell, len(records))
		for i, record := range records {
			var value interface{}
			if j < len(record) {
				value = record[j]
			}
			cells[i] = coerceValue(value)
		}
		cols[j] = table.Column{ID: table.Simple(name), Cells: cells}
	}
	return table.New(cols...)
}

// coerceValue maps a driver value onto a cell. lib/pq hands NUMERIC and
// DECIMAL columns back as byte strings, so those are re-parsed as numbers.
func coerceValue(value interface{}) table.Cell {
	switch v := value.(type) {
	case nil:
		return table.EmptyCell()
	case int64:
		return table.NumberCell(float64(v))
	case float64:
		return table.NumberCell(v)
	case bool:
		return table.TextCell(strconv.FormatBool(v))
	case time.Time:
		return table.TextCell(v.Format(time.RFC3339))
	case []byte:
		if f, err := strconv.ParseFloat(string(v), 64); err == nil {
			return table.NumberCell(f)
		}
		return table.TextCell(string(v))
	case string:
		return table.TextCell(v)
	default:
		return table.TextCell(fmt.Sprint(v))
	}
}
