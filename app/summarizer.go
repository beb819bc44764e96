package app

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"sheettint/domain/table"
	apperrors "sheettint/internal/errors"
	"sheettint/ports"
)

// Summarizer appends a descriptive-statistics sheet per source sheet, the
// kind of table the margin colourizer is typically pointed at afterwards.
type Summarizer struct {
	sink ports.SheetSinkPort
}

// NewSummarizer creates a summarizer writing through the given sink.
func NewSummarizer(sink ports.SheetSinkPort) *Summarizer {
	return &Summarizer{sink: sink}
}

// SummarySheetName returns the name of the summary sheet generated for a
// source sheet.
func SummarySheetName(sheet string) string {
	return sheet + " Summary"
}

var summaryHeader = []string{
	"column", "count", "missing", "mean", "std", "min", "q25", "median", "q75", "max",
}

// Summarize writes one summary sheet per input sheet: a row of descriptive
// statistics for every numeric column. Non-numeric columns appear with
// their counts only.
func (s *Summarizer) Summarize(sheets map[string]*table.Table) error {
	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.summarizeSheet(name, sheets[name]); err != nil {
			return apperrors.Wrapf(err, "summary of sheet %q failed", name)
		}
	}
	return nil
}

func (s *Summarizer) summarizeSheet(name string, tbl *table.Table) error {
	target := SummarySheetName(name)
	if err := s.sink.RegisterSheet(target); err != nil {
		return err
	}

	for col, title := range summaryHeader {
		if err := s.sink.WritePlain(target, 0, col, title); err != nil {
			return err
		}
	}

	for pos := 0; pos < tbl.ColumnCount(); pos++ {
		col := tbl.Column(pos)
		row := pos + 1

		values := col.NumericValues()
		cells := []interface{}{
			col.ID.String(),
			len(values),
			tbl.RowCount() - nonEmptyCount(col),
		}
		if col.IsNumeric() {
			numbers, err := describe(values)
			if err != nil {
				return fmt.Errorf("column %s: %w", col.ID, err)
			}
			cells = append(cells, numbers...)
		}

		for i, value := range cells {
			if err := s.sink.WritePlain(target, row, i, value); err != nil {
				return err
			}
		}
	}

	return s.sink.Autofit(target)
}

// describe returns mean, std, min, q25, median, q75, max for a non-empty
// sample.
func describe(values []float64) ([]interface{}, error) {
	mean, err := stats.Mean(values)
	if err != nil {
		return nil, err
	}
	stdDev, err := stats.StandardDeviation(values)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(values)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(values)
	if err != nil {
		return nil, err
	}
	q25, err := stats.Percentile(values, 25)
	if err != nil {
		return nil, err
	}
	q75, err := stats.Percentile(values, 75)
	if err != nil {
		return nil, err
	}
	return []interface{}{mean, stdDev, min, q25, median, q75, max}, nil
}

func nonEmptyCount(col table.Column) int {
	n := 0
	for _, cell := range col.Cells {
		if cell.Kind != table.CellEmpty {
			n++
		}
	}
	return n
}
