// Package app wires the margin core to its collaborators: it resolves
// columns, computes bounds, classifies cells, and hands write directives to
// the sheet sink.
package app

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"sheettint/domain/instruction"
	"sheettint/domain/margin"
	"sheettint/domain/table"
	apperrors "sheettint/internal/errors"
	"sheettint/ports"
)

// Modifier colourizes percentile margins of numeric columns across a set of
// registered sheets. It is the orchestration layer over the margin core: all
// bound math lives in domain/margin, all spreadsheet I/O behind the sink.
type Modifier struct {
	sink   ports.SheetSinkPort
	sheets map[string]*table.Table
}

// NewModifier creates a modifier writing through the given sink.
func NewModifier(sink ports.SheetSinkPort) *Modifier {
	return &Modifier{
		sink:   sink,
		sheets: make(map[string]*table.Table),
	}
}

// SetSheets replaces the set of sheets any colourize call will operate on.
func (m *Modifier) SetSheets(sheets map[string]*table.Table) {
	m.sheets = sheets
}

// ColourizeColumns applies the instruction string to the named columns of
// every registered sheet. Columns that are absent from a sheet, or present
// but non-numeric, are skipped for that sheet.
func (m *Modifier) ColourizeColumns(ctx context.Context, columns []table.ColumnID, instructions string) error {
	return m.colourize(ctx, instructions, func(tbl *table.Table) []table.ColumnID {
		return columns
	})
}

// ColourizeAll applies the instruction string to every column of every
// registered sheet except those listed in exclude.
func (m *Modifier) ColourizeAll(ctx context.Context, instructions string, exclude []table.ColumnID) error {
	return m.colourize(ctx, instructions, func(tbl *table.Table) []table.ColumnID {
		return tbl.Excluding(exclude)
	})
}

// AutofitSheets autofits every registered sheet.
func (m *Modifier) AutofitSheets() error {
	for _, name := range m.sheetNames() {
		if err := m.sink.Autofit(name); err != nil {
			return apperrors.Wrapf(err, "autofit of sheet %q failed", name)
		}
	}
	return nil
}

// Close closes the underlying sink.
func (m *Modifier) Close() error {
	return m.sink.Close()
}

type sheetDirectives struct {
	sheet      string
	directives []margin.Directive
}

// colourize parses and validates the instruction string once, computes the
// directives of each sheet concurrently (sheets are independent), then
// applies them to the sink sequentially.
func (m *Modifier) colourize(ctx context.Context, instructions string, pick func(*table.Table) []table.ColumnID) error {
	opts, err := instruction.Parse(instructions)
	if err != nil {
		return apperrors.WithCode(apperrors.CodeInstructionInvalid, err)
	}

	names := m.sheetNames()
	results := make([]sheetDirectives, len(names))

	startTime := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		tbl := m.sheets[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			directives, err := directivesForSheet(tbl, pick(tbl), opts)
			if err != nil {
				return fmt.Errorf("sheet %q: %w", name, err)
			}
			results[i] = sheetDirectives{sheet: name, directives: directives}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return apperrors.Wrap(err, "directive computation failed")
	}
	log.Printf("[Modifier] Directives computed for %d sheet(s) in %.2fms",
		len(names), float64(time.Since(startTime).Nanoseconds())/1e6)

	for _, result := range results {
		if err := m.sink.RegisterSheet(result.sheet); err != nil {
			return apperrors.Wrapf(err, "failed to register sheet %q", result.sheet)
		}
		for _, d := range result.directives {
			if err := m.sink.Write(result.sheet, d.Row, d.Col, d.Value, d.Colour); err != nil {
				return apperrors.WithCode(apperrors.CodeSinkError,
					fmt.Errorf("write to sheet %q failed: %w", result.sheet, err))
			}
		}
	}
	return nil
}

// directivesForSheet runs one classification pass over a table. Bounds and
// extremes are computed once per column and reused for every row. Offsets
// are applied here, at emission.
func directivesForSheet(tbl *table.Table, requested []table.ColumnID, opts instruction.Options) ([]margin.Directive, error) {
	var directives []margin.Directive

	for _, pos := range tbl.SelectNumeric(requested) {
		col := tbl.Column(pos)
		values := col.NumericValues()

		bounds, err := margin.CalculateBounds(values, opts.MarginUpper, opts.MarginLower)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.ID, err)
		}
		extremes, err := margin.DetectExtremes(values, tbl.RowCount(), opts.MajorityPct)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.ID, err)
		}

		classifier := margin.Classifier{Bounds: bounds, Extremes: extremes, Mode: opts.Mode}
		for row, cell := range col.Cells {
			if cell.Kind != table.CellNumber {
				continue
			}
			upper, lower := classifier.Classify(cell.Number)
			if upper {
				directives = append(directives, margin.Directive{
					Row:    opts.RowOffset + row,
					Col:    opts.ColumnOffset + pos,
					Value:  cell.Number,
					Colour: opts.ColourUpper,
				})
			}
			if lower {
				directives = append(directives, margin.Directive{
					Row:    opts.RowOffset + row,
					Col:    opts.ColumnOffset + pos,
					Value:  cell.Number,
					Colour: opts.ColourLower,
				})
			}
		}
	}
	return directives, nil
}

func (m *Modifier) sheetNames() []string {
	names := make([]string, 0, len(m.sheets))
	for name := range m.sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
