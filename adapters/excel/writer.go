package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"sheettint/domain/margin"
	"sheettint/ports"
)

// Fill colours for the two highlight classes, matching the classic Excel
// conditional-formatting palette.
const (
	redFill   = "FFC7CE"
	greenFill = "C6EFCE"
)

// Writer implements ports.SheetSinkPort on top of an excelize workbook. It
// overwrites cells with their value plus a cached highlight style, so a
// colourization pass can run against a workbook that already holds the data.
type Writer struct {
	file   *excelize.File
	styles map[margin.Colour]int
}

var _ ports.SheetSinkPort = (*Writer)(nil)

// NewWriter wraps an open excelize workbook.
func NewWriter(f *excelize.File) *Writer {
	return &Writer{
		file:   f,
		styles: make(map[margin.Colour]int, 2),
	}
}

// NewEmptyWriter creates a writer over a fresh workbook containing only the
// default sheet.
func NewEmptyWriter() *Writer {
	return NewWriter(excelize.NewFile())
}

// File exposes the underlying workbook.
func (w *Writer) File() *excelize.File {
	return w.file
}

// RegisterSheet ensures the named sheet exists.
func (w *Writer) RegisterSheet(sheet string) error {
	idx, err := w.file.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("failed to look up sheet %q: %w", sheet, err)
	}
	if idx >= 0 {
		return nil
	}
	if _, err := w.file.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}
	return nil
}

// Write overwrites the cell at (row, col), zero-based, with value and the
// fill style for colour.
func (w *Writer) Write(sheet string, row, col int, value interface{}, colour margin.Colour) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates (%d, %d): %w", row, col, err)
	}
	if err := w.file.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
	}
	styleID, err := w.styleFor(colour)
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(sheet, cell, cell, styleID); err != nil {
		return fmt.Errorf("failed to style %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// WritePlain overwrites the cell at (row, col), zero-based, without styling.
func (w *Writer) WritePlain(sheet string, row, col int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates (%d, %d): %w", row, col, err)
	}
	if err := w.file.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// Autofit sizes every column of the sheet to its widest cell content.
// excelize has no native autofit, so the width is estimated from the
// rendered string lengths.
func (w *Writer) Autofit(sheet string) error {
	cols, err := w.file.GetCols(sheet)
	if err != nil {
		return fmt.Errorf("failed to read columns of %q: %w", sheet, err)
	}
	for i, col := range cols {
		width := minColumnWidth
		for _, cell := range col {
			if l := float64(len(cell)) + widthPadding; l > width {
				width = l
			}
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("invalid column number %d: %w", i+1, err)
		}
		if err := w.file.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("failed to set width of %s!%s: %w", sheet, name, err)
		}
	}
	return nil
}

const (
	minColumnWidth = 8.0
	maxColumnWidth = 80.0
	widthPadding   = 2.0
)

// SaveAs writes the workbook to path.
func (w *Writer) SaveAs(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook to %s: %w", path, err)
	}
	return nil
}

// WriteTo streams the workbook to out.
func (w *Writer) WriteTo(out io.Writer) error {
	if err := w.file.Write(out); err != nil {
		return fmt.Errorf("failed to stream workbook: %w", err)
	}
	return nil
}

// Close releases the underlying workbook.
func (w *Writer) Close() error {
	return w.file.Close()
}

// styleFor returns the cached style ID for colour, creating it on first use.
func (w *Writer) styleFor(colour margin.Colour) (int, error) {
	if id, ok := w.styles[colour]; ok {
		return id, nil
	}
	fill := greenFill
	if colour == margin.Red {
		fill = redFill
	}
	id, err := w.file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create %s style: %w", colour, err)
	}
	w.styles[colour] = id
	return id, nil
}
