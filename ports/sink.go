package ports

import (
	"sheettint/domain/margin"
)

// SheetSinkPort is the external spreadsheet-writing collaborator. The core
// emits cell overwrites against it and never serializes spreadsheets itself.
//
// Writes within one sheet are independent and may be applied in any order;
// when the same cell is written twice the later write wins.
type SheetSinkPort interface {
	// RegisterSheet ensures a sheet with the given name exists and is
	// writable. Registering an existing sheet is a no-op.
	RegisterSheet(sheet string) error

	// Write overwrites the cell at (row, col), zero-based, with value and
	// the style mapped from colour.
	Write(sheet string, row, col int, value interface{}, colour margin.Colour) error

	// WritePlain overwrites the cell at (row, col) without any styling.
	WritePlain(sheet string, row, col int, value interface{}) error

	// Autofit sizes the sheet's columns to their content.
	Autofit(sheet string) error

	// Close flushes and releases the underlying workbook writer.
	Close() error
}
