package excel

// DefaultSheetName is the sheet a fresh workbook starts with and the name
// given to tables loaded from CSV input.
const DefaultSheetName = "Sheet1"

// ReaderConfig controls how raw sheets are turned into tables.
type ReaderConfig struct {
	// HeaderRows is the header depth. 1 yields simple column names; greater
	// depths yield composite (multi-level) names. Defaults to 1.
	HeaderRows int

	// CSVSheetName names the single table produced from CSV input.
	// Defaults to DefaultSheetName.
	CSVSheetName string
}

func (c ReaderConfig) withDefaults() ReaderConfig {
	if c.HeaderRows == 0 {
		c.HeaderRows = 1
	}
	if c.CSVSheetName == "" {
		c.CSVSheetName = DefaultSheetName
	}
	return c
}
