package testkit

import (
	"sort"

	"sheettint/domain/margin"
)

// Write is one recorded sink call.
type Write struct {
	Sheet  string
	Row    int
	Col    int
	Value  interface{}
	Colour margin.Colour
	Styled bool
}

// RecordingSink is an in-memory ports.SheetSinkPort for tests.
type RecordingSink struct {
	Sheets    []string
	Writes    []Write
	Autofits  []string
	CloseErr  error
	WriteErr  error
	Closed    bool
}

// NewRecordingSink creates an empty recording sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) RegisterSheet(sheet string) error {
	for _, existing := range s.Sheets {
		if existing == sheet {
			return nil
		}
	}
	s.Sheets = append(s.Sheets, sheet)
	return nil
}

func (s *RecordingSink) Write(sheet string, row, col int, value interface{}, colour margin.Colour) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.Writes = append(s.Writes, Write{Sheet: sheet, Row: row, Col: col, Value: value, Colour: colour, Styled: true})
	return nil
}

func (s *RecordingSink) WritePlain(sheet string, row, col int, value interface{}) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.Writes = append(s.Writes, Write{Sheet: sheet, Row: row, Col: col, Value: value})
	return nil
}

func (s *RecordingSink) Autofit(sheet string) error {
	s.Autofits = append(s.Autofits, sheet)
	return nil
}

func (s *RecordingSink) Close() error {
	s.Closed = true
	return s.CloseErr
}

// StyledWrites returns the styled writes ordered by (sheet, row, col).
func (s *RecordingSink) StyledWrites() []Write {
	writes := make([]Write, 0, len(s.Writes))
	for _, w := range s.Writes {
		if w.Styled {
			writes = append(writes, w)
		}
	}
	sort.Slice(writes, func(i, j int) bool {
		if writes[i].Sheet != writes[j].Sheet {
			return writes[i].Sheet < writes[j].Sheet
		}
		if writes[i].Row != writes[j].Row {
			return writes[i].Row < writes[j].Row
		}
		return writes[i].Col < writes[j].Col
	})
	return writes
}
