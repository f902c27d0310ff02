package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is a read view over one worksheet. Values are the raw stored
// values, not the number-formatted display text.
type Sheet struct {
	f    *excelize.File
	name string
	rows [][]string

	lastRow int
	maxCol  int
}

// ActiveSheet returns the name of the workbook's active sheet, falling
// back to the first sheet when the active index is unusable.
func ActiveSheet(f *excelize.File) string {
	if name := f.GetSheetName(f.GetActiveSheetIndex()); name != "" {
		return name
	}
	if list := f.GetSheetList(); len(list) > 0 {
		return list[0]
	}
	return ""
}

// LoadSheet reads every row of sheetName.
func LoadSheet(f *excelize.File, sheetName string) (*Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	s := &Sheet{f: f, name: sheetName, rows: rows}
	s.lastRow, s.maxCol = findDataBounds(rows)
	return s, nil
}

// Name returns the worksheet name.
func (s *Sheet) Name() string { return s.name }

// LastRow returns the last row (1-based) holding a non-empty value, or 0.
func (s *Sheet) LastRow() int { return s.lastRow }

// MaxColumn returns the last column (1-based) holding a non-empty value, or 0.
func (s *Sheet) MaxColumn() int { return s.maxCol }

// Value returns the raw value at (row, col), both 1-based, or "" when the
// cell is empty or outside the data.
func (s *Sheet) Value(row, col int) string {
	if row < 1 || row > len(s.rows) {
		return ""
	}
	r := s.rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}

// Display returns the cell at (row, col) as Excel shows it, with its
// number format applied: dates as dates, booleans as TRUE or FALSE.
func (s *Sheet) Display(row, col int) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	v, err := s.f.GetCellValue(s.name, cell)
	if err != nil {
		return s.Value(row, col)
	}
	return v
}

// IsText reports whether the cell at (row, col) stores a string. Numbers,
// booleans, dates and formulas are not text even when their value looks
// like one.
func (s *Sheet) IsText(row, col int) bool {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	typ, err := s.f.GetCellType(s.name, cell)
	if err != nil {
		return false
	}
	return typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString
}

// isBlank reports whether a value is empty after trimming whitespace.
func isBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}
