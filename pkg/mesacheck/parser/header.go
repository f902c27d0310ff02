// Package parser locates the table header of a seating sheet and reads the
// names listed under each table.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/models"
	"github.com/xuri/excelize/v2"
)

// TablePrefix marks a header cell as a table label.
const TablePrefix = "mesa"

var (
	// ErrHeaderNotFound indicates no table label within the scan limit.
	ErrHeaderNotFound = errors.New("header row not found")
	// ErrNoTableColumns indicates a header row without any table label.
	ErrNoTableColumns = errors.New("no table columns found")
)

// IsTableLabel reports whether v names a table: its trimmed text starts
// with "mesa", ignoring case.
func IsTableLabel(v string) bool {
	v = strings.TrimSpace(v)
	if len(v) < len(TablePrefix) {
		return false
	}
	return strings.EqualFold(v[:len(TablePrefix)], TablePrefix)
}

// FindHeaderRow returns the first row among the first scanLimit rows that
// holds a text cell labelling a table. Rows are scanned top to bottom and
// columns left to right.
func FindHeaderRow(s *Sheet, scanLimit int) (int, error) {
	last := min(s.LastRow(), scanLimit)
	for r := 1; r <= last; r++ {
		for c := 1; c <= s.MaxColumn(); c++ {
			if isTableCell(s, r, c) {
				return r, nil
			}
		}
	}
	return 0, ErrHeaderNotFound
}

// ReadTableColumns collects the table labels of headerRow from left to
// right. A label used by more than one column gets the column letter
// appended to its key so every group stays distinct.
func ReadTableColumns(s *Sheet, headerRow int) ([]models.TableColumn, error) {
	var cols []models.TableColumn
	seen := make(map[string]int)

	for c := 1; c <= s.MaxColumn(); c++ {
		if !isTableCell(s, headerRow, c) {
			continue
		}
		label := strings.TrimSpace(s.Value(headerRow, c))
		cols = append(cols, models.TableColumn{Col: c, Label: label, Key: label})
		seen[label]++
	}

	if len(cols) == 0 {
		return nil, ErrNoTableColumns
	}

	for i, col := range cols {
		if seen[col.Label] < 2 {
			continue
		}
		name, err := excelize.ColumnNumberToName(col.Col)
		if err != nil {
			return nil, err
		}
		cols[i].Key = fmt.Sprintf("%s (%s)", col.Label, name)
	}
	return cols, nil
}

func isTableCell(s *Sheet, row, col int) bool {
	return IsTableLabel(s.Value(row, col)) && s.IsText(row, col)
}
