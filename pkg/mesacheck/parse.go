package mesacheck

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/models"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/parser"
	"github.com/xuri/excelize/v2"
)

// ReadFile loads an xlsx file into memory after checking its format.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	if err := checkFormat(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Parse reads the active sheet of an xlsx workbook and groups its names
// by table.
func Parse(data []byte, opts Options) (*models.Roster, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	f, err := openWorkbook(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	layout, err := readLayout(f, opts)
	if err != nil {
		return nil, err
	}

	return &models.Roster{
		Sheet:     layout.sheet.Name(),
		HeaderRow: layout.headerRow,
		Groups:    parser.ExtractItems(layout.sheet, layout.headerRow, layout.columns),
	}, nil
}

// ParseFile reads and parses the workbook at path.
func ParseFile(path string, opts Options) (*models.Roster, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts)
}

// layout is the located header and table columns of a sheet.
type layout struct {
	sheet     *parser.Sheet
	headerRow int
	columns   []models.TableColumn
}

func openWorkbook(data []byte) (*excelize.File, error) {
	if err := checkFormat(data); err != nil {
		return nil, NewParseError("", "open", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, NewParseError("", "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	return f, nil
}

// readLayout locates the header row and table columns of the active sheet.
func readLayout(f *excelize.File, opts Options) (*layout, error) {
	sheetName := parser.ActiveSheet(f)
	sheet, err := parser.LoadSheet(f, sheetName)
	if err != nil {
		return nil, NewParseError(sheetName, "read", err)
	}

	headerRow, err := parser.FindHeaderRow(sheet, opts.scanLimit())
	if err != nil {
		return nil, NewParseError(sheetName, "header", err)
	}

	columns, err := parser.ReadTableColumns(sheet, headerRow)
	if err != nil {
		return nil, NewParseError(sheetName, "columns", err)
	}

	return &layout{sheet: sheet, headerRow: headerRow, columns: columns}, nil
}
