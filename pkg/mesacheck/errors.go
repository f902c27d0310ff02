package mesacheck

import (
	"errors"
	"fmt"

	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/parser"
)

var (
	// ErrHeaderNotFound indicates no "mesa" label in the scanned rows.
	ErrHeaderNotFound = parser.ErrHeaderNotFound
	// ErrNoTableColumns indicates a header row without table labels.
	ErrNoTableColumns = parser.ErrNoTableColumns
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoWorkbook indicates a session operation before any file was loaded.
var ErrNoWorkbook = errors.New("no workbook loaded")

// ErrUnknownItem indicates a coordinate that is not a name of the loaded sheet.
var ErrUnknownItem = errors.New("unknown item")

// ErrStaleUpload indicates a request made against a previous upload.
var ErrStaleUpload = errors.New("upload is no longer current")

// ParseError represents a failure while reading a sheet.
type ParseError struct {
	SheetName string
	Stage     string // "open", "read", "header", "columns"
	Err       error
}

func (e *ParseError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("parse error (%s): %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("parse error in sheet %q (%s): %v", e.SheetName, e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(sheetName, stage string, err error) *ParseError {
	return &ParseError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
