package mesacheck

import (
	"bytes"
	"fmt"
)

// Format is the container format detected from a file's leading bytes.
type Format int

const (
	FormatUnknown Format = iota
	FormatOLE2           // Binary .xls (magic: d0cf11e0a1b11ae1)
	FormatOOXML          // ZIP-based .xlsx (magic: 504b0304)
)

var (
	magicOLE2  = []byte{0xd0, 0xcf, 0x11, 0xe0}
	magicOOXML = []byte{0x50, 0x4b, 0x03, 0x04}
)

func (f Format) String() string {
	switch f {
	case FormatOLE2:
		return "OLE2"
	case FormatOOXML:
		return "OOXML"
	default:
		return "unknown"
	}
}

// DetectFormat classifies data by its magic bytes.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicOLE2):
		return FormatOLE2
	case bytes.HasPrefix(data, magicOOXML):
		return FormatOOXML
	default:
		return FormatUnknown
	}
}

// checkFormat rejects anything that is not an xlsx container.
func checkFormat(data []byte) error {
	switch DetectFormat(data) {
	case FormatOOXML:
		return nil
	case FormatOLE2:
		return fmt.Errorf("%w: legacy .xls workbooks are not supported, save the file as .xlsx", ErrInvalidFormat)
	default:
		return fmt.Errorf("%w: not a spreadsheet file", ErrInvalidFormat)
	}
}
