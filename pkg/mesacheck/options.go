// Package mesacheck reads seating sheets, tracks confirmed attendees and
// writes the sheet back with names re-cased and confirmations highlighted.
package mesacheck

import (
	"fmt"
	"regexp"
)

const (
	// DefaultScanLimit is how many rows are searched for the header.
	DefaultScanLimit = 40
	// DefaultFillColor is the RGB fill of confirmed cells (light green).
	DefaultFillColor = "C6EFCE"
	// OutputFileName is the suggested name of the rendered workbook.
	OutputFileName = "confirmacao_atualizada.xlsx"
	// ContentType is the MIME type of xlsx files.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var hexColor = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// Options configures parsing and rendering.
type Options struct {
	// ScanLimit bounds the header search. Zero means DefaultScanLimit.
	ScanLimit int
	// FillColor is the RGB hex fill for confirmed cells. Empty means
	// DefaultFillColor.
	FillColor string
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		ScanLimit: DefaultScanLimit,
		FillColor: DefaultFillColor,
	}
}

// Validate reports malformed option values.
func (o Options) Validate() error {
	if o.ScanLimit < 0 {
		return fmt.Errorf("scan limit must not be negative, got %d", o.ScanLimit)
	}
	if o.FillColor != "" && !hexColor.MatchString(o.FillColor) {
		return fmt.Errorf("fill color must be a 6-digit RGB hex value, got %q", o.FillColor)
	}
	return nil
}

func (o Options) scanLimit() int {
	if o.ScanLimit <= 0 {
		return DefaultScanLimit
	}
	return o.ScanLimit
}

func (o Options) fillColor() string {
	if o.FillColor == "" {
		return DefaultFillColor
	}
	return o.FillColor
}
