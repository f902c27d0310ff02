// Package models defines data structures for seating-sheet confirmation.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sheet limits of the xlsx format.
const (
	MaxRows    = 1048576
	MaxColumns = 16384
)

// ErrInvalidCoord indicates a coordinate key that is not of the form R{row}C{col}.
var ErrInvalidCoord = errors.New("invalid coordinate")

// Coord identifies a cell of the active sheet. It encodes as its key form
// in JSON and YAML.
type Coord struct {
	// Row is the row index (1-based).
	Row int
	// Col is the column index (1-based).
	Col int
}

// NewCoord returns a Coord after checking it lies inside the sheet limits.
func NewCoord(row, col int) (Coord, error) {
	if row < 1 || row > MaxRows || col < 1 || col > MaxColumns {
		return Coord{}, fmt.Errorf("%w: row %d, column %d out of range", ErrInvalidCoord, row, col)
	}
	return Coord{Row: row, Col: col}, nil
}

// String returns the key form R{row}C{col}.
func (c Coord) String() string {
	return "R" + strconv.Itoa(c.Row) + "C" + strconv.Itoa(c.Col)
}

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// ParseCoord parses a key like "R12C3". Lowercase markers and surrounding
// whitespace are accepted.
func ParseCoord(key string) (Coord, error) {
	s := strings.ToUpper(strings.TrimSpace(key))
	if !strings.HasPrefix(s, "R") {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, key)
	}
	rowPart, colPart, ok := strings.Cut(s[1:], "C")
	if !ok || rowPart == "" || colPart == "" {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, key)
	}
	row, err := strconv.Atoi(rowPart)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, key)
	}
	col, err := strconv.Atoi(colPart)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, key)
	}
	return NewCoord(row, col)
}

// MarshalText implements encoding.TextMarshaler so coordinates travel as keys.
func (c Coord) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Coord) UnmarshalText(text []byte) error {
	parsed, err := ParseCoord(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
