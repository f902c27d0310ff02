package parser

import (
	"fmt"

	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/models"
	"github.com/xuri/excelize/v2"
)

// Highlighter paints cells with a solid fill while keeping the rest of
// each cell's style (font, border, number format, alignment).
type Highlighter struct {
	f     *excelize.File
	sheet string
	color string

	// derived maps a cell's original style ID to its filled variant.
	derived map[int]int
}

// NewHighlighter returns a Highlighter filling cells of sheetName with
// color, an RGB hex string such as "C6EFCE".
func NewHighlighter(f *excelize.File, sheetName, color string) *Highlighter {
	return &Highlighter{
		f:       f,
		sheet:   sheetName,
		color:   color,
		derived: make(map[int]int),
	}
}

// Apply fills the cell at c.
func (h *Highlighter) Apply(c models.Coord) error {
	cell, err := excelize.CoordinatesToCellName(c.Col, c.Row)
	if err != nil {
		return fmt.Errorf("cell %s: %w", c, err)
	}

	base, err := h.f.GetCellStyle(h.sheet, cell)
	if err != nil {
		return fmt.Errorf("reading style of %s: %w", cell, err)
	}

	id, ok := h.derived[base]
	if !ok {
		id, err = h.deriveStyle(base)
		if err != nil {
			return fmt.Errorf("deriving style for %s: %w", cell, err)
		}
		h.derived[base] = id
	}

	return h.f.SetCellStyle(h.sheet, cell, cell, id)
}

func (h *Highlighter) deriveStyle(base int) (int, error) {
	style, err := h.f.GetStyle(base)
	if err != nil {
		return 0, err
	}
	if style == nil {
		style = &excelize.Style{}
	}
	style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{h.color}}
	return h.f.NewStyle(style)
}
