package mesacheck

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/models"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/parser"
	"github.com/xuri/excelize/v2"
)

// Render produces a copy of the workbook in data with every table-column
// name re-cased and every confirmed cell filled with the highlight color.
//
// The workbook is reopened from data on each call, so the result depends
// only on its arguments. A sheet without a header row or table columns
// comes back byte for byte as given.
func Render(data []byte, confirmed *models.ConfirmedSet, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f, err := openWorkbook(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	layout, err := readLayout(f, opts)
	switch {
	case errors.Is(err, ErrHeaderNotFound), errors.Is(err, ErrNoTableColumns):
		return bytes.Clone(data), nil
	case err != nil:
		return nil, err
	}

	if err := formatNames(f, layout); err != nil {
		return nil, err
	}

	h := parser.NewHighlighter(f, layout.sheet.Name(), opts.fillColor())
	for _, c := range confirmed.Coords() {
		if err := h.Apply(c); err != nil {
			return nil, fmt.Errorf("highlighting %s: %w", c, err)
		}
	}

	return writeWorkbook(f)
}

// formatNames rewrites each non-blank text cell below the header in the
// table columns. Cell styles are kept.
func formatNames(f *excelize.File, l *layout) error {
	s := l.sheet
	for _, col := range l.columns {
		for r := l.headerRow + 1; r <= s.LastRow(); r++ {
			v := s.Value(r, col.Col)
			if strings.TrimSpace(v) == "" || !s.IsText(r, col.Col) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col.Col, r)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(s.Name(), cell, parser.FormatName(v)); err != nil {
				return fmt.Errorf("writing %s: %w", cell, err)
			}
		}
	}
	return nil
}

func writeWorkbook(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("saving workbook: %w", err)
	}
	return buf.Bytes(), nil
}
