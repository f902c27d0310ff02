package mesacheck

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook returns xlsx bytes with the given values on Sheet1.
func buildWorkbook(t *testing.T, cells map[string]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// openOutput opens rendered bytes for inspection.
func openOutput(t *testing.T, data []byte) *excelize.File {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// isHighlighted reports whether cell carries a solid fill of color.
func isHighlighted(t *testing.T, f *excelize.File, cell, color string) bool {
	t.Helper()

	id, err := f.GetCellStyle("Sheet1", cell)
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	if style.Fill.Type != "pattern" || style.Fill.Pattern != 1 || len(style.Fill.Color) == 0 {
		return false
	}
	got := strings.TrimPrefix(style.Fill.Color[0], "#")
	return strings.EqualFold(got, color)
}

func cellValue(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()

	v, err := f.GetCellValue("Sheet1", cell)
	require.NoError(t, err)
	return v
}
