package mesacheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   Format
	}{
		{"OLE2 magic bytes", []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}, FormatOLE2},
		{"ZIP/OOXML magic bytes", []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0x00}, FormatOOXML},
		{"unknown format", []byte{0x00, 0x01, 0x02, 0x03}, FormatUnknown},
		{"too short", []byte{0xd0, 0xcf}, FormatUnknown},
		{"empty", nil, FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.header))
		})
	}
}

func TestReadFileRejectsLegacyXLS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.xls")
	require.NoError(t, os.WriteFile(path, []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}, 0o644))

	_, err := ReadFile(path)
	require.ErrorIs(t, err, ErrInvalidFormat)
	assert.Contains(t, err.Error(), ".xls")
}
