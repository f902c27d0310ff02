package mesacheck

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/models"
	"gopkg.in/yaml.v3"
)

// ConfirmationsFile is the YAML document accepted by `mesacheck render`:
//
//	confirmed:
//	  - R2C1
//	  - R5C3
type ConfirmationsFile struct {
	Confirmed []models.Coord `yaml:"confirmed"`
}

// DecodeConfirmations reads a confirmations document. An empty document
// yields no coordinates.
func DecodeConfirmations(r io.Reader) ([]models.Coord, error) {
	var doc ConfirmationsFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding confirmations: %w", err)
	}
	return doc.Confirmed, nil
}

// LoadConfirmations reads the confirmations file at path.
func LoadConfirmations(path string) ([]models.Coord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeConfirmations(f)
}

// EncodeConfirmations writes coords as a confirmations document.
func EncodeConfirmations(w io.Writer, coords []models.Coord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ConfirmationsFile{Confirmed: coords}); err != nil {
		return err
	}
	return enc.Close()
}
