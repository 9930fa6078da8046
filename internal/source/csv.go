package source

import (
	"io"

	"github.com/dgallion1/docforge/internal/tabular"
)

// CSVExtractor handles CSV files, rendering them as a fixed-width text
// table suitable for a section body.
type CSVExtractor struct{}

func (e *CSVExtractor) Extract(r io.Reader, filename string) (string, error) {
	tbl, err := tabular.FromCSV(r)
	if err != nil {
		return "", err
	}
	return tbl.Render(), nil
}
