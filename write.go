package gtmatrix

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/carbocation/pfx"
)

// Write emits the matrix as a delimited table with a header and no index
// column. Missing values are written as empty cells.
func (m *Matrix) Write(w io.Writer, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim

	if err := cw.Write(m.Header()); err != nil {
		return pfx.Err(err)
	}

	row := make([]string, 0, m.NumColumns())
	for _, locus := range m.Loci {
		row = row[:0]
		row = append(row,
			locus.ReferenceName,
			strconv.Itoa(locus.ReferencePos),
			locus.ReferenceAllele,
			locus.SampleAllele,
		)
		if m.HasAminoAcidChange {
			row = append(row, locus.AminoAcidChange.ValueOrZero())
		}
		for _, g := range locus.Genotypes {
			row = append(row, g.Code())
		}

		if err := cw.Write(row); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
