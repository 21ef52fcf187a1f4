package gtmatrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

type depthKey struct {
	chrom string
	pos   int
}

// DepthTable holds per-position read depth, as written by `samtools depth -a
// -H`: a tab-delimited table with #CHROM and POS followed by one column per
// BAM file.
type DepthTable struct {
	Columns []string

	depths map[depthKey][]int
}

// ReadDepthTable parses a samtools depth table with its header line.
func ReadDepthTable(r io.Reader) (*DepthTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: depth table is empty", ErrMalformedHeader)
	} else if err != nil {
		return nil, pfx.Err(err)
	}

	if len(header) < 2 || header[0] != "#CHROM" || header[1] != "POS" {
		return nil, fmt.Errorf("%w: depth table must start with #CHROM and POS, found %v", ErrMalformedHeader, header)
	}

	d := &DepthTable{
		Columns: append([]string{}, header[2:]...),
		depths:  make(map[depthKey][]int),
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		if len(rec) != len(header) {
			return nil, fmt.Errorf("%w: depth line %d has %d fields, header has %d", ErrMalformedRow, line, len(rec), len(header))
		}

		pos, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%w: depth line %d: POS %q", ErrMalformedRow, line, rec[1])
		}

		depths := make([]int, len(d.Columns))
		for i, cell := range rec[2:] {
			if depths[i], err = strconv.Atoi(cell); err != nil {
				return nil, fmt.Errorf("%w: depth line %d: %s %q", ErrMalformedRow, line, d.Columns[i], cell)
			}
		}

		d.depths[depthKey{rec[0], pos}] = depths
	}

	return d, nil
}

// ColumnFor finds the first depth column whose name contains "<sample>.bam".
func (d *DepthTable) ColumnFor(sample string) (int, bool) {
	for i, name := range d.Columns {
		if strings.Contains(name, sample+".bam") {
			return i, true
		}
	}

	return 0, false
}

// Depth returns the depth recorded for a position in one column.
func (d *DepthTable) Depth(chrom string, pos, column int) (int, bool) {
	depths, exists := d.depths[depthKey{chrom, pos}]
	if !exists || column < 0 || column >= len(depths) {
		return 0, false
	}

	return depths[column], true
}

// FillReferenceHomozygotes sets a missing genotype to WildType when the
// sample's read depth at that locus is at least minDepth. Samples without a
// matching depth column, and positions absent from the table, are left
// alone. Returns the new matrix and the number of calls filled in.
func FillReferenceHomozygotes(m *Matrix, d *DepthTable, minDepth int) (*Matrix, int) {
	out := m.Clone()

	columns := make([]int, len(out.Samples))
	for i, sample := range out.Samples {
		col, ok := d.ColumnFor(sample)
		if !ok {
			col = -1
		}
		columns[i] = col
	}

	filled := 0
	for _, locus := range out.Loci {
		for i, g := range locus.Genotypes {
			if !g.IsMissing() || columns[i] < 0 {
				continue
			}

			if depth, ok := d.Depth(locus.ReferenceName, locus.ReferencePos, columns[i]); ok && depth >= minDepth {
				locus.Genotypes[i] = GenotypeFrom(WildType)
				filled++
			}
		}
	}

	return out, filled
}
