package gtmatrix

import (
	"gopkg.in/guregu/null.v3"
)

// Names of the leading metadata columns, in the order they appear in a table.
const (
	ColReferenceName   = "reference_name"
	ColReferencePos    = "reference_pos"
	ColReferenceAllele = "reference_allele"
	ColSampleAllele    = "sample_allele"
	ColAminoAcidChange = "amino_acid_change"
)

var mandatoryMetadata = []string{
	ColReferenceName,
	ColReferencePos,
	ColReferenceAllele,
	ColSampleAllele,
}

// Locus is one row of a genotype matrix. Genotypes is aligned with the
// Samples of the Matrix that holds it.
type Locus struct {
	ReferenceName   string
	ReferencePos    int
	ReferenceAllele string
	SampleAllele    string
	AminoAcidChange null.String
	Genotypes       []Genotype
}

// Matrix is a genotype matrix: loci as rows, samples as columns, preceded by
// metadata columns that are never subject to missing-data filtering.
type Matrix struct {
	Samples []string

	// HasAminoAcidChange is false when the source table had no
	// amino_acid_change column at all.
	HasAminoAcidChange bool

	Loci []Locus
}

// MetadataColumns lists the metadata column names present in the matrix.
func (m *Matrix) MetadataColumns() []string {
	out := append([]string{}, mandatoryMetadata...)
	if m.HasAminoAcidChange {
		out = append(out, ColAminoAcidChange)
	}

	return out
}

// Header is the full column list: metadata followed by samples.
func (m *Matrix) Header() []string {
	return append(m.MetadataColumns(), m.Samples...)
}

func (m *Matrix) NumRows() int {
	return len(m.Loci)
}

func (m *Matrix) NumColumns() int {
	return len(m.MetadataColumns()) + len(m.Samples)
}

// SampleIndex returns the column offset of a sample within Locus.Genotypes.
func (m *Matrix) SampleIndex(sample string) (int, bool) {
	for i, v := range m.Samples {
		if v == sample {
			return i, true
		}
	}

	return 0, false
}

// Column returns the genotypes of the sample at offset idx, aligned by row.
func (m *Matrix) Column(idx int) []Genotype {
	out := make([]Genotype, len(m.Loci))
	for i, locus := range m.Loci {
		out[i] = locus.Genotypes[idx]
	}

	return out
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{
		Samples:            append([]string{}, m.Samples...),
		HasAminoAcidChange: m.HasAminoAcidChange,
		Loci:               make([]Locus, len(m.Loci)),
	}

	for i, locus := range m.Loci {
		out.Loci[i] = locus.clone()
	}

	return out
}

func (l Locus) clone() Locus {
	l.Genotypes = append([]Genotype{}, l.Genotypes...)
	return l
}

// metadataPresent reports, per metadata column, how many rows carry a
// non-empty value.
func (m *Matrix) metadataPresent() map[string]int {
	out := make(map[string]int)
	for _, locus := range m.Loci {
		if locus.ReferenceName != "" {
			out[ColReferenceName]++
		}
		out[ColReferencePos]++
		if locus.ReferenceAllele != "" {
			out[ColReferenceAllele]++
		}
		if locus.SampleAllele != "" {
			out[ColSampleAllele]++
		}
		if locus.AminoAcidChange.Valid {
			out[ColAminoAcidChange]++
		}
	}

	return out
}
