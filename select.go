package gtmatrix

import "strings"

// SelectSamples returns a matrix with only the named samples, in the order
// given. Names absent from the matrix, and repeats, are skipped. Metadata
// columns are always kept.
func (m *Matrix) SelectSamples(order []string) *Matrix {
	index := make(map[string]int, len(m.Samples))
	for i, s := range m.Samples {
		index[s] = i
	}

	offsets := make([]int, 0, len(order))
	seen := make(map[string]struct{}, len(order))
	for _, s := range order {
		idx, exists := index[s]
		if !exists {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		offsets = append(offsets, idx)
	}

	return m.project(offsets)
}

// SplitByConsequence partitions loci by their amino acid change. Loci whose
// change is shorter than two characters are dropped. Frameshifts (ending in
// "fs") and stop gains (ending in "*") go to truncating. Every kept locus,
// truncating or not, goes to nonsynonymous.
func (m *Matrix) SplitByConsequence() (truncating, nonsynonymous *Matrix) {
	truncating = m.withLoci(nil)
	nonsynonymous = m.withLoci(nil)

	for _, locus := range m.Loci {
		change := locus.AminoAcidChange.ValueOrZero()
		if len(change) < 2 {
			continue
		}

		if strings.HasSuffix(change, "fs") || strings.HasSuffix(change, "*") {
			truncating.Loci = append(truncating.Loci, locus.clone())
		}
		nonsynonymous.Loci = append(nonsynonymous.Loci, locus.clone())
	}

	return truncating, nonsynonymous
}

// ReferenceGroup is the subset of a matrix sharing one reference name.
type ReferenceGroup struct {
	ReferenceName string
	Matrix        *Matrix
}

// GroupByReference splits loci by reference name, in order of first
// appearance. Every group keeps all sample columns.
func (m *Matrix) GroupByReference() []ReferenceGroup {
	var out []ReferenceGroup
	index := make(map[string]int)

	for _, locus := range m.Loci {
		i, exists := index[locus.ReferenceName]
		if !exists {
			i = len(out)
			index[locus.ReferenceName] = i
			out = append(out, ReferenceGroup{
				ReferenceName: locus.ReferenceName,
				Matrix:        m.withLoci(nil),
			})
		}
		out[i].Matrix.Loci = append(out[i].Matrix.Loci, locus.clone())
	}

	return out
}

// withLoci returns a matrix with the same columns as m and the given loci.
func (m *Matrix) withLoci(loci []Locus) *Matrix {
	return &Matrix{
		Samples:            append([]string{}, m.Samples...),
		HasAminoAcidChange: m.HasAminoAcidChange,
		Loci:               loci,
	}
}
