package gtmatrix

import (
	"fmt"
	"math"

	"gopkg.in/guregu/null.v3"
)

// Floating point slack so that a threshold of exactly k/n requires k present
// values even when n*(k/n) rounds to slightly above k.
const thresholdEpsilon = 1e-9

// FilterOptions configures Filter. An invalid (unset) threshold skips its stage
// entirely; a threshold of 0 runs the stage but can never drop anything.
type FilterOptions struct {
	// LociThreshold is the minimum fraction of samples that must have a call
	// for a locus to be kept.
	LociThreshold null.Float

	// SampleThreshold is the minimum fraction of the remaining loci that must
	// have a call for a sample to be kept.
	SampleThreshold null.Float

	// DropReferenceN removes loci whose reference allele is N.
	DropReferenceN bool
}

// Filter applies, in order: reference-N exclusion, locus missingness
// filtering, sample missingness filtering, and removal of loci without any
// variant call. The input matrix is not modified.
func Filter(m *Matrix, opts FilterOptions) (*Matrix, FilterReport, error) {
	report := FilterReport{}

	for _, t := range []null.Float{opts.LociThreshold, opts.SampleThreshold} {
		if t.Valid && (math.IsNaN(t.Float64) || t.Float64 < 0 || t.Float64 > 1) {
			return nil, report, fmt.Errorf("%w: got %v", ErrInvalidThreshold, t.Float64)
		}
	}

	if m.NumRows() == 0 {
		return nil, report, ErrEmptyMatrix
	}

	report.PreRows = m.NumRows()
	report.PreColumns = m.NumColumns()

	out := m.Clone()

	// 1: Reference N
	if opts.DropReferenceN {
		before := out.NumRows()
		out.Loci = keepLoci(out.Loci, func(l Locus) bool {
			return l.ReferenceAllele != "N"
		})
		report.NRefNRemoved = before - out.NumRows()
	}

	// 2: Loci with too few calls
	if opts.LociThreshold.Valid {
		minPresent := minimumPresent(len(out.Samples), opts.LociThreshold.Float64)
		report.MinSamplesPerLocus = null.IntFrom(int64(minPresent))

		before := out.NumRows()
		out.Loci = keepLoci(out.Loci, func(l Locus) bool {
			return presentCount(l.Genotypes) >= minPresent
		})
		report.NLociThresholdRemoved = before - out.NumRows()
	}

	// 3: Samples with too few calls among the remaining loci. Metadata columns
	// are counted the same way but are always retained.
	if opts.SampleThreshold.Valid {
		minPresent := minimumPresent(out.NumRows(), opts.SampleThreshold.Float64)
		report.MinLociPerSample = null.IntFrom(int64(minPresent))

		present := out.metadataPresent()
		for _, col := range out.MetadataColumns() {
			if present[col] < minPresent {
				report.ReinstatedColumns = append(report.ReinstatedColumns, col)
			}
		}

		keep := make([]int, 0, len(out.Samples))
		for i, sample := range out.Samples {
			if presentCount(out.Column(i)) >= minPresent {
				keep = append(keep, i)
			} else {
				report.RemovedSamples = append(report.RemovedSamples, sample)
			}
		}
		out = out.project(keep)
		report.NSamplesRemoved = len(report.RemovedSamples)
	}

	// 4: Loci where nobody carries a variant
	before := out.NumRows()
	out.Loci = keepLoci(out.Loci, func(l Locus) bool {
		for _, g := range l.Genotypes {
			if g.HasVariantSignal() {
				return true
			}
		}
		return false
	})
	report.NEmptyRemoved = before - out.NumRows()

	report.PostRows = out.NumRows()
	report.PostColumns = out.NumColumns()
	report.NLociRemoved = report.PreRows - report.PostRows
	report.SampleMissingness = summarizeMissingness(out)

	return out, report, nil
}

// minimumPresent is ceil(n*threshold), never below zero.
func minimumPresent(n int, threshold float64) int {
	v := int(math.Ceil(float64(n)*threshold - thresholdEpsilon))
	if v < 0 {
		return 0
	}

	return v
}

func presentCount(genotypes []Genotype) int {
	n := 0
	for _, g := range genotypes {
		if !g.IsMissing() {
			n++
		}
	}

	return n
}

func keepLoci(loci []Locus, keep func(Locus) bool) []Locus {
	out := make([]Locus, 0, len(loci))
	for _, l := range loci {
		if keep(l) {
			out = append(out, l)
		}
	}

	return out
}

// project returns a matrix holding only the sample columns at the given
// offsets, in that order.
func (m *Matrix) project(offsets []int) *Matrix {
	out := &Matrix{
		Samples:            make([]string, len(offsets)),
		HasAminoAcidChange: m.HasAminoAcidChange,
		Loci:               make([]Locus, len(m.Loci)),
	}

	for j, idx := range offsets {
		out.Samples[j] = m.Samples[idx]
	}

	for i, locus := range m.Loci {
		genotypes := make([]Genotype, len(offsets))
		for j, idx := range offsets {
			genotypes[j] = locus.Genotypes[idx]
		}
		locus.Genotypes = genotypes
		out.Loci[i] = locus
	}

	return out
}
