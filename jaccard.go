package gtmatrix

import "math"

// CompareFunc compares two samples given their genotypes aligned by locus.
type CompareFunc func(a, b []Genotype) float64

// JaccardIndex is the fraction of informative loci at which two samples carry
// the same code. A locus is informative when both samples have a call and at
// least one of them is not wild type. Returns NaN when no locus is
// informative.
func JaccardIndex(a, b []Genotype) float64 {
	var loci, similar int

	for i := 0; i < len(a) && i < len(b); i++ {
		x, y := a[i], b[i]
		if x.IsMissing() || y.IsMissing() {
			continue
		}

		// Shared wild type is not evidence of similarity
		if x.IsWildType() && y.IsWildType() {
			continue
		}

		loci++
		if x.Code() == y.Code() {
			similar++
		}
	}

	if loci == 0 {
		return math.NaN()
	}

	return float64(similar) / float64(loci)
}

// JaccardDistance is 1 - JaccardIndex. NaN propagates.
func JaccardDistance(a, b []Genotype) float64 {
	return 1 - JaccardIndex(a, b)
}
