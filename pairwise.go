package gtmatrix

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// PairwiseOptions configures Pairwise.
type PairwiseOptions struct {
	// Columns restricts and orders the samples. Nil means every sample in
	// matrix order. Unknown names are ignored.
	Columns []string

	// Compare defaults to JaccardDistance.
	Compare CompareFunc

	// Symmetric lets Pairwise compute each unordered pair once. It is implied
	// when Compare is nil.
	Symmetric bool

	// Workers bounds the number of rows computed concurrently. Zero means
	// runtime.NumCPU().
	Workers int
}

// PairwiseDistance compares every ordered pair of the selected samples. A nil
// compare uses JaccardDistance.
func PairwiseDistance(m *Matrix, columns []string, compare CompareFunc) (*DistanceMatrix, error) {
	return Pairwise(m, PairwiseOptions{
		Columns: columns,
		Compare: compare,
	})
}

// Pairwise builds a DistanceMatrix whose Values[i][j] is
// Compare(sample i, sample j). Rows are computed in parallel; each row is
// written by exactly one goroutine, so the result does not depend on
// scheduling.
func Pairwise(m *Matrix, opts PairwiseOptions) (*DistanceMatrix, error) {
	compare := opts.Compare
	symmetric := opts.Symmetric
	if compare == nil {
		compare = JaccardDistance
		symmetric = true
	}

	selected := m
	if opts.Columns != nil {
		selected = m.SelectSamples(opts.Columns)
	}

	k := len(selected.Samples)
	if k == 0 {
		return nil, ErrNoSamplesSelected
	}

	columns := make([][]Genotype, k)
	for i := range columns {
		columns[i] = selected.Column(i)
	}

	out := newDistanceMatrix(selected.Samples)

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	g := errgroup.Group{}
	g.SetLimit(workers)
	for i := 0; i < k; i++ {
		i := i
		g.Go(func() error {
			start := 0
			if symmetric {
				start = i
			}
			for j := start; j < k; j++ {
				out.Values[i][j] = compare(columns[i], columns[j])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if symmetric {
		for i := 0; i < k; i++ {
			for j := 0; j < i; j++ {
				out.Values[i][j] = out.Values[j][i]
			}
		}
	}

	return out, nil
}
