package gtmatrix

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pairwiseTable = header + ",A,B,C,D\n" +
	"chr1,1,A,T,,10,10,00,\n" +
	"chr1,2,A,T,,00,00,00,\n" +
	"chr1,3,A,T,,11,10,11,\n" +
	"chr1,4,A,T,,10,,11,\n"

func TestPairwiseDistanceIsSymmetric(t *testing.T) {
	m := mustRead(t, pairwiseTable)

	d, err := PairwiseDistance(m, nil, nil)
	require.NoError(t, err)
	require.Equal(t, m.Samples, d.Samples)

	for _, a := range d.Samples {
		for _, b := range d.Samples {
			ab, _ := d.At(a, b)
			ba, _ := d.At(b, a)
			if math.IsNaN(ab) {
				assert.True(t, math.IsNaN(ba), "%s,%s", a, b)
				continue
			}
			assert.Equal(t, ab, ba, "%s,%s", a, b)
		}
	}

	for _, s := range []string{"A", "B", "C"} {
		v, ok := d.At(s, s)
		require.True(t, ok)
		assert.Equal(t, 0.0, v, s)
	}

	// D has no calls at all
	v, _ := d.At("D", "D")
	assert.True(t, math.IsNaN(v))

	// A vs B: locus 1 similar, locus 2 skipped, locus 3 differs, locus 4 missing
	v, _ = d.At("A", "B")
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestPairwiseColumnSelection(t *testing.T) {
	m := mustRead(t, pairwiseTable)

	d, err := PairwiseDistance(m, []string{"nonexistent", "B"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, d.Samples)
	assert.Equal(t, 1, d.Len())

	d, err = PairwiseDistance(m, []string{"C", "A", "C"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, d.Samples)

	_, err = PairwiseDistance(m, []string{"nonexistent"}, nil)
	assert.ErrorIs(t, err, ErrNoSamplesSelected)

	_, err = PairwiseDistance(m, []string{}, nil)
	assert.ErrorIs(t, err, ErrNoSamplesSelected)
}

func TestPairwiseWithoutSamples(t *testing.T) {
	m := mustRead(t, header+"\nchr1,1,A,T,\n")

	_, err := PairwiseDistance(m, nil, nil)
	assert.ErrorIs(t, err, ErrNoSamplesSelected)
}

func TestPairwiseCustomComparatorIsNotAssumedSymmetric(t *testing.T) {
	m := mustRead(t, pairwiseTable)

	var calls int64
	compare := func(a, b []Genotype) float64 {
		atomic.AddInt64(&calls, 1)
		return float64(10*presentCount(a) + presentCount(b))
	}

	d, err := PairwiseDistance(m, nil, compare)
	require.NoError(t, err)
	assert.Equal(t, int64(16), calls)

	// A has 4 calls, B has 3
	ab, _ := d.At("A", "B")
	ba, _ := d.At("B", "A")
	assert.Equal(t, 43.0, ab)
	assert.Equal(t, 34.0, ba)

	// Declaring symmetry computes each unordered pair once
	calls = 0
	d, err = Pairwise(m, PairwiseOptions{Compare: compare, Symmetric: true})
	require.NoError(t, err)
	assert.Equal(t, int64(10), calls)
	ba, _ = d.At("B", "A")
	assert.Equal(t, 43.0, ba)
}

func TestPairwiseDoesNotDependOnWorkers(t *testing.T) {
	m := mustRead(t, pairwiseTable)

	serial, err := Pairwise(m, PairwiseOptions{Workers: 1})
	require.NoError(t, err)

	parallel, err := Pairwise(m, PairwiseOptions{Workers: 8})
	require.NoError(t, err)

	for i := range serial.Values {
		for j := range serial.Values[i] {
			s, p := serial.Values[i][j], parallel.Values[i][j]
			if math.IsNaN(s) {
				assert.True(t, math.IsNaN(p))
				continue
			}
			assert.Equal(t, s, p)
		}
	}
}
