package gtmatrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/kshedden/gonpy"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
)

// DistanceAxisLabel names the sample axis in written distance tables.
const DistanceAxisLabel = "sample"

// DistanceMatrix is a square table indexed by sample on both axes. NaN marks
// an undefined comparison.
type DistanceMatrix struct {
	Samples []string
	Values  [][]float64

	index map[string]int
}

func newDistanceMatrix(samples []string) *DistanceMatrix {
	d := &DistanceMatrix{
		Samples: append([]string{}, samples...),
		Values:  make([][]float64, len(samples)),
		index:   make(map[string]int, len(samples)),
	}

	for i, s := range samples {
		d.Values[i] = make([]float64, len(samples))
		d.index[s] = i
	}

	return d
}

func (d *DistanceMatrix) Len() int {
	return len(d.Samples)
}

// At looks up the value for a pair of samples.
func (d *DistanceMatrix) At(a, b string) (float64, bool) {
	i, ok := d.index[a]
	if !ok {
		return 0, false
	}
	j, ok := d.index[b]
	if !ok {
		return 0, false
	}

	return d.Values[i][j], true
}

// Write emits a delimited square table. The header and the first column carry
// the sample identifiers, the corner cell carries DistanceAxisLabel. NaN is
// written as an empty cell.
func (d *DistanceMatrix) Write(w io.Writer, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim

	if err := cw.Write(append([]string{DistanceAxisLabel}, d.Samples...)); err != nil {
		return pfx.Err(err)
	}

	row := make([]string, d.Len()+1)
	for i, sample := range d.Samples {
		row[0] = sample
		for j, v := range d.Values[i] {
			row[j+1] = formatDistance(v)
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

func formatDistance(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Dense copies the values into a gonum matrix.
func (d *DistanceMatrix) Dense() *mat.Dense {
	k := d.Len()
	data := make([]float64, 0, k*k)
	for _, row := range d.Values {
		data = append(data, row...)
	}

	return mat.NewDense(k, k, data)
}

// WriteNPY writes the values as a row-major k x k float64 numpy array. Sample
// order matches d.Samples; NaN is preserved.
func (d *DistanceMatrix) WriteNPY(path string) error {
	npy, err := gonpy.NewFileWriter(path)
	if err != nil {
		return pfx.Err(err)
	}

	dense := d.Dense()
	r, c := dense.Dims()
	npy.Shape = []int{r, c}

	if err := npy.WriteFloat64(dense.RawMatrix().Data); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// DistanceSummary describes the defined off-diagonal values of the upper
// triangle.
type DistanceSummary struct {
	Pairs     int
	Undefined int

	Min, Median, Mean, Max float64
}

func (s DistanceSummary) String() string {
	return fmt.Sprintf("%d pairs (%d undefined): min %.4f, median %.4f, mean %.4f, max %.4f", s.Pairs, s.Undefined, s.Min, s.Median, s.Mean, s.Max)
}

// SummarizeDistances computes summary statistics over every pair i<j. When no
// pair is defined, the statistics are NaN.
func SummarizeDistances(d *DistanceMatrix) (DistanceSummary, error) {
	out := DistanceSummary{}
	values := make(stats.Float64Data, 0, d.Len()*d.Len()/2)

	for i := 0; i < d.Len(); i++ {
		for j := i + 1; j < d.Len(); j++ {
			out.Pairs++
			if v := d.Values[i][j]; math.IsNaN(v) {
				out.Undefined++
			} else {
				values = append(values, v)
			}
		}
	}

	if len(values) == 0 {
		out.Min, out.Median, out.Mean, out.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return out, nil
	}

	var err error
	if out.Min, err = stats.Min(values); err != nil {
		return out, pfx.Err(err)
	}
	if out.Median, err = stats.Median(values); err != nil {
		return out, pfx.Err(err)
	}
	if out.Mean, err = stats.Mean(values); err != nil {
		return out, pfx.Err(err)
	}
	if out.Max, err = stats.Max(values); err != nil {
		return out, pfx.Err(err)
	}

	return out, nil
}
