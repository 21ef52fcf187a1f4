package gtmatrix

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"
	"gopkg.in/guregu/null.v3"
)

// FilterReport describes what Filter removed.
type FilterReport struct {
	PreRows, PreColumns   int
	PostRows, PostColumns int

	// NLociRemoved is the total number of rows dropped. It is the sum of the
	// three per-step counts below.
	NLociRemoved          int
	NRefNRemoved          int
	NLociThresholdRemoved int
	NEmptyRemoved         int

	NSamplesRemoved int
	RemovedSamples  []string

	// ReinstatedColumns names metadata columns that fell below the sample
	// threshold and were kept regardless.
	ReinstatedColumns []string

	// Minimum number of calls required by each threshold stage. Invalid when
	// the stage was skipped.
	MinSamplesPerLocus null.Int
	MinLociPerSample   null.Int

	SampleMissingness MissingnessSummary
}

// MissingnessSummary summarizes the per-sample fraction of missing calls in
// the filtered matrix.
type MissingnessSummary struct {
	Mean, Median, Max float64
}

func (r FilterReport) PreVolume() int {
	return r.PreRows * r.PreColumns
}

func (r FilterReport) PostVolume() int {
	return r.PostRows * r.PostColumns
}

// VolumeRatio is post volume divided by pre volume.
func (r FilterReport) VolumeRatio() float64 {
	if r.PreVolume() == 0 {
		return 0
	}

	return float64(r.PostVolume()) / float64(r.PreVolume())
}

func (r FilterReport) String() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "Dropped %d loci.\n", r.NLociRemoved)
	fmt.Fprintf(&b, "%d were N loci.\n", r.NRefNRemoved)
	fmt.Fprintf(&b, "%d had too many missing samples.\n", r.NLociThresholdRemoved)
	fmt.Fprintf(&b, "%d were empty or had no mutant alleles after other filters.\n", r.NEmptyRemoved)
	fmt.Fprintf(&b, "Dropped %d samples.\n", r.NSamplesRemoved)
	if len(r.RemovedSamples) > 0 {
		fmt.Fprintf(&b, "\t%s\n", strings.Join(r.RemovedSamples, ", "))
	}
	if len(r.ReinstatedColumns) > 0 {
		fmt.Fprintf(&b, "Kept sparse metadata columns: %s\n", strings.Join(r.ReinstatedColumns, ", "))
	}
	fmt.Fprintf(&b, "Volume changed by %.2f%%.\n", 100*r.VolumeRatio())
	fmt.Fprintf(&b, "\t%dx%d -> %dx%d\n", r.PreRows, r.PreColumns, r.PostRows, r.PostColumns)
	fmt.Fprintf(&b, "\t%d -> %d\n", r.PreVolume(), r.PostVolume())
	fmt.Fprintf(&b, "Per-sample missingness: mean %.4f, median %.4f, max %.4f\n", r.SampleMissingness.Mean, r.SampleMissingness.Median, r.SampleMissingness.Max)

	return b.String()
}

func summarizeMissingness(m *Matrix) MissingnessSummary {
	out := MissingnessSummary{}
	if m.NumRows() == 0 || len(m.Samples) == 0 {
		return out
	}

	fractions := make(stats.Float64Data, len(m.Samples))
	for i := range m.Samples {
		missing := m.NumRows() - presentCount(m.Column(i))
		fractions[i] = float64(missing) / float64(m.NumRows())
	}

	// Inputs are non-empty, so these cannot fail.
	out.Mean, _ = stats.Mean(fractions)
	out.Median, _ = stats.Median(fractions)
	out.Max, _ = stats.Max(fractions)

	return out
}
