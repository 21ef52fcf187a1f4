package clc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/carbocation/gtmatrix"
	"gopkg.in/guregu/null.v3"
)

// DefaultMinCoverage is the read depth below which a CLC call is ignored.
const DefaultMinCoverage = 10

type Options struct {
	// MinCoverage drops calls with lower coverage. Calls without a coverage
	// value count as zero.
	MinCoverage int

	// KeepSilent retains calls with no amino acid change.
	KeepSilent bool

	// DefaultName replaces an empty or absent Mapping.
	DefaultName string
}

type locusKey struct {
	referenceName   string
	referencePos    string
	referenceAllele string
	sampleAllele    string
	aminoAcidChange string
}

type pendingLocus struct {
	key       locusKey
	pos       int
	genotypes map[string]string
}

// Summarize unions the loci of all exports into one matrix. Each sample column
// holds "11" for homozygous calls, "10" for any other call, and is missing
// where the sample had no call. Loci are sorted by reference name and then by
// position; sample columns are sorted by export name.
func Summarize(exports []Export, opts Options) (*gtmatrix.Matrix, error) {
	samples := make([]string, 0, len(exports))
	seen := make(map[string]struct{}, len(exports))
	for _, export := range exports {
		if _, dup := seen[export.Name]; dup {
			return nil, fmt.Errorf("export name %q appears more than once", export.Name)
		}
		seen[export.Name] = struct{}{}
		samples = append(samples, export.Name)
	}
	sort.Strings(samples)

	byKey := make(map[locusKey]*pendingLocus)
	var pending []*pendingLocus

	for _, export := range exports {
		for i, row := range export.Rows {
			coverage, err := atoiOrZero(row.Coverage)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: Coverage: %w", export.Name, i+1, err)
			}
			if coverage < opts.MinCoverage {
				continue
			}

			if row.AminoAcidChange == "" && !opts.KeepSilent {
				continue
			}

			mapping := row.Mapping
			if mapping == "" {
				mapping = opts.DefaultName
			}

			key := locusKey{
				referenceName:   mapping,
				referencePos:    row.ReferencePosition,
				referenceAllele: row.Reference,
				sampleAllele:    row.Allele,
				aminoAcidChange: ProteinChange(row.AminoAcidChange),
			}

			p, exists := byKey[key]
			if !exists {
				pos, err := strconv.Atoi(row.ReferencePosition)
				if err != nil {
					return nil, fmt.Errorf("%s row %d: Reference Position %q is not an integer", export.Name, i+1, row.ReferencePosition)
				}
				p = &pendingLocus{key: key, pos: pos, genotypes: make(map[string]string)}
				byKey[key] = p
				pending = append(pending, p)
			}

			p.genotypes[export.Name] = ZygosityCode(row.Zygosity)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].key.referenceName != pending[j].key.referenceName {
			return pending[i].key.referenceName < pending[j].key.referenceName
		}
		return pending[i].pos < pending[j].pos
	})

	m := &gtmatrix.Matrix{
		Samples:            samples,
		HasAminoAcidChange: true,
		Loci:               make([]gtmatrix.Locus, 0, len(pending)),
	}

	for _, p := range pending {
		locus := gtmatrix.Locus{
			ReferenceName:   p.key.referenceName,
			ReferencePos:    p.pos,
			ReferenceAllele: p.key.referenceAllele,
			SampleAllele:    p.key.sampleAllele,
			AminoAcidChange: null.NewString(p.key.aminoAcidChange, p.key.aminoAcidChange != ""),
			Genotypes:       make([]gtmatrix.Genotype, len(samples)),
		}
		for i, sample := range samples {
			if code, ok := p.genotypes[sample]; ok {
				locus.Genotypes[i] = gtmatrix.GenotypeFrom(code)
			}
		}
		m.Loci = append(m.Loci, locus)
	}

	return m, nil
}

// ProteinChange strips the HGVS prefix and brackets, e.g. "NP_1.1:p.[Gly12Asp]"
// becomes "Gly12Asp".
func ProteinChange(s string) string {
	parts := strings.Split(s, "p.")
	return strings.Trim(parts[len(parts)-1], "[]")
}

// ZygosityCode maps a CLC zygosity label to a genotype code.
func ZygosityCode(zygosity string) string {
	if strings.HasPrefix(zygosity, "Hom") {
		return gtmatrix.Homozygous
	}

	return gtmatrix.Heterozygous
}

func atoiOrZero(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	return strconv.Atoi(s)
}
