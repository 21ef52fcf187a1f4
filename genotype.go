package gtmatrix

import (
	"gopkg.in/guregu/null.v3"
)

// Genotype codes as they appear in the matrix. Anything else read from a table
// is carried through verbatim.
const (
	WildType     = "00"
	Heterozygous = "10"
	Homozygous   = "11"
)

// Genotype is a single per-sample, per-locus call. An invalid (null) Genotype
// is missing data, which is never equal to WildType.
type Genotype struct {
	null.String
}

// GenotypeFrom treats the empty string as missing.
func GenotypeFrom(code string) Genotype {
	return Genotype{null.NewString(code, code != "")}
}

// Missing returns a missing Genotype.
func Missing() Genotype {
	return Genotype{}
}

func (g Genotype) IsMissing() bool {
	return !g.Valid
}

// Code returns the textual code, or "" when missing.
func (g Genotype) Code() string {
	if !g.Valid {
		return ""
	}

	return g.String.String
}

func (g Genotype) IsWildType() bool {
	return g.Valid && g.String.String == WildType
}

// HasVariantSignal is true for any present code other than WildType. Missing
// calls are treated as wild type here.
func (g Genotype) HasVariantSignal() bool {
	return g.Valid && g.String.String != WildType
}
