package gtmatrix

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "reference_name,reference_pos,reference_allele,sample_allele,amino_acid_change"

func mustRead(t *testing.T, table string) *Matrix {
	t.Helper()

	m, err := ReadMatrix(strings.NewReader(table), ',')
	require.NoError(t, err)

	return m
}

func TestReadMatrix(t *testing.T) {
	m := mustRead(t, header+",s1,s2,s3\n"+
		"chr1,10,A,T,G12D,00,10,\n"+
		"chr1,20,C,G,,11,,00\n")

	assert.Equal(t, []string{"s1", "s2", "s3"}, m.Samples)
	assert.True(t, m.HasAminoAcidChange)
	require.Equal(t, 2, m.NumRows())
	assert.Equal(t, 8, m.NumColumns())

	first := m.Loci[0]
	assert.Equal(t, "chr1", first.ReferenceName)
	assert.Equal(t, 10, first.ReferencePos)
	assert.Equal(t, "G12D", first.AminoAcidChange.ValueOrZero())

	// Codes stay text: "00" must not become 0
	assert.Equal(t, "00", first.Genotypes[0].Code())
	assert.True(t, first.Genotypes[0].IsWildType())
	assert.False(t, first.Genotypes[0].IsMissing())
	assert.True(t, first.Genotypes[2].IsMissing())

	assert.False(t, m.Loci[1].AminoAcidChange.Valid)
}

func TestReadMatrixWithoutAminoAcidChange(t *testing.T) {
	m := mustRead(t, "reference_name,reference_pos,reference_allele,sample_allele,s1\n"+
		"chr1,10,A,T,10\n")

	assert.False(t, m.HasAminoAcidChange)
	assert.Equal(t, []string{"s1"}, m.Samples)
	assert.Equal(t, []string{ColReferenceName, ColReferencePos, ColReferenceAllele, ColSampleAllele}, m.MetadataColumns())
}

func TestReadMatrixRejectsMalformedInput(t *testing.T) {
	for name, table := range map[string]string{
		"empty":            "",
		"short header":     "reference_name,reference_pos\n",
		"misordered":       "reference_pos,reference_name,reference_allele,sample_allele,s1\n",
		"duplicate sample": header + ",s1,s1\n",
	} {
		_, err := ReadMatrix(strings.NewReader(table), ',')
		assert.ErrorIs(t, err, ErrMalformedHeader, name)
	}

	for name, table := range map[string]string{
		"field count":       header + ",s1\nchr1,10,A,T,,10,11\n",
		"non-integer pos":   header + ",s1\nchr1,ten,A,T,,10\n",
		"missing reference": header + ",s1\nchr1,,A,T,,10\n",
	} {
		_, err := ReadMatrix(strings.NewReader(table), ',')
		assert.ErrorIs(t, err, ErrMalformedRow, name)
	}
}

func TestWriteMatrixPreservesTable(t *testing.T) {
	table := header + ",s1,s2\n" +
		"chr1,10,A,T,G12D,00,\n" +
		"chr2,5,N,C,,11,10\n"

	m := mustRead(t, table)

	buf := &bytes.Buffer{}
	require.NoError(t, m.Write(buf, ','))
	assert.Equal(t, table, buf.String())
}

func TestCloneIsDeep(t *testing.T) {
	m := mustRead(t, header+",s1\nchr1,10,A,T,,10\n")

	c := m.Clone()
	c.Loci[0].Genotypes[0] = Missing()
	c.Samples[0] = "renamed"

	assert.Equal(t, "10", m.Loci[0].Genotypes[0].Code())
	assert.Equal(t, "s1", m.Samples[0])
}

func TestGenotypeFrom(t *testing.T) {
	assert.True(t, GenotypeFrom("").IsMissing())
	assert.False(t, GenotypeFrom("").IsWildType())
	assert.False(t, GenotypeFrom("").HasVariantSignal())

	assert.True(t, GenotypeFrom(WildType).IsWildType())
	assert.False(t, GenotypeFrom(WildType).HasVariantSignal())

	assert.True(t, GenotypeFrom(Heterozygous).HasVariantSignal())
	assert.True(t, GenotypeFrom(Homozygous).HasVariantSignal())

	// Missing and wild type never compare equal
	assert.NotEqual(t, Missing(), GenotypeFrom(WildType))
}
