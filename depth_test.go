package gtmatrix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const depthTable = "#CHROM\tPOS\t/data/s1.bam\t/data/s2.bam\n" +
	"chr1\t10\t25\t3\n" +
	"chr1\t20\t10\t40\n"

func TestReadDepthTable(t *testing.T) {
	d, err := ReadDepthTable(strings.NewReader(depthTable))
	require.NoError(t, err)

	assert.Equal(t, []string{"/data/s1.bam", "/data/s2.bam"}, d.Columns)

	col, ok := d.ColumnFor("s2")
	require.True(t, ok)
	assert.Equal(t, 1, col)

	_, ok = d.ColumnFor("s3")
	assert.False(t, ok)

	depth, ok := d.Depth("chr1", 20, col)
	assert.True(t, ok)
	assert.Equal(t, 40, depth)

	_, ok = d.Depth("chr1", 30, col)
	assert.False(t, ok)
	_, ok = d.Depth("chr1", 10, 5)
	assert.False(t, ok)
}

func TestReadDepthTableRejectsMalformedInput(t *testing.T) {
	_, err := ReadDepthTable(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMalformedHeader)

	_, err = ReadDepthTable(strings.NewReader("CHROM\tPOS\ts1.bam\n"))
	assert.ErrorIs(t, err, ErrMalformedHeader)

	_, err = ReadDepthTable(strings.NewReader("#CHROM\tPOS\ts1.bam\nchr1\t10\tdeep\n"))
	assert.ErrorIs(t, err, ErrMalformedRow)

	_, err = ReadDepthTable(strings.NewReader("#CHROM\tPOS\ts1.bam\nchr1\t10\n"))
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestFillReferenceHomozygotes(t *testing.T) {
	m := mustRead(t, header+",s1,s2,s3\n"+
		"chr1,10,A,T,,,,\n"+
		"chr1,20,A,T,,10,,\n"+
		"chr1,30,A,T,,,,\n")

	d, err := ReadDepthTable(strings.NewReader(depthTable))
	require.NoError(t, err)

	out, filled := FillReferenceHomozygotes(m, d, 10)

	// s1 at 10 (25) and 20 is already called; s2 at 20 (40). s2 at 10 is too
	// shallow, s3 has no depth column and position 30 is absent.
	assert.Equal(t, 2, filled)
	assert.Equal(t, WildType, out.Loci[0].Genotypes[0].Code())
	assert.True(t, out.Loci[0].Genotypes[1].IsMissing())
	assert.True(t, out.Loci[0].Genotypes[2].IsMissing())
	assert.Equal(t, Heterozygous, out.Loci[1].Genotypes[0].Code())
	assert.Equal(t, WildType, out.Loci[1].Genotypes[1].Code())
	assert.True(t, out.Loci[2].Genotypes[0].IsMissing())

	// The input is untouched
	assert.True(t, m.Loci[0].Genotypes[0].IsMissing())
}
