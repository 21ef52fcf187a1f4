package clc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/gtmatrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportHeader = "Mapping,Reference Position,Type,Reference,Allele,Zygosity,Count,Coverage,Frequency,Amino acid change\n"

func mustExport(t *testing.T, name, body string) Export {
	t.Helper()

	e, err := ReadExport(name, strings.NewReader(exportHeader+body))
	require.NoError(t, err)

	return e
}

func TestReadExport(t *testing.T) {
	e := mustExport(t, "s1", "KRAS,35,SNV,C,T,Heterozygous,12,30,40.0,NP_004976.2:p.[Gly12Asp]\n")

	assert.Equal(t, "s1", e.Name)
	require.Len(t, e.Rows, 1)
	assert.Equal(t, "KRAS", e.Rows[0].Mapping)
	assert.Equal(t, "35", e.Rows[0].ReferencePosition)
	assert.Equal(t, "30", e.Rows[0].Coverage)

	empty, err := ReadExport("s2", strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Rows)
}

func TestReadExportDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte(exportHeader+"KRAS,35,SNV,C,T,Homozygous,12,30,100,p.G12D\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte(""), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	exports, err := ReadExportDir(dir)
	require.NoError(t, err)
	require.Len(t, exports, 2)
	assert.Equal(t, "a", exports[0].Name)
	assert.Equal(t, "b", exports[1].Name)
	assert.Len(t, exports[1].Rows, 1)
}

func TestSummarize(t *testing.T) {
	exports := []Export{
		mustExport(t, "s2",
			"TP53,100,SNV,G,A,Heterozygous,5,20,25,p.[Arg33His]\n"+
				"KRAS,35,SNV,C,T,Homozygous,20,20,100,p.[Gly12Asp]\n"+
				"KRAS,40,SNV,A,G,Heterozygous,2,5,40,p.[Lys14Arg]\n"),
		mustExport(t, "s1",
			"KRAS,35,SNV,C,T,Heterozygous,10,30,33,p.[Gly12Asp]\n"+
				"KRAS,9,SNV,A,C,Heterozygous,10,30,33,\n"+
				",7,SNV,A,C,Heterozygous,10,,33,p.[Ala2Val]\n"),
	}

	m, err := Summarize(exports, Options{MinCoverage: DefaultMinCoverage, DefaultName: "unknown"})
	require.NoError(t, err)

	assert.Equal(t, []string{"s1", "s2"}, m.Samples)
	assert.True(t, m.HasAminoAcidChange)

	// KRAS 40 is below coverage, KRAS 9 is silent, the unmapped row has no
	// coverage value at all.
	require.Equal(t, 2, m.NumRows())

	kras := m.Loci[0]
	assert.Equal(t, "KRAS", kras.ReferenceName)
	assert.Equal(t, 35, kras.ReferencePos)
	assert.Equal(t, "Gly12Asp", kras.AminoAcidChange.ValueOrZero())
	assert.Equal(t, gtmatrix.Heterozygous, kras.Genotypes[0].Code())
	assert.Equal(t, gtmatrix.Homozygous, kras.Genotypes[1].Code())

	tp53 := m.Loci[1]
	assert.Equal(t, "TP53", tp53.ReferenceName)
	assert.True(t, tp53.Genotypes[0].IsMissing())
	assert.Equal(t, gtmatrix.Heterozygous, tp53.Genotypes[1].Code())
}

func TestSummarizeOptions(t *testing.T) {
	exports := []Export{
		mustExport(t, "s1",
			"KRAS,9,SNV,A,C,Heterozygous,10,30,33,\n"+
				",7,SNV,A,C,Homozygous,10,,33,p.[Ala2Val]\n"),
	}

	m, err := Summarize(exports, Options{KeepSilent: true, DefaultName: "unknown"})
	require.NoError(t, err)
	require.Equal(t, 2, m.NumRows())

	assert.Equal(t, "KRAS", m.Loci[0].ReferenceName)
	assert.False(t, m.Loci[0].AminoAcidChange.Valid)
	assert.Equal(t, "unknown", m.Loci[1].ReferenceName)
	assert.Equal(t, gtmatrix.Homozygous, m.Loci[1].Genotypes[0].Code())
}

func TestSummarizeSortsPositionsNumerically(t *testing.T) {
	exports := []Export{
		mustExport(t, "s1",
			"KRAS,100,SNV,A,C,Heterozygous,10,30,33,p.A1B\n"+
				"KRAS,20,SNV,A,C,Heterozygous,10,30,33,p.A2B\n"+
				"BRAF,300,SNV,A,C,Heterozygous,10,30,33,p.A3B\n"),
	}

	m, err := Summarize(exports, Options{})
	require.NoError(t, err)

	var got []int
	for _, l := range m.Loci {
		got = append(got, l.ReferencePos)
	}
	assert.Equal(t, []int{300, 20, 100}, got)
}

func TestSummarizeErrors(t *testing.T) {
	_, err := Summarize([]Export{{Name: "s1"}, {Name: "s1"}}, Options{})
	assert.Error(t, err)

	_, err = Summarize([]Export{mustExport(t, "s1", "KRAS,x,SNV,A,C,Het,1,30,1,p.A1B\n")}, Options{})
	assert.Error(t, err)

	_, err = Summarize([]Export{mustExport(t, "s1", "KRAS,1,SNV,A,C,Het,1,deep,1,p.A1B\n")}, Options{})
	assert.Error(t, err)
}

func TestProteinChange(t *testing.T) {
	for input, expected := range map[string]string{
		"NP_004976.2:p.[Gly12Asp]": "Gly12Asp",
		"p.G12D":                   "G12D",
		"G12D":                     "G12D",
		"":                         "",
	} {
		assert.Equal(t, expected, ProteinChange(input), input)
	}
}

func TestZygosityCode(t *testing.T) {
	assert.Equal(t, gtmatrix.Homozygous, ZygosityCode("Homozygous"))
	assert.Equal(t, gtmatrix.Heterozygous, ZygosityCode("Heterozygous"))
	assert.Equal(t, gtmatrix.Heterozygous, ZygosityCode(""))
}
