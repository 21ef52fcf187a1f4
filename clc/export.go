// Package clc turns CLC Genomics Workbench amino acid change exports, one CSV
// per sample, into a single genotype matrix.
package clc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Row is one variant line of a CLC export. Only the columns used downstream
// are mapped; numeric columns are kept as text and parsed on demand because
// CLC leaves some of them blank.
type Row struct {
	Mapping           string `csv:"Mapping"`
	ReferencePosition string `csv:"Reference Position"`
	Reference         string `csv:"Reference"`
	Allele            string `csv:"Allele"`
	Zygosity          string `csv:"Zygosity"`
	Count             string `csv:"Count"`
	Coverage          string `csv:"Coverage"`
	Frequency         string `csv:"Frequency"`
	AminoAcidChange   string `csv:"Amino acid change"`
}

// Export is the content of one file. Name becomes the sample identifier.
type Export struct {
	Name string
	Rows []*Row
}

// ReadExport parses one comma-delimited CLC export.
func ReadExport(name string, r io.Reader) (Export, error) {
	out := Export{Name: name}

	data, err := io.ReadAll(r)
	if err != nil {
		return out, pfx.Err(err)
	}

	// gocsv refuses a file without any line at all
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}

	if err := gocsv.UnmarshalBytes(data, &out.Rows); err != nil {
		return out, pfx.Err(fmt.Errorf("%s: %w", name, err))
	}

	return out, nil
}

// ReadExportDir reads every regular file in dir. The sample name of each
// export is its file name without extension.
func ReadExportDir(dir string) ([]Export, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var out []Export
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, pfx.Err(err)
		}

		export, err := ReadExport(strings.TrimSuffix(name, filepath.Ext(name)), f)
		f.Close()
		if err != nil {
			return nil, err
		}

		out = append(out, export)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}
