package gtmatrix

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

// ReadMatrix parses a delimited genotype table with a header row. All cells are
// kept as text; an empty cell is missing.
func ReadMatrix(r io.Reader, delim rune) (*Matrix, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: table is empty", ErrMalformedHeader)
	} else if err != nil {
		return nil, pfx.Err(err)
	}

	m, err := parseHeader(header)
	if err != nil {
		return nil, err
	}
	metaCols := len(header) - len(m.Samples)

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		if len(rec) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrMalformedRow, line, len(rec), len(header))
		}

		pos, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s %q is not an integer", ErrMalformedRow, line, ColReferencePos, rec[1])
		}

		locus := Locus{
			ReferenceName:   rec[0],
			ReferencePos:    pos,
			ReferenceAllele: rec[2],
			SampleAllele:    rec[3],
			Genotypes:       make([]Genotype, len(m.Samples)),
		}
		if m.HasAminoAcidChange {
			locus.AminoAcidChange = null.NewString(rec[4], rec[4] != "")
		}

		for i, cell := range rec[metaCols:] {
			locus.Genotypes[i] = GenotypeFrom(cell)
		}

		m.Loci = append(m.Loci, locus)
	}

	return m, nil
}

func parseHeader(header []string) (*Matrix, error) {
	if len(header) < len(mandatoryMetadata) {
		return nil, fmt.Errorf("%w: expected at least %d columns, found %d", ErrMalformedHeader, len(mandatoryMetadata), len(header))
	}

	for i, name := range mandatoryMetadata {
		if header[i] != name {
			return nil, fmt.Errorf("%w: column %d is %q, expected %q", ErrMalformedHeader, i+1, header[i], name)
		}
	}

	m := &Matrix{}
	samplesStart := len(mandatoryMetadata)
	if len(header) > samplesStart && header[samplesStart] == ColAminoAcidChange {
		m.HasAminoAcidChange = true
		samplesStart++
	}

	seen := make(map[string]struct{})
	for _, sample := range header[samplesStart:] {
		if _, exists := seen[sample]; exists {
			return nil, fmt.Errorf("%w: sample %q appears more than once", ErrMalformedHeader, sample)
		}
		seen[sample] = struct{}{}
		m.Samples = append(m.Samples, sample)
	}

	return m, nil
}

// OpenMatrix reads a genotype matrix from a local path or a gs:// URL,
// decompressing it if needed. If delim is 0, the delimiter is detected from the
// content.
func OpenMatrix(ctx context.Context, path string, delim rune, client *storage.Client) (*Matrix, error) {
	rc, err := OpenTable(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	if delim == 0 {
		delim = DetermineDelimiter(bytes.NewReader(data))
	}

	m, err := ReadMatrix(bytes.NewReader(data), delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}
