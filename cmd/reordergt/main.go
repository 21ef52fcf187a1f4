// reordergt reorders (and subsets) the sample columns of a genotype matrix to
// follow the order of a groups file. Samples missing from the matrix are
// skipped; metadata columns always come first.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/carbocation/gtmatrix"
	_ "github.com/carbocation/gtmatrix/compileinfoprint"
	"github.com/gocarina/gocsv"
)

type GroupRow struct {
	Sample string `csv:"sample"`
}

func main() {
	var input, groups, output string

	flag.StringVar(&input, "input", "", "Genotype matrix (CSV) to reorder.")
	flag.StringVar(&groups, "groups", "", "CSV with a 'sample' column giving the new sample order.")
	flag.StringVar(&output, "output", "", "Optional. Output path. Defaults to the input name with a _reordered suffix.")
	flag.Parse()

	if input == "" || groups == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if output == "" {
		output = strings.TrimSuffix(input, ".csv") + "_reordered.csv"
	}

	order, err := readGroups(groups)
	if err != nil {
		log.Fatalln(err)
	}

	m, err := gtmatrix.OpenMatrix(context.Background(), input, ',', nil)
	if err != nil {
		log.Fatalln(err)
	}

	reordered := m.SelectSamples(order)
	log.Printf("Kept %d of %d samples\n", len(reordered.Samples), len(m.Samples))

	f, err := gtmatrix.CreateOutput(output)
	if err != nil {
		log.Fatalln(err)
	}
	if err := reordered.Write(f, ','); err != nil {
		f.Close()
		log.Fatalln(err)
	}
	if err := f.Close(); err != nil {
		log.Fatalln(err)
	}
	log.Println("Wrote", output)
}

func readGroups(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows := []*GroupRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Sample)
	}

	return out, nil
}
