// summarizeaac summarizes a folder of CLC Genomics Workbench amino acid change
// exports (one CSV per sample) as a single genotype matrix containing the
// union of all loci and genotypes.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/carbocation/gtmatrix"
	"github.com/carbocation/gtmatrix/clc"
	_ "github.com/carbocation/gtmatrix/compileinfoprint"
)

func main() {
	var input, output string
	var opts clc.Options
	var split bool

	flag.StringVar(&input, "input", "", "Path to folder containing CSVs to summarize.")
	flag.StringVar(&output, "output", "", "Name of output file to generate.")
	flag.StringVar(&opts.DefaultName, "default_name", "", "Reference name for rows with an empty or absent Mapping column.")
	flag.BoolVar(&split, "split", false, "Also write one file per reference name, next to --output.")
	flag.IntVar(&opts.MinCoverage, "coverage", clc.DefaultMinCoverage, "Minimum depth of coverage a call must have to be reported.")
	flag.BoolVar(&opts.KeepSilent, "keep_silent", false, "Retain calls without an amino acid change.")
	flag.Parse()

	if input == "" || output == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	exports, err := clc.ReadExportDir(input)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Read %d exports from %s\n", len(exports), input)

	m, err := clc.Summarize(exports, opts)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Found %d loci\n", m.NumRows())

	if err := writeMatrix(output, m); err != nil {
		log.Fatalln(err)
	}
	log.Println("Wrote", output)

	if !split {
		return
	}

	prefix := strings.TrimSuffix(output, ".csv")
	for _, group := range m.GroupByReference() {
		path := prefix + "_" + strings.ReplaceAll(group.ReferenceName, " ", "_") + ".csv"
		if err := writeMatrix(path, group.Matrix); err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote", path)
	}
}

func writeMatrix(path string, m *gtmatrix.Matrix) error {
	f, err := gtmatrix.CreateOutput(path)
	if err != nil {
		return err
	}

	if err := m.Write(f, ','); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
