// splitaac splits a genotype matrix by amino acid change: frameshifts and stop
// gains go to one file, every nonsynonymous change (including those) to the
// other. Loci without an amino acid change are dropped from both.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/carbocation/gtmatrix"
	_ "github.com/carbocation/gtmatrix/compileinfoprint"
)

func main() {
	var input, fsStop, nonsyn string

	flag.StringVar(&input, "input", "", "Genotype matrix (CSV) to split.")
	flag.StringVar(&fsStop, "fs_stop", "", "Output path for frameshift and stop-gain loci.")
	flag.StringVar(&nonsyn, "nonsyn", "", "Output path for all nonsynonymous loci.")
	flag.Parse()

	if input == "" || fsStop == "" || nonsyn == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	m, err := gtmatrix.OpenMatrix(context.Background(), input, ',', nil)
	if err != nil {
		log.Fatalln(err)
	}

	if !m.HasAminoAcidChange {
		log.Fatalf("%s has no %s column\n", input, gtmatrix.ColAminoAcidChange)
	}

	truncating, nonsynonymous := m.SplitByConsequence()
	log.Printf("%d of %d loci are nonsynonymous, %d of them frameshift or stop\n", nonsynonymous.NumRows(), m.NumRows(), truncating.NumRows())

	for path, out := range map[string]*gtmatrix.Matrix{fsStop: truncating, nonsyn: nonsynonymous} {
		if err := writeMatrix(path, out); err != nil {
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
