// fillrefhoms reconstructs reference homozygous calls. A genotype matrix only
// records variant calls, so a blank cell can mean either "no data" or "wild
// type". Where samtools depth shows adequate coverage for the sample at that
// position, the blank is replaced with 00.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gtmatrix"
	_ "github.com/carbocation/gtmatrix/compileinfoprint"
)

func main() {
	var input, depthFile, output string
	var minDepth int

	flag.StringVar(&input, "input", "", "Genotype matrix (CSV) with blank cells to fill.")
	flag.StringVar(&depthFile, "depth", "", "Tab-delimited output of samtools depth -a -H, with one column per BAM named <sample>.bam. May be a gs:// path and may be compressed.")
	flag.IntVar(&minDepth, "min_depth", 10, "Minimum read depth at which a blank cell is considered wild type.")
	flag.StringVar(&output, "output", "", "Where to write the filled matrix.")
	flag.Parse()

	if input == "" || depthFile == "" || output == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx := context.Background()

	var client *storage.Client
	var err error
	if strings.HasPrefix(input, "gs://") || strings.HasPrefix(depthFile, "gs://") {
		client, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	m, err := gtmatrix.OpenMatrix(ctx, input, ',', client)
	if err != nil {
		log.Fatalln(err)
	}

	rc, err := gtmatrix.OpenTable(ctx, depthFile, client)
	if err != nil {
		log.Fatalln(err)
	}
	depths, err := gtmatrix.ReadDepthTable(rc)
	rc.Close()
	if err != nil {
		log.Fatalln(err)
	}

	for _, sample := range m.Samples {
		if _, ok := depths.ColumnFor(sample); !ok {
			log.Printf("No depth column found for sample %s; its blank cells will stay blank\n", sample)
		}
	}

	filled, n := gtmatrix.FillReferenceHomozygotes(m, depths, minDepth)
	log.Printf("Filled %d blank cells with %s\n", n, gtmatrix.WildType)

	f, err := gtmatrix.CreateOutput(output)
	if err != nil {
		log.Fatalln(err)
	}
	if err := filled.Write(f, ','); err != nil {
		f.Close()
		log.Fatalln(err)
	}
	if err := f.Close(); err != nil {
		log.Fatalln(err)
	}
	log.Println("Wrote", output)
}
