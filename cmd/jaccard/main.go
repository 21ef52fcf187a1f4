// jaccard computes the pairwise Jaccard distance between every pair of samples
// in a genotype matrix. Loci where either sample is missing, or where both are
// wild type, do not count. Pairs without any informative locus are written as
// empty cells.
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
	var (
		input, output, npyOutput string
		columns                  string
		delimiter, outDelim      string
		workers                  int
		summarize                bool
	)

	flag.StringVar(&input, "input", "", "Genotype matrix. May be a gs:// path and may be compressed.")
	flag.StringVar(&output, "output", "jaccard.dist", "Where to write the distance table.")
	flag.StringVar(&npyOutput, "npy", "", "Optional. Also write the distances as a numpy .npy array to this path. Row and column order matches --output.")
	flag.StringVar(&columns, "columns", "", "Optional. Comma-separated sample IDs to compare, in output order. Unknown IDs are ignored.")
	flag.StringVar(&delimiter, "delimiter", "", "Input delimiter. If empty, it is detected. Use 'tab' for tab.")
	flag.StringVar(&outDelim, "out_delimiter", ",", "Output delimiter. Use 'tab' for tab.")
	flag.IntVar(&workers, "workers", 0, "Number of sample rows to compute concurrently. Default is the number of CPUs.")
	flag.BoolVar(&summarize, "summary", false, "Log summary statistics of the pairwise distances.")
	flag.Parse()

	if input == "" || output == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	inDelim, err := gtmatrix.ParseDelimiter(delimiter)
	if err != nil {
		log.Fatalln(err)
	}
	writeDelim, err := gtmatrix.ParseDelimiter(outDelim)
	if err != nil {
		log.Fatalln(err)
	}
	if writeDelim == 0 {
		writeDelim = ','
	}

	var client *storage.Client
	if strings.HasPrefix(input, "gs://") {
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	m, err := gtmatrix.OpenMatrix(context.Background(), input, inDelim, client)
	if err != nil {
		log.Fatalln(err)
	}

	var selection []string
	if columns != "" {
		selection = strings.Split(columns, ",")
	}

	log.Printf("Comparing samples across %d loci\n", m.NumRows())
	dist, err := gtmatrix.Pairwise(m, gtmatrix.PairwiseOptions{
		Columns: selection,
		Workers: workers,
	})
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Computed a %dx%d distance matrix\n", dist.Len(), dist.Len())

	if summarize {
		summary, err := gtmatrix.SummarizeDistances(dist)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println(summary)
	}

	f, err := gtmatrix.CreateOutput(output)
	if err != nil {
		log.Fatalln(err)
	}
	if err := dist.Write(f, writeDelim); err != nil {
		f.Close()
		log.Fatalln(err)
	}
	if err := f.Close(); err != nil {
		log.Fatalln(err)
	}
	log.Println("Wrote", output)

	if npyOutput != "" {
		if err := dist.WriteNPY(npyOutput); err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote", npyOutput)
	}
}
