// filtergt drops loci and samples with too much missing data from a genotype
// matrix, then drops loci where no remaining sample carries a variant.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gtmatrix"
	_ "github.com/carbocation/gtmatrix/compileinfoprint"
	"gopkg.in/guregu/null.v3"
)

// optionalFloat is a flag.Value that remembers whether it was set at all.
type optionalFloat struct {
	null.Float
}

func (o *optionalFloat) String() string {
	if o == nil || !o.Valid {
		return ""
	}

	return strconv.FormatFloat(o.Float64, 'g', -1, 64)
}

func (o *optionalFloat) Set(value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	o.Float = null.FloatFrom(f)

	return nil
}

func main() {
	var (
		input, output          string
		delimiter, outDelim    string
		dropN                  bool
		lociThresh, sampThresh optionalFloat
	)

	flag.StringVar(&input, "input", "", "Genotype matrix to filter. May be a gs:// path and may be compressed.")
	flag.StringVar(&output, "output", "", "Optional. Where to write the filtered matrix. If empty, only the report is printed.")
	flag.StringVar(&delimiter, "delimiter", "", "Input delimiter. If empty, it is detected. Use 'tab' for tab.")
	flag.StringVar(&outDelim, "out_delimiter", ",", "Output delimiter. Use 'tab' for tab.")
	flag.BoolVar(&dropN, "drop_n", false, "Drop loci whose reference allele is N.")
	flag.Var(&lociThresh, "loci", "Minimum proportion of samples that must have a call to retain a locus. E.g., 0.85 lets a locus miss up to 15% of samples. If unset, loci are not filtered for missingness.")
	flag.Var(&sampThresh, "samples", "Minimum proportion of loci (after locus filtering) that must have a call to retain a sample. E.g., 0.95 lets a sample miss up to 5% of loci. If unset, samples are not filtered.")
	flag.Parse()

	if input == "" {
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

	log.Println("Reading", input)
	m, err := gtmatrix.OpenMatrix(context.Background(), input, inDelim, client)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Read %d loci and %d samples\n", m.NumRows(), len(m.Samples))

	filtered, report, err := gtmatrix.Filter(m, gtmatrix.FilterOptions{
		LociThreshold:   lociThresh.Float,
		SampleThreshold: sampThresh.Float,
		DropReferenceN:  dropN,
	})
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Print(report)

	if output == "" {
		return
	}

	f, err := gtmatrix.CreateOutput(output)
	if err != nil {
		log.Fatalln(err)
	}

	if err := filtered.Write(f, writeDelim); err != nil {
		f.Close()
		log.Fatalln(err)
	}
	if err := f.Close(); err != nil {
		log.Fatalln(err)
	}

	log.Println("Wrote", output)
}
