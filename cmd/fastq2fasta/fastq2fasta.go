// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fastq2fasta converts FASTQ reads to single line FASTA, optionally
// labelling each read with its sample of origin.
package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"

	"github.com/kortschak/masque/fastx"
)

var (
	in      = flag.String("i", "", "input fastq file (required)")
	sample  = flag.String("s", "", "sample name added as a barcodelabel annotation")
	outFile = flag.String("o", "", "output file name (default to stdout)")
)

func main() {
	flag.Parse()
	if *in == "" {
		flag.Usage()
		os.Exit(1)
	}

	f, err := fastx.Open(*in)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *in, err)
	}
	defer f.Close()

	out := os.Stdout
	if *outFile != "" {
		out, err = os.Create(*outFile)
		if err != nil {
			log.Fatalf("failed to create %q: %v", *outFile, err)
		}
	}
	n, err := convert(out, f, *sample)
	if err != nil {
		log.Fatalf("failed to convert %q: %v", *in, err)
	}
	err = out.Close()
	if err != nil {
		log.Fatalf("failed to close output: %v", err)
	}
	log.Printf("converted %d reads", n)
}

// convert writes the FASTQ records in r to w as FASTA, labelling ids
// with sample if it is not empty. It returns the number of records
// written.
func convert(w io.Writer, r io.Reader, sample string) (int, error) {
	bw := bufio.NewWriter(w)
	sr := fastx.NewReader(r, fastx.FASTQ)
	sw := fastx.NewWriter(bw, 0)
	var n int
	for {
		rec, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		err = sw.Write(fastx.Record{ID: fastx.Label(rec.ID, sample, false), Seq: rec.Seq})
		if err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}
