// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fastalabel labels FASTA sequences with their sample of origin, writing
// each sequence on a single line.
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
	in      = flag.String("i", "", "input fasta file (required)")
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
	err = label(out, f, *sample)
	if err != nil {
		log.Fatalf("failed to label %q: %v", *in, err)
	}
	err = out.Close()
	if err != nil {
		log.Fatalf("failed to close output: %v", err)
	}
}

func label(w io.Writer, r io.Reader, sample string) error {
	bw := bufio.NewWriter(w)
	sr := fastx.NewReader(r, fastx.FASTA)
	sw := fastx.NewWriter(bw, 0)
	for {
		rec, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		err = sw.Write(fastx.Record{ID: fastx.Label(rec.ID, sample, true), Seq: rec.Seq})
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}
