// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// rename-otu renames FASTA sequences with sequential OTU labels in input
// order, starting from one.
package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/kortschak/masque/cluster"
	"github.com/kortschak/masque/fastx"
)

var (
	in      = flag.String("i", "", "input fasta file (required)")
	name    = flag.String("n", cluster.DefaultPrefix, "OTU label prefix")
	width   = flag.Int("width", 80, "sequence line width")
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
	n, err := rename(out, f, *name, *width)
	if err != nil {
		log.Fatalf("failed to rename sequences in %q: %v", *in, err)
	}
	err = out.Close()
	if err != nil {
		log.Fatalf("failed to close output: %v", err)
	}
	log.Printf("renamed %d sequences", n)
}

// rename writes the sequences in r to w labelled with prefix followed by
// the sequence's ordinal position. It returns the number of sequences
// written.
func rename(w io.Writer, r io.Reader, prefix string, width int) (int, error) {
	bw := bufio.NewWriter(w)
	sr := fastx.NewReader(r, fastx.FASTA)
	sw := fastx.NewWriter(bw, width)
	var n int
	for {
		rec, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		n++
		err = sw.Write(fastx.Record{ID: prefix + strconv.Itoa(n), Seq: rec.Seq})
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
