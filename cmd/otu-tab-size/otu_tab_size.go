// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// otu-tab-size adds the length of each reference sequence to a count
// matrix as a final size column.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/kortschak/masque/fastx"
	"github.com/kortschak/masque/table"
)

var (
	in      = flag.String("i", "", "count matrix file (required)")
	genes   = flag.String("g", "", "reference sequence fasta file (required)")
	outFile = flag.String("o", "output.txt", "output file name")
)

func main() {
	flag.Parse()
	if *in == "" || *genes == "" {
		flag.Usage()
		os.Exit(1)
	}

	g, err := fastx.Open(*genes)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *genes, err)
	}
	lengths, err := geneLengths(g)
	g.Close()
	if err != nil {
		log.Fatalf("failed to read %q: %v", *genes, err)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *in, err)
	}
	defer f.Close()
	out, err := os.Create(*outFile)
	if err != nil {
		log.Fatalf("failed to create %q: %v", *outFile, err)
	}
	err = addSizes(out, f, lengths)
	if err != nil {
		log.Fatalf("failed to write count matrix: %v", err)
	}
	err = out.Close()
	if err != nil {
		log.Fatalf("failed to close output: %v", err)
	}
}

var errNoGenes = errors.New("no sequence read")

// geneLengths returns the lengths of the non-empty sequences in r keyed
// by sequence id.
func geneLengths(r io.Reader) (map[string]int, error) {
	lengths := make(map[string]int)
	sr := fastx.NewReader(r, fastx.FASTA)
	for {
		rec, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec.Seq) == 0 {
			continue
		}
		lengths[rec.ID] = len(rec.Seq)
	}
	if len(lengths) == 0 {
		return nil, errNoGenes
	}
	return lengths, nil
}

// addSizes writes the count matrix in r to w with an additional size
// column holding the length of each row's sequence.
func addSizes(w io.Writer, r io.Reader, lengths map[string]int) error {
	tr, err := table.NewReader(r)
	if err != nil {
		return err
	}
	tw := table.NewWriter(w)
	err = tw.Write(append(tr.Header(), "size"))
	if err != nil {
		return err
	}
	for {
		row, err := tr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		n, ok := lengths[row[0]]
		if !ok {
			return fmt.Errorf("the sequence %s is not present in the database", row[0])
		}
		err = tw.Write(append(row, strconv.Itoa(n)))
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}
