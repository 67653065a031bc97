// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// merge-annotation merges OTU annotation tables obtained from different
// reference databases, keeping the deepest lineage found for each OTU.
//
// Usage: merge-annotation [-o output.txt] -i annotation.tsv [annotation.tsv...]
//
// Tables following the first -i value or given without -i are merged
// after those named by -i.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kortschak/masque/table"
	"github.com/kortschak/masque/taxonomy"
)

var (
	inFiles paths
	outFile = flag.String("o", "output.txt", "output file name")
)

func init() {
	flag.Var(&inFiles, "i", "annotation table to merge (may be repeated)")
}

// paths is a flag.Value collecting repeated path arguments.
type paths []string

func (p *paths) String() string { return strings.Join(*p, ",") }

func (p *paths) Set(path string) error {
	*p = append(*p, path)
	return nil
}

func main() {
	flag.Parse()
	tables := append(inFiles, flag.Args()...)
	if len(tables) == 0 {
		fmt.Fprintln(os.Stderr, "invalid argument: must have at least one annotation table")
		flag.Usage()
		os.Exit(1)
	}

	m := newMerger()
	for _, path := range tables {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("failed to open %q: %v", path, err)
		}
		err = m.read(f)
		f.Close()
		if err != nil {
			log.Fatalf("failed to read %q: %v", path, err)
		}
		log.Printf("merged %q: %d columns", path, len(m.header))
	}

	out, err := os.Create(*outFile)
	if err != nil {
		log.Fatalf("failed to create %q: %v", *outFile, err)
	}
	err = m.write(out)
	if err != nil {
		log.Fatalf("failed to write merged annotation: %v", err)
	}
	err = out.Close()
	if err != nil {
		log.Fatalf("failed to close output: %v", err)
	}
}

// merger holds the deepest lineage seen for each OTU.
type merger struct {
	header   []string
	otus     []string
	lineages map[string]taxonomy.Lineage
}

func newMerger() *merger {
	return &merger{lineages: make(map[string]taxonomy.Lineage)}
}

// read merges the annotation table in r. The last header read is used
// for the merged table. An OTU's lineage is replaced only by a lineage
// with more named ranks, and a replacing lineage may not be deeper than
// the species rank.
func (m *merger) read(r io.Reader) error {
	tr, err := table.NewReader(r)
	if err != nil {
		return err
	}
	m.header = tr.Header()
	for {
		row, err := tr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		otu := row[0]
		l := trim(taxonomy.Lineage(row[1:]))
		old, ok := m.lineages[otu]
		if !ok {
			m.otus = append(m.otus, otu)
		} else {
			if l.Depth() <= old.Depth() {
				continue
			}
			if d := l.Depth(); d > len(taxonomy.Ranks) {
				return fmt.Errorf("lineage of %s has %d ranks on line %d", otu, d, tr.Line())
			}
		}
		m.lineages[otu] = l
	}
}

// trim returns l without trailing empty ranks.
func trim(l taxonomy.Lineage) taxonomy.Lineage {
	for len(l) != 0 && l[len(l)-1] == "" {
		l = l[:len(l)-1]
	}
	return l
}

// write writes the merged table to w in order of first appearance,
// padding rows to the header width.
func (m *merger) write(w io.Writer) error {
	tw := table.NewWriter(w)
	err := tw.Write(m.header)
	if err != nil {
		return err
	}
	for _, otu := range m.otus {
		row := append([]string{otu}, m.lineages[otu]...)
		for len(row) < len(m.header) {
			row = append(row, "")
		}
		err = tw.Write(row)
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}
