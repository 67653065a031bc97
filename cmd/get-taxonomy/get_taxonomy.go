// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// get-taxonomy annotates OTUs with the lineage of the reference
// sequences they were assigned to by a vsearch global alignment. Lineages
// are truncated according to the identity of each assignment.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kortschak/masque/fastx"
	"github.com/kortschak/masque/taxonomy"
	"github.com/kortschak/masque/vsearch"
)

var (
	in       = flag.String("i", "", "vsearch userout assignment table (required)")
	db       = flag.String("d", "", "reference database fasta file (required)")
	dbType   = flag.String("dtype", "silva", "reference database type: "+strings.Join(taxonomy.Formats(), ", "))
	taxFile  = flag.String("t", "", "greengenes taxonomy table (required for greengenes)")
	otuFile  = flag.String("otus", "", "list of all OTU ids; OTUs without a lineage are output with an empty lineage")
	best     = flag.Bool("best", false, "only use the first assignment of each OTU")
	policy   = flag.String("policy", "strict", "handling of assignments below 75% identity: strict or lenient")
	prefixed = flag.Bool("prefixed", false, "output a single rank prefixed lineage column")
	outFile  = flag.String("o", "", "output file name (default to stdout)")

	query       = flag.String("query", "", "OTU fasta file to search against the database before annotation")
	vsearchPath = flag.String("vsearch", "", "path to vsearch if not in $PATH")
	identity    = flag.Float64("id", 0.75, "minimum vsearch identity")
	threads     = flag.Int("threads", 1, "number of vsearch threads")
)

func main() {
	flag.Parse()
	if *in == "" || *db == "" {
		fmt.Fprintln(os.Stderr, "invalid argument: must have assignment table and database set")
		flag.Usage()
		os.Exit(1)
	}
	format, err := taxonomy.ParseFormat(*dbType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}
	if format == taxonomy.Greengenes && *taxFile == "" {
		fmt.Fprintln(os.Stderr, "invalid argument: please indicate the greengenes taxonomy file")
		flag.Usage()
		os.Exit(1)
	}
	pol, err := taxonomy.ParsePolicy(*policy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}

	if *query != "" {
		s := vsearch.Search{
			Cmd:         *vsearchPath,
			Query:       *query,
			Database:    *db,
			Identity:    *identity,
			TopHitsOnly: true,
			Threads:     *threads,
			UserOut:     *in,
			UserFields:  vsearch.DefaultFields,
		}
		cmd, err := s.BuildCommand()
		if err != nil {
			log.Fatalf("failed to build vsearch command: %v", err)
		}
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
		log.Printf("running: %s", strings.Join(cmd.Args, " "))
		err = cmd.Run()
		if err != nil {
			log.Fatalf("failed to run vsearch: %v", err)
		}
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *in, err)
	}
	assigned, err := taxonomy.ReadAssignments(f, *best)
	f.Close()
	if err != nil {
		log.Fatalf("failed to read assignments from %q: %v", *in, err)
	}
	wanted := taxonomy.References(assigned)
	log.Printf("read %d assignments to %d references", len(assigned), len(wanted))

	var lineages taxonomy.Lineages
	if format == taxonomy.Greengenes {
		lineages, err = readLineages(*taxFile, func(r io.Reader) (taxonomy.Lineages, error) {
			return taxonomy.ReadTaxonomyTable(r, wanted)
		})
	} else {
		lineages, err = readLineages(*db, func(r io.Reader) (taxonomy.Lineages, error) {
			return taxonomy.ReadLineages(r, format, wanted)
		})
	}
	if err != nil {
		log.Fatalf("failed to read lineages: %v", err)
	}
	log.Printf("found lineages for %d of %d references", len(lineages), len(wanted))

	opts := taxonomy.Options{Policy: pol}
	if *otuFile != "" {
		f, err := os.Open(*otuFile)
		if err != nil {
			log.Fatalf("failed to open %q: %v", *otuFile, err)
		}
		opts.OTUs, err = taxonomy.ReadOTUs(f)
		f.Close()
		if err != nil {
			log.Fatalf("failed to read OTU list: %v", err)
		}
	}
	rows, err := taxonomy.Annotate(assigned, lineages, opts)
	if err != nil {
		log.Fatalf("failed to annotate OTUs: %v", err)
	}

	out := os.Stdout
	if *outFile != "" {
		out, err = os.Create(*outFile)
		if err != nil {
			log.Fatalf("failed to create %q: %v", *outFile, err)
		}
	}
	if *prefixed {
		err = taxonomy.WritePrefixed(out, rows)
	} else {
		err = taxonomy.WriteTable(out, rows)
	}
	if err != nil {
		log.Fatalf("failed to write annotation: %v", err)
	}
	err = out.Close()
	if err != nil {
		log.Fatalf("failed to close output: %v", err)
	}
}

func readLineages(path string, read func(io.Reader) (taxonomy.Lineages, error)) (taxonomy.Lineages, error) {
	f, err := fastx.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f)
}
