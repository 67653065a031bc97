// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// swarm2vsearch renames swarm OTU representatives with sequential OTU
// labels so that swarm results can be used in place of vsearch
// clustering results.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kortschak/masque/cluster"
	"github.com/kortschak/masque/fastx"
)

var (
	in         = flag.String("i", "", "swarm representative fasta file (required)")
	clustering = flag.String("c", "", "swarm clustering file (required)")
	uclust     = flag.String("u", "", "swarm uclust output file")
	prefix     = flag.String("prefix", cluster.DefaultPrefix, "OTU label prefix")
	outFile    = flag.String("o", "", "output fasta file name (default to stdout)")
	outTable   = flag.String("oc", "", "output cluster table file name")
	outUclust  = flag.String("ou", "", "output relabelled uclust file name (required with -u)")
)

func main() {
	flag.Parse()
	if *in == "" || *clustering == "" || (*uclust != "" && *outUclust == "") {
		fmt.Fprintln(os.Stderr, "invalid argument: must have fasta and clustering set, and -ou with -u")
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Open(*clustering)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *clustering, err)
	}
	m, err := cluster.Read(f, *prefix)
	f.Close()
	if err != nil {
		log.Fatalf("failed to read clustering: %v", err)
	}
	log.Printf("read %d clusters", len(m.Clusters))

	if *outTable != "" {
		w, err := os.Create(*outTable)
		if err != nil {
			log.Fatalf("failed to create %q: %v", *outTable, err)
		}
		err = m.WriteTable(w)
		if err != nil {
			log.Fatalf("failed to write cluster table: %v", err)
		}
		err = w.Close()
		if err != nil {
			log.Fatalf("failed to close %q: %v", *outTable, err)
		}
	}

	r, err := fastx.Open(*in)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *in, err)
	}
	out := os.Stdout
	if *outFile != "" {
		out, err = os.Create(*outFile)
		if err != nil {
			log.Fatalf("failed to create %q: %v", *outFile, err)
		}
	}
	err = cluster.RewriteFASTA(r, out, m)
	r.Close()
	if err != nil {
		log.Fatalf("failed to relabel sequences: %v", err)
	}
	err = out.Close()
	if err != nil {
		log.Fatalf("failed to close output: %v", err)
	}

	if *uclust == "" {
		return
	}
	u, err := os.Open(*uclust)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *uclust, err)
	}
	defer u.Close()
	w, err := os.Create(*outUclust)
	if err != nil {
		log.Fatalf("failed to create %q: %v", *outUclust, err)
	}
	err = cluster.RewriteTable(u, w, m, cluster.UclustTarget)
	if err != nil {
		log.Fatalf("failed to relabel uclust table: %v", err)
	}
	err = w.Close()
	if err != nil {
		log.Fatalf("failed to close %q: %v", *outUclust, err)
	}
}
