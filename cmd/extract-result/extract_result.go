// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// extract-result summarises the results of an amplicon processing run,
// reporting per-sample read counts and length statistics through each
// processing step and whole-run OTU and annotation counts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/kortschak/masque/report"
)

var (
	data     = flag.String("d", "", "run result directory (required)")
	raw      = flag.String("r", "", "raw reads directory")
	amplicon = flag.String("a", "", "amplicon reads directory")
	paired   = flag.Bool("p", false, "reads are paired-end")
	plotFile = flag.String("plot", "", "stage count bar chart image file name")
	funnel   = flag.String("o1", "masque_build_process.tsv", "per-sample processing report file name")
	global   = flag.String("o2", "masque_annotation_process.tsv", "OTU annotation report file name")
)

var warn = color.New(color.FgYellow).FprintfFunc()

func main() {
	flag.Parse()
	if *data == "" || (*raw == "" && *amplicon == "") {
		fmt.Fprintln(os.Stderr, "invalid argument: must have result directory and raw reads or amplicon directory set")
		flag.Usage()
		os.Exit(1)
	}

	c := report.Collector{
		Data:     *data,
		Raw:      *raw,
		Amplicon: *amplicon,
		Paired:   *paired,
		Warn: func(format string, args ...interface{}) {
			warn(os.Stderr, "warning: "+format+"\n", args...)
		},
	}
	samples, g, err := c.Collect()
	if err != nil {
		log.Fatalf("failed to collect results: %v", err)
	}
	log.Printf("collected results for %d samples", samples.Len())

	f, err := os.Create(*funnel)
	if err != nil {
		log.Fatalf("failed to create %q: %v", *funnel, err)
	}
	err = report.WriteFunnel(f, samples, *paired)
	if err != nil {
		log.Fatalf("failed to write sample report: %v", err)
	}
	err = f.Close()
	if err != nil {
		log.Fatalf("failed to close %q: %v", *funnel, err)
	}

	f, err = os.Create(*global)
	if err != nil {
		log.Fatalf("failed to create %q: %v", *global, err)
	}
	err = report.WriteGlobal(f, g)
	if err != nil {
		log.Fatalf("failed to write annotation report: %v", err)
	}
	err = f.Close()
	if err != nil {
		log.Fatalf("failed to close %q: %v", *global, err)
	}

	if *plotFile != "" {
		err = report.PlotStages(g, *plotFile)
		if err != nil {
			log.Fatalf("failed to plot stage counts: %v", err)
		}
	}
}
