// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vsearch provides interaction with the VSEARCH sequence search tool.
package vsearch

import (
	"errors"
	"os/exec"
	"strings"
	"text/template"

	"github.com/biogo/external"
)

var ErrMissingRequired = errors.New("vsearch: missing required argument")

// DefaultFields is the set of output fields required by the taxonomy
// annotation tools.
var DefaultFields = []string{"query", "target", "id", "alnlen", "mism", "opens", "qlo", "qhi", "tlo", "thi", "evalue", "bits"}

// Search defines parameters for a vsearch global alignment search.
type Search struct {
	// Usage: vsearch --usearch_global query.fasta --db db.fasta --id real [-options]
	//
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}vsearch{{end}}"` // vsearch

	// Input files:
	Query    string `buildarg:"--usearch_global{{split}}{{.}}"` // --usearch_global: query fasta file
	Database string `buildarg:"--db{{split}}{{.}}"`             // --db: reference fasta file

	// Search options:
	Identity    float64 `buildarg:"{{if .}}--id{{split}}{{.}}{{end}}"`         // --id: minimum fractional identity
	MaxAccepts  int     `buildarg:"{{if .}}--maxaccepts{{split}}{{.}}{{end}}"` // --maxaccepts: number of hits to accept before stopping
	MaxRejects  int     `buildarg:"{{if .}}--maxrejects{{split}}{{.}}{{end}}"` // --maxrejects: number of non-matching hits to consider
	Strand      string  `buildarg:"{{if .}}--strand{{split}}{{.}}{{end}}"`     // --strand: plus or both
	TopHitsOnly bool    `buildarg:"{{if .}}--top_hits_only{{end}}"`            // --top_hits_only: only report hits with the highest identity
	Threads     int     `buildarg:"{{if .}}--threads{{split}}{{.}}{{end}}"`    // --threads: number of threads

	// Output options:
	UserOut    string   `buildarg:"{{if .}}--userout{{split}}{{.}}{{end}}"`           // --userout: tab-delimited output file
	UserFields []string `buildarg:"{{if .}}--userfields{{split}}{{fields .}}{{end}}"` // --userfields: fields of the userout file
	NotMatched string   `buildarg:"{{if .}}--notmatched{{split}}{{.}}{{end}}"`        // --notmatched: fasta file of unmatched queries
	Quiet      bool     `buildarg:"{{if .}}--quiet{{end}}"`                           // --quiet: only write warnings and errors to stderr
}

// BuildCommand returns an exec.Cmd built from the parameters in s.
func (s Search) BuildCommand() (*exec.Cmd, error) {
	if s.Query == "" || s.Database == "" || s.UserOut == "" {
		return nil, ErrMissingRequired
	}
	cl := external.Must(external.Build(s, template.FuncMap{"fields": fields}))
	return exec.Command(cl[0], cl[1:]...), nil
}

// fields returns the userfields argument for a list of field names.
func fields(a interface{}) string {
	return strings.Join(a.([]string), "+")
}
