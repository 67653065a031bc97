// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package taxonomy

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kortschak/masque/table"
)

// Ranks holds the column names of the ranked annotation table.
var Ranks = []string{"Kingdom", "Phylum", "Class", "Order", "Family", "Genus", "Specie"}

var rankPrefixes = []string{"k__", "p__", "c__", "o__", "f__", "g__", "s__"}

// Row is the annotation of a single OTU.
type Row struct {
	OTU     string
	Lineage Lineage
}

// Options holds parameters for Annotate.
type Options struct {
	// Policy specifies the handling of
	// low identity hits.
	Policy Policy

	// OTUs lists all the OTUs that must
	// appear in the annotation. If OTUs
	// is not nil, OTUs without a lineage
	// are given an empty lineage rather
	// than causing an error.
	OTUs []string
}

// Annotate returns the truncated lineage for each assignment using the
// provided lineages. Rows are returned in assignment order followed by
// any OTUs in opts.OTUs that have no assignment.
func Annotate(assigned []Assignment, lineages Lineages, opts Options) ([]Row, error) {
	complete := opts.OTUs != nil
	seen := make(map[string]bool)
	rows := make([]Row, 0, len(assigned))
	for _, a := range assigned {
		seen[a.OTU] = true
		l, ok := lineages[a.Reference]
		if !ok {
			if !complete {
				return nil, fmt.Errorf("%w: %q", ErrMissingReference, a.Reference)
			}
			rows = append(rows, Row{OTU: a.OTU})
			continue
		}
		t, err := Truncate(l, a.Identity, opts.Policy)
		if err != nil {
			return nil, fmt.Errorf("otu %s: %w", a.OTU, err)
		}
		rows = append(rows, Row{OTU: a.OTU, Lineage: t})
	}
	for _, otu := range opts.OTUs {
		if seen[otu] {
			continue
		}
		seen[otu] = true
		rows = append(rows, Row{OTU: otu})
	}
	return rows, nil
}

// ReadOTUs reads a list of OTU ids, one per line, from r. A leading '>'
// is removed and blank lines are ignored, so the headers of an OTU FASTA
// file may be used.
func ReadOTUs(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	otus := []string{}
	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		id = strings.TrimPrefix(id, ">")
		if id == "" {
			continue
		}
		if i := strings.IndexAny(id, " \t"); i >= 0 {
			id = id[:i]
		}
		otus = append(otus, id)
	}
	return otus, sc.Err()
}

// WriteTable writes rows to w as a table with a column for each rank.
// Shorter lineages are padded with empty ranks and longer lineages are
// cut at the species rank.
func WriteTable(w io.Writer, rows []Row) error {
	tw := table.NewWriter(w)
	err := tw.Write(append([]string{"OTU"}, Ranks...))
	if err != nil {
		return err
	}
	for _, r := range rows {
		l := r.Lineage
		if len(l) > len(Ranks) {
			l = l[:len(Ranks)]
		}
		fields := make([]string, 1, 1+len(Ranks))
		fields[0] = r.OTU
		fields = append(fields, l...)
		for len(fields) < 1+len(Ranks) {
			fields = append(fields, "")
		}
		err = tw.Write(fields)
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WritePrefixed writes rows to w as a two column table holding the OTU
// and its lineage in rank prefixed form.
func WritePrefixed(w io.Writer, rows []Row) error {
	tw := table.NewWriter(w)
	err := tw.Write([]string{"OTU", "Taxonomy"})
	if err != nil {
		return err
	}
	for _, r := range rows {
		err = tw.Write([]string{r.OTU, Prefixed(r.Lineage)})
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Prefixed returns l formatted with rank prefixes, k__ to s__. The
// result always holds seven ranks; missing ranks are empty and ranks
// beyond species are not included.
func Prefixed(l Lineage) string {
	var b strings.Builder
	for i, p := range rankPrefixes {
		if i != 0 {
			b.WriteByte(';')
		}
		b.WriteString(p)
		if i < len(l) {
			b.WriteString(l[i])
		}
	}
	return b.String()
}
