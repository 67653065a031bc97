// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package taxonomy

import (
	"fmt"
	"io"
	"strings"

	"github.com/kortschak/masque/fastx"
	"github.com/kortschak/masque/table"
)

// Format is a reference database header format.
type Format int

const (
	Silva Format = iota
	RDP
	Greengenes
	Unite
	Findley
	Underhill
)

var formatNames = [...]string{
	Silva:      "silva",
	RDP:        "rdp",
	Greengenes: "greengenes",
	Unite:      "unite",
	Findley:    "findley",
	Underhill:  "underhill",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if s == name {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("taxonomy: unknown database type: %q", s)
}

// Formats returns the names of all known database formats.
func Formats() []string {
	return append([]string(nil), formatNames[:]...)
}

// Parse returns the reference id and lineage described by a database
// header line, without its leading '>'. The returned bool is false if
// the header does not hold a lineage in the format.
func (f Format) Parse(header string) (id string, lineage Lineage, ok bool) {
	switch f {
	case Silva:
		return parseSilva(header)
	case RDP:
		return parseRDP(header)
	case Greengenes, Unite, Findley:
		return parsePrefixed(header)
	case Underhill:
		return parseUnderhill(header)
	default:
		panic(fmt.Sprintf("taxonomy: unknown format: %v", f))
	}
}

// cut splits a header at its first run of white space.
func cut(header string) (id, desc string, ok bool) {
	header = strings.TrimSpace(header)
	i := strings.IndexAny(header, " \t")
	if i < 0 {
		return header, "", false
	}
	return header[:i], strings.TrimSpace(header[i+1:]), true
}

func parseSilva(header string) (string, Lineage, bool) {
	id, desc, ok := cut(header)
	if !ok || desc == "" {
		return "", nil, false
	}
	l := splitRanks(desc)
	if l[0] == "Eukaryota" {
		l = collapseEukaryota(l)
	}
	for i, r := range l {
		if uninformative(r) {
			l[i] = ""
		}
	}
	return id, l, true
}

// collapseEukaryota retains the domain, the fourth rank and everything
// from the eighth rank on, so that eukaryotic lineages align with the
// seven rank columns.
func collapseEukaryota(l Lineage) Lineage {
	c := Lineage{l[0]}
	if len(l) > 3 {
		c = append(c, l[3])
	}
	if len(l) > 7 {
		c = append(c, l[7:]...)
	}
	return c
}

var stoplist = map[string]bool{
	"uncultured":           true,
	"uncultured bacterium": true,
	"uncultured organism":  true,
	"uncultured archaeon":  true,
	"uncultured fungus":    true,
	"uncultured eukaryote": true,
	"metagenome":           true,
	"unidentified":         true,
	"Incertae Sedis":       true,
	"Incertae":             true,
}

func uninformative(rank string) bool {
	return stoplist[rank] ||
		strings.HasPrefix(rank, "uncultured") ||
		strings.Contains(rank, "Incertae")
}

const rdpLineage = "Lineage="

func parseRDP(header string) (string, Lineage, bool) {
	id, desc, _ := cut(header)
	i := strings.Index(desc, rdpLineage)
	if i < 0 {
		return "", nil, false
	}
	fields := strings.Split(strings.TrimRight(strings.TrimSpace(desc[i+len(rdpLineage):]), ";"), ";")
	if len(fields) < 3 {
		return "", nil, false
	}
	// Skip the Root;rootrank pair and take names from
	// the following name;rank pairs.
	var l Lineage
	for j := 2; j < len(fields); j += 2 {
		l = append(l, strings.Trim(strings.TrimSpace(fields[j]), `"`))
	}
	return id, l, true
}

func parsePrefixed(header string) (string, Lineage, bool) {
	id, desc, ok := cut(header)
	if !ok || desc == "" {
		return "", nil, false
	}
	return id, stripPrefixes(splitRanks(desc)), true
}

func parseUnderhill(header string) (string, Lineage, bool) {
	header = strings.TrimSpace(header)
	i := strings.Index(header, "|")
	if i < 0 {
		return "", nil, false
	}
	desc := strings.TrimSpace(header[i+1:])
	if desc == "" {
		return "", nil, false
	}
	return header[:i], stripPrefixes(splitRanks(desc)), true
}

// splitRanks splits a semicolon-separated lineage, dropping a trailing
// empty rank.
func splitRanks(desc string) Lineage {
	l := Lineage(strings.Split(desc, ";"))
	for i, r := range l {
		l[i] = strings.TrimSpace(r)
	}
	if len(l) > 1 && l[len(l)-1] == "" {
		l = l[:len(l)-1]
	}
	return l
}

// stripPrefixes removes rank prefixes of the form "k__" in place.
func stripPrefixes(l Lineage) Lineage {
	for i, r := range l {
		if len(r) >= 3 && r[1:3] == "__" {
			l[i] = r[3:]
		}
	}
	return l
}

// Lineages holds lineages keyed by reference id.
type Lineages map[string]Lineage

// ReadLineages reads the FASTA reference database in r, returning the
// lineages of the references in wanted. Reading stops when all wanted
// references have been found.
func ReadLineages(r io.Reader, f Format, wanted map[string]bool) (Lineages, error) {
	lineages := make(Lineages)
	if len(wanted) == 0 {
		return lineages, nil
	}
	sr := fastx.NewReader(r, fastx.FASTA)
	for len(lineages) < len(wanted) {
		rec, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return lineages, err
		}
		id, l, ok := f.Parse(rec.Header())
		if !ok || !wanted[id] {
			continue
		}
		if _, dup := lineages[id]; dup {
			continue
		}
		lineages[id] = l
	}
	return lineages, nil
}

// ReadTaxonomyTable reads a two column Greengenes taxonomy table from r,
// returning the lineages of the references in wanted. Reading stops when
// all wanted references have been found.
func ReadTaxonomyTable(r io.Reader, wanted map[string]bool) (Lineages, error) {
	lineages := make(Lineages)
	if len(wanted) == 0 {
		return lineages, nil
	}
	tr := table.NewHeaderlessReader(r)
	for len(lineages) < len(wanted) {
		row, err := tr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return lineages, err
		}
		if len(row) < 2 {
			return lineages, fmt.Errorf("taxonomy: too few fields on line %d", tr.Line())
		}
		id, l, ok := Greengenes.Parse(row[0] + " " + row[1])
		if !ok || !wanted[id] {
			continue
		}
		if _, dup := lineages[id]; dup {
			continue
		}
		lineages[id] = l
	}
	return lineages, nil
}
