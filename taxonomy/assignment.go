// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package taxonomy provides taxonomic annotation of OTUs from similarity
// search assignments against reference databases.
package taxonomy

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kortschak/masque/table"
)

var (
	// ErrNothingRead is returned when an assignment table holds no rows.
	ErrNothingRead = errors.New("taxonomy: nothing read")

	// ErrMissingReference is returned when an assigned reference has
	// no lineage in the database.
	ErrMissingReference = errors.New("taxonomy: reference not found in database")
)

const (
	queryField = iota
	targetField
	identityField

	minFields
)

// Assignment is a single similarity search hit of an OTU against a
// reference sequence.
type Assignment struct {
	OTU       string
	Reference string

	// Identity is the percent identity of the hit.
	Identity float64
}

// ReadAssignments reads tab-delimited similarity search results from r.
// Each row must begin with the query, target and percent identity
// fields; further fields are ignored. If best is true only the first
// row for each OTU is retained.
func ReadAssignments(r io.Reader, best bool) ([]Assignment, error) {
	tr := table.NewHeaderlessReader(r)
	seen := make(map[string]bool)
	var assigned []Assignment
	for {
		row, err := tr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		a, err := newAssignment(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", tr.Line(), err)
		}
		if best {
			if seen[a.OTU] {
				continue
			}
			seen[a.OTU] = true
		}
		assigned = append(assigned, a)
	}
	if len(assigned) == 0 {
		return nil, ErrNothingRead
	}
	return assigned, nil
}

func newAssignment(fields []string) (Assignment, error) {
	if len(fields) < minFields {
		return Assignment{}, fmt.Errorf("too few fields: %q", strings.Join(fields, "\t"))
	}
	id, err := strconv.ParseFloat(strings.TrimSpace(fields[identityField]), 64)
	if err != nil {
		return Assignment{}, err
	}
	return Assignment{
		OTU:       fields[queryField],
		Reference: strings.TrimSpace(fields[targetField]),
		Identity:  id,
	}, nil
}

// References returns the set of reference ids named in assigned.
func References(assigned []Assignment) map[string]bool {
	refs := make(map[string]bool)
	for _, a := range assigned {
		refs[a.Reference] = true
	}
	return refs
}
