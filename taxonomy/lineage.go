// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIdentityTooLow is returned by Truncate when a hit's identity is
// below the lowest classification threshold.
var ErrIdentityTooLow = errors.New("taxonomy: identity too low")

// Lineage is an ordered list of rank names from kingdom down. Empty
// names mark uninformative ranks.
type Lineage []string

func (l Lineage) String() string { return strings.Join(l, ";") }

// Depth returns the number of non-empty ranks in l.
func (l Lineage) Depth() int {
	var n int
	for _, r := range l {
		if r != "" {
			n++
		}
	}
	return n
}

// Policy specifies the handling of hits below the lowest identity
// threshold.
type Policy int

const (
	// Strict treats a hit below the lowest threshold as an error.
	Strict Policy = iota
	// Lenient gives a hit below the lowest threshold an empty lineage.
	Lenient
)

// ParsePolicy returns the Policy named by s.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return 0, fmt.Errorf("taxonomy: unknown identity policy: %q", s)
	}
}

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// thresholds lists the minimum percent identity required to retain all
// but drop of the lowest ranks of a lineage.
var thresholds = []struct {
	min  float64
	drop int
}{
	{min: 94.5, drop: 0},
	{min: 86.5, drop: 2},
	{min: 82, drop: 3},
	{min: 78.5, drop: 4},
	{min: 75, drop: 5},
}

// Dropped returns the number of ranks removed from a lineage for a hit
// with the given percent identity. The returned bool is false if the
// identity is below the lowest threshold.
func Dropped(identity float64) (int, bool) {
	for _, t := range thresholds {
		if identity >= t.min {
			return t.drop, true
		}
	}
	return 0, false
}

// Truncate returns l with its lowest ranks removed according to the
// percent identity of the hit that assigned it. The returned Lineage
// shares storage with l.
func Truncate(l Lineage, identity float64, p Policy) (Lineage, error) {
	drop, ok := Dropped(identity)
	if !ok {
		if p == Lenient {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v%%", ErrIdentityTooLow, identity)
	}
	if drop >= len(l) {
		return nil, nil
	}
	n := len(l) - drop
	return l[:n:n], nil
}
