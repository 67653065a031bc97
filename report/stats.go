// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report provides summary reporting of amplicon processing
// results.
package report

import (
	"io"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/kortschak/masque/fastx"
)

// SizeStats holds summary statistics of a set of sequence lengths.
type SizeStats struct {
	Count  int
	Mean   float64
	Median int
}

// Stats returns the count, mean and lower median of lengths.
// Stats of an empty set is the zero SizeStats.
func Stats(lengths []int) SizeStats {
	if len(lengths) == 0 {
		return SizeStats{}
	}
	x := make([]float64, len(lengths))
	for i, l := range lengths {
		x[i] = float64(l)
	}
	sorted := append([]int(nil), lengths...)
	sort.Ints(sorted)
	return SizeStats{
		Count:  len(lengths),
		Mean:   stat.Mean(x, nil),
		Median: sorted[len(sorted)/2],
	}
}

// Fields returns the count, mean and median of s formatted for output.
func (s SizeStats) Fields() []string {
	return []string{strconv.Itoa(s.Count), formatFloat(s.Mean), strconv.Itoa(s.Median)}
}

// formatFloat returns v rounded to two decimal places.
func formatFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// ReadStats returns the length statistics of the sequence records in r.
func ReadStats(r io.Reader, f fastx.Format) (SizeStats, error) {
	lengths, err := fastx.Lengths(fastx.NewReader(r, f))
	if err != nil {
		return SizeStats{}, err
	}
	return Stats(lengths), nil
}

// ReadStage returns the length statistics of the FASTA records in r and
// the number of records carrying each sample label.
func ReadStage(r io.Reader) (SizeStats, map[string]int, error) {
	sr := fastx.NewReader(r, fastx.FASTA)
	counts := make(map[string]int)
	var lengths []int
	for {
		rec, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return SizeStats{}, nil, err
		}
		lengths = append(lengths, len(rec.Seq))
		if a, ok := fastx.ParseAnnotation(rec.Header()); ok {
			counts[a.Label]++
		}
	}
	return Stats(lengths), counts, nil
}
