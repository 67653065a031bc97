// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// LogParser extracts numeric values from the log of a processing tool.
type LogParser struct {
	// Tool is the name of the tool as used
	// in its log file names.
	Tool string

	re *regexp.Regexp

	// zeros is the number of zero values
	// returned for a log without matches.
	// If zeros is zero, a log without any
	// match is an error.
	zeros int
}

var (
	alienSingle = regexp.MustCompile(`^.+\s+(\S+)\s+trimmed\s+(\S+)\s+removed`)
	alienPaired = regexp.MustCompile(`^.+\s+(\S+)\s+trimmed\s+\(fwd:\s+(\S+)\s+rev:\s+(\S+)\)\s+(\S+)\s+removed\s+\(fwd:\s+(\S+)\s+rev:\s+(\S+)\)`)
	flashPairs  = regexp.MustCompile(`^\S+\s+\S+\s+pairs:\s+(\S+)`)
	mappingHits = regexp.MustCompile(`^\s+(\S+)\s+.+\s+aligned\s+(?:exactly\s+|>)1\s+time`)
)

// AlienTrimmer returns a LogParser for AlienTrimmer logs. Single read
// logs yield the trimmed and removed counts. Paired read logs yield the
// total, forward and reverse trimmed counts followed by the total,
// forward and reverse removed counts.
func AlienTrimmer(paired bool) LogParser {
	if paired {
		return LogParser{Tool: "alientrimmer", re: alienPaired, zeros: 6}
	}
	return LogParser{Tool: "alientrimmer", re: alienSingle, zeros: 2}
}

// Flash returns a LogParser for FLASh logs yielding the total, combined
// and uncombined pair counts.
func Flash() LogParser {
	return LogParser{Tool: "flash", re: flashPairs}
}

// Mapping returns a LogParser for bowtie2 mapping logs yielding the
// counts of reads aligned exactly once and more than once.
func Mapping() LogParser {
	return LogParser{Tool: "mapping", re: mappingHits}
}

var numberJunk = strings.NewReplacer(",", "", "%", "")

// Parse returns the values captured from all matching lines of the log
// read from r in order of appearance.
func (p LogParser) Parse(r io.Reader) (values []int, err error) {
	defer handlePanic(&err)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := p.re.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		for _, v := range m[1:] {
			values = append(values, mustAtoi(numberJunk.Replace(v)))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		if p.zeros == 0 {
			return nil, fmt.Errorf("report: no data parsed from %s log", p.Tool)
		}
		values = make([]int, p.zeros)
	}
	return values, nil
}

func handlePanic(err *error) {
	r := recover()
	if r != nil {
		switch r := r.(type) {
		case error:
			*err = r
		default:
			panic(r)
		}
	}
}

func mustAtoi(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return i
}
