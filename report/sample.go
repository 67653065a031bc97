// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/kortschak/masque/table"
)

// Keys for Sample.Stats.
const (
	Raw        = "raw"
	RawFwd     = "raw_fwd"
	RawRev     = "raw_rev"
	Filtered   = "proc"
	FilteredFw = "proc_fwd"
	FilteredRv = "proc_rev"
)

// Keys for Sample.Counts.
const (
	Trimming = "alientrimmer"
	Merging  = "flash"
	Human    = "mapping_1"
	PhiX     = "mapping_2"
)

// Keys for Sample.Steps.
const (
	Dereplication = "dereplication"
	Singleton     = "singleton"
	Chimera       = "chimera"
	OTU           = "otu"
	Mapped        = "mapped"
)

// Sample holds the processing results for a single sample.
type Sample struct {
	Name string

	// Stats holds read length statistics
	// keyed by read set.
	Stats map[string]SizeStats

	// Counts holds values extracted from
	// tool logs keyed by tool.
	Counts map[string][]int

	// Steps holds the number of sequences
	// retained by each processing step.
	Steps map[string]int
}

// Samples is a set of samples.
type Samples struct {
	samples map[string]*Sample
}

// NewSamples returns a new empty sample set.
func NewSamples() *Samples {
	return &Samples{samples: make(map[string]*Sample)}
}

// Add returns the sample with the given name, creating it if it does not
// already exist.
func (s *Samples) Add(name string) *Sample {
	if smp, ok := s.samples[name]; ok {
		return smp
	}
	smp := &Sample{
		Name:   name,
		Stats:  make(map[string]SizeStats),
		Counts: make(map[string][]int),
		Steps:  make(map[string]int),
	}
	s.samples[name] = smp
	return smp
}

// Get returns the named sample.
func (s *Samples) Get(name string) (*Sample, bool) {
	smp, ok := s.samples[name]
	return smp, ok
}

// Len returns the number of samples in the set.
func (s *Samples) Len() int { return len(s.samples) }

// Names returns the sorted names of the samples in the set.
func (s *Samples) Names() []string {
	names := make([]string, 0, len(s.samples))
	for n := range s.samples {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetStep records the number of sequences retained by a processing step
// for every sample. Samples missing from counts retained none.
func (s *Samples) SetStep(step string, counts map[string]int) {
	for name, smp := range s.samples {
		smp.Steps[step] = counts[name]
	}
}

var singleHeader = []string{
	"sample",
	"Raw_reads", "Raw_mean_length", "Raw_median_length",
	"Trimmed", "Removed",
	"mapping_human_1_time", "mapping_human_>1_time", "mapping_phiX_1_time", "mapping_phiX_>1_time",
	"Filtered_reads", "Filtered_mean_length", "Filtered_median_length",
	"Selected_dereplication", "Selected_singleton", "Selected_chimera", "Selected_otu",
	"Mapped_reads", "Mapping_percent_proc",
}

var pairedHeader = []string{
	"sample",
	"Raw_reads_fwd", "Raw_mean_length_fwd", "Raw_median_length_fwd",
	"Raw_reads_rev", "Raw_mean_length_rev", "Raw_median_length_rev",
	"Trimmed", "Trimmed_fwd", "Trimmed_rev", "Removed", "Removed_fwd", "Removed_rev",
	"mapping_human_1_time", "mapping_human_>1_time", "mapping_phiX_1_time", "mapping_phiX_>1_time",
	"Filtered_reads_fwd", "Filtered_mean_length_fwd", "Filtered_median_length_fwd",
	"Filtered_reads_rev", "Filtered_mean_length_rev", "Filtered_median_length_rev",
	"Combined pairs", "Uncombined pairs",
	"Selected_dereplication", "Selected_singleton", "Selected_chimera", "Selected_otu",
	"Mapped_reads", "Mapping_percent_combined",
}

// WriteFunnel writes the per-sample processing report for all samples
// in s to w. Samples are written in name order.
func WriteFunnel(w io.Writer, s *Samples, paired bool) error {
	tw := table.NewWriter(w)
	header := singleHeader
	if paired {
		header = pairedHeader
	}
	err := tw.Write(header)
	if err != nil {
		return err
	}
	for _, name := range s.Names() {
		smp, _ := s.Get(name)
		var row []string
		if paired {
			row = smp.pairedRow()
		} else {
			row = smp.singleRow()
		}
		if len(row) != len(header) {
			panic(fmt.Sprintf("report: row length mismatch: %d != %d", len(row), len(header)))
		}
		err = tw.Write(row)
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (s *Sample) singleRow() []string {
	row := []string{s.Name}
	row = append(row, s.Stats[Raw].Fields()...)
	row = append(row, ints(s.Counts[Trimming], 2)...)
	row = append(row, ints(s.Counts[Human], 2)...)
	row = append(row, ints(s.Counts[PhiX], 2)...)
	proc := s.Stats[Filtered]
	row = append(row, proc.Fields()...)
	return append(row, s.stepFields(proc.Count)...)
}

func (s *Sample) pairedRow() []string {
	row := []string{s.Name}
	row = append(row, s.Stats[RawFwd].Fields()...)
	row = append(row, s.Stats[RawRev].Fields()...)
	row = append(row, ints(s.Counts[Trimming], 6)...)
	row = append(row, ints(s.Counts[Human], 2)...)
	row = append(row, ints(s.Counts[PhiX], 2)...)
	row = append(row, s.Stats[FilteredFw].Fields()...)
	row = append(row, s.Stats[FilteredRv].Fields()...)
	var pairs []int
	if flash := s.Counts[Merging]; len(flash) > 1 {
		pairs = flash[1:]
	}
	row = append(row, ints(pairs, 2)...)
	var combined int
	if len(pairs) != 0 {
		combined = pairs[0]
	}
	return append(row, s.stepFields(combined)...)
}

// stepFields returns the step counts followed by the mapped read count
// and its percentage of total.
func (s *Sample) stepFields(total int) []string {
	f := make([]string, 0, 6)
	for _, step := range []string{Dereplication, Singleton, Chimera, OTU, Mapped} {
		f = append(f, strconv.Itoa(s.Steps[step]))
	}
	return append(f, formatFloat(percent(s.Steps[Mapped], total)))
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// ints returns the first n values of v formatted for output, padding
// with zeros.
func ints(v []int, n int) []string {
	f := make([]string, n)
	for i := range f {
		if i < len(v) {
			f[i] = strconv.Itoa(v[i])
		} else {
			f[i] = "0"
		}
	}
	return f
}
