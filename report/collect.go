// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kortschak/masque/fastx"
	"github.com/kortschak/masque/table"
)

// Collector gathers processing results from the output directories of
// an amplicon processing run.
type Collector struct {
	// Data is the run's result directory.
	Data string

	// Raw is the directory holding the raw
	// reads. Amplicon is the directory
	// holding pre-merged amplicon reads and
	// is used when Raw is empty.
	Raw      string
	Amplicon string

	// Paired indicates that the run
	// used paired-end reads.
	Paired bool

	// Warn is called with a description
	// of non-fatal problems. If Warn is
	// nil, problems are ignored.
	Warn func(format string, args ...interface{})
}

// stageFiles lists the per-stage FASTA file patterns in the result
// directory.
var stageFiles = []struct {
	key     string
	pattern string
}{
	{key: Dereplication, pattern: "*_drep.fasta"},
	{key: Singleton, pattern: "*_sorted.fasta"},
	{key: Chimera, pattern: "*_nochim.fasta"},
	{key: OTU, pattern: "*_otu_compl.fasta"},
}

// annotationFiles holds the annotation table patterns for each
// database.
var annotationFiles = map[string]string{
	"silva":      "*_silva_annotation_eval*.tsv",
	"greengenes": "*_greengenes_annotation_*.tsv",
	"unite":      "*_unite_annotation_*.tsv",
	"findley":    "*_findley_annotation_*.tsv",
	"rdp":        "*_rdp.tsv",
	"underhill":  "*_underhill_annotation_*.tsv",
}

// Collect returns the per-sample and whole-run results found in the
// directories specified by c.
func (c Collector) Collect() (*Samples, Global, error) {
	samples := NewSamples()
	g := Global{Stages: make(map[string]SizeStats), Annotations: make(map[string]int)}

	var err error
	switch {
	case c.Raw != "":
		if c.Paired {
			err = c.pairedReads(samples, c.Raw, "*R1*.f*q", "R1", "R2", RawFwd, RawRev, PairedSuffixes)
		} else {
			err = c.singleReads(samples, c.Raw, "*.f*q", Raw, SingleSuffixes)
		}
	case c.Amplicon != "":
		err = c.singleReads(samples, c.Amplicon, "*.f*q", Raw, SingleSuffixes)
	default:
		return nil, g, fmt.Errorf("report: no raw reads or amplicon directory")
	}
	if err != nil {
		return nil, g, err
	}

	reads := filepath.Join(c.Data, "reads")
	if isDir(reads) {
		if c.Paired {
			err = c.pairedReads(samples, reads, "*alien_f_filt.fastq", "alien_f_filt", "alien_r_filt", FilteredFw, FilteredRv, PairedSuffixes)
		} else {
			err = c.singleReads(samples, reads, "*alien_filt.f*q", Filtered, SingleSuffixes)
		}
		if err != nil {
			return nil, g, err
		}
	} else {
		c.warn("read directory is missing: %s", reads)
	}

	logs := filepath.Join(c.Data, "log")
	if isDir(logs) {
		err = c.logs(samples, logs)
		if err != nil {
			return nil, g, err
		}
	} else {
		c.warn("log directory is missing: %s", logs)
	}

	paths := c.glob(c.Data, "*_extendedFrags.fasta")
	if len(paths) != 0 {
		g.Stages[Extended], _, err = readStage(paths[0])
		if err != nil {
			return nil, g, err
		}
	}
	for _, s := range stageFiles {
		paths := c.glob(c.Data, s.pattern)
		if len(paths) == 0 {
			return nil, g, fmt.Errorf("report: no %s file in %s", s.pattern, c.Data)
		}
		st, counts, err := readStage(paths[0])
		if err != nil {
			return nil, g, err
		}
		g.Stages[s.key] = st
		samples.SetStep(s.key, counts)
	}

	paths = c.glob(c.Data, "*_otu_table.tsv")
	if len(paths) == 0 {
		return nil, g, fmt.Errorf("report: no OTU table in %s", c.Data)
	}
	mapped, err := readMapped(paths[0])
	if err != nil {
		return nil, g, err
	}
	names := make([]string, 0, len(mapped))
	for name := range mapped {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		smp, ok := samples.Get(name)
		if !ok {
			c.warn("sample not identified: %s", name)
			continue
		}
		smp.Steps[Mapped] = mapped[name]
	}

	for _, db := range Databases {
		paths := c.glob(c.Data, annotationFiles[db])
		if len(paths) == 0 {
			continue
		}
		n, err := countRows(paths[0])
		if err != nil {
			return nil, g, err
		}
		g.Annotations[db] = n
	}

	return samples, g, nil
}

func (c Collector) singleReads(samples *Samples, dir, pattern, key string, suffixes []string) error {
	paths := c.glob(dir, pattern, pattern+".gz")
	if len(paths) == 0 {
		return fmt.Errorf("report: no read file matching %s in %s", pattern, dir)
	}
	for _, p := range paths {
		st, err := readStats(p)
		if err != nil {
			return err
		}
		samples.Add(SampleName(p, suffixes...)).Stats[key] = st
	}
	return nil
}

func (c Collector) pairedReads(samples *Samples, dir, pattern, fwd, rev, fwdKey, revKey string, suffixes []string) error {
	paths := c.glob(dir, pattern, pattern+".gz")
	if len(paths) == 0 {
		return fmt.Errorf("report: no read file matching %s in %s", pattern, dir)
	}
	for _, p := range paths {
		smp := samples.Add(SampleName(p, suffixes...))
		st, err := readStats(p)
		if err != nil {
			return err
		}
		smp.Stats[fwdKey] = st
		st, err = readStats(Mate(p, fwd, rev))
		if err != nil {
			return err
		}
		smp.Stats[revKey] = st
	}
	return nil
}

func (c Collector) logs(samples *Samples, dir string) error {
	logs := []struct {
		parser  LogParser
		pattern string
		tag     string
		key     string
	}{
		{parser: AlienTrimmer(c.Paired), pattern: "log_alientrimmer*.txt", key: Trimming},
		{parser: Flash(), pattern: "log_flash*.txt", key: Merging},
		{parser: Mapping(), pattern: "log_mapping*_1.txt", tag: "_1", key: Human},
		{parser: Mapping(), pattern: "log_mapping*_2.txt", tag: "_2", key: PhiX},
	}
	for _, l := range logs {
		if l.key == Merging && !c.Paired {
			continue
		}
		paths := c.glob(dir, l.pattern)
		if len(paths) == 0 {
			c.warn("no %s log found in %s", l.parser.Tool, dir)
			continue
		}
		for _, p := range paths {
			name := LogSampleName(p, l.parser.Tool, l.tag)
			smp, ok := samples.Get(name)
			if !ok {
				c.warn("sample not identified: %s", name)
				continue
			}
			f, err := os.Open(p)
			if err != nil {
				return err
			}
			values, err := l.parser.Parse(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("%v in %q", err, p)
			}
			smp.Counts[l.key] = values
		}
	}
	return nil
}

// glob returns the sorted paths in dir matching any of the patterns.
// Pattern syntax in dir is matched literally.
func (c Collector) glob(dir string, patterns ...string) []string {
	dir = quoteMeta(dir)
	var paths []string
	for _, pat := range patterns {
		m, err := filepath.Glob(filepath.Join(dir, pat))
		if err != nil {
			panic(err)
		}
		paths = append(paths, m...)
	}
	sort.Strings(paths)
	return paths
}

// quoteMeta returns path with glob metacharacters escaped.
func quoteMeta(path string) string {
	var b strings.Builder
	for _, r := range path {
		switch r {
		case '*', '?', '[':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		case '\\':
			if os.PathSeparator != '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (c Collector) warn(format string, args ...interface{}) {
	if c.Warn != nil {
		c.Warn(format, args...)
	}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func readStats(path string) (SizeStats, error) {
	f, err := fastx.Open(path)
	if err != nil {
		return SizeStats{}, err
	}
	defer f.Close()
	st, err := ReadStats(f, fastx.FASTQ)
	if err != nil {
		return st, fmt.Errorf("%v in %q", err, path)
	}
	return st, nil
}

func readStage(path string) (SizeStats, map[string]int, error) {
	f, err := fastx.Open(path)
	if err != nil {
		return SizeStats{}, nil, err
	}
	defer f.Close()
	st, counts, err := ReadStage(f)
	if err != nil {
		return st, nil, fmt.Errorf("%v in %q", err, path)
	}
	return st, counts, nil
}

func readMapped(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return MappedCounts(f)
}

func countRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return CountRows(f)
}

// MappedCounts returns the total count for each sample column of the
// OTU count table read from r.
func MappedCounts(r io.Reader) (counts map[string]int, err error) {
	tr, err := table.NewReader(r)
	if err != nil {
		return nil, err
	}
	samples := tr.Header()[1:]
	counts = make(map[string]int, len(samples))
	for _, s := range samples {
		counts[s] = 0
	}
	defer handlePanic(&err)
	for {
		row, err := tr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, s := range samples {
			if i+1 >= len(row) {
				return nil, fmt.Errorf("report: short row on line %d of OTU table", tr.Line())
			}
			counts[s] += mustAtoi(row[i+1])
		}
	}
	return counts, nil
}
