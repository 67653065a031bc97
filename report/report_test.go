// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kortschak/masque/fastx"
)

func TestStats(t *testing.T) {
	for _, test := range []struct {
		lengths []int
		want    SizeStats
		fields  []string
	}{
		{lengths: []int{4, 2, 7, 1}, want: SizeStats{Count: 4, Mean: 3.5, Median: 4}, fields: []string{"4", "3.5", "4"}},
		{lengths: []int{250, 251, 253}, want: SizeStats{Count: 3, Mean: 251.33333333333334, Median: 251}, fields: []string{"3", "251.33", "251"}},
		{lengths: []int{10}, want: SizeStats{Count: 1, Mean: 10, Median: 10}, fields: []string{"1", "10", "10"}},
		{lengths: nil, want: SizeStats{}, fields: []string{"0", "0", "0"}},
	} {
		got := Stats(test.lengths)
		if !cmp.Equal(got, test.want) {
			t.Errorf("unexpected stats for %v: got:%+v want:%+v", test.lengths, got, test.want)
		}
		if !cmp.Equal(got.Fields(), test.fields) {
			t.Errorf("unexpected fields for %v: got:%q want:%q", test.lengths, got.Fields(), test.fields)
		}
	}
}

func TestStatsDoesNotSortInput(t *testing.T) {
	lengths := []int{4, 2, 7, 1}
	Stats(lengths)
	if !cmp.Equal(lengths, []int{4, 2, 7, 1}) {
		t.Errorf("input altered: %v", lengths)
	}
}

func TestReadStats(t *testing.T) {
	const in = "@r1\nACGT\n+\nIIII\n@r2\nAC\n+\nII\n@r3\nACGTACG\n+\nIIIIIII\n"
	got, err := ReadStats(strings.NewReader(in), fastx.FASTQ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := SizeStats{Count: 3, Mean: 13.0 / 3, Median: 4}
	if !cmp.Equal(got, want) {
		t.Errorf("unexpected stats: got:%+v want:%+v", got, want)
	}
}

func TestReadStage(t *testing.T) {
	const in = ">a;barcodelabel=S1;size=3;\nACGT\n>b;barcodelabel=S2;size=1;\nACG\n>c;barcodelabel=S1;size=2;\nACGTA\n>d\nAC\n"
	st, counts, err := ReadStage(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (SizeStats{Count: 4, Mean: 3.5, Median: 4}); st != want {
		t.Errorf("unexpected stats: got:%+v want:%+v", st, want)
	}
	if want := map[string]int{"S1": 2, "S2": 1}; !cmp.Equal(counts, want) {
		t.Errorf("unexpected counts: got:%v want:%v", counts, want)
	}
}

func TestSampleName(t *testing.T) {
	for _, test := range []struct {
		path     string
		suffixes []string
		want     string
	}{
		{path: "/data/raw/S1-R1.fastq", suffixes: PairedSuffixes, want: "S1"},
		{path: "/data/raw/S1_R1_001.fastq.gz", suffixes: PairedSuffixes, want: "S1"},
		{path: "/data/reads/S1_alien_f_filt.fastq", suffixes: PairedSuffixes, want: "S1"},
		{path: "/data/reads/S2_alien_filt.fq", suffixes: SingleSuffixes, want: "S2"},
		{path: "S3.fastq", want: "S3"},
	} {
		got := SampleName(test.path, test.suffixes...)
		if got != test.want {
			t.Errorf("unexpected sample name for %q: got:%q want:%q", test.path, got, test.want)
		}
	}
}

func TestLogSampleName(t *testing.T) {
	for _, test := range []struct {
		path, tool, tag string
		want            string
	}{
		{path: "/data/log/log_alientrimmer_S1.txt", tool: "alientrimmer", want: "S1"},
		{path: "/data/log/log_mapping_S1_1.txt", tool: "mapping", tag: "_1", want: "S1"},
		{path: "/data/log/log_mapping_S1_2.txt", tool: "mapping", tag: "_2", want: "S1"},
	} {
		got := LogSampleName(test.path, test.tool, test.tag)
		if got != test.want {
			t.Errorf("unexpected sample name for %q: got:%q want:%q", test.path, got, test.want)
		}
	}
}

func TestMate(t *testing.T) {
	got := Mate("/runs/R1/S1_R1_001.fastq", "R1", "R2")
	if want := "/runs/R1/S1_R2_001.fastq"; got != want {
		t.Errorf("unexpected mate: got:%q want:%q", got, want)
	}
}

const (
	alienSingleLog = `AlienTrimmer output
	1,000 reads processed
	total:   1,000 trimmed 12 removed
`
	alienPairedLog = `AlienTrimmer output
	total: 900 trimmed (fwd: 500 rev: 400) 20 removed (fwd: 12 rev: 8)
`
	flashLog = `[FLASH] Read combination statistics:
[FLASH]     Total pairs:      10000
[FLASH]     Combined pairs:   9000
[FLASH]     Uncombined pairs: 1000
[FLASH]     Percent combined: 90.00%
`
	mappingLog = `10000 reads; of these:
  10000 (100.00%) were unpaired; of these:
    9000 (90.00%) aligned 0 times
    800 (8.00%) aligned exactly 1 time
    200 (2.00%) aligned >1 times
10.00% overall alignment rate
`
)

func TestLogParser(t *testing.T) {
	for _, test := range []struct {
		name    string
		parser  LogParser
		log     string
		want    []int
		wantErr bool
	}{
		{name: "alien single", parser: AlienTrimmer(false), log: alienSingleLog, want: []int{1000, 12}},
		{name: "alien paired", parser: AlienTrimmer(true), log: alienPairedLog, want: []int{900, 500, 400, 20, 12, 8}},
		{name: "alien empty", parser: AlienTrimmer(true), log: "nothing here\n", want: []int{0, 0, 0, 0, 0, 0}},
		{name: "flash", parser: Flash(), log: flashLog, want: []int{10000, 9000, 1000}},
		{name: "mapping", parser: Mapping(), log: mappingLog, want: []int{800, 200}},
		{name: "mapping empty", parser: Mapping(), log: "nothing here\n", wantErr: true},
		{name: "mapping bad number", parser: Mapping(), log: "    many (8.00%) aligned exactly 1 time\n", wantErr: true},
	} {
		got, err := test.parser.Parse(strings.NewReader(test.log))
		if (err != nil) != test.wantErr {
			t.Errorf("unexpected error for %s: %v", test.name, err)
			continue
		}
		if test.wantErr {
			continue
		}
		if !cmp.Equal(got, test.want) {
			t.Errorf("unexpected values for %s: got:%v want:%v", test.name, got, test.want)
		}
	}
}

func TestMappedCounts(t *testing.T) {
	const in = "OTU\tS1\tS2\nOTU_1\t3\t0\nOTU_2\t5\t7\n"
	got, err := MappedCounts(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := map[string]int{"S1": 8, "S2": 7}; !cmp.Equal(got, want) {
		t.Errorf("unexpected counts: got:%v want:%v", got, want)
	}
	_, err = MappedCounts(strings.NewReader("OTU\tS1\nOTU_1\tthree\n"))
	if err == nil {
		t.Error("expected error for non-numeric count")
	}
}

func TestWriteFunnelSingle(t *testing.T) {
	samples := NewSamples()
	s := samples.Add("S1")
	s.Stats[Raw] = Stats([]int{4, 2, 7, 1})
	s.Stats[Filtered] = Stats([]int{4, 4, 4, 4})
	s.Counts[Trimming] = []int{10, 2}
	s.Counts[Human] = []int{3, 1}
	s.Steps[Dereplication] = 3
	s.Steps[Singleton] = 2
	s.Steps[Chimera] = 2
	s.Steps[OTU] = 1
	s.Steps[Mapped] = 3
	samples.Add("S0")

	var buf bytes.Buffer
	err := WriteFunnel(&buf, samples, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("unexpected number of lines: got:%d want:3", len(lines))
	}
	if got := strings.Split(lines[0], "\t"); !cmp.Equal(got, singleHeader) {
		t.Errorf("unexpected header: %q", got)
	}
	want := []string{
		"S0\t0\t0\t0\t0\t0\t0\t0\t0\t0\t0\t0\t0\t0\t0\t0\t0\t0\t0",
		"S1\t4\t3.5\t4\t10\t2\t3\t1\t0\t0\t4\t4\t4\t3\t2\t2\t1\t3\t75",
	}
	if !cmp.Equal(lines[1:], want) {
		t.Errorf("unexpected rows:\ngot: %q\nwant:%q", lines[1:], want)
	}
}

func TestWriteFunnelPaired(t *testing.T) {
	samples := NewSamples()
	s := samples.Add("S1")
	s.Counts[Merging] = []int{10, 8, 2}
	s.Steps[Mapped] = 6

	var buf bytes.Buffer
	err := WriteFunnel(&buf, samples, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected number of lines: got:%d want:2", len(lines))
	}
	row := strings.Split(lines[1], "\t")
	if len(row) != len(pairedHeader) {
		t.Fatalf("unexpected row length: got:%d want:%d", len(row), len(pairedHeader))
	}
	got := map[string]string{}
	for i, h := range pairedHeader {
		got[h] = row[i]
	}
	for h, want := range map[string]string{
		"Combined pairs":           "8",
		"Uncombined pairs":         "2",
		"Mapped_reads":             "6",
		"Mapping_percent_combined": "75",
		"Trimmed_rev":              "0",
	} {
		if got[h] != want {
			t.Errorf("unexpected value for %s: got:%q want:%q", h, got[h], want)
		}
	}
}

func TestWriteGlobal(t *testing.T) {
	g := Global{
		Stages: map[string]SizeStats{
			Extended:      {Count: 10, Mean: 250.5, Median: 251},
			Dereplication: {Count: 6, Mean: 250, Median: 250},
			OTU:           {Count: 2, Mean: 252, Median: 252},
		},
		Annotations: map[string]int{"rdp": 2, "silva": 1},
	}
	var buf bytes.Buffer
	err := WriteGlobal(&buf, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const want = "Type\tCount\tMean_length\tMedian_length\n" +
		"Amplicon\t10\t250.5\t251\n" +
		"Dereplication\t6\t250\t250\n" +
		"OTU\t2\t252\t252\n" +
		"silva_annotation\t1\n" +
		"rdp_annotation\t2\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected report:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCountRows(t *testing.T) {
	for _, test := range []struct {
		in   string
		want int
	}{
		{in: "OTU\tKingdom\nOTU_1\tBacteria\nOTU_2\tBacteria\n", want: 2},
		{in: "OTU\tKingdom\n", want: 0},
		{in: "", want: 0},
	} {
		got, err := CountRows(strings.NewReader(test.in))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if got != test.want {
			t.Errorf("unexpected count: got:%d want:%d", got, test.want)
		}
	}
}
