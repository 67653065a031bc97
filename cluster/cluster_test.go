// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const swarm = "seqA;size=10; seqB;size=3;\n" +
	"seqC;size=8;\n" +
	"seqD;size=5; seqE;size=1; seqF;size=1;\n"

func TestNormalize(t *testing.T) {
	for _, test := range []struct {
		id, want string
	}{
		{id: "seqA;size=10;", want: "seqA"},
		{id: "seqA;barcodelabel=S1;size=10;", want: "seqA;barcodelabel=S1"},
		{id: "seqA;size=10", want: "seqA;size=10"},
		{id: "seqA", want: "seqA"},
	} {
		got := Normalize(test.id)
		if got != test.want {
			t.Errorf("unexpected normalised id for %q: got:%q want:%q", test.id, got, test.want)
		}
	}
}

func TestRead(t *testing.T) {
	m, err := Read(strings.NewReader(swarm), DefaultPrefix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []*Cluster{
		{Name: "OTU_1", Representative: "seqA", Members: []string{"seqA", "seqB"}},
		{Name: "OTU_2", Representative: "seqC", Members: []string{"seqC"}},
		{Name: "OTU_3", Representative: "seqD", Members: []string{"seqD", "seqE", "seqF"}},
	}
	if diff := cmp.Diff(want, m.Clusters); diff != "" {
		t.Errorf("unexpected clusters (-want +got):\n%s", diff)
	}

	lines := strings.Split(strings.TrimSpace(swarm), "\n")
	for i, line := range lines {
		rep := strings.Fields(line)[0]
		got, err := m.Label(rep)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", rep, err)
		}
		want := DefaultPrefix + string(rune('1'+i))
		if got != want {
			t.Errorf("unexpected label for line %d: got:%q want:%q", i+1, got, want)
		}
	}

	_, err = m.Label("seqB;size=3;")
	if !errors.Is(err, ErrUnknown) {
		t.Errorf("unexpected error for non-representative: got:%v want:%v", err, ErrUnknown)
	}
}

func TestReadInputOrder(t *testing.T) {
	const in = "zeta;size=9;\nalpha;size=4;\nmid;size=2;\n"
	m, err := Read(strings.NewReader(in), DefaultPrefix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, test := range []struct {
		id, want string
	}{
		{id: "zeta;size=9;", want: "OTU_1"},
		{id: "alpha;size=4;", want: "OTU_2"},
		{id: "mid;size=2;", want: "OTU_3"},
	} {
		got, err := m.Label(test.id)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", test.id, err)
		}
		if got != test.want {
			t.Errorf("unexpected label for %q: got:%q want:%q", test.id, got, test.want)
		}
	}
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(""), DefaultPrefix)
	if err != ErrEmpty {
		t.Errorf("unexpected error for empty input: got:%v want:%v", err, ErrEmpty)
	}
	_, err = Read(strings.NewReader("seqA;size=1;\n\nseqB;size=1;\n"), DefaultPrefix)
	if err == nil {
		t.Error("expected error for blank cluster line")
	}
	_, err = Read(strings.NewReader("seqA;size=1;\nseqA;size=1;\n"), DefaultPrefix)
	if err == nil {
		t.Error("expected error for duplicate representative")
	}
}

func TestWriteTable(t *testing.T) {
	m, err := Read(strings.NewReader(swarm), "C")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	err = m.WriteTable(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const want = "OTU\tOTU_representant\tOTU_cluster\n" +
		"C1\tseqA\tseqA seqB\n" +
		"C2\tseqC\tseqC\n" +
		"C3\tseqD\tseqD seqE seqF\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected table:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRewriteFASTA(t *testing.T) {
	m, err := Read(strings.NewReader(swarm), DefaultPrefix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const in = ">seqD;size=5;\nacgt\nACGT\n>seqA;size=10;\nTTGG\n"
	var buf bytes.Buffer
	err = RewriteFASTA(strings.NewReader(in), &buf, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const want = ">OTU_3\nACGTACGT\n>OTU_1\nTTGG\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected fasta:\ngot:\n%s\nwant:\n%s", got, want)
	}

	err = RewriteFASTA(strings.NewReader(">seqZ;size=1;\nACGT\n"), &bytes.Buffer{}, m)
	if !errors.Is(err, ErrUnknown) {
		t.Errorf("unexpected error for unknown sequence: got:%v want:%v", err, ErrUnknown)
	}
}

func TestRewriteTable(t *testing.T) {
	m, err := Read(strings.NewReader(swarm), DefaultPrefix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const in = "H\t0\t250\t99.6\t+\t0\t0\t250M\tread1;size=1;\tseqC;size=8;\n" +
		"N\t*\t*\t*\t*\t*\t*\t*\tread2;size=1;\t*\n"
	var buf bytes.Buffer
	err = RewriteTable(strings.NewReader(in), &buf, m, UclustTarget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const want = "H\t0\t250\t99.6\t+\t0\t0\t250M\tread1;size=1;\tOTU_2\n" +
		"N\t*\t*\t*\t*\t*\t*\t*\tread2;size=1;\t*\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected table:\ngot:\n%s\nwant:\n%s", got, want)
	}

	err = RewriteTable(strings.NewReader("H\t0\n"), &bytes.Buffer{}, m, UclustTarget)
	if err == nil {
		t.Error("expected error for short row")
	}
}
