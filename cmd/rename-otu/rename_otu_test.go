// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRename(t *testing.T) {
	long := strings.Repeat("ACGT", 25)
	in := ">centroid=a;size=10\n" + long + "\n>centroid=b;size=3\nAC\nGT\n"
	var buf bytes.Buffer
	n, err := rename(&buf, strings.NewReader(in), "OTU_", 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("unexpected number of sequences: got:%d want:2", n)
	}
	want := ">OTU_1\n" + long[:80] + "\n" + long[80:] + "\n>OTU_2\nACGT\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenameEmpty(t *testing.T) {
	var buf bytes.Buffer
	n, err := rename(&buf, strings.NewReader(""), "OTU_", 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 || buf.Len() != 0 {
		t.Errorf("unexpected output for empty input: n=%d %q", n, buf.String())
	}
}
