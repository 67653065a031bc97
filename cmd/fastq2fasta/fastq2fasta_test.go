// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	const in = "@read1 1:N:0:1\nACGTACGT\n+\nIIIIIIII\n@read2\nGGCC\n+\nIIII\n"
	for _, test := range []struct {
		sample string
		want   string
	}{
		{sample: "", want: ">read1\nACGTACGT\n>read2\nGGCC\n"},
		{sample: "S1", want: ">read1;barcodelabel=S1\nACGTACGT\n>read2;barcodelabel=S1\nGGCC\n"},
	} {
		var buf bytes.Buffer
		n, err := convert(&buf, strings.NewReader(in), test.sample)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 2 {
			t.Errorf("unexpected number of records: got:%d want:2", n)
		}
		if got := buf.String(); got != test.want {
			t.Errorf("unexpected output for sample %q:\ngot:\n%s\nwant:\n%s", test.sample, got, test.want)
		}
	}
}

func TestConvertMalformed(t *testing.T) {
	_, err := convert(&bytes.Buffer{}, strings.NewReader("@read1\nACGT\n+\nII\n"), "")
	if err == nil {
		t.Error("expected error for malformed record")
	}
}
