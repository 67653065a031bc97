// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table provides reading and writing of tab-delimited tables.
//
// Fields are separated by a single tab character and are not quoted.
package table

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ErrNoHeader is returned by NewReader when the table has no header row.
var ErrNoHeader = errors.New("table: missing header")

// maxLine is the longest line accepted by a Reader. Count matrices with
// many samples produce long rows.
const maxLine = 1 << 26

// Reader reads rows from a tab-delimited table. Blank lines are skipped.
type Reader struct {
	sc     *bufio.Scanner
	header []string
	line   int
}

// NewReader returns a Reader that reads the first row of r as the
// table's header.
func NewReader(r io.Reader) (*Reader, error) {
	tr := NewHeaderlessReader(r)
	h, err := tr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}
	tr.header = h
	return tr, nil
}

// NewHeaderlessReader returns a Reader for a table without a header row.
func NewHeaderlessReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLine)
	return &Reader{sc: sc}
}

// Header returns the header row of the table. It is nil for a headerless
// table.
func (r *Reader) Header() []string { return r.header }

// Line returns the line number of the last row read.
func (r *Reader) Line() int { return r.line }

// Read returns the next row of the table. At the end of the table Read
// returns io.EOF.
func (r *Reader) Read() ([]string, error) {
	for r.sc.Scan() {
		r.line++
		line := strings.TrimSuffix(r.sc.Text(), "\r")
		if line == "" {
			continue
		}
		return strings.Split(line, "\t"), nil
	}
	err := r.sc.Err()
	if err == nil {
		err = io.EOF
	}
	return nil, err
}

// Writer writes rows to a tab-delimited table.
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a Writer that writes to w. Output is buffered and
// Flush must be called when writing is complete.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

var fieldSafe = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// Write writes a single row. Tab and newline characters within fields
// are replaced with spaces.
func (w *Writer) Write(row []string) error {
	for i, f := range row {
		if i != 0 {
			w.w.WriteByte('\t')
		}
		fieldSafe.WriteString(w.w, f)
	}
	return w.w.WriteByte('\n')
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
