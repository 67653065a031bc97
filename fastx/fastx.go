// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fastx provides reading and writing of FASTA and FASTQ records
// produced and consumed by amplicon processing pipelines.
package fastx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/klauspost/pgzip"
)

// Format specifies a sequence file format.
type Format int

const (
	FASTA Format = iota
	FASTQ
)

func (f Format) String() string {
	switch f {
	case FASTA:
		return "fasta"
	case FASTQ:
		return "fastq"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Record is a single sequence record. Qual is empty for FASTA records.
type Record struct {
	ID   string
	Desc string
	Seq  string
	Qual string
}

// Header returns the header line of the record without its leading
// marker.
func (r Record) Header() string {
	if r.Desc == "" {
		return r.ID
	}
	return r.ID + " " + r.Desc
}

// Reader reads sequence records from an underlying stream.
type Reader struct {
	sc *seqio.Scanner
}

// NewReader returns a Reader reading records in format f from r.
func NewReader(r io.Reader, f Format) *Reader {
	var sr seqio.Reader
	switch f {
	case FASTA:
		sr = fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))
	case FASTQ:
		sr = fastq.NewReader(r, linear.NewQSeq("", nil, alphabet.DNA, alphabet.Sanger))
	default:
		panic(fmt.Sprintf("fastx: unknown format: %v", f))
	}
	return &Reader{sc: seqio.NewScanner(sr)}
}

// Read returns the next record in the stream. At the end of the stream
// Read returns io.EOF.
func (r *Reader) Read() (Record, error) {
	if !r.sc.Next() {
		err := r.sc.Error()
		if err == nil {
			err = io.EOF
		}
		return Record{}, err
	}
	switch s := r.sc.Seq().(type) {
	case *linear.Seq:
		letters := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			letters[i] = byte(l)
		}
		return Record{
			ID:   s.ID,
			Desc: s.Desc,
			Seq:  string(letters),
		}, nil
	case *linear.QSeq:
		letters := make([]byte, len(s.Seq))
		quals := make([]byte, len(s.Seq))
		for i, ql := range s.Seq {
			letters[i] = byte(ql.L)
			quals[i] = ql.Q.Encode(alphabet.Sanger)
		}
		return Record{
			ID:   s.ID,
			Desc: s.Desc,
			Seq:  string(letters),
			Qual: string(quals),
		}, nil
	default:
		panic(fmt.Sprintf("fastx: unexpected sequence type: %T", s))
	}
}

// Lengths returns the sequence lengths of all the records remaining in r.
func Lengths(r *Reader) ([]int, error) {
	var lengths []int
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return lengths, nil
		}
		if err != nil {
			return lengths, err
		}
		lengths = append(lengths, len(rec.Seq))
	}
}

// Writer writes FASTA records.
type Writer struct {
	w     io.Writer
	width int
}

// NewWriter returns a Writer that writes FASTA to w, wrapping sequence
// lines at width columns. If width is zero, sequences are written on a
// single line.
func NewWriter(w io.Writer, width int) *Writer {
	return &Writer{w: w, width: width}
}

// Write writes rec to the underlying stream in FASTA format.
func (w *Writer) Write(rec Record) error {
	s := linear.NewSeq(rec.ID, alphabet.BytesToLetters([]byte(rec.Seq)), alphabet.DNA)
	s.Desc = rec.Desc
	var err error
	if w.width > 0 {
		_, err = fmt.Fprintf(w.w, "%*a\n", w.width, s)
	} else {
		_, err = fmt.Fprintf(w.w, "%a\n", s)
	}
	return err
}

// Label returns id with a barcodelabel annotation for sample appended.
// If closed is true the annotation is terminated with a semicolon.
func Label(id, sample string, closed bool) string {
	if sample == "" {
		return id
	}
	id += ";barcodelabel=" + sample
	if closed {
		id += ";"
	}
	return id
}

// Annotation is the sample label and abundance carried in a record header.
type Annotation struct {
	Label string
	Size  int
}

var annotation = regexp.MustCompile(`barcodelabel=([^;\s]+);size=(\d+)`)

// ParseAnnotation returns the barcodelabel and size annotation held in
// header. The returned bool is false if no annotation is present.
func ParseAnnotation(header string) (Annotation, bool) {
	m := annotation.FindStringSubmatch(header)
	if m == nil {
		return Annotation{}, false
	}
	size, err := strconv.Atoi(m[2])
	if err != nil {
		return Annotation{}, false
	}
	return Annotation{Label: m[1], Size: size}, true
}

// Open opens the named file for reading. Files with a .gz extension are
// transparently decompressed.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) != ".gz" {
		return f, nil
	}
	gz, err := pgzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read gzip stream from %q: %v", path, err)
	}
	return gzipFile{Reader: gz, f: f}, nil
}

type gzipFile struct {
	*pgzip.Reader
	f *os.File
}

func (g gzipFile) Close() error {
	err := g.Reader.Close()
	ferr := g.f.Close()
	if err != nil {
		return err
	}
	return ferr
}
