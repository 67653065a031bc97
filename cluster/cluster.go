// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cluster provides renumbering of swarm OTU clusters and the
// relabelling of sequence and uclust files that refer to them.
package cluster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kortschak/masque/fastx"
	"github.com/kortschak/masque/table"
)

var (
	// ErrEmpty is returned by Read when no cluster is read.
	ErrEmpty = errors.New("cluster: no element read")

	// ErrUnknown is returned when an id does not
	// name a cluster representative.
	ErrUnknown = errors.New("cluster: unknown representative")
)

// DefaultPrefix is the default OTU label prefix.
const DefaultPrefix = "OTU_"

// UclustTarget is the column of uclust output holding the target id.
const UclustTarget = 9

// Normalize returns id with its trailing two semicolon-separated
// components removed, so "seq;size=12;" becomes "seq". Ids with fewer
// than three components are returned unaltered.
func Normalize(id string) string {
	f := strings.Split(id, ";")
	if len(f) < 3 {
		return id
	}
	return strings.Join(f[:len(f)-2], ";")
}

// Cluster is a single OTU cluster.
type Cluster struct {
	// Name is the OTU label.
	Name string

	// Representative is the normalised
	// id of the first cluster member.
	Representative string

	// Members holds the normalised ids
	// of all the cluster members,
	// including the representative.
	Members []string
}

// Map is a set of clusters indexed by their representative.
type Map struct {
	// Clusters holds the clusters
	// in input order.
	Clusters []*Cluster

	index map[string]*Cluster
}

// Read reads a swarm clustering file from r. Each line holds the space
// separated member ids of a cluster, the first being its representative.
// The cluster on line i is labelled prefix followed by i.
func Read(r io.Reader, prefix string) (*Map, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<28)
	m := &Map{index: make(map[string]*Cluster)}
	var line int
	for sc.Scan() {
		line++
		members := strings.Fields(sc.Text())
		if len(members) == 0 {
			return nil, fmt.Errorf("cluster: empty cluster on line %d", line)
		}
		for i, id := range members {
			members[i] = Normalize(id)
		}
		rep := members[0]
		if _, dup := m.index[rep]; dup {
			return nil, fmt.Errorf("cluster: duplicate representative %q on line %d", rep, line)
		}
		c := &Cluster{
			Name:           prefix + strconv.Itoa(line),
			Representative: rep,
			Members:        members,
		}
		m.Clusters = append(m.Clusters, c)
		m.index[rep] = c
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(m.Clusters) == 0 {
		return nil, ErrEmpty
	}
	return m, nil
}

// Label returns the OTU label of the cluster represented by id. The id
// is normalised before lookup.
func (m *Map) Label(id string) (string, error) {
	c, ok := m.index[Normalize(id)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknown, id)
	}
	return c.Name, nil
}

// WriteTable writes the cluster map to w as a table of labels,
// representatives and space-separated members.
func (m *Map) WriteTable(w io.Writer) error {
	tw := table.NewWriter(w)
	err := tw.Write([]string{"OTU", "OTU_representant", "OTU_cluster"})
	if err != nil {
		return err
	}
	for _, c := range m.Clusters {
		err = tw.Write([]string{c.Name, c.Representative, strings.Join(c.Members, " ")})
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

// RewriteFASTA relabels the representative sequences read from r with
// their OTU labels and writes them to w as upper case single line FASTA.
func RewriteFASTA(r io.Reader, w io.Writer, m *Map) error {
	sr := fastx.NewReader(r, fastx.FASTA)
	bw := bufio.NewWriter(w)
	sw := fastx.NewWriter(bw, 0)
	for {
		rec, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		label, err := m.Label(rec.Header())
		if err != nil {
			return err
		}
		err = sw.Write(fastx.Record{ID: label, Seq: strings.ToUpper(rec.Seq)})
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// RewriteTable replaces the representative ids in the given column of
// the uclust table read from r with their OTU labels, writing the result
// to w. Fields holding "*" are left unaltered.
func RewriteTable(r io.Reader, w io.Writer, m *Map, column int) error {
	tr := table.NewHeaderlessReader(r)
	tw := table.NewWriter(w)
	for {
		row, err := tr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if column >= len(row) {
			return fmt.Errorf("cluster: no column %d on line %d", column, tr.Line())
		}
		if row[column] != "*" {
			row[column], err = m.Label(row[column])
			if err != nil {
				return err
			}
		}
		err = tw.Write(row)
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}
