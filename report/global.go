// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bufio"
	"io"
	"strconv"

	"github.com/kortschak/masque/table"
)

// Extended is the Global.Stages key for merged amplicons.
const Extended = "extended"

// stages lists the Global.Stages keys and their row names in report
// order.
var stages = []struct {
	key, name string
}{
	{key: Extended, name: "Amplicon"},
	{key: Dereplication, name: "Dereplication"},
	{key: Singleton, name: "Singleton_removed"},
	{key: Chimera, name: "Chimera_removed"},
	{key: OTU, name: "OTU"},
}

// Databases lists the annotation databases in report order.
var Databases = []string{"silva", "greengenes", "unite", "findley", "rdp", "underhill"}

// Global holds the whole-run processing results.
type Global struct {
	// Stages holds the sequence length
	// statistics of each processing stage.
	Stages map[string]SizeStats

	// Annotations holds the number of
	// annotated OTUs for each database.
	Annotations map[string]int
}

// WriteGlobal writes the whole-run processing report for g to w.
func WriteGlobal(w io.Writer, g Global) error {
	tw := table.NewWriter(w)
	err := tw.Write([]string{"Type", "Count", "Mean_length", "Median_length"})
	if err != nil {
		return err
	}
	for _, s := range stages {
		st, ok := g.Stages[s.key]
		if !ok {
			continue
		}
		err = tw.Write(append([]string{s.name}, st.Fields()...))
		if err != nil {
			return err
		}
	}
	for _, db := range Databases {
		n, ok := g.Annotations[db]
		if !ok {
			continue
		}
		err = tw.Write([]string{db + "_annotation", strconv.Itoa(n)})
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

// CountRows returns the number of lines in r excluding the header line.
func CountRows(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<26)
	var n int
	for sc.Scan() {
		n++
	}
	if n > 0 {
		n--
	}
	return n, sc.Err()
}
