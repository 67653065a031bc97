// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotFormats lists the image formats supported by PlotStages.
var PlotFormats = map[string]bool{
	".eps": true, ".jpg": true, ".jpeg": true, ".pdf": true,
	".png": true, ".svg": true, ".tif": true, ".tiff": true,
}

// PlotStages renders a bar chart of the number of sequences retained at
// each processing stage in g to the named file. The image format is
// determined by the file extension.
func PlotStages(g Global, path string) error {
	if !PlotFormats[filepath.Ext(path)] {
		return fmt.Errorf("report: unsupported plot format: %q", filepath.Ext(path))
	}

	var (
		counts plotter.Values
		names  []string
	)
	for _, s := range stages {
		st, ok := g.Stages[s.key]
		if !ok {
			continue
		}
		counts = append(counts, float64(st.Count))
		names = append(names, s.name)
	}
	if len(counts) == 0 {
		return fmt.Errorf("report: no stage to plot")
	}

	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = "Sequences retained by stage"
	p.Y.Label.Text = "Sequences"

	bars, err := plotter.NewBarChart(counts, vg.Points(30))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	return p.Save(19*vg.Centimeter, 12*vg.Centimeter, path)
}
