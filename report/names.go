// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"path/filepath"
	"strings"
)

var (
	// PairedSuffixes are removed from forward read file
	// names to obtain sample names.
	PairedSuffixes = []string{"-R1", "_R1_001", "_alien_f_filt"}

	// SingleSuffixes are removed from single read file
	// names to obtain sample names.
	SingleSuffixes = []string{"_alien_filt"}
)

// SampleName returns the sample name of a read file. The directory and
// extension are removed, along with any of the provided suffixes.
func SampleName(path string, suffixes ...string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".gz")
	name = strings.TrimSuffix(name, filepath.Ext(name))
	for _, s := range suffixes {
		name = strings.Replace(name, s, "", -1)
	}
	return name
}

// LogSampleName returns the sample name of a log file named
// log_<tool>_<sample><tag>.txt.
func LogSampleName(path, tool, tag string) string {
	name := filepath.Base(path)
	name = strings.Replace(name, "log_"+tool+"_", "", -1)
	return strings.Replace(name, tag+".txt", "", -1)
}

// Mate returns the path of the mate of a paired read file, replacing
// old with new in the file name.
func Mate(path, old, new string) string {
	dir, file := filepath.Split(path)
	return filepath.Join(dir, strings.Replace(file, old, new, -1))
}
