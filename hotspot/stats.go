// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hotspot

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Stats holds diagnostic counters of a run.  They have no effect on the
// report.
type Stats struct {
	Chromosomes int
	Tags        int
	Candidates  int
	Clusters    int
	// MaxDiscrepancy is the largest |count/N - p| seen by the scan.
	MaxDiscrepancy float64
	// ClampedMappable counts clusters whose mappable-site count was raised
	// to the floor of 2.
	ClampedMappable int

	// Estimator tallies, maintained only when Opts.UseGenomeDensWin is set.
	NumGenomeDens int
	NumLocalDens  int
	GenomeDensZ   float64
	LocalDensZ    float64
}

// Merge merges "o" into "s".
func (s *Stats) Merge(o Stats) {
	s.Chromosomes += o.Chromosomes
	s.Tags += o.Tags
	s.Candidates += o.Candidates
	s.Clusters += o.Clusters
	if o.MaxDiscrepancy > s.MaxDiscrepancy {
		s.MaxDiscrepancy = o.MaxDiscrepancy
	}
	s.ClampedMappable += o.ClampedMappable
	s.NumGenomeDens += o.NumGenomeDens
	s.NumLocalDens += o.NumLocalDens
	s.GenomeDensZ += o.GenomeDensZ
	s.LocalDensZ += o.LocalDensZ
}

// tally records that a cluster was scored with the genome-wide (genome=true)
// or local estimator.  s may be nil.
func (s *Stats) tally(genome bool, z float64) {
	if s == nil {
		return
	}
	if genome {
		s.NumGenomeDens++
		s.GenomeDensZ += z
	} else {
		s.NumLocalDens++
		s.LocalDensZ += z
	}
}

// DensitySummary describes how many clusters each estimator scored, and
// their average z-scores.
func (s *Stats) DensitySummary() string {
	avg := func(sum float64, n int) float64 {
		if n == 0 {
			return 0
		}
		return sum / float64(n)
	}
	return fmt.Sprintf("%d clusters scored using genome-wide density, avg. z = %g; %d scored using local density, avg. z = %g",
		s.NumGenomeDens, avg(s.GenomeDensZ, s.NumGenomeDens),
		s.NumLocalDens, avg(s.LocalDensZ, s.NumLocalDens))
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return fmt.Sprintf("chromosomes:%d tags:%d candidates:%d clusters:%d maxdisc:%g clamped:%d",
		s.Chromosomes, s.Tags, s.Candidates, s.Clusters, s.MaxDiscrepancy, s.ClampedMappable)
}

// summarizeScores returns the median and maximum adjusted z-score of hs.
// Both are zero if hs is empty.
func summarizeScores(hs []Hotspot) (median, max float64) {
	if len(hs) == 0 {
		return 0, 0
	}
	scores := make(stats.Float64Data, len(hs))
	for i := range hs {
		scores[i] = hs[i].FilteredZScoreAdjusted
	}
	// Errors are only returned for empty input.
	median, _ = stats.Median(scores)
	max, _ = stats.Max(scores)
	return median, max
}
