package hotspot

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestStatsMerge(t *testing.T) {
	s := Stats{Chromosomes: 1, Tags: 10, Clusters: 2, MaxDiscrepancy: 0.5, NumLocalDens: 2, LocalDensZ: 3}
	s.Merge(Stats{Chromosomes: 1, Tags: 5, Candidates: 4, Clusters: 1, MaxDiscrepancy: 0.25, NumGenomeDens: 1, GenomeDensZ: 2})
	expect.EQ(t, s, Stats{
		Chromosomes:    2,
		Tags:           15,
		Candidates:     4,
		Clusters:       3,
		MaxDiscrepancy: 0.5,
		NumGenomeDens:  1,
		NumLocalDens:   2,
		GenomeDensZ:    2,
		LocalDensZ:     3,
	})
}

func TestDensitySummary(t *testing.T) {
	s := Stats{NumGenomeDens: 2, GenomeDensZ: 5, NumLocalDens: 0}
	expect.EQ(t, s.DensitySummary(),
		"2 clusters scored using genome-wide density, avg. z = 2.5; 0 scored using local density, avg. z = 0")
}

func TestSummarizeScores(t *testing.T) {
	median, max := summarizeScores(nil)
	expect.EQ(t, median, 0.0)
	expect.EQ(t, max, 0.0)

	hs := []Hotspot{{FilteredZScoreAdjusted: 3}, {FilteredZScoreAdjusted: -1}, {FilteredZScoreAdjusted: 10}}
	median, max = summarizeScores(hs)
	expect.EQ(t, median, 3.0)
	expect.EQ(t, max, 10.0)
}
