// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hotspot

import (
	"math"

	"github.com/grailbio/base/log"
)

// minMappableSites is the floor applied to a density window's mappable-site
// count before it is used as a denominator.
const minMappableSites = 2

// ClusterSize fills in the scorer fields of each cluster in hs: the number
// and span of tags in the cluster's content window, the tag-index bounds of
// its density window, and FilteredZScoreAdjusted.  counts holds the
// chromosome's per-bin mappable-site counts.  stats may be nil.
//
// ClusterSize reads only the FilterIndex*, FilterWidth and AveragePos fields,
// so calling it again on the same clusters yields the same result.
func (d *Detector) ClusterSize(tags []int, densityWin int, hs []Hotspot, counts []int, stats *Stats) {
	halfDensityWin := densityWin / 2
	for i := range hs {
		h := &hs[i]
		leftCent := float64(h.AveragePos) - h.FilterWidth/2
		rightCent := float64(h.AveragePos) + h.FilterWidth/2
		leftDens := h.AveragePos - halfDensityWin
		rightDens := h.AveragePos + halfDensityWin

		var (
			contCount, densCount  int
			leftIndex, rightIndex = -1, -1
			idx                   int
		)
		h.FilterDensIndexLeft = -1
		for idx = 0; idx < len(tags); idx++ {
			tag := tags[idx]
			if t := float64(tag); t >= leftCent && t <= rightCent {
				if contCount == 0 {
					leftIndex = idx
				}
				rightIndex = idx
				contCount++
			}
			if tag >= leftDens && tag <= rightDens {
				if densCount == 0 {
					h.FilterDensIndexLeft = idx
				}
				densCount++
			}
			if tag > rightDens && float64(tag) > rightCent {
				break
			}
		}
		h.FilterDensIndexRight = idx - 1
		h.FilterSize = contCount
		if contCount > 0 {
			h.FilterDist = tags[rightIndex] - tags[leftIndex] + 1
		} else {
			log.Printf("hotspot.ClusterSize: warning: no tags within %v of cluster center %d", h.FilterWidth/2, h.AveragePos)
			h.FilterDist = 0
		}
		h.MinSite = tags[h.FilterIndexLeft]
		h.MaxSite = tags[h.FilterIndexRight]

		mappable := CountMappableSites(h.AveragePos, densityWin, d.opts.DensityWinSmall, counts)
		if mappable < minMappableSites && stats != nil {
			stats.ClampedMappable++
		}
		densCount2 := CountDensity2(h.AveragePos, densityWin, d.opts.DensityWinSmall, tags)
		h.FilteredZScoreAdjusted = d.CalculateZScore(int(math.Round(h.FilterWidth)), h.FilterSize,
			densityWin, densCount2, mappable, stats)
	}
}

// CountMappableSites sums the densityWin/densityWinSmall mappable-count bins
// centered on the bin holding base.  Bins past the end of counts count as
// fully mappable.  Each bin contributes at most densityWinSmall, and the
// result is at most densityWin.
func CountMappableSites(base, densityWin, densityWinSmall int, counts []int) int {
	subWindows := densityWin / densityWinSmall
	start := base/densityWinSmall - subWindows/2
	if start < 0 {
		start = 0
	}
	sum := 0
	for i := 0; i < subWindows; i++ {
		winCount := densityWinSmall
		if start+i < len(counts) {
			winCount = counts[start+i]
		}
		if winCount > densityWinSmall {
			log.Printf("hotspot.CountMappableSites: warning: bin %d has %d mappable sites, more than the bin width %d",
				start+i, winCount, densityWinSmall)
			winCount = densityWinSmall
		}
		if winCount < 0 {
			log.Printf("hotspot.CountMappableSites: warning: bin %d has negative count %d", start+i, winCount)
			winCount = 0
		}
		sum += winCount
	}
	if sum > densityWin {
		log.Printf("hotspot.CountMappableSites: warning: %d mappable sites exceed the density window %d", sum, densityWin)
		sum = densityWin
	}
	return sum
}

// CountDensity2 counts the tags in [start*densityWinSmall,
// start*densityWinSmall+densityWin), where start is the first bin of the
// densityWin/densityWinSmall bins centered on the bin holding base.  Unlike
// CountMappableSites, start is not clamped at zero.  tags must be sorted.
func CountDensity2(base, densityWin, densityWinSmall int, tags []int) int {
	subWindows := densityWin / densityWinSmall
	start := base/densityWinSmall - subWindows/2
	leftDens := start * densityWinSmall
	rightDens := leftDens + densityWin - 1
	n := 0
	for _, tag := range tags {
		if tag > rightDens {
			break
		}
		if tag >= leftDens {
			n++
		}
	}
	return n
}

// CalculateZScore scores a cluster of sitesInCluster tags spanning
// basesSpanned bases against a binomial background of sitesInDensityWindow
// tags over mappableSites mappable bases.  mappableSites is raised to at
// least 2.
//
// If Opts.UseGenomeDensWin is set, the cluster is also scored against the
// genome-wide background (BackgroundTags tags over GenomeSize bases), the
// smaller of the two z-scores is returned, and the choice is tallied in
// stats, which may be nil.  Otherwise CalculateZScore depends only on its
// arguments and does not touch stats.
func (d *Detector) CalculateZScore(basesSpanned, sitesInCluster, densityWindowSize, sitesInDensityWindow, mappableSites int, stats *Stats) float64 {
	if mappableSites < minMappableSites {
		log.Printf("hotspot.CalculateZScore: warning: only %d of %d sites are mappable, increasing to %d",
			mappableSites, densityWindowSize, minMappableSites)
		mappableSites = minMappableSites
	}
	probZ := float64(basesSpanned) / float64(mappableSites)
	z := standardize(float64(sitesInCluster), float64(sitesInDensityWindow), probZ)
	if !d.opts.UseGenomeDensWin {
		return z
	}

	probZgw := float64(basesSpanned) / d.opts.GenomeSize
	zgw := standardize(float64(sitesInCluster), float64(d.backgroundTags), probZgw)
	if log.At(log.Debug) {
		pVal := binomialPValue(sitesInCluster, sitesInDensityWindow, probZ)
		pValgw := binomialPValue(sitesInCluster, d.backgroundTags, probZgw)
		log.Debug.Printf("hotspot.CalculateZScore: z=%g pval=%g zgw=%g pvalgw=%g", z, pVal, zgw, pValgw)
	}
	if zgw < z {
		stats.tally(true, zgw)
		return zgw
	}
	stats.tally(false, z)
	return z
}

// standardize returns (k - n*p) / sqrt(n*p*(1-p)).  If the deviation is not
// positive and finite, it logs a warning and returns 0.
func standardize(k, n, p float64) float64 {
	mean := n * p
	sd := math.Sqrt(n * p * (1 - p))
	if !(sd > 0) || math.IsInf(sd, 0) {
		log.Printf("hotspot.standardize: warning: degenerate background (n=%v, p=%v), scoring as 0", n, p)
		return 0
	}
	return (k - mean) / sd
}
