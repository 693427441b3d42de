// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hotspot

import (
	"math"

	"github.com/grailbio/base/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Detector runs the per-chromosome detection, merge and scoring stages with a
// fixed set of run parameters.  A Detector is not threadsafe: the fuzzy
// threshold source is advanced by every scan.
type Detector struct {
	opts *Opts
	// totalTags is the number of tags in the whole input, across all
	// chromosomes.
	totalTags int
	// backgroundTags is the tag count used by the genome-wide estimator.
	backgroundTags int
	// fuzz is non-nil iff opts.UseFuzzyThreshold is set.
	fuzz *distuv.Uniform
}

// NewDetector creates a Detector.  totalTags is the number of tags in the
// whole input; it also serves as the background tag count unless
// opts.BackgroundTags is set.
func NewDetector(opts *Opts, totalTags int) *Detector {
	d := &Detector{
		opts:           opts,
		totalTags:      totalTags,
		backgroundTags: totalTags,
	}
	if opts.BackgroundTags > 0 {
		d.backgroundTags = opts.BackgroundTags
	}
	if opts.UseFuzzyThreshold {
		d.fuzz = &distuv.Uniform{
			Min: -0.5,
			Max: 0.5,
			Src: rand.NewSource(uint64(opts.FuzzySeed)),
		}
	}
	return d
}

// ComputeHotspots flags, for every window width w in [winLow, winHigh] (step
// winInc), each tag whose w-wide centered window holds more tags than
//
//	1 + mean + NumSD*sd, where p = w/GenomeSize, mean = p*N, sd = sqrt(p*(1-p)*N)
//
// and N is the total tag count.  The returned Candidates accumulate DensCount
// and WeightedAvgSD over all flagging widths; AveragePos and MaxWindow come
// from the widest one.  The first return value is the largest observed
// |count/N - p| over all windows.
//
// tags must be sorted in non-decreasing order.
func (d *Detector) ComputeHotspots(tags []int, winLow, winHigh, winInc int) (float64, *Candidates) {
	if winInc <= 0 {
		log.Panicf("hotspot.ComputeHotspots: window increment must be positive, got %d", winInc)
	}
	var (
		cands    = &Candidates{}
		n        = len(tags)
		total    = float64(d.totalTags)
		disc     float64
		nFuzzed  int
		nFlipped int
	)
	for w := winLow; w <= winHigh; w += winInc {
		prob := float64(w) / d.opts.GenomeSize
		mean := prob * total
		sd := math.Sqrt(prob * (1 - prob) * total)
		// The offset of 1 accounts for the tag the window is centered on.
		detectThresh := 1 + mean + d.opts.NumSD*sd
		halfWidth := float64(w) / 2

		start := 0
		for i := 0; i < n; i++ {
			leftEnd := float64(tags[i]) - halfWidth
			rightEnd := float64(tags[i]) + halfWidth
			// start never passes i, since tags[i] >= leftEnd.
			for start < n && float64(tags[start]) < leftEnd {
				start++
			}
			contained := 0
			posSum := 0.0
			for walk := start; walk < n && float64(tags[walk]) <= rightEnd; walk++ {
				contained++
				posSum += float64(tags[walk])
			}
			count := float64(contained)

			if d.fuzz != nil && math.Abs(count-detectThresh) <= 0.5 {
				nFuzzed++
				if (count > detectThresh+d.fuzz.Rand()) != (count > detectThresh) {
					nFlipped++
				}
			}

			if count > detectThresh {
				c := cands.Upsert(i)
				c.DensCount++
				c.WeightedAvgSD += (count - 1 - mean) / sd
				c.AveragePos = int(posSum/count + 0.5)
				c.MaxWindow = w
			}
			if diff := math.Abs(count/total - prob); diff > disc {
				disc = diff
			}
		}
	}
	cands.Do(func(c *Candidate) {
		c.WeightedAvgSD /= c.DensCount
	})
	if d.fuzz != nil {
		log.Debug.Printf("hotspot.ComputeHotspots: %d near-threshold windows perturbed, %d would change outcome", nFuzzed, nFlipped)
	}
	return disc, cands
}
