// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hotspot

import (
	"github.com/grailbio/base/log"
)

// FilterHotspots merges adjacent candidates into clusters in a single
// left-to-right pass.  A candidate joins the open cluster when its AveragePos
// is within its own MaxWindow of the previous member's AveragePos; otherwise
// it opens a new cluster.  Because each comparison is against the previous
// member only, a run of pairwise-close candidates chains into one cluster.
//
// The returned clusters are in ascending tag-index order, and every candidate
// belongs to exactly one of them.  AveragePos, FilterWidth, DensCount and
// WeightedAvgSD are averaged over the members.
func (d *Detector) FilterHotspots(cands *Candidates) []Hotspot {
	var (
		filtered       []Hotspot
		lastCenter     int
		adjustedCenter float64
		averageCount   float64
		averageSD      float64
		filterCluster  int
	)
	finish := func() {
		h := &filtered[len(filtered)-1]
		n := float64(filterCluster)
		h.AveragePos = int(adjustedCenter / n)
		h.FilterWidth /= n
		h.DensCount = averageCount / n
		h.WeightedAvgSD = averageSD / n
		if h.FilterWidth > float64(2*d.opts.HighInt) {
			log.Printf("hotspot.FilterHotspots: warning: cluster %d has filter width %v, more than twice the largest window (%d candidates)",
				len(filtered)-1, h.FilterWidth, filterCluster)
		}
	}
	cands.Do(func(c *Candidate) {
		dist := lastCenter - c.AveragePos
		if dist < 0 {
			dist = -dist
		}
		if filterCluster > 0 && dist < c.MaxWindow {
			h := &filtered[len(filtered)-1]
			h.FilterIndexRight = c.Index
			h.FilterWidth += float64(c.MaxWindow)
			adjustedCenter += float64(c.AveragePos)
			averageCount += c.DensCount
			averageSD += c.WeightedAvgSD
			lastCenter = c.AveragePos
			filterCluster++
			return
		}
		if filterCluster > 0 {
			finish()
		}
		h := newHotspot()
		h.FilterIndexLeft = c.Index
		h.FilterIndexRight = c.Index
		h.FilterWidth = float64(c.MaxWindow)
		filtered = append(filtered, h)
		lastCenter = c.AveragePos
		adjustedCenter = float64(c.AveragePos)
		averageCount = c.DensCount
		averageSD = c.WeightedAvgSD
		filterCluster = 1
	})
	if filterCluster > 0 {
		finish()
	}
	return filtered
}
