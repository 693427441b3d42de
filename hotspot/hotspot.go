// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hotspot

import (
	"github.com/biogo/store/llrb"
)

// Candidate is a tag flagged as locally dense by at least one window width.
type Candidate struct {
	// Index is the candidate's position in the chromosome's tag array.
	Index int
	// DensCount is the number of window widths that flagged Index.
	DensCount float64
	// WeightedAvgSD is the standardized excess of the flagging windows,
	// averaged over DensCount once the scan completes.
	WeightedAvgSD float64
	// AveragePos is the rounded mean tag position in the last (widest)
	// flagging window.
	AveragePos int
	// MaxWindow is the last (widest) flagging window width.
	MaxWindow int
}

// Compare implements llrb.Comparable.
func (c *Candidate) Compare(o llrb.Comparable) int {
	return c.Index - o.(*Candidate).Index
}

// Candidates is the set of candidates of one chromosome, ordered by tag index.
// The zero value is an empty set.
type Candidates struct {
	tree llrb.Tree
}

// Len returns the number of candidates.
func (cs *Candidates) Len() int { return cs.tree.Len() }

// Get returns the candidate for tag index, or nil.
func (cs *Candidates) Get(index int) *Candidate {
	if c := cs.tree.Get(&Candidate{Index: index}); c != nil {
		return c.(*Candidate)
	}
	return nil
}

// Upsert returns the candidate for tag index, creating an empty one if
// needed.
func (cs *Candidates) Upsert(index int) *Candidate {
	if c := cs.Get(index); c != nil {
		return c
	}
	c := &Candidate{Index: index}
	cs.tree.Insert(c)
	return c
}

// Do calls fn on each candidate in ascending index order.
func (cs *Candidates) Do(fn func(c *Candidate)) {
	cs.tree.Do(func(c llrb.Comparable) bool {
		fn(c.(*Candidate))
		return false
	})
}

// Hotspot is a cluster of one or more adjacent candidates.  The Filter*
// index fields refer to the chromosome's tag array.
type Hotspot struct {
	// Set by FilterHotspots.
	FilterIndexLeft  int
	FilterIndexRight int
	// FilterWidth is the mean MaxWindow of the member candidates.
	FilterWidth   float64
	AveragePos    int
	DensCount     float64
	WeightedAvgSD float64

	// Set by ClusterSize.
	FilterSize           int
	FilterDist           int
	MinSite              int
	MaxSite              int
	FilterDensIndexLeft  int
	FilterDensIndexRight int
	// FilteredZScore is the unadjusted score.  It is never computed and only
	// appears, as zero, in the verbose report.
	FilteredZScore         float64
	FilteredZScoreAdjusted float64
}

func newHotspot() Hotspot {
	return Hotspot{
		FilterDist:           -1,
		FilterIndexLeft:      -1,
		FilterIndexRight:     -1,
		FilterDensIndexLeft:  -1,
		FilterDensIndexRight: -1,
		MinSite:              -1,
		MaxSite:              -1,
		AveragePos:           -1,
	}
}
