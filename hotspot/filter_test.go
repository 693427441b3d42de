package hotspot

import (
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func addCandidate(cands *Candidates, index, pos, maxWindow int, densCount, avgSD float64) {
	c := cands.Upsert(index)
	c.AveragePos = pos
	c.MaxWindow = maxWindow
	c.DensCount = densCount
	c.WeightedAvgSD = avgSD
}

func TestFilterHotspots(t *testing.T) {
	d := NewDetector(testOpts(), 10)
	cands := &Candidates{}
	addCandidate(cands, 0, 133, 120, 2, 4)
	addCandidate(cands, 1, 150, 120, 4, 8)
	addCandidate(cands, 5, 5000, 240, 1, 3)

	hs := d.FilterHotspots(cands)
	require.Len(t, hs, 2)

	expect.EQ(t, hs[0].FilterIndexLeft, 0)
	expect.EQ(t, hs[0].FilterIndexRight, 1)
	expect.EQ(t, hs[0].AveragePos, 141)
	expect.EQ(t, hs[0].FilterWidth, 120.0)
	expect.EQ(t, hs[0].DensCount, 3.0)
	expect.EQ(t, hs[0].WeightedAvgSD, 6.0)

	expect.EQ(t, hs[1].FilterIndexLeft, 5)
	expect.EQ(t, hs[1].FilterIndexRight, 5)
	expect.EQ(t, hs[1].AveragePos, 5000)
	expect.EQ(t, hs[1].FilterWidth, 240.0)
	// Not yet scored.
	expect.EQ(t, hs[1].FilterDist, -1)
	expect.EQ(t, hs[1].MinSite, -1)
}

func TestFilterHotspotsChaining(t *testing.T) {
	d := NewDetector(testOpts(), 10)
	cands := &Candidates{}
	// Each is within 150 of its predecessor, but the ends are 300 apart.
	for i, pos := range []int{0, 100, 200, 300} {
		addCandidate(cands, i, pos, 150, 1, 1)
	}
	hs := d.FilterHotspots(cands)
	require.Len(t, hs, 1)
	expect.EQ(t, hs[0].FilterIndexLeft, 0)
	expect.EQ(t, hs[0].FilterIndexRight, 3)
	expect.EQ(t, hs[0].AveragePos, 150)
	expect.EQ(t, hs[0].FilterWidth, 150.0)
}

func TestFilterHotspotsUsesCandidateWindow(t *testing.T) {
	d := NewDetector(testOpts(), 10)
	cands := &Candidates{}
	addCandidate(cands, 0, 1000, 1000, 1, 1)
	// 200 away, but this candidate's own window is only 200 wide.
	addCandidate(cands, 1, 1200, 200, 1, 1)
	expect.EQ(t, len(d.FilterHotspots(cands)), 2)
}

func TestFilterHotspotsEmpty(t *testing.T) {
	d := NewDetector(testOpts(), 10)
	expect.EQ(t, len(d.FilterHotspots(&Candidates{})), 0)
}

func TestFilterHotspotsPartition(t *testing.T) {
	d := NewDetector(testOpts(), 1000)
	r := rand.New(rand.NewSource(0))
	for iter := 0; iter < 50; iter++ {
		cands := &Candidates{}
		pos := 0
		for i := 0; i < 200; i++ {
			pos += r.Intn(400)
			if r.Intn(3) == 0 {
				addCandidate(cands, i, pos, 120+r.Intn(300), 1, 1)
			}
		}
		hs := d.FilterHotspots(cands)

		seen := map[int]int{}
		prevRight := -1
		for id, h := range hs {
			require.True(t, h.FilterIndexLeft > prevRight, "cluster %d overlaps its predecessor", id)
			require.True(t, h.FilterIndexLeft <= h.FilterIndexRight)
			prevRight = h.FilterIndexRight
			for idx := h.FilterIndexLeft; idx <= h.FilterIndexRight; idx++ {
				if cands.Get(idx) != nil {
					seen[idx]++
				}
			}
		}
		require.Equal(t, cands.Len(), len(seen))
		for idx, n := range seen {
			require.Equal(t, 1, n, "candidate %d", idx)
		}
	}
}
