// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
Package hotspot identifies statistically over-represented clusters of tags
("hotspots") along each chromosome.

Processing is strictly per chromosome:

 1. ComputeHotspots scans the sorted tag positions with every window width in
    [LowInt, HighInt] (step IncInt).  A tag is a candidate when the window
    centered on it holds more tags than a binomial background expectation
    plus NumSD standard deviations.
 2. FilterHotspots walks the candidates left to right and merges adjacent ones
    into clusters.
 3. ClusterSize measures each cluster and assigns it a z-score against the
    local tag density, corrected for the number of uniquely mappable sites in
    a DensityWin-wide window.  With UseGenomeDensWin, a genome-wide estimator
    is also computed and the smaller z-score is kept.

Run drives the pipeline over a tag file and a mappable-counts file and writes
one TSV row per cluster.
*/
package hotspot
