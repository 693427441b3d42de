// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
bio-hotspot finds clusters of tags that are denser than expected given the
local mappable-site density, and reports one scored row per cluster.

Sample usage:

	bio-hotspot call \
	    -input tags.txt \
	    -mappable mappable-10kb.txt \
	    -out hotspots.tsv \
	    -range 250,1000,100 \
	    -min-sd 3

The tag file holds "<chrom> <position>" lines sorted by chromosome and
position.  The mappable file holds "<chrom> <bin start> <count>" lines, one per
-dens-win-small bin, with chromosomes in the same order as the tag file.
Either input may be gzip-compressed.  If -out ends in ".gz", the report is
bgzf-compressed.

"bio-hotspot version" prints the version, authors and citation.
*/
package main
