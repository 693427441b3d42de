// Package tags reads sorted tag files, one chromosome at a time.
//
// A tag file consists of one record per line, "<chrom> <position>", sorted by
// chromosome and then by position.  Fields may be separated by any run of
// spaces or tabs, and fields after the second are ignored.  For example:
//
//	chr1 10468
//	chr1 10471
//	chr2 38120
//
// Scanner consumes one chromosome block per Scan() call.  The first record of
// the next block is held in a one-record lookahead so it is not lost at the
// block boundary.
package tags
