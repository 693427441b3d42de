// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hotspot

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hotspot/encoding/mappable"
	"github.com/grailbio/hotspot/encoding/tags"
)

// ProcessChrom runs detection, merging and scoring on one chromosome's sorted
// tags, using counts as its mappable-site bins.  The returned clusters are in
// ascending position order.  The Stats cover this chromosome only.
func (d *Detector) ProcessChrom(tags, counts []int) ([]Hotspot, Stats) {
	stats := Stats{Chromosomes: 1, Tags: len(tags)}
	disc, cands := d.ComputeHotspots(tags, d.opts.LowInt, d.opts.HighInt, d.opts.IncInt)
	stats.MaxDiscrepancy = disc
	stats.Candidates = cands.Len()
	hs := d.FilterHotspots(cands)
	stats.Clusters = len(hs)
	d.ClusterSize(tags, d.opts.DensityWin, hs, counts, &stats)
	return hs, stats
}

// Run reads the tag and mappable-counts files named in opts, and writes the
// hotspot report for each chromosome of the tag file, in input order.
func Run(ctx context.Context, opts *Opts) (err error) {
	if err = opts.Validate(); err != nil {
		return errors.E(err, "invalid options")
	}
	total, err := tags.CountRecords(ctx, opts.InputPath)
	if err != nil {
		return errors.E(err, "count tags:", opts.InputPath)
	}
	log.Printf("TotalTagCount: %d", total)

	in, err := tags.Open(ctx, opts.InputPath)
	if err != nil {
		return errors.E(err, "open tags:", opts.InputPath)
	}
	defer func() {
		if e := in.Close(); e != nil && err == nil {
			err = e
		}
	}()
	bg, err := mappable.Open(ctx, opts.MappablePath)
	if err != nil {
		return errors.E(err, "open mappable counts:", opts.MappablePath)
	}
	defer func() {
		if e := bg.Close(); e != nil && err == nil {
			err = e
		}
	}()
	out, err := Create(ctx, opts.OutputPath, opts.Verbose)
	if err != nil {
		return errors.E(err, "create report:", opts.OutputPath)
	}
	defer func() {
		if e := out.Close(); e != nil && err == nil {
			err = errors.E(e, "close report:", opts.OutputPath)
		}
	}()

	var (
		d      = NewDetector(opts, total)
		counts []int
		totals Stats
	)
	for in.Scan() {
		chrom := in.Chrom()
		log.Printf("processing chrom: %s (%d tags)", chrom, len(in.Tags()))
		if counts, err = bg.ReadChrom(chrom, counts[:0]); err != nil {
			return errors.E(err, "read mappable counts:", opts.MappablePath)
		}
		hs, stats := d.ProcessChrom(in.Tags(), counts)
		if opts.UseGenomeDensWin {
			log.Print(stats.DensitySummary())
		}
		if err = out.WriteChrom(chrom, hs); err != nil {
			return errors.E(err, "write report:", opts.OutputPath)
		}
		median, max := summarizeScores(hs)
		log.Printf("chrom summary: %s: %d clusters from %d candidates, z-score median %g, max %g",
			chrom, stats.Clusters, stats.Candidates, median, max)
		totals.Merge(stats)
	}
	if err = in.Err(); err != nil {
		return errors.E(err, "read tags:", opts.InputPath)
	}
	log.Printf("run summary: %v", totals)
	if opts.UseGenomeDensWin {
		log.Printf("run summary: %s", totals.DensitySummary())
	}
	return nil
}
