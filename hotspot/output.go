// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hotspot

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/hts/bgzf"
)

var (
	reportHeader = []string{
		"Chrome", "Position", "ClusterSize", "InterDist", "WindowWidth", "MinSite", "MaxSite", "ZScore2",
	}
	verboseReportHeader = []string{
		"Chrome", "Position", "Intensity", "AvgSd", "ClusterSize", "InterDist", "ZScore", "WindowWidth",
		"MinSite", "MaxSite", "ZScore2", "MinSiteInd", "MaxSiteInd", "MinDensWinInd", "MaxDensWinInd",
	}
)

// bgzfParallelism is the number of compression shards used for .gz reports.
const bgzfParallelism = 1

// Writer writes the hotspot report as TSV.  The header is written before the
// first chromosome's rows, even if that chromosome has no clusters.
type Writer struct {
	ctx     context.Context
	dst     file.File
	bgzf    *bgzf.Writer
	w       *tsv.Writer
	verbose bool
	header  bool
}

// NewWriter creates a Writer that writes the report to w.  If verbose is
// set, the extended format, with the raw scan statistics and tag-index
// bounds, is written.
func NewWriter(w io.Writer, verbose bool) *Writer {
	return &Writer{w: tsv.NewWriter(w), verbose: verbose}
}

// Create creates a Writer for path.  The report is bgzf-compressed if path
// ends in ".gz".
func Create(ctx context.Context, path string, verbose bool) (*Writer, error) {
	dst, err := file.Create(ctx, path)
	if err != nil {
		return nil, err
	}
	out := &Writer{ctx: ctx, dst: dst, verbose: verbose}
	if strings.HasSuffix(path, ".gz") {
		out.bgzf = bgzf.NewWriter(dst.Writer(ctx), bgzfParallelism)
		out.w = tsv.NewWriter(out.bgzf)
	} else {
		out.w = tsv.NewWriter(dst.Writer(ctx))
	}
	return out, nil
}

// WriteChrom writes one row per cluster of chrom, then flushes.
func (w *Writer) WriteChrom(chrom string, hs []Hotspot) error {
	if !w.header {
		header := reportHeader
		if w.verbose {
			header = verboseReportHeader
		}
		for _, col := range header {
			w.w.WriteString(col)
		}
		if err := w.w.EndLine(); err != nil {
			return err
		}
		w.header = true
	}
	for i := range hs {
		if w.verbose {
			w.writeVerbose(chrom, &hs[i])
		} else {
			w.write(chrom, &hs[i])
		}
		if err := w.w.EndLine(); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

func (w *Writer) write(chrom string, h *Hotspot) {
	w.w.WriteString(chrom)
	w.w.WriteString(strconv.Itoa(h.AveragePos))
	w.w.WriteString(strconv.Itoa(h.FilterSize))
	w.w.WriteString(strconv.Itoa(h.FilterDist))
	w.w.WriteString(fmt.Sprintf("%5f", h.FilterWidth))
	w.w.WriteString(strconv.Itoa(h.MinSite))
	w.w.WriteString(strconv.Itoa(h.MaxSite))
	w.w.WriteString(fmt.Sprintf("%f", h.FilteredZScoreAdjusted))
}

func (w *Writer) writeVerbose(chrom string, h *Hotspot) {
	w.w.WriteString(chrom)
	w.w.WriteString(strconv.Itoa(h.AveragePos))
	w.w.WriteString(fmt.Sprintf("%5.2f", h.DensCount))
	w.w.WriteString(fmt.Sprintf("%5.2f", h.WeightedAvgSD))
	w.w.WriteString(strconv.Itoa(h.FilterSize))
	w.w.WriteString(strconv.Itoa(h.FilterDist))
	w.w.WriteString(fmt.Sprintf("%f", h.FilteredZScore))
	w.w.WriteString(fmt.Sprintf("%5f", h.FilterWidth))
	w.w.WriteString(strconv.Itoa(h.MinSite))
	w.w.WriteString(strconv.Itoa(h.MaxSite))
	w.w.WriteString(fmt.Sprintf("%f", h.FilteredZScoreAdjusted))
	w.w.WriteString(strconv.Itoa(h.FilterIndexLeft))
	w.w.WriteString(strconv.Itoa(h.FilterIndexRight))
	w.w.WriteString(strconv.Itoa(h.FilterDensIndexLeft))
	w.w.WriteString(strconv.Itoa(h.FilterDensIndexRight))
}

// Close flushes the report and closes the underlying file, if the Writer was
// created by Create.
func (w *Writer) Close() (err error) {
	err = w.w.Flush()
	if w.bgzf != nil {
		if e := w.bgzf.Close(); e != nil && err == nil {
			err = e
		}
	}
	if w.dst != nil {
		if e := w.dst.Close(w.ctx); e != nil && err == nil {
			err = e
		}
	}
	return err
}
