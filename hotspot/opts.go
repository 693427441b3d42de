// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hotspot

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Version is reported by "bio-hotspot version".
	Version = "4.1.0"
	// Authors of the hotspot algorithm.
	Authors = "Mike Hawrylycz, Bob Thurman"
	// Contributors to the hotspot algorithm.
	Contributors = "Scott Kuehn, Eric Haugen"
	// Citation for the hotspot algorithm.
	Citation = "Sam John et al., Chromatin accessibility pre-determines glucocorticoid receptor binding patterns, Nature Genetics 43, 264-268"
)

// Opts configures a hotspot run.  Opts are read-only once a run starts.
type Opts struct {
	// Commandline options.
	InputPath    string
	MappablePath string
	OutputPath   string

	// LowInt, HighInt and IncInt define the scanned window widths:
	// LowInt, LowInt+IncInt, ..., up to and including HighInt.
	LowInt  int
	HighInt int
	IncInt  int
	// NumSD is the number of standard deviations above the background mean a
	// window must exceed to flag its center tag.
	NumSD float64
	// DensityWin is the width of the background window used for scoring.  It
	// should be a multiple of DensityWinSmall.
	DensityWin int
	// DensityWinSmall is the bin width of the mappable-counts file.
	DensityWinSmall int
	// GenomeSize is the number of mappable bases genome-wide.
	GenomeSize float64
	// BackgroundTags is the tag count used by the genome-wide estimator.  Zero
	// means "use the number of records in the tag file".
	BackgroundTags int
	// UseGenomeDensWin scores each cluster against both the local and a
	// genome-wide background, keeping the smaller z-score.
	UseGenomeDensWin bool
	// UseFuzzyThreshold draws a random perturbation for windows whose count
	// is within 0.5 of the detection threshold.  The draw is reported in the
	// debug log only; detection always uses the unperturbed threshold.
	UseFuzzyThreshold bool
	FuzzySeed         int
	// Verbose selects the extended report format.
	Verbose bool
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	LowInt:            250,
	HighInt:           1000,
	IncInt:            100,
	NumSD:             3.0,
	DensityWin:        50000,
	DensityWinSmall:   10000,
	GenomeSize:        2.55e9,
	BackgroundTags:    0,
	UseGenomeDensWin:  false,
	UseFuzzyThreshold: false,
	FuzzySeed:         1,
}

// Validate checks opts for consistency.
func (opts *Opts) Validate() error {
	if opts.InputPath == "" {
		return fmt.Errorf("an input tag file is required")
	}
	if opts.MappablePath == "" {
		return fmt.Errorf("a mappable-counts file is required")
	}
	if opts.OutputPath == "" {
		return fmt.Errorf("an output file is required")
	}
	return opts.validateParams()
}

func (opts *Opts) validateParams() error {
	if opts.LowInt <= 0 {
		return fmt.Errorf("lowest window width must be positive, got %d", opts.LowInt)
	}
	if opts.HighInt < opts.LowInt {
		return fmt.Errorf("highest window width %d is less than the lowest %d", opts.HighInt, opts.LowInt)
	}
	if opts.IncInt <= 0 {
		return fmt.Errorf("window increment must be positive, got %d", opts.IncInt)
	}
	if opts.NumSD < 0 {
		return fmt.Errorf("min-sd must be non-negative, got %v", opts.NumSD)
	}
	if opts.DensityWinSmall <= 0 {
		return fmt.Errorf("dens-win-small must be positive, got %d", opts.DensityWinSmall)
	}
	if opts.DensityWin < opts.DensityWinSmall {
		return fmt.Errorf("dens-win %d is less than dens-win-small %d", opts.DensityWin, opts.DensityWinSmall)
	}
	if !(opts.GenomeSize > 0) {
		return fmt.Errorf("genome-size must be positive, got %v", opts.GenomeSize)
	}
	if opts.BackgroundTags < 0 {
		return fmt.Errorf("background-tags must be non-negative, got %d", opts.BackgroundTags)
	}
	return nil
}

// ParseRange parses a window range of the form "low,high,inc".
func ParseRange(s string) (low, high, inc int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		err = fmt.Errorf("hotspot.ParseRange: %q must be of the form low,high,inc", s)
		return
	}
	var vals [3]int
	for i, part := range parts {
		if vals[i], err = strconv.Atoi(strings.TrimSpace(part)); err != nil {
			err = fmt.Errorf("hotspot.ParseRange: %q: %v", s, err)
			return
		}
	}
	return vals[0], vals[1], vals[2], nil
}
