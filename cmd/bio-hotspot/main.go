// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hotspot/hotspot"
	"v.io/x/lib/cmdline"
)

func newCmdCall() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "call",
		Short: "Detect and score tag hotspots",
	}
	opts := hotspot.DefaultOpts
	defaultRange := fmt.Sprintf("%d,%d,%d", opts.LowInt, opts.HighInt, opts.IncInt)
	cmd.Flags.StringVar(&opts.InputPath, "input", "", "Input tag file, sorted by chromosome and position.")
	cmd.Flags.StringVar(&opts.MappablePath, "mappable", "", "Per-bin mappable-site counts, with chromosomes in tag-file order.")
	cmd.Flags.StringVar(&opts.OutputPath, "out", "", "Output report path. A \".gz\" suffix selects bgzf compression.")
	rangeFlag := cmd.Flags.String("range", defaultRange, "Scanned window widths, as low,high,increment.")
	cmd.Flags.IntVar(&opts.DensityWin, "dens-win", opts.DensityWin, "Background density window width.")
	cmd.Flags.IntVar(&opts.DensityWinSmall, "dens-win-small", opts.DensityWinSmall, "Bin width of the mappable-counts file.")
	cmd.Flags.Float64Var(&opts.NumSD, "min-sd", opts.NumSD, "Standard deviations above the background a window must exceed.")
	cmd.Flags.BoolVar(&opts.UseFuzzyThreshold, "fuzzy", opts.UseFuzzyThreshold,
		"Draw a random threshold perturbation for near-threshold windows. The draws are logged at debug level only.")
	cmd.Flags.IntVar(&opts.FuzzySeed, "fuzzy-seed", opts.FuzzySeed, "Seed for -fuzzy.")
	cmd.Flags.BoolVar(&opts.UseGenomeDensWin, "genome-dens-win", opts.UseGenomeDensWin,
		"Also score each cluster against the genome-wide background, keeping the smaller z-score.")
	cmd.Flags.Float64Var(&opts.GenomeSize, "genome-size", opts.GenomeSize, "Number of mappable bases genome-wide.")
	cmd.Flags.IntVar(&opts.BackgroundTags, "background-tags", opts.BackgroundTags,
		"Tag count of the genome-wide background. 0 means the number of records in -input.")
	cmd.Flags.BoolVar(&opts.Verbose, "verbose", opts.Verbose, "Write the extended report format.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("call takes no positional arguments, but got %v", argv)
		}
		var err error
		if opts.LowInt, opts.HighInt, opts.IncInt, err = hotspot.ParseRange(*rangeFlag); err != nil {
			return err
		}
		return hotspot.Run(vcontext.Background(), &opts)
	})
	return cmd
}

func newCmdVersion() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "version",
		Short: "Print version and citation",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		fmt.Fprintf(env.Stdout, "bio-hotspot %s\nAuthors: %s\nContributors: %s\nCitation: %s\n",
			hotspot.Version, hotspot.Authors, hotspot.Contributors, hotspot.Citation)
		return nil
	})
	return cmd
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-hotspot",
			Short:    "Find tag hotspots",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdCall(),
				newCmdVersion(),
			},
		})
}
