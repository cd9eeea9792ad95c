package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/zeroselector/selgo/output"
	"github.com/ethereum-optimism/zeroselector/selgo/search"
)

func errWriter(ctx *cli.Context) io.Writer {
	if ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}

func Banner(w io.Writer, cfg search.Config) {
	_, _ = fmt.Fprintf(w, "\nSelector Optimizer - find better EVM function names to optimize gas cost\n")
	_, _ = fmt.Fprintf(w, "  signature=%s difficulty=%d max-results=%d objective=%s threads=%d max-width=%d\n\n",
		cfg.Signature, cfg.Difficulty, cfg.MaxResults, cfg.Objective, cfg.Threads, cfg.MaxWidth)
}

func Search(ctx *cli.Context) error {
	if ctx.Bool(PProfCPUFlag.Name) {
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	}

	lvl, err := ParseLevel(ctx.String(LogLevelFlag.Name))
	if err != nil {
		return err
	}
	l := Logger(errWriter(ctx), lvl)

	cfg, err := ConfigFromCLI(ctx)
	if err != nil {
		return err
	}
	enc, err := output.Lookup(ctx.String(FormatFlag.Name))
	if err != nil {
		return err
	}
	outPath := ctx.Path(OutFlag.Name)
	if outPath == "" {
		outPath = output.FileName(cfg.Signature, cfg.Difficulty, cfg.MaxResults, cfg.Objective.String(), enc)
	}

	Banner(errWriter(ctx), cfg)

	s, err := search.NewSearch(cfg, l, nil)
	if err != nil {
		return err
	}
	report, err := s.Run(ctx.Context)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// keep what was found so far
			if werr := output.WriteFile(outPath, enc, cfg.Signature, s.Best().Results()); werr != nil {
				l.Error("Failed to write partial results", "path", outPath, "err", werr)
			} else {
				l.Info("Wrote partial results", "path", outPath, "count", s.Best().Len())
			}
		}
		return err
	}

	if err := output.WriteFile(outPath, enc, cfg.Signature, report.Results); err != nil {
		return err
	}
	attrs := []any{"path", outPath, "count", len(report.Results), "passes", report.Passes,
		"scanned", report.Scanned, "elapsed", report.Elapsed}
	if n := len(report.Results); n > 0 {
		attrs = append(attrs, "best", HexU32(report.Results[n-1].Selector))
	}
	l.Info("Wrote results", attrs...)
	return nil
}

var SearchCommand = &cli.Command{
	Name:        "search",
	Usage:       "Search suffixes of a function name whose selector has more zero bytes",
	Description: "Brute-force name_<suffix>(args) signatures pass by pass, widening the suffix each pass, and write the accepted ones to a result file.",
	Action:      Search,
	Flags: []cli.Flag{
		SignatureFlag,
		DifficultyFlag,
		MaxResultsFlag,
		ObjectiveFlag,
		ThreadsFlag,
		MaxWidthFlag,
		FormatFlag,
		OutFlag,
		LogLevelFlag,
		PProfCPUFlag,
	},
}
