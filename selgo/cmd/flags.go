package cmd

import (
	"fmt"
	"runtime"
	"strings"

	cannon "github.com/ethereum-optimism/optimism/cannon/cmd"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/zeroselector/selgo/alphabet"
	"github.com/ethereum-optimism/zeroselector/selgo/output"
	"github.com/ethereum-optimism/zeroselector/selgo/search"
)

const EnvVarPrefix = "ZEROSELECTOR"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))}
}

var (
	SignatureFlag = &cli.StringFlag{
		Name:     "signature",
		Usage:    "Function signature to optimize, e.g. \"deposit(uint256)\"",
		EnvVars:  prefixEnvVars("SIGNATURE"),
		Required: true,
	}
	DifficultyFlag = &cli.IntFlag{
		Name:    "difficulty",
		Usage:   fmt.Sprintf("Minimum number of zero bytes in the selector, %d to %d", search.MinDifficulty, search.MaxDifficulty),
		EnvVars: prefixEnvVars("DIFFICULTY"),
		Value:   2,
	}
	MaxResultsFlag = &cli.IntFlag{
		Name:    "max-results",
		Usage:   fmt.Sprintf("Stop once this many results were accepted, %d to %d", search.MinResults, search.MaxResults),
		EnvVars: prefixEnvVars("MAX_RESULTS"),
		Value:   10,
	}
	ObjectiveFlag = &cli.StringFlag{
		Name:    "objective",
		Usage:   "Acceptance policy: 'improve' keeps only ever-smaller selectors, 'all' keeps every match",
		EnvVars: prefixEnvVars("OBJECTIVE"),
		Value:   search.ImproveOnly.String(),
	}
	ThreadsFlag = &cli.IntFlag{
		Name:    "threads",
		Usage:   "Number of search workers",
		EnvVars: prefixEnvVars("THREADS"),
		Value:   runtime.NumCPU(),
	}
	MaxWidthFlag = &cli.IntFlag{
		Name:    "max-width",
		Usage:   "Longest suffix to try",
		EnvVars: prefixEnvVars("MAX_WIDTH"),
		Value:   alphabet.MaxDigitWidth,
	}
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Usage:   "Result file format, one of " + strings.Join(output.Names(), ", "),
		EnvVars: prefixEnvVars("FORMAT"),
		Value:   "tsv",
	}
	OutFlag = &cli.PathFlag{
		Name:      "out",
		Usage:     "Result file path; derived from the search parameters if empty. A .gz suffix compresses the file",
		EnvVars:   prefixEnvVars("OUT"),
		TakesFile: true,
	}
	LogLevelFlag = &cli.StringFlag{
		Name:    "log.level",
		Usage:   "Log level: debug, info, warn, error",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Value:   "info",
	}
	PProfCPUFlag = cannon.RunPProfCPU
	HashFlag     = &cli.BoolFlag{
		Name:    "hash",
		Usage:   "Also print the full Keccak-256 hash",
		EnvVars: prefixEnvVars("HASH"),
	}
)

// ConfigFromCLI reads and validates the search parameters.
func ConfigFromCLI(ctx *cli.Context) (search.Config, error) {
	obj, err := search.ParseObjective(ctx.String(ObjectiveFlag.Name))
	if err != nil {
		return search.Config{}, err
	}
	cfg := search.Config{
		Signature:  ctx.String(SignatureFlag.Name),
		Difficulty: ctx.Int(DifficultyFlag.Name),
		MaxResults: ctx.Int(MaxResultsFlag.Name),
		Objective:  obj,
		Threads:    ctx.Int(ThreadsFlag.Name),
		MaxWidth:   ctx.Int(MaxWidthFlag.Name),
	}
	if err := cfg.Check(); err != nil {
		return search.Config{}, err
	}
	return cfg, nil
}
