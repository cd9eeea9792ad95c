package search

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/ethereum-optimism/zeroselector/selgo/alphabet"
	"github.com/ethereum-optimism/zeroselector/selgo/selector"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 3

	MinResults = 2
	MaxResults = 20
)

var ErrInvalidConfig = errors.New("invalid search config")

// Objective decides which scored candidates enter the best-set.
type Objective uint8

const (
	// CollectAll accepts every candidate that meets the difficulty.
	CollectAll Objective = iota
	// ImproveOnly accepts a candidate only if its selector is below the current best,
	// which favours leading zero bytes.
	ImproveOnly
)

func (o Objective) String() string {
	switch o {
	case CollectAll:
		return "all"
	case ImproveOnly:
		return "improve"
	default:
		return fmt.Sprintf("objective(%d)", uint8(o))
	}
}

func ParseObjective(s string) (Objective, error) {
	switch s {
	case "all":
		return CollectAll, nil
	case "improve":
		return ImproveOnly, nil
	default:
		return 0, fmt.Errorf("%w: unknown objective %q", ErrInvalidConfig, s)
	}
}

type Config struct {
	// Signature is the base function signature, e.g. "deposit(uint256)".
	Signature  string
	Difficulty int
	MaxResults int
	Objective  Objective
	Threads    int
	// MaxWidth is the last suffix width to search.
	MaxWidth int
}

func DefaultConfig(signature string) Config {
	return Config{
		Signature:  signature,
		Difficulty: 2,
		MaxResults: 10,
		Objective:  ImproveOnly,
		Threads:    runtime.NumCPU(),
		MaxWidth:   alphabet.MaxDigitWidth,
	}
}

func (c *Config) Check() error {
	if _, err := selector.ParseSignature(c.Signature); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Difficulty < MinDifficulty || c.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: difficulty %d not in [%d, %d]", ErrInvalidConfig, c.Difficulty, MinDifficulty, MaxDifficulty)
	}
	if c.MaxResults < MinResults || c.MaxResults > MaxResults {
		return fmt.Errorf("%w: max results %d not in [%d, %d]", ErrInvalidConfig, c.MaxResults, MinResults, MaxResults)
	}
	if c.Objective != CollectAll && c.Objective != ImproveOnly {
		return fmt.Errorf("%w: unknown objective %s", ErrInvalidConfig, c.Objective)
	}
	if cpus := runtime.NumCPU(); c.Threads < 1 || c.Threads > cpus {
		return fmt.Errorf("%w: threads %d not in [1, %d]", ErrInvalidConfig, c.Threads, cpus)
	}
	if c.MaxWidth < 1 || c.MaxWidth > alphabet.MaxDigitWidth {
		return fmt.Errorf("%w: max width %d not in [1, %d]", ErrInvalidConfig, c.MaxWidth, alphabet.MaxDigitWidth)
	}
	return nil
}
