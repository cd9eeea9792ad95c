package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/ethereum-optimism/zeroselector/selgo/cmd"
	"github.com/ethereum-optimism/zeroselector/selgo/output"
	"github.com/ethereum-optimism/zeroselector/selgo/search"
)

func main() {
	cfg := search.DefaultConfig("deposit(uint256)")
	cfg.MaxWidth = 3

	s, err := search.NewSearch(cfg, cmd.Logger(os.Stderr, slog.LevelInfo), nil)
	if err != nil {
		log.Fatalf("invalid search config: %v", err)
	}

	// scan every suffix of up to three characters
	report, err := s.Run(context.Background())
	if err != nil {
		log.Fatalf("search failed: %v", err)
	}
	log.Printf("scanned %d candidates in %d passes (%s)", report.Scanned, report.Passes, report.Elapsed)

	if err := (output.TSV{}).Encode(os.Stdout, cfg.Signature, report.Results); err != nil {
		log.Fatalf("failed to print results: %v", err)
	}
}
