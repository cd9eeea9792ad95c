package search

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/ethereum-optimism/zeroselector/selgo/alphabet"
	"github.com/ethereum-optimism/zeroselector/selgo/selector"
)

// ctxCheckInterval is how many candidates a worker scores between context checks.
const ctxCheckInterval = 1 << 12

// Report summarizes a finished search.
type Report struct {
	Results []selector.Result
	// Passes is the number of suffix widths that were started.
	Passes  int
	Scanned uint64
	// Terminated is set when the search stopped before exhausting its passes.
	Terminated bool
	Reason     string
	Elapsed    time.Duration
}

// Search brute-forces suffixes of a signature, pass by pass, until the best-set
// holds a perfect selector, fills up, or all widths were scanned.
type Search struct {
	cfg  Config
	sig  selector.Signature
	log  log.Logger
	best *BestSet

	stop    atomic.Bool
	scanned atomic.Uint64

	stopOnce sync.Once
	reason   string

	newHasher func() hasher
}

// hasher computes the selector of a candidate signature. Each worker owns one.
type hasher interface {
	Selector(sig []byte) uint32
}

func newScorer() hasher {
	return selector.NewScorer()
}

// NewSearch validates cfg and prepares a search. best may be nil, in which case
// a new BestSet sized by cfg.MaxResults is created; passing one in lets the caller
// share or inspect it, and its capacity must equal cfg.MaxResults.
func NewSearch(cfg Config, logger log.Logger, best *BestSet) (*Search, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	sig, err := selector.ParseSignature(cfg.Signature)
	if err != nil {
		return nil, err
	}
	if best == nil {
		best = NewBestSet(cfg.MaxResults)
	} else if best.Cap() != cfg.MaxResults {
		return nil, fmt.Errorf("%w: best-set capacity %d does not match max results %d", ErrInvalidConfig, best.Cap(), cfg.MaxResults)
	}
	return &Search{cfg: cfg, sig: sig, log: logger, best: best, newHasher: newScorer}, nil
}

func (s *Search) Best() *BestSet {
	return s.best
}

// Run executes the passes. It returns early, with every worker joined, once the
// termination condition fired. A cancelled ctx aborts the search with ctx's error.
func (s *Search) Run(ctx context.Context) (*Report, error) {
	return s.run(ctx, s.cfg.Threads)
}

// run executes the passes with a pool of the given number of workers.
func (s *Search) run(ctx context.Context, workers int) (*Report, error) {
	start := time.Now()
	p := newPool(ctx, workers, s.newHasher, s.scan)
	passes := 0
	for width := 1; width <= s.cfg.MaxWidth && !s.stop.Load(); width++ {
		size := alphabet.SpaceSize(width)
		s.log.Info("Brute force pass", "signature", s.sig.String(), "width", width, "candidates", size, "workers", workers)
		jobs := make([]job, workers)
		for i := range jobs {
			jobs[i] = job{width: width, index: uint64(i), stride: uint64(workers)}
		}
		passes++
		if err := p.Run(jobs); err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("pass %d failed: %w", width, err)
		}
		s.log.Debug("Pass done", "width", width, "accepted", s.best.Len(), "scanned", s.scanned.Load())
	}
	if err := p.Close(); err != nil {
		return nil, err
	}
	report := &Report{
		Results:    s.best.Results(),
		Passes:     passes,
		Scanned:    s.scanned.Load(),
		Terminated: s.stop.Load(),
		Reason:     s.reason,
		Elapsed:    time.Since(start),
	}
	if !report.Terminated {
		s.log.Info("All passes exhausted", "passes", passes, "accepted", len(report.Results))
	}
	return report, nil
}

// terminate raises the stop flag polled by every worker. Only the first reason is kept.
func (s *Search) terminate(reason string, out Outcome) {
	s.stopOnce.Do(func() {
		s.reason = reason
		s.stop.Store(true)
		s.log.Info("Search complete", "reason", reason, "accepted", out.Count, "best", out.Last.Hex())
	})
}

// scan is the worker loop for one job.
func (s *Search) scan(ctx context.Context, h hasher, j job) error {
	improve := s.cfg.Objective == ImproveOnly
	// The seed only lets the worker skip the lock for hopeless candidates;
	// the set itself decides under its lock.
	optimal := uint32(math.MaxUint32)
	if last, ok := s.best.Last(); ok && improve {
		optimal = last.Selector
	}

	prefix := s.sig.Prefix()
	buf := make([]byte, 0, len(prefix)+j.width+len(s.sig.Args))
	buf = append(buf, prefix...)

	max := alphabet.SpaceSize(j.width)
	var scanned uint64
	defer func() { s.scanned.Add(scanned) }()

	for ordinal := j.index; ordinal < max; ordinal += j.stride {
		if s.stop.Load() {
			return nil
		}
		if scanned%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		buf = alphabet.AppendEncode(buf[:len(prefix)], j.width, ordinal)
		buf = append(buf, s.sig.Args...)
		sel := h.Selector(buf)
		scanned++

		r := selector.New("", sel)
		if !r.Acceptable(s.cfg.Difficulty) {
			continue
		}
		if improve && sel >= optimal {
			continue
		}
		r.Signature = string(buf)
		out := s.best.Offer(r, s.cfg.Objective)
		switch out.Verdict {
		case Appended:
			optimal = sel
			s.log.Info("Accepted", "selector", r.Hex(), "zeros", r.Zeros, "leading", r.Leading, "signature", r.Signature)
			if r.Perfect() {
				s.terminate("perfect selector", out)
				return nil
			}
			if out.Count >= s.cfg.MaxResults {
				s.terminate("max results", out)
				return nil
			}
		case Superseded:
			s.log.Debug("Adopting shared optimum", "verdict", out.Verdict.String(), "selector", out.Last.Hex())
			optimal = out.Last.Selector
		case Full:
			s.terminate("max results", out)
			return nil
		}
	}
	return nil
}
