package search

import (
	"context"
	"io"
	"sort"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/zeroselector/selgo/selector"
)

func testLogger() log.Logger {
	return log.NewLogger(log.LogfmtHandlerWithLevel(io.Discard, log.LevelInfo))
}

func testConfig(sig string, difficulty int, obj Objective, threads int, maxWidth int) Config {
	cfg := DefaultConfig(sig)
	cfg.Difficulty = difficulty
	cfg.Objective = obj
	cfg.Threads = threads
	cfg.MaxWidth = maxWidth
	return cfg
}

// overCommit sizes the pool past the config's NumCPU bound, so workers
// interleave even on single-core machines.
const overCommit = 8

func runSearch(t *testing.T, cfg Config, best *BestSet) *Report {
	s, err := NewSearch(cfg, testLogger(), best)
	require.NoError(t, err)
	report, err := s.Run(context.Background())
	require.NoError(t, err)
	return report
}

func runWorkers(t *testing.T, cfg Config, workers int) *Report {
	s, err := NewSearch(cfg, testLogger(), nil)
	require.NoError(t, err)
	report, err := s.run(context.Background(), workers)
	require.NoError(t, err)
	return report
}

func signatures(rs []selector.Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Signature
	}
	return out
}

// depositWidthOne lists the one-character suffixes of deposit(uint256) whose
// selector has at least one zero byte.
var depositWidthOne = []string{
	"deposit_2(uint256)",
	"deposit_9(uint256)",
	"deposit_K(uint256)",
}

func TestDepositSinglePass(t *testing.T) {
	t.Run("DifficultyOne", func(t *testing.T) {
		cfg := testConfig("deposit(uint256)", 1, CollectAll, 1, 1)
		cfg.MaxResults = MaxResults
		report := runSearch(t, cfg, nil)
		require.Equal(t, 1, report.Passes)
		require.Equal(t, uint64(64), report.Scanned, "every candidate is scored")
		require.False(t, report.Terminated)
		require.Equal(t, depositWidthOne, signatures(report.Results))
		for _, r := range report.Results {
			require.GreaterOrEqual(t, r.Zeros, 1)
			require.Equal(t, selector.Score(r.Signature), r)
		}
	})
	t.Run("DifficultyTwo", func(t *testing.T) {
		cfg := testConfig("deposit(uint256)", 2, CollectAll, 1, 1)
		report := runSearch(t, cfg, nil)
		require.Equal(t, 1, report.Passes)
		require.Equal(t, uint64(64), report.Scanned, "every candidate is scored")
		require.False(t, report.Terminated)
		require.Empty(t, report.Results)
	})
}

func TestCollectAllThreadEquivalence(t *testing.T) {
	// single-width passes stay well below MaxResults, so neither run terminates early
	names := []string{"mint", "burn", "claim", "stake", "unstake", "redeem", "repay", "borrow",
		"swap", "harvest", "compound", "rebalance", "settle", "vote", "delegate", "propose"}
	var single, multi []string
	for _, name := range names {
		cfg := testConfig(name+"(address,uint256)", 1, CollectAll, 1, 1)
		cfg.MaxResults = MaxResults
		one := runWorkers(t, cfg, 1)
		many := runWorkers(t, cfg, overCommit)
		require.False(t, one.Terminated)
		require.False(t, many.Terminated)
		require.Equal(t, uint64(64), one.Scanned)
		require.Equal(t, one.Scanned, many.Scanned)
		single = append(single, signatures(one.Results)...)
		multi = append(multi, signatures(many.Results)...)
	}
	require.NotEmpty(t, single)
	sort.Strings(single)
	sort.Strings(multi)
	require.Equal(t, single, multi)
}

func TestImproveOnlyMonotonic(t *testing.T) {
	for _, workers := range []int{1, overCommit} {
		cfg := testConfig("swap(uint256,uint256,address)", 1, ImproveOnly, 1, 3)
		cfg.MaxResults = MaxResults
		report := runWorkers(t, cfg, workers)
		require.NotEmpty(t, report.Results)
		require.LessOrEqual(t, len(report.Results), cfg.MaxResults)
		for i, r := range report.Results {
			require.GreaterOrEqual(t, r.Zeros, cfg.Difficulty)
			if i > 0 {
				require.Less(t, r.Selector, report.Results[i-1].Selector, "entry %d must improve", i)
			}
		}
	}
}

func TestTerminationAtMaxResults(t *testing.T) {
	for _, workers := range []int{1, overCommit} {
		cfg := testConfig("claim(bytes32)", 1, CollectAll, 1, 3)
		cfg.MaxResults = 3
		report := runWorkers(t, cfg, workers)
		require.Len(t, report.Results, 3)
		require.True(t, report.Terminated)
		require.Equal(t, "max results", report.Reason)
		// the third pass would add 64^3 candidates
		require.LessOrEqual(t, report.Scanned, uint64(64+4096))
		require.LessOrEqual(t, report.Passes, 2)
	}
}

func TestSharedBestSetAlreadyFull(t *testing.T) {
	best := NewBestSet(2)
	best.Offer(selector.Score("a()"), CollectAll)
	best.Offer(selector.Score("b()"), CollectAll)

	cfg := testConfig("claim(bytes32)", 1, CollectAll, 1, 2)
	cfg.MaxResults = 2
	report := runSearch(t, cfg, best)
	require.True(t, report.Terminated)
	require.Equal(t, []string{"a()", "b()"}, signatures(report.Results))
	require.LessOrEqual(t, report.Passes, 2)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := NewSearch(testConfig("claim(bytes32)", 1, CollectAll, 1, 2), testLogger(), nil)
	require.NoError(t, err)
	_, err = s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewSearchInvalidConfig(t *testing.T) {
	_, err := NewSearch(testConfig("claim", 1, CollectAll, 1, 2), testLogger(), nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorIs(t, err, selector.ErrMissingArgs)
}

func TestBestSetCapacityMustMatch(t *testing.T) {
	cfg := testConfig("claim(bytes32)", 1, CollectAll, 1, 2)
	cfg.MaxResults = 3
	_, err := NewSearch(cfg, testLogger(), NewBestSet(64))
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorContains(t, err, "capacity 64")
}

// zeroAt reports a zero selector for one signature and defers to Keccak otherwise.
type zeroAt struct {
	target string
	inner  *selector.Scorer
}

func (z *zeroAt) Selector(sig []byte) uint32 {
	if string(sig) == z.target {
		return 0
	}
	return z.inner.Selector(sig)
}

func TestTerminationOnPerfectSelector(t *testing.T) {
	const target = "claim_a1(bytes32)"
	for _, workers := range []int{1, overCommit} {
		cfg := testConfig("claim(bytes32)", 1, ImproveOnly, 1, 4)
		cfg.MaxResults = MaxResults
		s, err := NewSearch(cfg, testLogger(), nil)
		require.NoError(t, err)
		s.newHasher = func() hasher { return &zeroAt{target: target, inner: selector.NewScorer()} }

		report, err := s.run(context.Background(), workers)
		require.NoError(t, err)
		require.True(t, report.Terminated)
		require.Equal(t, "perfect selector", report.Reason)
		require.Equal(t, 2, report.Passes, "no pass after the one holding the perfect selector")
		require.LessOrEqual(t, report.Scanned, uint64(64+4096))

		last := report.Results[len(report.Results)-1]
		require.Equal(t, target, last.Signature)
		require.True(t, last.Perfect())
		require.Equal(t, 4, last.Leading)
	}
}
