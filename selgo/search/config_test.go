package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigCheck(t *testing.T) {
	valid := DefaultConfig("deposit(uint256)")
	valid.Threads = 1
	require.NoError(t, valid.Check())

	cases := []struct {
		name   string
		modify func(c *Config)
		msg    string
	}{
		{"MissingArgs", func(c *Config) { c.Signature = "deposit" }, "argument list"},
		{"DifficultyLow", func(c *Config) { c.Difficulty = 0 }, "difficulty"},
		{"DifficultyHigh", func(c *Config) { c.Difficulty = 4 }, "difficulty"},
		{"ResultsLow", func(c *Config) { c.MaxResults = 1 }, "max results"},
		{"ResultsHigh", func(c *Config) { c.MaxResults = 21 }, "max results"},
		{"Objective", func(c *Config) { c.Objective = 7 }, "objective"},
		{"NoThreads", func(c *Config) { c.Threads = 0 }, "threads"},
		{"TooManyThreads", func(c *Config) { c.Threads = 1 << 20 }, "threads"},
		{"WidthZero", func(c *Config) { c.MaxWidth = 0 }, "max width"},
		{"WidthHigh", func(c *Config) { c.MaxWidth = 7 }, "max width"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := valid
			c.modify(&cfg)
			err := cfg.Check()
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.ErrorContains(t, err, c.msg)
		})
	}
}

func TestParseObjective(t *testing.T) {
	for _, obj := range []Objective{CollectAll, ImproveOnly} {
		got, err := ParseObjective(obj.String())
		require.NoError(t, err)
		require.Equal(t, obj, got)
	}
	_, err := ParseObjective("best")
	require.ErrorIs(t, err, ErrInvalidConfig)
}
