package main

import (
	"log/slog"
	"testing"

	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/codec"
	"github.com/hupe1980/kmeanspp/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestParseArgs(t *testing.T) {
	t.Run("default max_iter", func(t *testing.T) {
		cfg, err := parseArgs([]string{"3", "0.01", "a.csv", "b.csv"}, noEnv)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.run.K)
		assert.Equal(t, kmeanspp.DefaultMaxIter, cfg.run.MaxIter)
		assert.Equal(t, 0.01, cfg.run.Epsilon)
		assert.Equal(t, kmeanspp.DefaultSeed, cfg.run.Seed)
		assert.Equal(t, "a.csv", cfg.left)
		assert.Equal(t, "b.csv", cfg.right)
		assert.Equal(t, report.Text, cfg.format)
		assert.Equal(t, codec.Default.Name(), cfg.codec.Name())
		assert.Equal(t, slog.LevelWarn, cfg.logLevel)
	})

	t.Run("explicit max_iter and flags", func(t *testing.T) {
		cfg, err := parseArgs([]string{
			"-format", "json", "-codec", "json", "-workers", "4", "-io-limit", "1024",
			"-log-level", "debug", "-log-json", "-members",
			"2", "999", "0", "s3://b/l.csv", "minio://b/r.csv",
		}, noEnv)
		require.NoError(t, err)
		assert.Equal(t, 999, cfg.run.MaxIter)
		assert.Zero(t, cfg.run.Epsilon)
		assert.Equal(t, report.JSON, cfg.format)
		assert.Equal(t, "json", cfg.codec.Name())
		assert.Equal(t, 4, cfg.workers)
		assert.Equal(t, int64(1024), cfg.ioLimit)
		assert.Equal(t, slog.LevelDebug, cfg.logLevel)
		assert.True(t, cfg.logJSON)
		assert.True(t, cfg.members)
	})

	t.Run("log level from env", func(t *testing.T) {
		cfg, err := parseArgs([]string{"2", "0.1", "a", "b"}, func(key string) string {
			if key == "KMEANSPP_LOG_LEVEL" {
				return "info"
			}
			return ""
		})
		require.NoError(t, err)
		assert.Equal(t, slog.LevelInfo, cfg.logLevel)
	})
}

func TestParseArgs_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want error
	}{
		{name: "too few", args: []string{"2", "0.1", "a"}, want: errUsage},
		{name: "too many", args: []string{"2", "10", "0.1", "a", "b", "c"}, want: errUsage},
		{name: "k not integer", args: []string{"2.5", "0.1", "a", "b"}, want: kmeanspp.ErrInvalidK},
		{name: "k zero", args: []string{"0", "0.1", "a", "b"}, want: kmeanspp.ErrInvalidK},
		{name: "max_iter too large", args: []string{"2", "1000", "0.1", "a", "b"}, want: kmeanspp.ErrInvalidMaxIter},
		{name: "max_iter zero", args: []string{"2", "0", "0.1", "a", "b"}, want: kmeanspp.ErrInvalidMaxIter},
		{name: "negative eps", args: []string{"2", "-0.1", "a", "b"}, want: kmeanspp.ErrInvalidEpsilon},
		{name: "eps not a number", args: []string{"2", "x", "a", "b"}, want: kmeanspp.ErrInvalidEpsilon},
		{name: "bad format", args: []string{"-format", "xml", "2", "0.1", "a", "b"}},
		{name: "bad codec", args: []string{"-codec", "gob", "2", "0.1", "a", "b"}},
		{name: "bad log level", args: []string{"-log-level", "loud", "2", "0.1", "a", "b"}},
		{name: "ledger without s3", args: []string{"-ledger-table", "runs", "-out", "out.json", "2", "0.1", "a", "b"}},
		{name: "negative workers", args: []string{"-workers", "-1", "2", "0.1", "a", "b"}},
		{name: "unknown flag", args: []string{"-nope", "2", "0.1", "a", "b"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseArgs(tc.args, noEnv)
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}
