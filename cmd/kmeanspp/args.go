package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/codec"
	"github.com/hupe1980/kmeanspp/report"
)

// maxIterLimit is the exclusive upper bound accepted for max_iter.
const maxIterLimit = 1000

var errUsage = errors.New("usage: kmeanspp [flags] k [max_iter] eps file1 file2")

type cliConfig struct {
	run kmeanspp.Config

	left  string
	right string

	format      report.Format
	codec       codec.Codec
	out         string
	members     bool
	workers     int
	ioLimit     int64
	ledgerTable string

	logLevel slog.Level
	logJSON  bool
}

func parseArgs(args []string, getenv func(string) string) (*cliConfig, error) {
	fs := flag.NewFlagSet("kmeanspp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		format    = fs.String("format", "text", "report format: text or json")
		codecName = fs.String("codec", codec.Default.Name(), "JSON codec: "+strings.Join(codec.Names(), " or "))
		out       = fs.String("out", "", "write the report to this location instead of stdout")
		members   = fs.Bool("members", false, "include cluster members in JSON reports")
		workers   = fs.Int("workers", 0, "assignment workers (0 = one)")
		ioLimit   = fs.Int64("io-limit", 0, "input read limit in bytes per second (0 = unlimited)")
		ledger    = fs.String("ledger-table", "", "DynamoDB table recording runs (requires an s3:// -out)")
		logLevel  = fs.String("log-level", envOr(getenv, "KMEANSPP_LOG_LEVEL", "warn"), "log level: debug, info, warn or error")
		logJSON   = fs.Bool("log-json", false, "emit logs as JSON")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	pos := fs.Args()
	if len(pos) != 4 && len(pos) != 5 {
		return nil, errUsage
	}

	cfg := &cliConfig{
		run:         kmeanspp.DefaultConfig(0),
		out:         *out,
		members:     *members,
		workers:     *workers,
		ioLimit:     *ioLimit,
		ledgerTable: *ledger,
		logJSON:     *logJSON,
	}

	k, err := strconv.Atoi(pos[0])
	if err != nil || k < 1 {
		return nil, fmt.Errorf("%w: k must be a positive integer, got %q", kmeanspp.ErrInvalidK, pos[0])
	}
	cfg.run.K = k

	rest := pos[1:]
	if len(pos) == 5 {
		maxIter, err := strconv.Atoi(rest[0])
		if err != nil || maxIter <= 0 || maxIter >= maxIterLimit {
			return nil, fmt.Errorf("%w: max_iter must be in (0, %d), got %q", kmeanspp.ErrInvalidMaxIter, maxIterLimit, rest[0])
		}
		cfg.run.MaxIter = maxIter
		rest = rest[1:]
	}

	eps, err := strconv.ParseFloat(rest[0], 64)
	if err != nil || eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		return nil, fmt.Errorf("%w: eps must be a non-negative number, got %q", kmeanspp.ErrInvalidEpsilon, rest[0])
	}
	cfg.run.Epsilon = eps
	cfg.left, cfg.right = rest[1], rest[2]

	if cfg.format, err = report.ParseFormat(*format); err != nil {
		return nil, err
	}
	if cfg.codec, err = codec.ByName(*codecName); err != nil {
		return nil, err
	}

	if cfg.logLevel, err = parseLevel(*logLevel); err != nil {
		return nil, err
	}

	if cfg.ledgerTable != "" && !strings.HasPrefix(cfg.out, "s3://") {
		return nil, errors.New("-ledger-table requires an s3:// -out location")
	}
	if cfg.workers < 0 || cfg.ioLimit < 0 {
		return nil, errors.New("-workers and -io-limit must not be negative")
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
