// Command kmeanspp clusters the inner join of two keyed CSV tables with
// k-means, seeded by k-means++.
//
// Usage:
//
//	kmeanspp [flags] k [max_iter] eps file1 file2
//
// Files may be local paths, s3://bucket/key or minio://bucket/key, optionally
// gzip, zstd or lz4 compressed. The report lists the seed keys on the first
// line and one centroid per following line. Any failure prints
// "An Error Has Occurred" and exits with status 1; the cause is logged.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/dataset"
	"github.com/hupe1980/kmeanspp/report"
	"github.com/hupe1980/kmeanspp/resource"
	"github.com/joho/godotenv"
)

const errorMessage = "An Error Has Occurred"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	// A missing .env file is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(stderr, "read .env:", err)
	}

	cfg, err := parseArgs(args, getenv)
	if err != nil {
		fmt.Fprintln(stdout, errorMessage)
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := newLogger(stderr, cfg)
	if err := execute(ctx, cfg, getenv, stdout, logger); err != nil {
		logger.ErrorContext(ctx, "kmeanspp failed", "error", err)
		fmt.Fprintln(stdout, errorMessage)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, cfg *cliConfig) *kmeanspp.Logger {
	opts := &slog.HandlerOptions{Level: cfg.logLevel}
	if cfg.logJSON {
		return kmeanspp.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return kmeanspp.NewLogger(slog.NewTextHandler(w, opts))
}

func execute(ctx context.Context, cfg *cliConfig, getenv func(string) string, stdout io.Writer, logger *kmeanspp.Logger) error {
	rc := resource.NewController(resource.Config{
		MaxWorkers:         int64(max(cfg.workers, 1)),
		IOLimitBytesPerSec: cfg.ioLimit,
	})
	res := newResolver(getenv)

	left, err := load(ctx, res, cfg.left, rc, logger)
	if err != nil {
		return err
	}
	right, err := load(ctx, res, cfg.right, rc, logger)
	if err != nil {
		return err
	}

	ps, err := dataset.Join(left, right)
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}

	result, err := kmeanspp.Run(ctx, ps, cfg.run,
		kmeanspp.WithLogger(logger),
		kmeanspp.WithWorkers(cfg.workers),
		kmeanspp.WithResourceController(rc),
	)
	if err != nil {
		return err
	}

	rep := report.New(result, ps, cfg.members)
	if cfg.out == "" {
		sink := &report.WriterSink{W: stdout, Format: cfg.format, Codec: cfg.codec}
		return sink.Write(ctx, rep)
	}
	return publish(ctx, res, cfg, rep, logger)
}

func load(ctx context.Context, res *resolver, uri string, rc *resource.Controller, logger *kmeanspp.Logger) (*dataset.Table, error) {
	loc, err := parseLocation(uri)
	if err != nil {
		return nil, err
	}
	store, err := res.store(ctx, loc)
	if err != nil {
		return nil, err
	}

	t, err := dataset.Load(ctx, store, loc.name, rc)
	rows := 0
	if t != nil {
		rows = t.Len()
	}
	logger.LogLoad(ctx, uri, rows, err)
	return t, err
}

func publish(ctx context.Context, res *resolver, cfg *cliConfig, rep *report.Report, logger *kmeanspp.Logger) error {
	loc, err := parseLocation(cfg.out)
	if err != nil {
		return err
	}

	if cfg.ledgerTable != "" {
		ledger, err := res.ledger(ctx, loc, cfg.ledgerTable)
		if err != nil {
			return err
		}
		data, err := (&report.BlobSink{Name: loc.name, Format: cfg.format, Codec: cfg.codec}).Bytes(rep)
		if err != nil {
			return err
		}
		version, err := ledger.Commit(ctx, loc.name, data, map[string]string{
			"k":          strconv.Itoa(cfg.run.K),
			"iterations": strconv.Itoa(rep.Iterations),
			"converged":  strconv.FormatBool(rep.Converged),
		})
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		logger.InfoContext(ctx, "run recorded", "table", cfg.ledgerTable, "version", version, "report", cfg.out)
		return nil
	}

	store, err := res.outputStore(ctx, loc)
	if err != nil {
		return err
	}
	sink := &report.BlobSink{Store: store, Name: loc.name, Format: cfg.format, Codec: cfg.codec}
	if err := sink.Write(ctx, rep); err != nil {
		return err
	}
	logger.InfoContext(ctx, "report written", "location", cfg.out)
	return nil
}
