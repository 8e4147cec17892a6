package kmeanspp

import (
	"log/slog"

	"github.com/hupe1980/kmeanspp/resource"
)

type options struct {
	workers          int
	controller       *resource.Controller
	fullPartition    bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Run.
type Option func(*options)

// WithWorkers sets the number of goroutines used for the assignment step.
//
// Labels and centroids are identical for every worker count; only wall time
// changes. If workers <= 0 the resource controller's MaxWorkers is used, and
// without a controller the assignment runs on the calling goroutine.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithResourceController bounds worker slots and working memory.
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MaxWorkers:       4,
//	    MemoryLimitBytes: 512 << 20,
//	})
//	res, _ := kmeanspp.Run(ctx, ps, cfg, kmeanspp.WithResourceController(rc))
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithFullPartition permits k == n, where every point becomes its own
// cluster. By default k must be strictly less than the number of points.
func WithFullPartition() Option {
	return func(o *options) {
		o.fullPartition = true
	}
}

// WithMetricsCollector enables metrics collection for runs.
//
// Example:
//
//	metrics := &kmeanspp.BasicMetricsCollector{}
//	res, _ := kmeanspp.Run(ctx, ps, cfg, kmeanspp.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Iterations: %d\n", stats.RunCount, stats.IterationCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmeanspp.NewJSONLogger(slog.LevelInfo)
//	res, _ := kmeanspp.Run(ctx, ps, cfg, kmeanspp.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}
