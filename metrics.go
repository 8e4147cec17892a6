package kmeanspp

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting run metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    runCounter       prometheus.Counter
//	    iterationCounter prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordIteration(stats kmeanspp.IterationStats) {
//	    p.iterationCounter.Inc()
//	}
type MetricsCollector interface {
	// RecordIteration is called after each refinement iteration.
	RecordIteration(stats IterationStats)

	// RecordRun is called once per Run.
	// iterations is 0 and converged false when err is non-nil.
	RecordRun(iterations int, converged bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(IterationStats)            {}
func (NoopMetricsCollector) RecordRun(int, bool, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount       atomic.Int64
	RunErrors      atomic.Int64
	ConvergedRuns  atomic.Int64
	RunTotalNanos  atomic.Int64
	IterationCount atomic.Int64
	EmptyClusters  atomic.Int64
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(stats IterationStats) {
	b.IterationCount.Add(1)
	b.EmptyClusters.Add(int64(stats.Empty))
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(iterations int, converged bool, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	if converged {
		b.ConvergedRuns.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:       b.RunCount.Load(),
		RunErrors:      b.RunErrors.Load(),
		ConvergedRuns:  b.ConvergedRuns.Load(),
		RunAvgNanos:    b.getAvgRunNanos(),
		IterationCount: b.IterationCount.Load(),
		EmptyClusters:  b.EmptyClusters.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount       int64
	RunErrors      int64
	ConvergedRuns  int64
	RunAvgNanos    int64
	IterationCount int64
	EmptyClusters  int64
}
