package lstar

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting learner metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    queryCounter   prometheus.Counter
//	    roundHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordQueries(count int, duration time.Duration, err error) {
//	    p.queryCounter.Add(float64(count))
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordQueries is called after each batch sent to the membership oracle.
	// count is the batch size, duration the time the oracle took.
	RecordQueries(count int, duration time.Duration, err error)

	// RecordPromotion is called after rows were promoted to short prefixes.
	RecordPromotion(rows int)

	// RecordSuffixes is called after suffixes were added to the table.
	RecordSuffixes(count int)

	// RecordRound is called after each closing or consistency step.
	RecordRound(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordQueries(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPromotion(int)                     {}
func (NoopMetricsCollector) RecordSuffixes(int)                      {}
func (NoopMetricsCollector) RecordRound(time.Duration, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BatchCount      atomic.Int64
	QueryCount      atomic.Int64
	BatchErrors     atomic.Int64
	QueryTotalNanos atomic.Int64
	PromotedRows    atomic.Int64
	AddedSuffixes   atomic.Int64
	RoundCount      atomic.Int64
	RoundErrors     atomic.Int64
	RoundTotalNanos atomic.Int64
}

// RecordQueries implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQueries(count int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.QueryCount.Add(int64(count))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BatchErrors.Add(1)
	}
}

// RecordPromotion implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPromotion(rows int) {
	b.PromotedRows.Add(int64(rows))
}

// RecordSuffixes implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSuffixes(count int) {
	b.AddedSuffixes.Add(int64(count))
}

// RecordRound implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRound(duration time.Duration, err error) {
	b.RoundCount.Add(1)
	b.RoundTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RoundErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BatchCount:    b.BatchCount.Load(),
		QueryCount:    b.QueryCount.Load(),
		BatchErrors:   b.BatchErrors.Load(),
		BatchAvgNanos: avg(b.QueryTotalNanos.Load(), b.BatchCount.Load()),
		PromotedRows:  b.PromotedRows.Load(),
		AddedSuffixes: b.AddedSuffixes.Load(),
		RoundCount:    b.RoundCount.Load(),
		RoundErrors:   b.RoundErrors.Load(),
		RoundAvgNanos: avg(b.RoundTotalNanos.Load(), b.RoundCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BatchCount    int64
	QueryCount    int64
	BatchErrors   int64
	BatchAvgNanos int64
	PromotedRows  int64
	AddedSuffixes int64
	RoundCount    int64
	RoundErrors   int64
	RoundAvgNanos int64
}
