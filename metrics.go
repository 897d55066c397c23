package clustergo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordFit is called after each fit operation.
	// k is the requested cluster count, iterations the number of
	// assign/update passes, duration the total time taken, err is nil
	// if successful.
	RecordFit(k, iterations int, duration time.Duration, err error)

	// RecordPredict is called after each predict operation.
	// n is the number of points labeled.
	RecordPredict(n int, duration time.Duration, err error)

	// RecordSave is called after each model save.
	// size is the encoded artifact size in bytes.
	RecordSave(size int, duration time.Duration, err error)

	// RecordLoad is called after each model load.
	RecordLoad(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFit(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPredict(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordSave(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordLoad(time.Duration, error)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FitCount          atomic.Int64
	FitErrors         atomic.Int64
	FitIterations     atomic.Int64
	FitTotalNanos     atomic.Int64
	PredictCount      atomic.Int64
	PredictErrors     atomic.Int64
	PredictPoints     atomic.Int64
	PredictTotalNanos atomic.Int64
	SaveCount         atomic.Int64
	SaveErrors        atomic.Int64
	SaveBytes         atomic.Int64
	SaveTotalNanos    atomic.Int64
	LoadCount         atomic.Int64
	LoadErrors        atomic.Int64
	LoadTotalNanos    atomic.Int64
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(k, iterations int, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitIterations.Add(int64(iterations))
	b.FitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FitErrors.Add(1)
	}
}

// RecordPredict implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPredict(n int, duration time.Duration, err error) {
	b.PredictCount.Add(1)
	b.PredictPoints.Add(int64(n))
	b.PredictTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PredictErrors.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(size int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveBytes.Add(int64(size))
	b.SaveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}
