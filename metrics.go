package predgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after construction.
	RecordBuild(duration time.Duration, err error)

	// RecordQuery is called after each predecessor query.
	RecordQuery(duration time.Duration, err error)

	// RecordBatchQuery is called after each batch query.
	// count is the number of limits queried.
	RecordBatchQuery(count int, duration time.Duration, err error)

	// RecordSnapshotSave is called after each snapshot save.
	RecordSnapshotSave(duration time.Duration, err error)

	// RecordSnapshotLoad is called after each snapshot load.
	RecordSnapshotLoad(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(time.Duration, error)           {}
func (NoopMetricsCollector) RecordQuery(time.Duration, error)           {}
func (NoopMetricsCollector) RecordBatchQuery(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSnapshotSave(time.Duration, error)    {}
func (NoopMetricsCollector) RecordSnapshotLoad(time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount         atomic.Int64
	BuildErrors        atomic.Int64
	BuildTotalNanos    atomic.Int64
	QueryCount         atomic.Int64
	QueryErrors        atomic.Int64
	QueryTotalNanos    atomic.Int64
	BatchCount         atomic.Int64
	BatchItems         atomic.Int64
	BatchErrors        atomic.Int64
	SnapshotSaves      atomic.Int64
	SnapshotLoads      atomic.Int64
	SnapshotErrors     atomic.Int64
	SnapshotTotalNanos atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordBatchQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchQuery(count int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchItems.Add(int64(count))
	if err != nil {
		b.BatchErrors.Add(1)
	}
}

// RecordSnapshotSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotSave(duration time.Duration, err error) {
	b.SnapshotSaves.Add(1)
	b.SnapshotTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}

// RecordSnapshotLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotLoad(duration time.Duration, err error) {
	b.SnapshotLoads.Add(1)
	b.SnapshotTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}
