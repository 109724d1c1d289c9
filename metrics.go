package recocheck

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordCheck is called after each check invocation.
	// hits is the number of hits scanned, duration is the total time
	// taken, err is nil if the event passed.
	RecordCheck(hits int, duration time.Duration, err error)

	// RecordSnapshotRead is called after each snapshot read.
	RecordSnapshotRead(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCheck(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordSnapshotRead(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CheckCount         atomic.Int64
	CheckFailures      atomic.Int64
	CheckTotalNanos    atomic.Int64
	HitsScanned        atomic.Int64
	SnapshotReads      atomic.Int64
	SnapshotReadErrors atomic.Int64
}

// RecordCheck implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCheck(hits int, duration time.Duration, err error) {
	b.CheckCount.Add(1)
	b.CheckTotalNanos.Add(duration.Nanoseconds())
	b.HitsScanned.Add(int64(hits))
	if err != nil {
		b.CheckFailures.Add(1)
	}
}

// RecordSnapshotRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotRead(duration time.Duration, err error) {
	b.SnapshotReads.Add(1)
	if err != nil {
		b.SnapshotReadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CheckCount:         b.CheckCount.Load(),
		CheckFailures:      b.CheckFailures.Load(),
		CheckAvgNanos:      b.getAvgCheckNanos(),
		HitsScanned:        b.HitsScanned.Load(),
		SnapshotReads:      b.SnapshotReads.Load(),
		SnapshotReadErrors: b.SnapshotReadErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgCheckNanos() int64 {
	count := b.CheckCount.Load()
	if count == 0 {
		return 0
	}
	return b.CheckTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CheckCount         int64
	CheckFailures      int64
	CheckAvgNanos      int64
	HitsScanned        int64
	SnapshotReads      int64
	SnapshotReadErrors int64
}
