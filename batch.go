package recocheck

import (
	"context"
	"fmt"
	"time"

	"github.com/larbeam/recocheck/blobstore"
	"github.com/larbeam/recocheck/snapshot"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Runner applies a DoubleCountCheck to every event snapshot under a
// prefix of a blob store. Events are independent, so they are checked
// with bounded concurrency; the first failing event cancels the rest,
// matching the fatal-per-event semantics of the check itself.
type Runner struct {
	store       blobstore.BlobStore
	check       *DoubleCountCheck
	concurrency int
	limiter     *rate.Limiter
	logger      *Logger
	metrics     MetricsCollector
}

type runnerOptions struct {
	concurrency int
	readRate    float64
	logger      *Logger
	metrics     MetricsCollector
}

// RunnerOption configures a Runner.
type RunnerOption func(*runnerOptions)

// WithConcurrency sets the maximum number of events checked in parallel.
// Default: 1.
func WithConcurrency(n int) RunnerOption {
	return func(o *runnerOptions) {
		o.concurrency = n
	}
}

// WithReadRate limits snapshot reads to perSec per second. Useful when
// snapshots live in a shared object store. 0 means unlimited (default).
func WithReadRate(perSec float64) RunnerOption {
	return func(o *runnerOptions) {
		o.readRate = perSec
	}
}

// WithRunnerLogger configures the structured logger used for snapshot
// reads. Pass nil to disable logging.
func WithRunnerLogger(l *Logger) RunnerOption {
	return func(o *runnerOptions) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithRunnerMetrics configures a metrics collector for snapshot reads.
// Pass nil to disable metrics collection.
func WithRunnerMetrics(mc MetricsCollector) RunnerOption {
	return func(o *runnerOptions) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// EventResult pairs a snapshot name with the report its check produced.
type EventResult struct {
	Name   string
	Report *Report
}

// NewRunner creates a Runner that reads snapshots from store and checks
// them with check.
func NewRunner(store blobstore.BlobStore, check *DoubleCountCheck, optFns ...RunnerOption) *Runner {
	opts := runnerOptions{
		concurrency: 1,
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.concurrency < 1 {
		opts.concurrency = 1
	}

	r := &Runner{
		store:       store,
		check:       check,
		concurrency: opts.concurrency,
		logger:      opts.logger,
		metrics:     opts.metrics,
	}
	if opts.readRate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(opts.readRate), 1)
	}
	return r
}

// Run checks every snapshot whose name starts with prefix. On success it
// returns one EventResult per snapshot, in listing order. The first
// failing event aborts the run and its error is returned, wrapped with
// the snapshot name.
func (r *Runner) Run(ctx context.Context, prefix string) ([]EventResult, error) {
	names, err := r.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	results := make([]EventResult, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, name := range names {
		g.Go(func() error {
			if r.limiter != nil {
				if err := r.limiter.Wait(ctx); err != nil {
					return err
				}
			}

			start := time.Now()
			ev, err := snapshot.Read(ctx, r.store, name)
			r.metrics.RecordSnapshotRead(time.Since(start), err)
			r.logger.LogSnapshotRead(ctx, name, err)
			if err != nil {
				return fmt.Errorf("read snapshot %s: %w", name, err)
			}

			report, err := r.check.Run(ctx, ev)
			if err != nil {
				return fmt.Errorf("event %s: %w", name, err)
			}

			results[i] = EventResult{Name: name, Report: report}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
