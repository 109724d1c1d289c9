package recocheck

import (
	"context"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/larbeam/recocheck/event"
)

// CountMode selects how a particle that reaches the same hit through
// several clusters contributes to that hit's association count.
type CountMode int

const (
	// CountRaw counts every (cluster, hit) occurrence. A single particle
	// reaching one hit via two clusters counts twice for that hit. This
	// matches the reference behavior.
	CountRaw CountMode = iota

	// CountDistinct counts each particle at most once per hit.
	CountDistinct
)

// HitAssociation is the per-hit diagnostic record: how many particle
// associations the hit accumulated.
type HitAssociation struct {
	Hit       event.HitID
	Particles int
}

// Report summarizes one check invocation. Hits contains one record per
// hit in the event's hit population, in population order, and is always
// complete before the pass/fail determination is made.
type Report struct {
	TotalHits       int
	MultiAssociated int
	Hits            []HitAssociation
}

// DoubleCountCheck verifies that every hit in an event is claimed by at
// most one reconstructed particle.
//
// A DoubleCountCheck holds no per-event state and is safe for concurrent
// use; distinct events may be checked in parallel with the same instance.
type DoubleCountCheck struct {
	mode    CountMode
	logger  *Logger
	metrics MetricsCollector
}

// New creates a DoubleCountCheck.
func New(optFns ...Option) *DoubleCountCheck {
	opts := options{
		mode:    CountRaw,
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &DoubleCountCheck{
		mode:    opts.mode,
		logger:  opts.logger,
		metrics: opts.metrics,
	}
}

// Run checks one event. It returns a Report with one record per hit and
// a nil error when no hit is multi-associated.
//
// On an *ErrMultiAssociatedHits failure the Report is still returned in
// full; on an *ErrMissingRelation failure the scan never started and the
// Report is nil. Both errors are fatal for the event: the caller is
// expected to abort the surrounding unit of work, not retry.
func (c *DoubleCountCheck) Run(ctx context.Context, ev *event.Event) (*Report, error) {
	start := time.Now()

	report, err := c.run(ctx, ev)

	hits := 0
	multi := 0
	if report != nil {
		hits = report.TotalHits
		multi = report.MultiAssociated
	}
	c.metrics.RecordCheck(hits, time.Since(start), err)
	c.logger.LogCheck(ctx, hits, multi, err)

	return report, err
}

func (c *DoubleCountCheck) run(ctx context.Context, ev *event.Event) (*Report, error) {
	if ev == nil {
		return nil, ErrNilEvent
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts, err := c.hitAssociationCounts(ev)
	if err != nil {
		return nil, err
	}

	// Scan the full hit population, not just the hits reached above.
	// A hit absent from every cluster counts zero associations.
	report := &Report{
		TotalHits: len(ev.Hits),
		Hits:      make([]HitAssociation, 0, len(ev.Hits)),
	}
	for _, h := range ev.Hits {
		n := counts[h]
		report.Hits = append(report.Hits, HitAssociation{Hit: h, Particles: n})
		c.logger.LogHitAssociations(ctx, uint32(h), n)

		if n > 1 {
			report.MultiAssociated++
		}
	}

	if report.MultiAssociated != 0 {
		return report, &ErrMultiAssociatedHits{
			MultiAssociated: report.MultiAssociated,
			TotalHits:       report.TotalHits,
		}
	}

	return report, nil
}

// hitAssociationCounts composes the particle→cluster and cluster→hit
// relations into a per-hit association count.
func (c *DoubleCountCheck) hitAssociationCounts(ev *event.Event) (map[event.HitID]int, error) {
	var distinct map[event.HitID]*roaring.Bitmap
	if c.mode == CountDistinct {
		distinct = make(map[event.HitID]*roaring.Bitmap)
	}

	counts := make(map[event.HitID]int)
	for _, p := range ev.Particles {
		clusters, ok := ev.Clusters(p)
		if !ok {
			return nil, &ErrMissingRelation{Kind: RelationParticleClusters, Key: uint32(p)}
		}

		for _, k := range clusters {
			hits, ok := ev.HitsIn(k)
			if !ok {
				return nil, &ErrMissingRelation{Kind: RelationClusterHits, Key: uint32(k)}
			}

			for _, h := range hits {
				if distinct == nil {
					counts[h]++
					continue
				}

				bm := distinct[h]
				if bm == nil {
					bm = roaring.New()
					distinct[h] = bm
				}
				bm.Add(uint32(p))
			}
		}
	}

	if distinct != nil {
		for h, bm := range distinct {
			counts[h] = int(bm.GetCardinality())
		}
	}

	return counts, nil
}
