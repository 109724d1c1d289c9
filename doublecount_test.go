package recocheck

import (
	"context"
	"testing"

	"github.com/larbeam/recocheck/event"
	"github.com/larbeam/recocheck/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleCountCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("NoParticles", func(t *testing.T) {
		ev := &event.Event{
			Hits:             []event.HitID{0, 1, 2},
			ParticleClusters: map[event.ParticleID][]event.ClusterID{},
			ClusterHits:      map[event.ClusterID][]event.HitID{},
		}

		report, err := New().Run(ctx, ev)
		require.NoError(t, err)
		assert.Equal(t, 3, report.TotalHits)
		assert.Equal(t, 0, report.MultiAssociated)
		require.Len(t, report.Hits, 3)
		for _, h := range report.Hits {
			assert.Equal(t, 0, h.Particles)
		}
	})

	t.Run("DisjointParticles", func(t *testing.T) {
		ev := testutil.DisjointEvent(2, 2, 3)

		report, err := New().Run(ctx, ev)
		require.NoError(t, err)
		assert.Equal(t, 12, report.TotalHits)
		assert.Equal(t, 0, report.MultiAssociated)
		for _, h := range report.Hits {
			assert.Equal(t, 1, h.Particles)
		}
	})

	t.Run("SharedHit", func(t *testing.T) {
		ev, shared := testutil.SharedHitEvent()

		report, err := New().Run(ctx, ev)
		require.Error(t, err)

		var multi *ErrMultiAssociatedHits
		require.ErrorAs(t, err, &multi)
		assert.Equal(t, 1, multi.MultiAssociated)
		assert.Equal(t, 3, multi.TotalHits)

		// Diagnostics are complete even on failure.
		require.NotNil(t, report)
		require.Len(t, report.Hits, report.TotalHits)
		for _, h := range report.Hits {
			if h.Hit == shared {
				assert.Equal(t, 2, h.Particles)
			} else {
				assert.Equal(t, 1, h.Particles)
			}
		}
	})

	t.Run("MissingClusterRelation", func(t *testing.T) {
		ev := &event.Event{
			Particles: []event.ParticleID{0},
			Hits:      []event.HitID{0},
			ParticleClusters: map[event.ParticleID][]event.ClusterID{
				0: {5},
			},
			ClusterHits: map[event.ClusterID][]event.HitID{},
		}

		report, err := New().Run(ctx, ev)
		require.Error(t, err)
		assert.Nil(t, report)

		var missing *ErrMissingRelation
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, RelationClusterHits, missing.Kind)
		assert.Equal(t, uint32(5), missing.Key)
	})

	t.Run("MissingParticleRelation", func(t *testing.T) {
		ev := &event.Event{
			Particles:        []event.ParticleID{7},
			Hits:             []event.HitID{0},
			ParticleClusters: map[event.ParticleID][]event.ClusterID{},
			ClusterHits:      map[event.ClusterID][]event.HitID{},
		}

		report, err := New().Run(ctx, ev)
		require.Error(t, err)
		assert.Nil(t, report)

		var missing *ErrMissingRelation
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, RelationParticleClusters, missing.Kind)
		assert.Equal(t, uint32(7), missing.Key)
	})

	t.Run("EmptyRelationEntryIsNotMissing", func(t *testing.T) {
		ev := &event.Event{
			Particles: []event.ParticleID{0},
			Hits:      []event.HitID{0},
			ParticleClusters: map[event.ParticleID][]event.ClusterID{
				0: {},
			},
			ClusterHits: map[event.ClusterID][]event.HitID{},
		}

		report, err := New().Run(ctx, ev)
		require.NoError(t, err)
		assert.Equal(t, 0, report.MultiAssociated)
	})

	t.Run("UnassociatedHit", func(t *testing.T) {
		ev := &event.Event{
			Particles: []event.ParticleID{0},
			Hits:      []event.HitID{0, 99},
			ParticleClusters: map[event.ParticleID][]event.ClusterID{
				0: {0},
			},
			ClusterHits: map[event.ClusterID][]event.HitID{
				0: {0},
			},
		}

		report, err := New().Run(ctx, ev)
		require.NoError(t, err)
		require.Len(t, report.Hits, 2)
		assert.Equal(t, 1, report.Hits[0].Particles)
		assert.Equal(t, 0, report.Hits[1].Particles)
	})

	t.Run("NilEvent", func(t *testing.T) {
		report, err := New().Run(ctx, nil)
		assert.Nil(t, report)
		require.ErrorIs(t, err, ErrNilEvent)
	})
}

func TestCountModes(t *testing.T) {
	ctx := context.Background()

	// One particle reaching hit 0 through two different clusters.
	duplicated := func() *event.Event {
		return &event.Event{
			Particles: []event.ParticleID{0},
			Hits:      []event.HitID{0},
			ParticleClusters: map[event.ParticleID][]event.ClusterID{
				0: {0, 1},
			},
			ClusterHits: map[event.ClusterID][]event.HitID{
				0: {0},
				1: {0},
			},
		}
	}

	t.Run("RawCountsEveryOccurrence", func(t *testing.T) {
		report, err := New().Run(ctx, duplicated())
		require.Error(t, err)

		var multi *ErrMultiAssociatedHits
		require.ErrorAs(t, err, &multi)
		assert.Equal(t, 1, multi.MultiAssociated)
		assert.Equal(t, 2, report.Hits[0].Particles)
	})

	t.Run("DistinctCountsParticleOnce", func(t *testing.T) {
		report, err := New(WithCountMode(CountDistinct)).Run(ctx, duplicated())
		require.NoError(t, err)
		assert.Equal(t, 0, report.MultiAssociated)
		assert.Equal(t, 1, report.Hits[0].Particles)
	})

	t.Run("DistinctStillFlagsTwoParticles", func(t *testing.T) {
		ev, _ := testutil.SharedHitEvent()

		_, err := New(WithCountMode(CountDistinct)).Run(ctx, ev)
		var multi *ErrMultiAssociatedHits
		require.ErrorAs(t, err, &multi)
		assert.Equal(t, 1, multi.MultiAssociated)
	})
}

func TestOrderIndependence(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(42)

	ev, _ := testutil.SharedHitEvent()

	baseline, baseErr := New().Run(ctx, ev)
	require.Error(t, baseErr)

	counts := func(r *Report) map[event.HitID]int {
		m := make(map[event.HitID]int, len(r.Hits))
		for _, h := range r.Hits {
			m[h.Hit] = h.Particles
		}
		return m
	}

	for i := 0; i < 10; i++ {
		shuffled := &event.Event{
			Particles:        rng.ShuffleParticles(ev.Particles),
			Hits:             rng.ShuffleHits(ev.Hits),
			ParticleClusters: ev.ParticleClusters,
			ClusterHits:      ev.ClusterHits,
		}

		report, err := New().Run(ctx, shuffled)
		require.Error(t, err)
		assert.Equal(t, baseErr.Error(), err.Error())
		assert.Equal(t, counts(baseline), counts(report))
	}
}

func TestBasicMetricsCollector(t *testing.T) {
	ctx := context.Background()
	mc := &BasicMetricsCollector{}
	check := New(WithMetricsCollector(mc))

	_, err := check.Run(ctx, testutil.DisjointEvent(1, 1, 2))
	require.NoError(t, err)

	ev, _ := testutil.SharedHitEvent()
	_, err = check.Run(ctx, ev)
	var multi *ErrMultiAssociatedHits
	require.ErrorAs(t, err, &multi)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.CheckCount)
	assert.Equal(t, int64(1), stats.CheckFailures)
	assert.Equal(t, int64(5), stats.HitsScanned)
}
