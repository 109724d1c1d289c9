// Package testutil provides deterministic fixtures for recocheck tests:
// a seeded thread-safe RNG and builders for the event topologies the
// check cares about.
package testutil

import (
	"math/rand"
	"sync"

	"github.com/larbeam/recocheck/event"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// ShuffleParticles returns a shuffled copy of the particle IDs.
func (r *RNG) ShuffleParticles(ids []event.ParticleID) []event.ParticleID {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]event.ParticleID, len(ids))
	copy(out, ids)
	r.rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// ShuffleHits returns a shuffled copy of the hit IDs.
func (r *RNG) ShuffleHits(ids []event.HitID) []event.HitID {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]event.HitID, len(ids))
	copy(out, ids)
	r.rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// DisjointEvent builds an event where every particle owns its own
// clusters and every cluster its own hits, so no hit is shared. IDs are
// assigned densely in iteration order.
func DisjointEvent(particles, clustersPerParticle, hitsPerCluster int) *event.Event {
	ev := &event.Event{
		ParticleClusters: make(map[event.ParticleID][]event.ClusterID),
		ClusterHits:      make(map[event.ClusterID][]event.HitID),
	}

	nextCluster := event.ClusterID(0)
	nextHit := event.HitID(0)
	for p := 0; p < particles; p++ {
		pid := event.ParticleID(p)
		ev.Particles = append(ev.Particles, pid)

		for c := 0; c < clustersPerParticle; c++ {
			kid := nextCluster
			nextCluster++
			ev.ParticleClusters[pid] = append(ev.ParticleClusters[pid], kid)

			hits := make([]event.HitID, 0, hitsPerCluster)
			for h := 0; h < hitsPerCluster; h++ {
				hits = append(hits, nextHit)
				ev.Hits = append(ev.Hits, nextHit)
				nextHit++
			}
			ev.ClusterHits[kid] = hits
		}
	}

	return ev
}

// SharedHitEvent builds two particles whose clusters both contain one
// shared hit, plus one private hit each. The shared hit is the violating
// one.
func SharedHitEvent() (*event.Event, event.HitID) {
	const shared = event.HitID(0)

	ev := &event.Event{
		Particles: []event.ParticleID{0, 1},
		Hits:      []event.HitID{shared, 1, 2},
		ParticleClusters: map[event.ParticleID][]event.ClusterID{
			0: {0},
			1: {1},
		},
		ClusterHits: map[event.ClusterID][]event.HitID{
			0: {shared, 1},
			1: {shared, 2},
		},
	}
	return ev, shared
}
