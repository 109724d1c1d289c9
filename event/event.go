// Package event defines the transient data model for one reconstructed
// event: the particle and hit populations plus the association relations
// that connect them through clusters.
//
// All values are owned by the producer that supplied them. Consumers
// (checks, snapshot writers) treat an Event as read-only; nothing here
// survives past the invocation that received it.
package event

// Event holds the reconstruction output of a single event.
//
// ParticleClusters and ClusterHits are one-to-many relations. A key that
// is present with an empty slice means "known, but no associations"; a
// key that is absent means the producer never answered for it. The two
// cases are distinguished on purpose: the second is a contract violation
// for any particle in Particles (or any cluster reachable from one).
type Event struct {
	Particles []ParticleID `json:"particles"`
	Hits      []HitID      `json:"hits"`

	ParticleClusters map[ParticleID][]ClusterID `json:"particle_clusters"`
	ClusterHits      map[ClusterID][]HitID      `json:"cluster_hits"`
}

// Clusters returns the clusters associated with the given particle.
// The second return reports whether the relation has an entry for p.
func (e *Event) Clusters(p ParticleID) ([]ClusterID, bool) {
	clusters, ok := e.ParticleClusters[p]
	return clusters, ok
}

// HitsIn returns the hits contained in the given cluster.
// The second return reports whether the relation has an entry for k.
func (e *Event) HitsIn(k ClusterID) ([]HitID, bool) {
	hits, ok := e.ClusterHits[k]
	return hits, ok
}
