package event

import "strconv"

// ParticleID identifies one reconstructed particle candidate (PFParticle)
// within a single event. IDs are dense indices into the producer's
// particle collection and are only meaningful within that event.
type ParticleID uint32

// ClusterID identifies one intermediate hit grouping within a single
// event. Clusters are pure join keys between particles and hits.
type ClusterID uint32

// HitID identifies one detector signal within a single event.
type HitID uint32

func (p ParticleID) String() string { return strconv.FormatUint(uint64(p), 10) }

func (c ClusterID) String() string { return strconv.FormatUint(uint64(c), 10) }

func (h HitID) String() string { return strconv.FormatUint(uint64(h), 10) }
