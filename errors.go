package recocheck

import (
	"errors"
	"fmt"
)

var (
	// ErrNilEvent is returned when Run is called with a nil event.
	ErrNilEvent = errors.New("event must not be nil")
)

// RelationKind names one of the two association relations a lookup can
// fail against.
type RelationKind string

const (
	// RelationParticleClusters is the particle→cluster relation.
	RelationParticleClusters RelationKind = "particle-clusters"
	// RelationClusterHits is the cluster→hit relation.
	RelationClusterHits RelationKind = "cluster-hits"
)

// ErrMissingRelation indicates that a particle or cluster referenced
// during traversal has no entry in the corresponding relation. This is a
// contract violation by the producer of the event, not an empty result,
// and it aborts the check before any pass/fail determination.
type ErrMissingRelation struct {
	Kind RelationKind
	Key  uint32
}

func (e *ErrMissingRelation) Error() string {
	return fmt.Sprintf("no %s relation entry for key %d", e.Kind, e.Key)
}

// ErrMultiAssociatedHits indicates that one or more hits are associated
// with more than one particle. It is returned after the full hit scan,
// alongside the complete Report, and is fatal for the event.
type ErrMultiAssociatedHits struct {
	MultiAssociated int
	TotalHits       int
}

func (e *ErrMultiAssociatedHits) Error() string {
	return fmt.Sprintf("%d of %d hits associated to more than one particle", e.MultiAssociated, e.TotalHits)
}
