// Package recocheck provides sanity checks for particle reconstruction
// outputs.
//
// The central check is DoubleCountCheck: for one event it composes the
// particle→cluster and cluster→hit associations into a hit→particles
// mapping, scans the full hit population, and fails if any hit is
// claimed by more than one reconstructed particle.
//
// # Quick Start
//
//	check := recocheck.New()
//	report, err := check.Run(ctx, ev)
//	if err != nil {
//	    var multi *recocheck.ErrMultiAssociatedHits
//	    if errors.As(err, &multi) {
//	        // multi.MultiAssociated hits out of multi.TotalHits are double counted
//	    }
//	}
//
// Events are plain in-memory values (see the event package). For
// standalone use, the snapshot and blobstore packages read events from
// named snapshot blobs (local disk, in-memory, S3 or MinIO), and Runner
// applies the check to every snapshot under a prefix with bounded
// concurrency.
//
// # Counting Modes
//
// By default a particle that reaches the same hit through two different
// clusters counts twice for that hit, matching the reference behavior
// this check was ported from. Use WithCountMode(CountDistinct) to count
// each particle at most once per hit instead.
package recocheck
