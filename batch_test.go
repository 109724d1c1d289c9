package recocheck

import (
	"context"
	"testing"

	"github.com/larbeam/recocheck/blobstore"
	"github.com/larbeam/recocheck/snapshot"
	"github.com/larbeam/recocheck/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("AllEventsPass", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		for _, name := range []string{"pandora/evt-001", "pandora/evt-002", "pandora/evt-003"} {
			require.NoError(t, snapshot.Write(ctx, store, name, testutil.DisjointEvent(2, 1, 2)))
		}

		runner := NewRunner(store, New(), WithConcurrency(2))
		results, err := runner.Run(ctx, "pandora/")
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, "pandora/evt-001", results[0].Name)
		for _, res := range results {
			require.NotNil(t, res.Report)
			assert.Equal(t, 4, res.Report.TotalHits)
			assert.Equal(t, 0, res.Report.MultiAssociated)
		}
	})

	t.Run("ViolatingEventFailsRun", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, snapshot.Write(ctx, store, "pandora/evt-001", testutil.DisjointEvent(1, 1, 2)))

		ev, _ := testutil.SharedHitEvent()
		require.NoError(t, snapshot.Write(ctx, store, "pandora/evt-002", ev))

		runner := NewRunner(store, New(), WithConcurrency(2))
		results, err := runner.Run(ctx, "pandora/")
		require.Error(t, err)
		assert.Nil(t, results)

		var multi *ErrMultiAssociatedHits
		require.ErrorAs(t, err, &multi)
		assert.Contains(t, err.Error(), "pandora/evt-002")
	})

	t.Run("EmptyPrefix", func(t *testing.T) {
		store := blobstore.NewMemoryStore()

		runner := NewRunner(store, New())
		results, err := runner.Run(ctx, "nothing/")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("RateLimited", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, snapshot.Write(ctx, store, "pandora/evt-001", testutil.DisjointEvent(1, 1, 1)))
		require.NoError(t, snapshot.Write(ctx, store, "pandora/evt-002", testutil.DisjointEvent(1, 1, 1)))

		runner := NewRunner(store, New(), WithReadRate(1000))
		results, err := runner.Run(ctx, "pandora/")
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})
}
