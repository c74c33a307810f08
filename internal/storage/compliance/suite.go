package compliance

import (
	"context"
	"testing"

	"github.com/rezkam/eisen/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStorageComplianceTest runs a standard set of tests against a Storage implementation.
// setup is a function that returns a fresh (clean) Storage instance for the test.
// cleanup is called after the test to clean up resources (if any).
func RunStorageComplianceTest(t *testing.T, setup func() (core.Storage, func())) {
	t.Run("LoadWithoutHistory", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()

		tasks, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("SaveAndLoadRoundTrip", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		tasks := []core.Task{
			{ID: 1, Title: "a", Importance: core.ImportanceHigh, Urgency: core.UrgencyLow},
			{ID: 2, Title: "b", Importance: core.ImportanceLow, Urgency: core.UrgencyHigh, Done: true},
			{ID: 3, Title: "Ünicode & <markup> ✓", Importance: core.ImportanceHigh, Urgency: core.UrgencyHigh},
		}

		require.NoError(t, store.Save(ctx, tasks))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, tasks, loaded)
	})

	t.Run("PreservesInsertionOrder", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		tasks := []core.Task{
			{ID: 9, Title: "z", Importance: core.ImportanceLow, Urgency: core.UrgencyLow},
			{ID: 2, Title: "a", Importance: core.ImportanceHigh, Urgency: core.UrgencyHigh},
			{ID: 5, Title: "m", Importance: core.ImportanceLow, Urgency: core.UrgencyHigh},
		}

		require.NoError(t, store.Save(ctx, tasks))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 3)
		assert.Equal(t, 9, loaded[0].ID)
		assert.Equal(t, 2, loaded[1].ID)
		assert.Equal(t, 5, loaded[2].ID)
	})

	t.Run("SaveReplacesPreviousList", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		var tasks []core.Task
		tasks = core.AddTask(tasks, "one", core.ImportanceHigh, core.UrgencyHigh)
		tasks = core.AddTask(tasks, "two", core.ImportanceLow, core.UrgencyLow)
		tasks = core.AddTask(tasks, "three", core.ImportanceLow, core.UrgencyHigh)
		require.NoError(t, store.Save(ctx, tasks))

		require.NoError(t, store.Save(ctx, tasks[:1]))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, tasks[:1], loaded)
	})

	t.Run("SaveEmptyList", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, core.AddTask(nil, "gone", core.ImportanceLow, core.UrgencyLow)))
		require.NoError(t, store.Save(ctx, nil))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, loaded)
		assert.Empty(t, loaded)
	})

	t.Run("OperationsSurviveReload", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		tasks, err := store.Load(ctx)
		require.NoError(t, err)

		tasks = core.AddTask(tasks, "lowlow", core.ImportanceLow, core.UrgencyLow)
		tasks = core.AddTask(tasks, "highhigh", core.ImportanceHigh, core.UrgencyHigh)
		require.NoError(t, store.Save(ctx, tasks))

		tasks, err = store.Load(ctx)
		require.NoError(t, err)
		tasks, err = core.MarkDone(tasks, 1)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, tasks))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.True(t, loaded[0].Done)
		assert.False(t, loaded[1].Done)
		assert.Equal(t, 3, core.NextID(loaded))
	})
}
