package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/rezkam/eisen/internal/core"
	"github.com/rezkam/eisen/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockStorage is a simple in-memory storage for unit testing.
type MockStorage struct {
	tasks   []core.Task
	saves   int
	loadErr error
	saveErr error
}

func (m *MockStorage) Load(ctx context.Context) ([]core.Task, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]core.Task{}, m.tasks...), nil
}

func (m *MockStorage) Save(ctx context.Context, tasks []core.Task) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.tasks = append([]core.Task{}, tasks...)
	return nil
}

func newTracker(t *testing.T, store core.Storage) (*service.Tracker, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tracker, err := service.NewTracker(store, logger)
	require.NoError(t, err)
	return tracker, &logs
}

func TestTracker_AddPersistsAndReturnsTask(t *testing.T) {
	store := &MockStorage{}
	tracker, logs := newTracker(t, store)
	ctx := context.Background()

	first, err := tracker.Add(ctx, "t0", core.ImportanceHigh, core.UrgencyHigh)
	require.NoError(t, err)
	second, err := tracker.Add(ctx, "t1", core.ImportanceLow, core.UrgencyLow)
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 2, store.saves)
	require.Len(t, store.tasks, 2)
	assert.Equal(t, second, store.tasks[1])
	assert.Contains(t, logs.String(), "task added")
}

func TestTracker_MarkDoneUpdatesStoredTask(t *testing.T) {
	store := &MockStorage{tasks: []core.Task{
		{ID: 1, Title: "lowlow", Importance: core.ImportanceLow, Urgency: core.UrgencyLow},
		{ID: 2, Title: "highhigh", Importance: core.ImportanceHigh, Urgency: core.UrgencyHigh},
	}}
	tracker, _ := newTracker(t, store)

	task, err := tracker.MarkDone(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, task.ID)
	assert.True(t, task.Done)
	assert.True(t, store.tasks[0].Done)
	assert.False(t, store.tasks[1].Done)
}

func TestTracker_MarkDoneUnknownIDDoesNotSave(t *testing.T) {
	store := &MockStorage{tasks: []core.Task{
		{ID: 1, Title: "t0", Importance: core.ImportanceHigh, Urgency: core.UrgencyHigh},
	}}
	tracker, logs := newTracker(t, store)

	_, err := tracker.MarkDone(context.Background(), 999)

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
	assert.False(t, errors.Is(err, service.ErrLoad))
	assert.Equal(t, 0, store.saves)
	assert.Contains(t, logs.String(), "task not found")
}

func TestTracker_ListRanksAndFilters(t *testing.T) {
	store := &MockStorage{tasks: []core.Task{
		{ID: 1, Title: "later", Importance: core.ImportanceLow, Urgency: core.UrgencyLow},
		{ID: 2, Title: "finished", Importance: core.ImportanceHigh, Urgency: core.UrgencyHigh, Done: true},
		{ID: 3, Title: "now", Importance: core.ImportanceHigh, Urgency: core.UrgencyHigh},
	}}
	tracker, _ := newTracker(t, store)
	ctx := context.Background()

	open, err := tracker.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, 3, open[0].ID)
	assert.Equal(t, 1, open[1].ID)

	all, err := tracker.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 2, all[2].ID)

	assert.Equal(t, 0, store.saves, "listing must not write")
}

func TestTracker_LoadFailureIsWrapped(t *testing.T) {
	store := &MockStorage{loadErr: core.ErrMalformedDocument}
	tracker, _ := newTracker(t, store)

	_, err := tracker.Add(context.Background(), "t0", core.ImportanceHigh, core.UrgencyLow)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrLoad))
	assert.True(t, errors.Is(err, core.ErrMalformedDocument))
	assert.Equal(t, 0, store.saves)
}

func TestTracker_SaveFailureIsWrapped(t *testing.T) {
	store := &MockStorage{saveErr: errors.New("disk full")}
	tracker, _ := newTracker(t, store)

	_, err := tracker.Add(context.Background(), "t0", core.ImportanceHigh, core.UrgencyLow)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrSave))
	assert.False(t, errors.Is(err, service.ErrLoad))
	assert.Contains(t, err.Error(), "disk full")
}
