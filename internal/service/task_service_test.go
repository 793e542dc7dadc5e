package service

import (
	"context"
	"testing"
	"time"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/schedule"
	"github.com/jmorand/planline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateFillsDefaults(t *testing.T) {
	e := newEnv(t)
	proj := e.seedProject(t)
	ctx := context.Background()

	task := &domain.Task{ProjectID: proj.ID, Name: "bare", DurationDays: 2}
	require.NoError(t, e.tasks.Create(ctx, task))

	fetched, err := e.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, fetched.ID)
	assert.Equal(t, domain.TaskNotStarted, fetched.Status)
	assert.Equal(t, domain.PriorityMedium, fetched.Priority)
}

func TestTaskService_AddDependency_RejectsCycle(t *testing.T) {
	e := newEnv(t)
	proj := e.seedProject(t)
	ctx := context.Background()

	a := e.seedTask(t, proj.ID, "a", 1)
	b := e.seedTask(t, proj.ID, "b", 1)
	c := e.seedTask(t, proj.ID, "c", 1)

	require.NoError(t, e.tasks.AddDependency(ctx, testutil.NewTestDependency(a.ID, b.ID, domain.FinishToStart, 0)))
	require.NoError(t, e.tasks.AddDependency(ctx, testutil.NewTestDependency(b.ID, c.ID, domain.FinishToStart, 0)))

	err := e.tasks.AddDependency(ctx, testutil.NewTestDependency(c.ID, a.ID, domain.FinishToStart, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrCycle)

	// The closing edge must not have been stored.
	deps, err := e.tasks.ListDependencies(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, deps, 2)
}

func TestTaskService_AddDependency_RejectsSelfLoop(t *testing.T) {
	e := newEnv(t)
	proj := e.seedProject(t)
	a := e.seedTask(t, proj.ID, "a", 1)

	err := e.tasks.AddDependency(context.Background(),
		testutil.NewTestDependency(a.ID, a.ID, domain.FinishToStart, 0))
	assert.ErrorIs(t, err, ErrSelfDependency)
}

func TestTaskService_AddDependency_RejectsCrossProject(t *testing.T) {
	e := newEnv(t)
	proj := e.seedProject(t)
	other := testutil.NewTestProject("Other")
	require.NoError(t, e.projects.Create(context.Background(), other))

	a := e.seedTask(t, proj.ID, "a", 1)
	b := e.seedTask(t, other.ID, "b", 1)

	err := e.tasks.AddDependency(context.Background(),
		testutil.NewTestDependency(a.ID, b.ID, domain.FinishToStart, 0))
	assert.ErrorIs(t, err, ErrCrossProjectDependency)
}

func TestTaskService_SetProgress_CompletionStampsActuals(t *testing.T) {
	e := newEnv(t)
	proj := e.seedProject(t)
	task := e.seedTask(t, proj.ID, "work", 3)
	ctx := context.Background()

	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	require.NoError(t, e.tasks.SetProgress(ctx, task.ID, 100, now))

	fetched, err := e.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, fetched.Status)
	assert.Equal(t, 100.0, fetched.PercentComplete)
	require.NotNil(t, fetched.ActualEnd)
	assert.Equal(t, domain.Date(2025, 3, 12), *fetched.ActualEnd)
	require.NotNil(t, fetched.ActualStart)
}

func TestTaskService_SetProgress_ReopeningClearsActualEnd(t *testing.T) {
	e := newEnv(t)
	proj := e.seedProject(t)
	task := e.seedTask(t, proj.ID, "work", 3)
	ctx := context.Background()

	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	require.NoError(t, e.tasks.SetProgress(ctx, task.ID, 100, now))
	require.NoError(t, e.tasks.SetProgress(ctx, task.ID, 60, now.AddDate(0, 0, 1)))

	fetched, err := e.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, fetched.Status)
	assert.Nil(t, fetched.ActualEnd)
	assert.NotNil(t, fetched.ActualStart, "start survives reopening")
}

func TestTaskService_Start(t *testing.T) {
	e := newEnv(t)
	proj := e.seedProject(t)
	task := e.seedTask(t, proj.ID, "work", 2)
	ctx := context.Background()

	require.NoError(t, e.tasks.Start(ctx, task.ID, domain.Date(2025, 1, 8)))

	fetched, err := e.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, fetched.Status)
	require.NotNil(t, fetched.ActualStart)
	assert.Equal(t, domain.Date(2025, 1, 8), *fetched.ActualStart)
}
