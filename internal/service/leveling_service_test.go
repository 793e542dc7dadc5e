package service

import (
	"context"
	"testing"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/leveling"
	"github.com/jmorand/planline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *env) seedOverload(t *testing.T) (projID string, taskA, taskB *domain.Task) {
	t.Helper()
	ctx := context.Background()
	proj := e.seedProject(t)
	taskA = e.seedTask(t, proj.ID, "a", 2)
	taskB = e.seedTask(t, proj.ID, "b", 2)

	res := testutil.NewTestResource("Dana", 50)
	require.NoError(t, e.resources.Create(ctx, res))
	require.NoError(t, e.resources.Assign(ctx, testutil.NewTestAssignment(res.ID, taskA.ID, 100)))
	require.NoError(t, e.resources.Assign(ctx, testutil.NewTestAssignment(res.ID, taskB.ID, 100)))

	_, err := e.schedule.Reschedule(ctx, proj.ID)
	require.NoError(t, err)
	return proj.ID, taskA, taskB
}

func TestLevelingService_AnalyzeReportsOverload(t *testing.T) {
	e := newEnv(t)
	projID, _, _ := e.seedOverload(t)

	conflicts, err := e.leveling.Analyze(context.Background(), projID)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.InDelta(t, 200.0, conflicts[0].TotalAllocationPercent, 1e-9)
	assert.Len(t, conflicts[0].Entries, 2)
}

func TestLevelingService_AnalyzeDoesNotPersist(t *testing.T) {
	e := newEnv(t)
	projID, taskA, _ := e.seedOverload(t)
	ctx := context.Background()

	before, err := e.tasks.GetByID(ctx, taskA.ID)
	require.NoError(t, err)

	_, err = e.leveling.Analyze(ctx, projID)
	require.NoError(t, err)

	after, err := e.tasks.GetByID(ctx, taskA.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PlannedStart, after.PlannedStart)
	assert.Equal(t, before.ComputedStart, after.ComputedStart)
}

func TestLevelingService_AutoLevelPersistsShifts(t *testing.T) {
	e := newEnv(t)
	projID, _, _ := e.seedOverload(t)
	ctx := context.Background()

	res, err := e.leveling.AutoLevel(ctx, projID)
	require.NoError(t, err)
	assert.Empty(t, res.Conflicts)
	require.NotEmpty(t, res.Actions)

	// The victim's new planned start must be stored.
	shifted, err := e.tasks.GetByID(ctx, res.Actions[0].TaskID)
	require.NoError(t, err)
	require.NotNil(t, shifted.PlannedStart)
	require.NotNil(t, shifted.ComputedStart)
	assert.True(t, shifted.ComputedStart.After(domain.Date(2025, 1, 6)))

	conflicts, err := e.leveling.Analyze(ctx, projID)
	require.NoError(t, err)
	assert.Empty(t, conflicts, "database state is conflict-free after leveling")
}

func TestLevelingService_ShiftValidatesPredecessors(t *testing.T) {
	e := newEnv(t)
	proj := e.seedProject(t)
	ctx := context.Background()

	a := e.seedTask(t, proj.ID, "a", 5)
	b := e.seedTask(t, proj.ID, "b", 2)
	require.NoError(t, e.tasks.AddDependency(ctx, testutil.NewTestDependency(a.ID, b.ID, domain.FinishToStart, 0)))
	_, err := e.schedule.Reschedule(ctx, proj.ID)
	require.NoError(t, err)

	_, err = e.leveling.Shift(ctx, proj.ID, b.ID, domain.Date(2025, 1, 8))
	assert.ErrorIs(t, err, leveling.ErrInvalidShift)

	res, err := e.leveling.Shift(ctx, proj.ID, b.ID, domain.Date(2025, 1, 20))
	require.NoError(t, err)
	require.NotEmpty(t, res.Actions)

	stored, err := e.tasks.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ComputedStart)
	assert.Equal(t, domain.Date(2025, 1, 20), *stored.ComputedStart)
}
