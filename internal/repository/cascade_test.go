package repository

import (
	"context"
	"testing"

	"github.com/jmorand/planline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Deleting a project must take tasks, dependencies, assignments, cost items
// and baselines down with it.
func TestProjectDelete_CascadesEverything(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(db)
	taskRepo := NewSQLiteTaskRepo(db)
	depRepo := NewSQLiteDependencyRepo(db)
	resRepo := NewSQLiteResourceRepo(db)
	asgRepo := NewSQLiteAssignmentRepo(db)
	costRepo := NewSQLiteCostRepo(db)

	proj := seedProject(t, db)
	a := testutil.NewTestTask(proj.ID, "a")
	b := testutil.NewTestTask(proj.ID, "b")
	require.NoError(t, taskRepo.Create(ctx, a))
	require.NoError(t, taskRepo.Create(ctx, b))
	require.NoError(t, depRepo.Create(ctx, testutil.NewTestDependency(a.ID, b.ID, "FS", 0)))

	res := testutil.NewTestResource("Dana", 75)
	require.NoError(t, resRepo.Create(ctx, res))
	require.NoError(t, asgRepo.Create(ctx, testutil.NewTestAssignment(res.ID, a.ID, 100)))
	require.NoError(t, costRepo.Create(ctx, testutil.NewTestCostItem(proj.ID, 500, testutil.WithCostTask(a.ID))))

	require.NoError(t, projRepo.Delete(ctx, proj.ID))

	for _, table := range []string{"tasks", "dependencies", "assignments", "cost_items"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, "table %s should be empty", table)
	}

	// The resource itself survives; only its assignments go.
	resources, err := resRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, resources, 1)
}

func TestAssignmentRepo_ListByProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	taskRepo := NewSQLiteTaskRepo(db)
	resRepo := NewSQLiteResourceRepo(db)
	asgRepo := NewSQLiteAssignmentRepo(db)

	proj := seedProject(t, db)
	other := testutil.NewTestProject("Other")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, other))

	mine := testutil.NewTestTask(proj.ID, "mine")
	theirs := testutil.NewTestTask(other.ID, "theirs")
	require.NoError(t, taskRepo.Create(ctx, mine))
	require.NoError(t, taskRepo.Create(ctx, theirs))

	res := testutil.NewTestResource("Sam", 60)
	require.NoError(t, resRepo.Create(ctx, res))
	require.NoError(t, asgRepo.Create(ctx, testutil.NewTestAssignment(res.ID, mine.ID, 50)))
	require.NoError(t, asgRepo.Create(ctx, testutil.NewTestAssignment(res.ID, theirs.ID, 50)))

	assignments, err := asgRepo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, mine.ID, assignments[0].TaskID)
}

func TestAssignmentRepo_DuplicatePairRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := seedProject(t, db)
	task := testutil.NewTestTask(proj.ID, "t")
	require.NoError(t, NewSQLiteTaskRepo(db).Create(ctx, task))
	res := testutil.NewTestResource("Kim", 80)
	require.NoError(t, NewSQLiteResourceRepo(db).Create(ctx, res))

	asgRepo := NewSQLiteAssignmentRepo(db)
	require.NoError(t, asgRepo.Create(ctx, testutil.NewTestAssignment(res.ID, task.ID, 40)))
	err := asgRepo.Create(ctx, testutil.NewTestAssignment(res.ID, task.ID, 60))
	assert.Error(t, err, "one assignment per resource/task pair")
}

func TestCostRepo_TaskDeletionUnlinksCost(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := seedProject(t, db)
	task := testutil.NewTestTask(proj.ID, "t")
	taskRepo := NewSQLiteTaskRepo(db)
	require.NoError(t, taskRepo.Create(ctx, task))

	costRepo := NewSQLiteCostRepo(db)
	item := testutil.NewTestCostItem(proj.ID, 250, testutil.WithCostTask(task.ID))
	require.NoError(t, costRepo.Create(ctx, item))

	require.NoError(t, taskRepo.Delete(ctx, task.ID))

	fetched, err := costRepo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.TaskID, "cost line survives with the task link cleared")
	assert.Equal(t, 250.0, fetched.PlannedAmount)
}
