package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProject(t *testing.T, db *sql.DB) *domain.Project {
	t.Helper()
	proj := testutil.NewTestProject("Fixture")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(context.Background(), proj))
	return proj
}

func TestTaskRepo_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	proj := seedProject(t, db)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	deadline := domain.Date(2025, 2, 14)
	task := testutil.NewTestTask(proj.ID, "Pour foundation",
		testutil.WithDuration(5),
		testutil.WithPriority(domain.PriorityHigh),
		testutil.WithDeadline(deadline),
	)
	require.NoError(t, repo.Create(ctx, task))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pour foundation", fetched.Name)
	assert.Equal(t, 5, fetched.DurationDays)
	assert.Equal(t, domain.PriorityHigh, fetched.Priority)
	assert.Equal(t, domain.TaskNotStarted, fetched.Status)
	require.NotNil(t, fetched.Deadline)
	assert.Equal(t, deadline, *fetched.Deadline)
	assert.Nil(t, fetched.ComputedStart)
	assert.Nil(t, fetched.ComputedFloat)
}

func TestTaskRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_UpdateComputedDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	proj := seedProject(t, db)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	task := testutil.NewTestTask(proj.ID, "Frame walls", testutil.WithDuration(3))
	require.NoError(t, repo.Create(ctx, task))

	start := domain.Date(2025, 1, 6)
	end := domain.Date(2025, 1, 8)
	slack := 2
	task.ComputedStart = &start
	task.ComputedEnd = &end
	task.ComputedFloat = &slack
	require.NoError(t, repo.UpdateComputedDates(ctx, task))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.ComputedStart)
	assert.Equal(t, start, *fetched.ComputedStart)
	require.NotNil(t, fetched.ComputedEnd)
	assert.Equal(t, end, *fetched.ComputedEnd)
	require.NotNil(t, fetched.ComputedFloat)
	assert.Equal(t, 2, *fetched.ComputedFloat)
}

func TestTaskRepo_UpdatePreservesComputedColumns(t *testing.T) {
	db := testutil.NewTestDB(t)
	proj := seedProject(t, db)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	task := testutil.NewTestTask(proj.ID, "Wire electrics", testutil.WithDuration(2))
	require.NoError(t, repo.Create(ctx, task))

	start := domain.Date(2025, 1, 6)
	task.ComputedStart = &start
	require.NoError(t, repo.UpdateComputedDates(ctx, task))

	task.Name = "Wire electrics, phase 2"
	task.ComputedStart = nil // Update must not touch scheduler columns
	require.NoError(t, repo.Update(ctx, task))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wire electrics, phase 2", fetched.Name)
	require.NotNil(t, fetched.ComputedStart)
	assert.Equal(t, start, *fetched.ComputedStart)
}

func TestTaskRepo_ListByProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	proj := seedProject(t, db)
	other := testutil.NewTestProject("Other")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(context.Background(), other))
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestTask(proj.ID, "one")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask(proj.ID, "two")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask(other.ID, "elsewhere")))

	tasks, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestTaskRepo_ActualDatesRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	proj := seedProject(t, db)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	start := domain.Date(2025, 1, 6)
	end := domain.Date(2025, 1, 8)
	task := testutil.NewTestTask(proj.ID, "Inspect",
		testutil.WithTaskStatus(domain.TaskCompleted),
		testutil.WithPercentComplete(100),
		testutil.WithActuals(&start, &end),
	)
	require.NoError(t, repo.Create(ctx, task))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.ActualStart)
	require.NotNil(t, fetched.ActualEnd)
	assert.Equal(t, start, *fetched.ActualStart)
	assert.Equal(t, end, *fetched.ActualEnd)
	assert.Equal(t, 100.0, fetched.PercentComplete)
}
