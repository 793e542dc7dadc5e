package leveling

import (
	"testing"

	"github.com/jmorand/planline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ltask(id string, dur int) *domain.Task {
	return &domain.Task{ID: id, ProjectID: "p-1", Name: id, DurationDays: dur, Status: domain.TaskNotStarted}
}

func assign(resourceID, taskID string, pct float64) *domain.Assignment {
	return &domain.Assignment{ID: resourceID + "/" + taskID, ResourceID: resourceID, TaskID: taskID, AllocationPercent: pct}
}

func levelInput() Input {
	return Input{
		ProjectStart: domain.Date(2025, 1, 6), // Monday
		Calendar:     domain.DefaultCalendar(),
	}
}

func withComputed(t *domain.Task, start, end string) *domain.Task {
	s, err := domain.ParseDate(start)
	if err != nil {
		panic(err)
	}
	e, err := domain.ParseDate(end)
	if err != nil {
		panic(err)
	}
	t.ComputedStart = &s
	t.ComputedEnd = &e
	return t
}

func TestFindConflicts_OverlappingTasksOnOneResource(t *testing.T) {
	in := levelInput()
	in.Tasks = []*domain.Task{
		withComputed(ltask("A", 5), "2025-01-06", "2025-01-10"),
		withComputed(ltask("B", 5), "2025-01-06", "2025-01-10"),
	}
	in.Assignments = []*domain.Assignment{
		assign("R", "A", 60),
		assign("R", "B", 60),
	}

	conflicts, err := FindConflicts(in)
	require.NoError(t, err)
	require.Len(t, conflicts, 1, "fully overlapping ranges coalesce into one conflict")

	c := conflicts[0]
	assert.Equal(t, "R", c.ResourceID)
	assert.Equal(t, domain.Date(2025, 1, 6), c.Start)
	assert.Equal(t, domain.Date(2025, 1, 10), c.End)
	assert.InDelta(t, 120.0, c.TotalAllocationPercent, 1e-9)
	require.Len(t, c.Entries, 2)
	assert.False(t, c.Unresolved)
}

func TestFindConflicts_ExactlyAtThresholdIsFine(t *testing.T) {
	in := levelInput()
	in.Tasks = []*domain.Task{
		withComputed(ltask("A", 3), "2025-01-06", "2025-01-08"),
		withComputed(ltask("B", 3), "2025-01-06", "2025-01-08"),
	}
	in.Assignments = []*domain.Assignment{
		assign("R", "A", 50),
		assign("R", "B", 50),
	}

	conflicts, err := FindConflicts(in)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestFindConflicts_CompletedTasksExcluded(t *testing.T) {
	in := levelInput()
	done := withComputed(ltask("A", 5), "2025-01-06", "2025-01-10")
	done.Status = domain.TaskCompleted
	done.PercentComplete = 100
	in.Tasks = []*domain.Task{
		done,
		withComputed(ltask("B", 5), "2025-01-06", "2025-01-10"),
	}
	in.Assignments = []*domain.Assignment{
		assign("R", "A", 80),
		assign("R", "B", 80),
	}

	conflicts, err := FindConflicts(in)
	require.NoError(t, err)
	assert.Empty(t, conflicts, "completed tasks no longer load the resource")
}

func TestFindConflicts_ActualDatesWinOverComputed(t *testing.T) {
	in := levelInput()
	// A slipped: scheduled Mon-Tue but actually started Wednesday.
	a := withComputed(ltask("A", 2), "2025-01-06", "2025-01-07")
	started := domain.Date(2025, 1, 8)
	a.Status = domain.TaskInProgress
	a.ActualStart = &started
	b := withComputed(ltask("B", 2), "2025-01-06", "2025-01-07")
	in.Tasks = []*domain.Task{a, b}
	in.Assignments = []*domain.Assignment{
		assign("R", "A", 70),
		assign("R", "B", 70),
	}

	conflicts, err := FindConflicts(in)
	require.NoError(t, err)
	assert.Empty(t, conflicts, "actual start moved A off B's range")
}

func TestFindConflicts_SplitsWhenContributorsChange(t *testing.T) {
	in := levelInput()
	in.Tasks = []*domain.Task{
		withComputed(ltask("A", 4), "2025-01-06", "2025-01-09"),
		withComputed(ltask("B", 2), "2025-01-06", "2025-01-07"),
		withComputed(ltask("C", 2), "2025-01-08", "2025-01-09"),
	}
	in.Assignments = []*domain.Assignment{
		assign("R", "A", 60),
		assign("R", "B", 60),
		assign("R", "C", 80),
	}

	conflicts, err := FindConflicts(in)
	require.NoError(t, err)
	require.Len(t, conflicts, 2, "different task sets yield separate ranges")
	assert.InDelta(t, 120.0, conflicts[0].TotalAllocationPercent, 1e-9)
	assert.InDelta(t, 140.0, conflicts[1].TotalAllocationPercent, 1e-9)
	assert.Equal(t, domain.Date(2025, 1, 7), conflicts[0].End)
	assert.Equal(t, domain.Date(2025, 1, 8), conflicts[1].Start)
}

func TestAutoLevel_ResolvesSimpleOverlap(t *testing.T) {
	in := levelInput()
	in.Tasks = []*domain.Task{ltask("A", 2), ltask("B", 2)}
	in.Assignments = []*domain.Assignment{
		assign("R", "A", 100),
		assign("R", "B", 100),
	}

	res, err := AutoLevel(in)
	require.NoError(t, err)
	assert.Empty(t, res.Conflicts)
	assert.Equal(t, 2, res.Iterations, "the victim slides one day twice")
	require.Len(t, res.Actions, 2)
	for _, act := range res.Actions {
		assert.Equal(t, "A", act.TaskID, "equal priority, so the first pick sticks across iterations")
	}

	var shifted *domain.Task
	for _, tk := range res.Tasks {
		if tk.ID == "A" {
			shifted = tk
		}
	}
	require.NotNil(t, shifted)
	require.NotNil(t, shifted.ComputedStart)
	assert.Equal(t, domain.Date(2025, 1, 8), *shifted.ComputedStart)
	assert.Equal(t, domain.Date(2025, 1, 9), *shifted.ComputedEnd)

	for _, tk := range in.Tasks {
		assert.Nil(t, tk.PlannedStart, "input tasks must not be mutated")
		assert.Nil(t, tk.ComputedStart)
	}
}

func TestAutoLevel_LowPriorityShiftsFirst(t *testing.T) {
	in := levelInput()
	urgent := ltask("A", 2)
	urgent.Priority = domain.PriorityHigh
	casual := ltask("B", 2)
	casual.Priority = domain.PriorityLow
	in.Tasks = []*domain.Task{casual, urgent}
	in.Assignments = []*domain.Assignment{
		assign("R", "A", 100),
		assign("R", "B", 100),
	}

	res, err := AutoLevel(in)
	require.NoError(t, err)
	require.NotEmpty(t, res.Actions)
	assert.Equal(t, "B", res.Actions[0].TaskID)
}

func TestAutoLevel_StartedTasksAreNotShiftable(t *testing.T) {
	in := levelInput()
	a := ltask("A", 3)
	a.Status = domain.TaskInProgress
	a.PercentComplete = 40
	b := ltask("B", 3)
	b.Status = domain.TaskInProgress
	b.PercentComplete = 10
	in.Tasks = []*domain.Task{a, b}
	in.Assignments = []*domain.Assignment{
		assign("R", "A", 100),
		assign("R", "B", 100),
	}

	res, err := AutoLevel(in)
	require.NoError(t, err, "no movable task is not an error")
	require.Len(t, res.Conflicts, 1)
	assert.True(t, res.Conflicts[0].Unresolved)
	assert.Empty(t, res.Actions)
}

func TestAutoLevel_HorizonFlagsRemainingConflicts(t *testing.T) {
	in := levelInput()
	in.MaxIterations = 1
	in.Tasks = []*domain.Task{ltask("A", 5), ltask("B", 5)}
	in.Assignments = []*domain.Assignment{
		assign("R", "A", 100),
		assign("R", "B", 100),
	}

	res, err := AutoLevel(in)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
	require.NotEmpty(t, res.Conflicts)
	for _, c := range res.Conflicts {
		assert.True(t, c.Unresolved)
	}
}

func TestAutoLevel_StrictModeFailsOnUnresolvedConflict(t *testing.T) {
	in := levelInput()
	in.Strict = true
	a := ltask("A", 3)
	a.Status = domain.TaskInProgress
	a.PercentComplete = 40
	b := ltask("B", 3)
	b.Status = domain.TaskInProgress
	b.PercentComplete = 10
	in.Tasks = []*domain.Task{a, b}
	in.Assignments = []*domain.Assignment{
		assign("R", "A", 100),
		assign("R", "B", 100),
	}

	res, err := AutoLevel(in)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrUnresolvedConflict)
}

func TestAutoLevel_StrictModeResolvableStaysClean(t *testing.T) {
	in := levelInput()
	in.Strict = true
	in.Tasks = []*domain.Task{ltask("A", 2), ltask("B", 2)}
	in.Assignments = []*domain.Assignment{
		assign("R", "A", 100),
		assign("R", "B", 100),
	}

	res, err := AutoLevel(in)
	require.NoError(t, err, "strict mode only bites when conflicts stay open")
	assert.Empty(t, res.Conflicts)
}

func TestManualShift_UnknownTask(t *testing.T) {
	in := levelInput()
	in.Tasks = []*domain.Task{ltask("A", 2)}

	_, err := ManualShift(in, "nope", domain.Date(2025, 1, 8))
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestManualShift_RejectsTasksWithActuals(t *testing.T) {
	in := levelInput()
	a := ltask("A", 2)
	started := domain.Date(2025, 1, 6)
	a.Status = domain.TaskInProgress
	a.ActualStart = &started
	in.Tasks = []*domain.Task{a}

	_, err := ManualShift(in, "A", domain.Date(2025, 1, 8))
	assert.ErrorIs(t, err, ErrInvalidShift)
}

func TestManualShift_RejectsStartBeforePredecessors(t *testing.T) {
	in := levelInput()
	in.Tasks = []*domain.Task{ltask("A", 5), ltask("B", 2)}
	in.Dependencies = []domain.Dependency{
		{PredecessorID: "A", SuccessorID: "B", Type: domain.FinishToStart},
	}

	// A runs Mon-Fri, so B cannot start before the next Monday.
	_, err := ManualShift(in, "B", domain.Date(2025, 1, 8))
	assert.ErrorIs(t, err, ErrInvalidShift)
}

func TestManualShift_MovesTaskAndReportsConflicts(t *testing.T) {
	in := levelInput()
	in.Tasks = []*domain.Task{ltask("A", 2), ltask("B", 2)}
	in.Assignments = []*domain.Assignment{
		assign("R", "A", 100),
		assign("R", "B", 100),
	}

	res, err := ManualShift(in, "B", domain.Date(2025, 1, 8))
	require.NoError(t, err)
	require.Len(t, res.Actions, 1)
	assert.Equal(t, "B", res.Actions[0].TaskID)
	assert.Equal(t, domain.Date(2025, 1, 8), res.Actions[0].NewStart)

	var shifted *domain.Task
	for _, tk := range res.Tasks {
		if tk.ID == "B" {
			shifted = tk
		}
	}
	require.NotNil(t, shifted)
	assert.Equal(t, domain.Date(2025, 1, 8), *shifted.ComputedStart)
	assert.Empty(t, res.Conflicts, "A on Mon-Tue and B on Wed-Thu no longer collide")

	assert.Nil(t, in.Tasks[1].PlannedStart, "caller's tasks stay untouched")
}

func TestManualShift_WeekendStartSnapsForward(t *testing.T) {
	in := levelInput()
	in.Tasks = []*domain.Task{ltask("A", 1)}

	res, err := ManualShift(in, "A", domain.Date(2025, 1, 11)) // Saturday
	require.NoError(t, err)
	assert.Equal(t, domain.Date(2025, 1, 13), res.Actions[0].NewStart, "snaps to Monday")
}
