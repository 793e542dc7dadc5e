package evm

import (
	"testing"
	"time"

	"github.com/jmorand/planline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := domain.Date(y, m, d)
	return &t
}

func strPtr(s string) *string { return &s }

func scheduledTask(id string, dur int, start, end *time.Time) *domain.Task {
	return &domain.Task{
		ID: id, ProjectID: "p-1", Name: id,
		DurationDays:  dur,
		Status:        domain.TaskNotStarted,
		ComputedStart: start,
		ComputedEnd:   end,
	}
}

func TestBuildBaseline_CombinesDirectLaborAndSharedCost(t *testing.T) {
	in := SnapshotInput{
		ProjectID: "p-1",
		Name:      "rev A",
		Now:       time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC),
		Tasks: []*domain.Task{
			scheduledTask("A", 3, datePtr(2025, 1, 6), datePtr(2025, 1, 8)),
			scheduledTask("B", 1, datePtr(2025, 1, 9), datePtr(2025, 1, 9)),
		},
		Resources: []*domain.Resource{
			{ID: "R", Name: "Dev", HourlyRate: 50},
		},
		Assignments: []*domain.Assignment{
			{ID: "as-1", ResourceID: "R", TaskID: "A", AllocationPercent: 100, PlannedHours: 24},
		},
		CostItems: []*domain.CostItem{
			{ID: "c-1", ProjectID: "p-1", TaskID: strPtr("B"), Type: domain.CostMaterial, PlannedAmount: 300},
			{ID: "c-2", ProjectID: "p-1", Type: domain.CostService, PlannedAmount: 400}, // no task: split 3:1
		},
	}

	b, err := BuildBaseline(in)
	require.NoError(t, err)
	require.Len(t, b.Tasks, 2)
	assert.NotEmpty(t, b.ID)
	assert.NotZero(t, b.StateHash)

	a, bb := b.Tasks[0], b.Tasks[1]
	assert.Equal(t, "A", a.TaskID)
	assert.InDelta(t, 24*50+300, a.PlannedCost, 1e-9, "labor plus duration share of unscoped cost")
	assert.InDelta(t, 24, a.PlannedHours, 1e-9)
	assert.InDelta(t, 300+100, bb.PlannedCost, 1e-9, "direct cost plus unscoped share")
	assert.InDelta(t, 1900, b.PlannedCostTotal(), 1e-9)
}

func TestBuildBaseline_ZeroDurationsSplitSharedCostEqually(t *testing.T) {
	in := SnapshotInput{
		ProjectID: "p-1",
		Tasks: []*domain.Task{
			scheduledTask("M1", 0, datePtr(2025, 1, 6), datePtr(2025, 1, 6)),
			scheduledTask("M2", 0, datePtr(2025, 1, 7), datePtr(2025, 1, 7)),
		},
		CostItems: []*domain.CostItem{
			{ID: "c-1", ProjectID: "p-1", Type: domain.CostOther, PlannedAmount: 100},
		},
	}

	b, err := BuildBaseline(in)
	require.NoError(t, err)
	assert.InDelta(t, 50, b.Tasks[0].PlannedCost, 1e-9)
	assert.InDelta(t, 50, b.Tasks[1].PlannedCost, 1e-9)
}

func TestBuildBaseline_EmptyProjectRejected(t *testing.T) {
	_, err := BuildBaseline(SnapshotInput{ProjectID: "p-1"})
	assert.ErrorIs(t, err, ErrEmptySnapshot)
}

func TestBuildBaseline_StateHashTracksThePlan(t *testing.T) {
	base := func() SnapshotInput {
		return SnapshotInput{
			ProjectID: "p-1",
			Tasks: []*domain.Task{
				scheduledTask("A", 3, datePtr(2025, 1, 6), datePtr(2025, 1, 8)),
			},
			CostItems: []*domain.CostItem{
				{ID: "c-1", ProjectID: "p-1", TaskID: strPtr("A"), PlannedAmount: 100},
			},
		}
	}

	b1, err := BuildBaseline(base())
	require.NoError(t, err)
	b2, err := BuildBaseline(base())
	require.NoError(t, err)
	assert.Equal(t, b1.StateHash, b2.StateHash, "same plan, same fingerprint")

	changed := base()
	changed.Tasks[0].DurationDays = 4
	changed.Tasks[0].ComputedEnd = datePtr(2025, 1, 9)
	b3, err := BuildBaseline(changed)
	require.NoError(t, err)
	assert.NotEqual(t, b1.StateHash, b3.StateHash)
}

func TestBuildBaseline_SnapshotDatesAreCopies(t *testing.T) {
	start := domain.Date(2025, 1, 6)
	end := domain.Date(2025, 1, 8)
	task := scheduledTask("A", 3, &start, &end)

	b, err := BuildBaseline(SnapshotInput{ProjectID: "p-1", Tasks: []*domain.Task{task}})
	require.NoError(t, err)
	assert.NotSame(t, task.ComputedStart, b.Tasks[0].Start)
	assert.True(t, b.Tasks[0].Start.Equal(start))
}

func halfwayBaseline() *domain.Baseline {
	return &domain.Baseline{
		ID:        "b-1",
		ProjectID: "p-1",
		Tasks: []domain.BaselineTask{{
			BaselineID:   "b-1",
			TaskID:       "A",
			TaskName:     "A",
			Start:        datePtr(2025, 1, 6),  // Monday
			Finish:       datePtr(2025, 1, 17), // Friday next week, 10 working days
			DurationDays: 10,
			PlannedCost:  1000,
		}},
	}
}

func TestCompute_HalfwayOnScheduleUnderBudget(t *testing.T) {
	m, err := Compute(Input{
		Baseline: halfwayBaseline(),
		Tasks: []*domain.Task{
			{ID: "A", ProjectID: "p-1", Name: "A", Status: domain.TaskInProgress, PercentComplete: 50},
		},
		CostItems: []*domain.CostItem{
			{ID: "c-1", ProjectID: "p-1", ActualAmount: 450, IncurredDate: datePtr(2025, 1, 9)},
		},
		Calendar: domain.DefaultCalendar(),
		AsOf:     domain.Date(2025, 1, 10), // end of week one
	})
	require.NoError(t, err)

	assert.InDelta(t, 500, m.PlannedValue, 1e-9, "5 of 10 planned working days elapsed")
	assert.InDelta(t, 500, m.EarnedValue, 1e-9)
	assert.InDelta(t, 450, m.ActualCost, 1e-9)
	assert.InDelta(t, 0, m.ScheduleVariance, 1e-9)
	assert.InDelta(t, 50, m.CostVariance, 1e-9)
	require.NotNil(t, m.SchedulePerformanceIndex)
	assert.InDelta(t, 1.0, *m.SchedulePerformanceIndex, 1e-9)
	require.NotNil(t, m.CostPerformanceIndex)
	assert.InDelta(t, 500.0/450.0, *m.CostPerformanceIndex, 1e-9)

	assert.InDelta(t, 1000, m.BudgetAtCompletion, 1e-9)
	assert.InDelta(t, 900, m.EstimateAtCompletion, 1e-9, "BAC scaled by CPI")
	assert.InDelta(t, 450, m.EstimateToComplete, 1e-9)
	assert.InDelta(t, 100, m.VarianceAtCompletion, 1e-9)
}

func TestCompute_BeforeStartAndAfterFinish(t *testing.T) {
	in := Input{
		Baseline: halfwayBaseline(),
		Calendar: domain.DefaultCalendar(),
		AsOf:     domain.Date(2025, 1, 3), // before the plan starts
	}
	m, err := Compute(in)
	require.NoError(t, err)
	assert.Zero(t, m.PlannedValue)
	assert.Nil(t, m.SchedulePerformanceIndex, "no planned value yet, no index")

	in.AsOf = domain.Date(2025, 2, 1)
	m, err = Compute(in)
	require.NoError(t, err)
	assert.InDelta(t, 1000, m.PlannedValue, 1e-9, "full plan due after the finish")
}

func TestCompute_WeekendAccruesNothing(t *testing.T) {
	in := Input{
		Baseline: halfwayBaseline(),
		Calendar: domain.DefaultCalendar(),
	}

	in.AsOf = domain.Date(2025, 1, 10) // Friday
	friday, err := Compute(in)
	require.NoError(t, err)

	in.AsOf = domain.Date(2025, 1, 12) // Sunday
	sunday, err := Compute(in)
	require.NoError(t, err)
	assert.InDelta(t, friday.PlannedValue, sunday.PlannedValue, 1e-9)
}

func TestCompute_ActualCostRespectsAsOf(t *testing.T) {
	in := Input{
		Baseline: halfwayBaseline(),
		Calendar: domain.DefaultCalendar(),
		AsOf:     domain.Date(2025, 1, 10),
		CostItems: []*domain.CostItem{
			{ID: "c-1", ProjectID: "p-1", ActualAmount: 200, IncurredDate: datePtr(2025, 1, 8)},
			{ID: "c-2", ProjectID: "p-1", ActualAmount: 999, IncurredDate: datePtr(2025, 1, 20)}, // future
			{ID: "c-3", ProjectID: "p-1", ActualAmount: 100},                                     // undated
		},
	}
	m, err := Compute(in)
	require.NoError(t, err)
	assert.InDelta(t, 300, m.ActualCost, 1e-9, "future spend excluded, undated spend included")
}

func TestCompute_MissingLiveTaskEarnsNothing(t *testing.T) {
	m, err := Compute(Input{
		Baseline: halfwayBaseline(),
		Calendar: domain.DefaultCalendar(),
		AsOf:     domain.Date(2025, 1, 10),
	})
	require.NoError(t, err)
	assert.Zero(t, m.EarnedValue)
	assert.Nil(t, m.CostPerformanceIndex)
	assert.InDelta(t, 1000, m.EstimateAtCompletion, 1e-9, "fallback: AC plus remaining work")
}

func TestCompute_NoBaseline(t *testing.T) {
	_, err := Compute(Input{Calendar: domain.DefaultCalendar()})
	assert.ErrorIs(t, err, ErrNoBaseline)
}
