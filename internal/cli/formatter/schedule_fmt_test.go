package formatter

import (
	"testing"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/schedule"
	"github.com/stretchr/testify/assert"
)

func TestFormatTaskList_ShowsComputedDatesAndFloat(t *testing.T) {
	start := domain.Date(2025, 1, 6)
	end := domain.Date(2025, 1, 10)
	fl := 3

	out := FormatTaskList([]*domain.Task{
		{
			ID:            "aaaa1111-0000-0000-0000-000000000000",
			Name:          "Design",
			DurationDays:  5,
			Status:        domain.TaskInProgress,
			Priority:      domain.PriorityHigh,
			ComputedStart: &start,
			ComputedEnd:   &end,
			ComputedFloat: &fl,
		},
	})

	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "2025-01-06")
	assert.Contains(t, out, "2025-01-10")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "HIGH")
}

func TestFormatTaskList_MilestoneMarker(t *testing.T) {
	out := FormatTaskList([]*domain.Task{
		{ID: "m1", Name: "Launch", DurationDays: 0, Status: domain.TaskNotStarted},
	})

	assert.Contains(t, out, "◆")
	assert.NotContains(t, out, "0d")
}

func TestFormatScheduleResult_CriticalPathAndDeadlines(t *testing.T) {
	tasks := []*domain.Task{
		{ID: "a", Name: "Design"},
		{ID: "b", Name: "Build"},
	}
	res := &schedule.Result{
		Tasks: map[string]*schedule.TaskSchedule{
			"a": {TaskID: "a", IsCritical: true},
			"b": {TaskID: "b", IsCritical: true, LateByDays: 2},
		},
		Order:         []string{"a", "b"},
		CriticalPath:  []string{"a", "b"},
		ProjectFinish: domain.Date(2025, 1, 17),
	}

	out := FormatScheduleResult(res, tasks)

	assert.Contains(t, out, "2025-01-17")
	assert.Contains(t, out, "Design → Build")
	assert.Contains(t, out, "misses its deadline by 2 working day(s)")
}

func TestFormatDependencyList_ResolvesNames(t *testing.T) {
	tasks := []*domain.Task{
		{ID: "a", Name: "Design"},
		{ID: "b", Name: "Build"},
	}
	deps := []domain.Dependency{
		{PredecessorID: "a", SuccessorID: "b", Type: domain.FinishToStart, LagDays: 2},
	}

	out := FormatDependencyList(deps, tasks)

	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "Build")
	assert.Contains(t, out, "FS")
	assert.Contains(t, out, "2")
}
