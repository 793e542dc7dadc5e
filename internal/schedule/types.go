package schedule

import (
	"time"

	"github.com/jmorand/planline/internal/domain"
)

// Input is the immutable snapshot a scheduling run operates on. The caller
// owns the slices; the scheduler never mutates them.
type Input struct {
	// ProjectStart anchors tasks that have no predecessors and no planned
	// start of their own.
	ProjectStart time.Time
	Tasks        []*domain.Task
	Dependencies []domain.Dependency
	Calendar     *domain.WorkingCalendar
}

// TaskSchedule holds the computed dates for a single task.
type TaskSchedule struct {
	TaskID         string
	EarliestStart  time.Time
	EarliestFinish time.Time
	LatestStart    time.Time
	LatestFinish   time.Time
	TotalFloatDays int
	IsCritical     bool
	// LateByDays is set when the task has a deadline and the earliest
	// finish overruns it (in working days).
	LateByDays int
}

// Result is the outcome of one scheduling run. Tasks maps task ID to its
// computed schedule; CriticalPath lists the zero-float task IDs in
// topological order.
type Result struct {
	Tasks         map[string]*TaskSchedule
	Order         []string
	CriticalPath  []string
	ProjectFinish time.Time
}

// Apply returns copies of the input tasks annotated with computed dates.
// Tasks absent from the result are returned unchanged. The originals are
// never mutated.
func (r *Result) Apply(tasks []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		c := *t
		if ts, ok := r.Tasks[t.ID]; ok {
			start := ts.EarliestStart
			end := ts.EarliestFinish
			fl := ts.TotalFloatDays
			c.ComputedStart = &start
			c.ComputedEnd = &end
			c.ComputedFloat = &fl
		}
		out = append(out, &c)
	}
	return out
}
