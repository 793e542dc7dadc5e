package domain

import (
	"fmt"
	"time"
)

// Task is a schedulable unit of work inside a project. Planned dates are
// caller-supplied anchors; computed dates are derived by the scheduler and
// overwritten on every scheduling run. Actual dates, when present, pin the
// computed dates.
type Task struct {
	ID        string
	ProjectID string
	Name      string
	Notes     string

	DurationDays    int
	Status          TaskStatus
	Priority        TaskPriority
	PercentComplete float64

	PlannedStart *time.Time
	Deadline     *time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time

	// Derived by the scheduler, persisted for display.
	ComputedStart *time.Time
	ComputedEnd   *time.Time
	ComputedFloat *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsMilestone reports whether the task has zero duration.
func (t *Task) IsMilestone() bool {
	return t.DurationDays <= 0
}

// Validate enforces the task record invariants.
func (t *Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if t.DurationDays < 0 {
		return fmt.Errorf("duration_days must be >= 0, got %d", t.DurationDays)
	}
	if t.PercentComplete < 0 || t.PercentComplete > 100 {
		return fmt.Errorf("percent_complete must be in [0, 100], got %.1f", t.PercentComplete)
	}
	if t.Status != "" && !ValidTaskStatuses[string(t.Status)] {
		return fmt.Errorf("unknown task status %q", t.Status)
	}
	if t.ActualEnd != nil && t.PercentComplete != 100 {
		return fmt.Errorf("task %q has an actual end date but is %.1f%% complete", t.Name, t.PercentComplete)
	}
	if t.ActualStart != nil && t.Status == TaskNotStarted {
		return fmt.Errorf("task %q has an actual start date but status not_started", t.Name)
	}
	if t.ActualStart != nil && t.ActualEnd != nil && t.ActualEnd.Before(*t.ActualStart) {
		return fmt.Errorf("task %q actual end precedes actual start", t.Name)
	}
	return nil
}
