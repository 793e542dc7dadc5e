package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmorand/planline/internal/domain"
)

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectStart(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &d
	}
}

func WithCalendarID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.CalendarID = id
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	start := domain.Date(2025, 1, 6)
	p := &domain.Project{
		ID:         uuid.New().String(),
		Name:       name,
		Status:     domain.ProjectActive,
		StartDate:  &start,
		CalendarID: "default",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithDuration(days int) TaskOption {
	return func(t *domain.Task) {
		t.DurationDays = days
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithPercentComplete(pct float64) TaskOption {
	return func(t *domain.Task) {
		t.PercentComplete = pct
	}
}

func WithPlannedStart(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.PlannedStart = &d
	}
}

func WithDeadline(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.Deadline = &d
	}
}

func WithActuals(start, end *time.Time) TaskOption {
	return func(t *domain.Task) {
		t.ActualStart = start
		t.ActualEnd = end
	}
}

func NewTestTask(projectID, name string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:           uuid.New().String(),
		ProjectID:    projectID,
		Name:         name,
		DurationDays: 1,
		Status:       domain.TaskNotStarted,
		Priority:     domain.PriorityMedium,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestDependency(predID, succID string, typ domain.DependencyType, lag int) *domain.Dependency {
	return &domain.Dependency{
		PredecessorID: predID,
		SuccessorID:   succID,
		Type:          typ,
		LagDays:       lag,
		CreatedAt:     time.Now().UTC(),
	}
}

func NewTestResource(name string, rate float64) *domain.Resource {
	now := time.Now().UTC()
	return &domain.Resource{
		ID:         uuid.New().String(),
		Name:       name,
		HourlyRate: rate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func NewTestAssignment(resourceID, taskID string, pct float64) *domain.Assignment {
	now := time.Now().UTC()
	return &domain.Assignment{
		ID:                uuid.New().String(),
		ResourceID:        resourceID,
		TaskID:            taskID,
		AllocationPercent: pct,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Cost item options
type CostOption func(*domain.CostItem)

func WithCostTask(taskID string) CostOption {
	return func(c *domain.CostItem) {
		c.TaskID = &taskID
	}
}

func WithActualAmount(amount float64, incurred *time.Time) CostOption {
	return func(c *domain.CostItem) {
		c.ActualAmount = amount
		c.IncurredDate = incurred
	}
}

func NewTestCostItem(projectID string, planned float64, opts ...CostOption) *domain.CostItem {
	now := time.Now().UTC()
	c := &domain.CostItem{
		ID:            uuid.New().String(),
		ProjectID:     projectID,
		Type:          domain.CostOther,
		PlannedAmount: planned,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
