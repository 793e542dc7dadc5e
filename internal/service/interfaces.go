package service

import (
	"context"
	"time"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/evm"
	"github.com/jmorand/planline/internal/leveling"
	"github.com/jmorand/planline/internal/schedule"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// SetProgress updates percent complete and, when the task crosses 100%,
	// stamps the actual end date.
	SetProgress(ctx context.Context, id string, percent float64, now time.Time) error
	// Start records the actual start date and flips the status.
	Start(ctx context.Context, id string, day time.Time) error
	Delete(ctx context.Context, id string) error

	// AddDependency stores a typed edge after rejecting self-loops,
	// cross-project edges and cycles.
	AddDependency(ctx context.Context, d *domain.Dependency) error
	RemoveDependency(ctx context.Context, predecessorID, successorID string) error
	ListDependencies(ctx context.Context, projectID string) ([]domain.Dependency, error)
}

type CalendarService interface {
	Create(ctx context.Context, c *domain.WorkingCalendar) error
	GetByID(ctx context.Context, id string) (*domain.WorkingCalendar, error)
	List(ctx context.Context) ([]*domain.WorkingCalendar, error)
	Update(ctx context.Context, c *domain.WorkingCalendar) error
	AddHoliday(ctx context.Context, calendarID string, day time.Time) error
	RemoveHoliday(ctx context.Context, calendarID string, day time.Time) error
}

type ResourceService interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	Delete(ctx context.Context, id string) error

	Assign(ctx context.Context, a *domain.Assignment) error
	UpdateAssignment(ctx context.Context, a *domain.Assignment) error
	Unassign(ctx context.Context, assignmentID string) error
	ListAssignmentsByProject(ctx context.Context, projectID string) ([]*domain.Assignment, error)
}

type CostService interface {
	Create(ctx context.Context, c *domain.CostItem) error
	GetByID(ctx context.Context, id string) (*domain.CostItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.CostItem, error)
	Update(ctx context.Context, c *domain.CostItem) error
	Delete(ctx context.Context, id string) error
}

// ScheduleOutcome pairs the raw scheduling result with the annotated tasks
// it was applied to.
type ScheduleOutcome struct {
	Result *schedule.Result
	Tasks  []*domain.Task
}

type ScheduleService interface {
	// Reschedule runs the full forward/backward pass for a project and
	// persists the computed dates atomically.
	Reschedule(ctx context.Context, projectID string) (*ScheduleOutcome, error)
	// Preview runs the pass without touching the database.
	Preview(ctx context.Context, projectID string) (*ScheduleOutcome, error)
}

type LevelingService interface {
	// Analyze reports resource over-allocation without changing anything.
	Analyze(ctx context.Context, projectID string) ([]leveling.Conflict, error)
	// AutoLevel shifts tasks to clear conflicts and persists the new planned
	// starts and computed dates.
	AutoLevel(ctx context.Context, projectID string) (*leveling.Result, error)
	// Shift moves one task to an explicit start and persists the outcome.
	Shift(ctx context.Context, projectID, taskID string, newStart time.Time) (*leveling.Result, error)
}

type BaselineService interface {
	Create(ctx context.Context, projectID, name string) (*domain.Baseline, error)
	List(ctx context.Context, projectID string) ([]*domain.Baseline, error)
	Latest(ctx context.Context, projectID string) (*domain.Baseline, error)
	Delete(ctx context.Context, id string) error
}

type EVMService interface {
	// Metrics computes earned-value metrics against the latest baseline
	// (or the named one when baselineID is non-empty).
	Metrics(ctx context.Context, projectID, baselineID string, asOf time.Time) (*evm.Metrics, error)
}
