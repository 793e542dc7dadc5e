package repository

import (
	"context"

	"github.com/jmorand/planline/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// UpdateComputedDates persists only the scheduler-derived columns.
	UpdateComputedDates(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	Delete(ctx context.Context, predecessorID, successorID string) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error)
	ListPredecessors(ctx context.Context, taskID string) ([]domain.Dependency, error)
	ListSuccessors(ctx context.Context, taskID string) ([]domain.Dependency, error)
}

type CalendarRepo interface {
	Create(ctx context.Context, c *domain.WorkingCalendar) error
	GetByID(ctx context.Context, id string) (*domain.WorkingCalendar, error)
	List(ctx context.Context) ([]*domain.WorkingCalendar, error)
	Update(ctx context.Context, c *domain.WorkingCalendar) error
	AddHoliday(ctx context.Context, calendarID, day string) error
	RemoveHoliday(ctx context.Context, calendarID, day string) error
	Delete(ctx context.Context, id string) error
}

type ResourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.Assignment, error)
	ListByResource(ctx context.Context, resourceID string) ([]*domain.Assignment, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Assignment, error)
	Update(ctx context.Context, a *domain.Assignment) error
	Delete(ctx context.Context, id string) error
}

type CostRepo interface {
	Create(ctx context.Context, c *domain.CostItem) error
	GetByID(ctx context.Context, id string) (*domain.CostItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.CostItem, error)
	Update(ctx context.Context, c *domain.CostItem) error
	Delete(ctx context.Context, id string) error
}

type BaselineRepo interface {
	// Create inserts the baseline header and all task rows.
	Create(ctx context.Context, b *domain.Baseline) error
	GetByID(ctx context.Context, id string) (*domain.Baseline, error)
	// ListByProject returns headers newest-first, without task rows.
	ListByProject(ctx context.Context, projectID string) ([]*domain.Baseline, error)
	// Latest returns the most recent baseline with task rows loaded.
	Latest(ctx context.Context, projectID string) (*domain.Baseline, error)
	Delete(ctx context.Context, id string) error
}
