package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/repository"
	"github.com/jmorand/planline/internal/schedule"
)

type taskService struct {
	tasks        repository.TaskRepo
	dependencies repository.DependencyRepo
	observer     UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, dependencies repository.DependencyRepo, observers ...UseCaseObserver) TaskService {
	return &taskService{
		tasks:        tasks,
		dependencies: dependencies,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskNotStarted
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return err
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) SetProgress(ctx context.Context, id string, percent float64, now time.Time) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("percent must be in [0, 100], got %.1f", percent)
	}
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	t.PercentComplete = percent
	switch {
	case percent == 100:
		t.Status = domain.TaskCompleted
		if t.ActualEnd == nil {
			day := domain.Date(now.Year(), now.Month(), now.Day())
			t.ActualEnd = &day
			if t.ActualStart == nil {
				t.ActualStart = &day
			}
		}
	case percent > 0 && t.Status == domain.TaskNotStarted:
		t.Status = domain.TaskInProgress
	case percent < 100 && t.Status == domain.TaskCompleted:
		t.Status = domain.TaskInProgress
		t.ActualEnd = nil
	}
	t.UpdatedAt = now.UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Start(ctx context.Context, id string, day time.Time) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	start := domain.Date(day.Year(), day.Month(), day.Day())
	t.ActualStart = &start
	if t.Status == domain.TaskNotStarted {
		t.Status = domain.TaskInProgress
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// AddDependency validates the edge against the live graph before storing it:
// both endpoints must exist in the same project and the new edge must not
// close a cycle.
func (s *taskService) AddDependency(ctx context.Context, d *domain.Dependency) error {
	fields := map[string]any{"predecessor": d.PredecessorID, "successor": d.SuccessorID}
	return observe(ctx, s.observer, "task.add_dependency", fields, func() error {
		if d.PredecessorID == d.SuccessorID {
			return ErrSelfDependency
		}
		if err := d.Validate(); err != nil {
			return err
		}

		pred, err := s.tasks.GetByID(ctx, d.PredecessorID)
		if err != nil {
			return err
		}
		succ, err := s.tasks.GetByID(ctx, d.SuccessorID)
		if err != nil {
			return err
		}
		if pred.ProjectID != succ.ProjectID {
			return fmt.Errorf("%s -> %s: %w", d.PredecessorID, d.SuccessorID, ErrCrossProjectDependency)
		}

		tasks, err := s.tasks.ListByProject(ctx, pred.ProjectID)
		if err != nil {
			return err
		}
		deps, err := s.dependencies.ListByProject(ctx, pred.ProjectID)
		if err != nil {
			return err
		}
		if err := schedule.DetectCycle(tasks, append(deps, *d)); err != nil {
			return err
		}

		d.CreatedAt = time.Now().UTC()
		return s.dependencies.Create(ctx, d)
	})
}

func (s *taskService) RemoveDependency(ctx context.Context, predecessorID, successorID string) error {
	return s.dependencies.Delete(ctx, predecessorID, successorID)
}

func (s *taskService) ListDependencies(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	return s.dependencies.ListByProject(ctx, projectID)
}
