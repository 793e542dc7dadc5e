package service

import (
	"context"
	"time"

	"github.com/jmorand/planline/internal/db"
	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/evm"
	"github.com/jmorand/planline/internal/repository"
)

type baselineService struct {
	projects     repository.ProjectRepo
	tasks        repository.TaskRepo
	dependencies repository.DependencyRepo
	calendars    repository.CalendarRepo
	assignments  repository.AssignmentRepo
	resources    repository.ResourceRepo
	costs        repository.CostRepo
	baselines    repository.BaselineRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewBaselineService(
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	dependencies repository.DependencyRepo,
	calendars repository.CalendarRepo,
	assignments repository.AssignmentRepo,
	resources repository.ResourceRepo,
	costs repository.CostRepo,
	baselines repository.BaselineRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) BaselineService {
	return &baselineService{
		projects:     projects,
		tasks:        tasks,
		dependencies: dependencies,
		calendars:    calendars,
		assignments:  assignments,
		resources:    resources,
		costs:        costs,
		baselines:    baselines,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// Create snapshots the current plan. Tasks must carry computed dates from a
// scheduling run; a project that was never scheduled cannot be baselined.
func (s *baselineService) Create(ctx context.Context, projectID, name string) (*domain.Baseline, error) {
	var baseline *domain.Baseline
	fields := map[string]any{"project": projectID, "name": name}
	err := observe(ctx, s.observer, "baseline.create", fields, func() error {
		snap, err := loadSnapshot(ctx, s.projects, s.tasks, s.dependencies, s.calendars, projectID)
		if err != nil {
			return err
		}
		scheduled := false
		for _, t := range snap.Tasks {
			if t.ComputedStart != nil {
				scheduled = true
				break
			}
		}
		if len(snap.Tasks) > 0 && !scheduled {
			return ErrProjectNotScheduled
		}

		assignments, err := s.assignments.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		resources, err := s.resources.List(ctx)
		if err != nil {
			return err
		}
		costs, err := s.costs.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}

		baseline, err = evm.BuildBaseline(evm.SnapshotInput{
			ProjectID:    projectID,
			Name:         name,
			Tasks:        snap.Tasks,
			Dependencies: snap.Dependencies,
			Assignments:  assignments,
			Resources:    resources,
			CostItems:    costs,
			Now:          time.Now(),
		})
		if err != nil {
			return err
		}

		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteBaselineRepo(tx).Create(ctx, baseline)
		})
	})
	if err != nil {
		return nil, err
	}
	return baseline, nil
}

func (s *baselineService) List(ctx context.Context, projectID string) ([]*domain.Baseline, error) {
	return s.baselines.ListByProject(ctx, projectID)
}

func (s *baselineService) Latest(ctx context.Context, projectID string) (*domain.Baseline, error) {
	return s.baselines.Latest(ctx, projectID)
}

func (s *baselineService) Delete(ctx context.Context, id string) error {
	return s.baselines.Delete(ctx, id)
}
