package service

import (
	"context"
	"time"

	"github.com/jmorand/planline/internal/db"
	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/leveling"
	"github.com/jmorand/planline/internal/repository"
)

type levelingService struct {
	projects     repository.ProjectRepo
	tasks        repository.TaskRepo
	dependencies repository.DependencyRepo
	calendars    repository.CalendarRepo
	assignments  repository.AssignmentRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewLevelingService(
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	dependencies repository.DependencyRepo,
	calendars repository.CalendarRepo,
	assignments repository.AssignmentRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) LevelingService {
	return &levelingService{
		projects:     projects,
		tasks:        tasks,
		dependencies: dependencies,
		calendars:    calendars,
		assignments:  assignments,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *levelingService) Analyze(ctx context.Context, projectID string) ([]leveling.Conflict, error) {
	var conflicts []leveling.Conflict
	err := observe(ctx, s.observer, "leveling.analyze", map[string]any{"project": projectID}, func() error {
		in, err := s.load(ctx, projectID)
		if err != nil {
			return err
		}
		conflicts, err = leveling.FindConflicts(*in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (s *levelingService) AutoLevel(ctx context.Context, projectID string) (*leveling.Result, error) {
	var res *leveling.Result
	err := observe(ctx, s.observer, "leveling.auto", map[string]any{"project": projectID}, func() error {
		in, err := s.load(ctx, projectID)
		if err != nil {
			return err
		}
		res, err = leveling.AutoLevel(*in)
		if err != nil {
			return err
		}
		return s.persist(ctx, res.Tasks)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *levelingService) Shift(ctx context.Context, projectID, taskID string, newStart time.Time) (*leveling.Result, error) {
	var res *leveling.Result
	fields := map[string]any{"project": projectID, "task": taskID}
	err := observe(ctx, s.observer, "leveling.shift", fields, func() error {
		in, err := s.load(ctx, projectID)
		if err != nil {
			return err
		}
		res, err = leveling.ManualShift(*in, taskID, newStart)
		if err != nil {
			return err
		}
		return s.persist(ctx, res.Tasks)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *levelingService) load(ctx context.Context, projectID string) (*leveling.Input, error) {
	snap, err := loadSnapshot(ctx, s.projects, s.tasks, s.dependencies, s.calendars, projectID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &leveling.Input{
		ProjectStart: snap.start(),
		Tasks:        snap.Tasks,
		Dependencies: snap.Dependencies,
		Assignments:  assignments,
		Calendar:     snap.Calendar,
	}, nil
}

// persist writes the shifted planned starts alongside the fresh computed
// dates; both change together or not at all.
func (s *levelingService) persist(ctx context.Context, tasks []*domain.Task) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		for _, t := range tasks {
			if err := txTasks.Update(ctx, t); err != nil {
				return err
			}
			if err := txTasks.UpdateComputedDates(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
}
