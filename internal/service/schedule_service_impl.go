package service

import (
	"context"

	"github.com/jmorand/planline/internal/db"
	"github.com/jmorand/planline/internal/repository"
	"github.com/jmorand/planline/internal/schedule"
)

type scheduleService struct {
	projects     repository.ProjectRepo
	tasks        repository.TaskRepo
	dependencies repository.DependencyRepo
	calendars    repository.CalendarRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewScheduleService(
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	dependencies repository.DependencyRepo,
	calendars repository.CalendarRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		projects:     projects,
		tasks:        tasks,
		dependencies: dependencies,
		calendars:    calendars,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) Preview(ctx context.Context, projectID string) (*ScheduleOutcome, error) {
	var outcome *ScheduleOutcome
	err := observe(ctx, s.observer, "schedule.preview", map[string]any{"project": projectID}, func() error {
		var err error
		outcome, err = s.run(ctx, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// Reschedule runs the pass and writes every task's computed dates in one
// transaction, so a half-updated schedule can never be observed.
func (s *scheduleService) Reschedule(ctx context.Context, projectID string) (*ScheduleOutcome, error) {
	var outcome *ScheduleOutcome
	err := observe(ctx, s.observer, "schedule.reschedule", map[string]any{"project": projectID}, func() error {
		var err error
		outcome, err = s.run(ctx, projectID)
		if err != nil {
			return err
		}
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txTasks := repository.NewSQLiteTaskRepo(tx)
			for _, t := range outcome.Tasks {
				if err := txTasks.UpdateComputedDates(ctx, t); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (s *scheduleService) run(ctx context.Context, projectID string) (*ScheduleOutcome, error) {
	snap, err := loadSnapshot(ctx, s.projects, s.tasks, s.dependencies, s.calendars, projectID)
	if err != nil {
		return nil, err
	}
	res, err := schedule.Run(schedule.Input{
		ProjectStart: snap.start(),
		Tasks:        snap.Tasks,
		Dependencies: snap.Dependencies,
		Calendar:     snap.Calendar,
	})
	if err != nil {
		return nil, err
	}
	return &ScheduleOutcome{Result: res, Tasks: res.Apply(snap.Tasks)}, nil
}
