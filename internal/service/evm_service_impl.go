package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/evm"
	"github.com/jmorand/planline/internal/repository"
)

type evmService struct {
	projects  repository.ProjectRepo
	tasks     repository.TaskRepo
	calendars repository.CalendarRepo
	costs     repository.CostRepo
	baselines repository.BaselineRepo
	observer  UseCaseObserver
}

func NewEVMService(
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	calendars repository.CalendarRepo,
	costs repository.CostRepo,
	baselines repository.BaselineRepo,
	observers ...UseCaseObserver,
) EVMService {
	return &evmService{
		projects:  projects,
		tasks:     tasks,
		calendars: calendars,
		costs:     costs,
		baselines: baselines,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *evmService) Metrics(ctx context.Context, projectID, baselineID string, asOf time.Time) (*evm.Metrics, error) {
	var metrics *evm.Metrics
	fields := map[string]any{"project": projectID, "as_of": asOf.Format("2006-01-02")}
	err := observe(ctx, s.observer, "evm.metrics", fields, func() error {
		p, err := s.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}

		baseline, err := s.loadBaseline(ctx, projectID, baselineID)
		if err != nil {
			return err
		}
		tasks, err := s.tasks.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		costs, err := s.costs.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		cal, err := s.calendars.GetByID(ctx, p.CalendarID)
		if err != nil {
			return err
		}

		metrics, err = evm.Compute(evm.Input{
			Baseline:  baseline,
			Tasks:     tasks,
			CostItems: costs,
			Calendar:  cal,
			AsOf:      asOf,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

// loadBaseline resolves the reference plan: the named baseline when an ID is
// given, otherwise the latest. A missing baseline surfaces as ErrNoBaseline
// so callers can distinguish "never baselined" from a real lookup failure.
func (s *evmService) loadBaseline(ctx context.Context, projectID, baselineID string) (*domain.Baseline, error) {
	if baselineID != "" {
		b, err := s.baselines.GetByID(ctx, baselineID)
		if err != nil {
			return nil, err
		}
		if b.ProjectID != projectID {
			return nil, fmt.Errorf("baseline %s belongs to another project: %w", baselineID, repository.ErrNotFound)
		}
		return b, nil
	}
	b, err := s.baselines.Latest(ctx, projectID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("project %s: %w", projectID, evm.ErrNoBaseline)
	}
	return b, err
}
