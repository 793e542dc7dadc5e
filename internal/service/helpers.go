package service

import (
	"context"
	"time"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/repository"
)

// projectSnapshot is everything the planning engines need about one project,
// loaded in a single place so every service sees the same picture.
type projectSnapshot struct {
	Project      *domain.Project
	Tasks        []*domain.Task
	Dependencies []domain.Dependency
	Calendar     *domain.WorkingCalendar
}

func loadSnapshot(
	ctx context.Context,
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	dependencies repository.DependencyRepo,
	calendars repository.CalendarRepo,
	projectID string,
) (*projectSnapshot, error) {
	p, err := projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ts, err := tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	deps, err := dependencies.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	cal, err := calendars.GetByID(ctx, p.CalendarID)
	if err != nil {
		return nil, err
	}
	return &projectSnapshot{Project: p, Tasks: ts, Dependencies: deps, Calendar: cal}, nil
}

// start resolves the scheduling anchor: the project start date, or today
// when none was set.
func (s *projectSnapshot) start() time.Time {
	if s.Project.StartDate != nil {
		return *s.Project.StartDate
	}
	now := time.Now().UTC()
	return domain.Date(now.Year(), now.Month(), now.Day())
}
