package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/repository"
)

type resourceService struct {
	resources   repository.ResourceRepo
	assignments repository.AssignmentRepo
	tasks       repository.TaskRepo
}

func NewResourceService(resources repository.ResourceRepo, assignments repository.AssignmentRepo, tasks repository.TaskRepo) ResourceService {
	return &resourceService{resources: resources, assignments: assignments, tasks: tasks}
}

func (s *resourceService) Create(ctx context.Context, r *domain.Resource) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if err := r.Validate(); err != nil {
		return err
	}
	return s.resources.Create(ctx, r)
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	return s.resources.GetByID(ctx, id)
}

func (s *resourceService) List(ctx context.Context) ([]*domain.Resource, error) {
	return s.resources.List(ctx)
}

func (s *resourceService) Update(ctx context.Context, r *domain.Resource) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.UpdatedAt = time.Now().UTC()
	return s.resources.Update(ctx, r)
}

func (s *resourceService) Delete(ctx context.Context, id string) error {
	return s.resources.Delete(ctx, id)
}

func (s *resourceService) Assign(ctx context.Context, a *domain.Assignment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := a.Validate(); err != nil {
		return err
	}
	// Both endpoints must exist; the foreign keys would catch this too, but
	// the repo error would name the wrong thing.
	if _, err := s.resources.GetByID(ctx, a.ResourceID); err != nil {
		return err
	}
	if _, err := s.tasks.GetByID(ctx, a.TaskID); err != nil {
		return err
	}
	return s.assignments.Create(ctx, a)
}

func (s *resourceService) UpdateAssignment(ctx context.Context, a *domain.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.UpdatedAt = time.Now().UTC()
	return s.assignments.Update(ctx, a)
}

func (s *resourceService) Unassign(ctx context.Context, assignmentID string) error {
	return s.assignments.Delete(ctx, assignmentID)
}

func (s *resourceService) ListAssignmentsByProject(ctx context.Context, projectID string) ([]*domain.Assignment, error) {
	return s.assignments.ListByProject(ctx, projectID)
}
