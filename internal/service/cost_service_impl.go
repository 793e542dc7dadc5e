package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/repository"
)

type costService struct {
	costs repository.CostRepo
}

func NewCostService(costs repository.CostRepo) CostService {
	return &costService{costs: costs}
}

func (s *costService) Create(ctx context.Context, c *domain.CostItem) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Type == "" {
		c.Type = domain.CostOther
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return s.costs.Create(ctx, c)
}

func (s *costService) GetByID(ctx context.Context, id string) (*domain.CostItem, error) {
	return s.costs.GetByID(ctx, id)
}

func (s *costService) ListByProject(ctx context.Context, projectID string) ([]*domain.CostItem, error) {
	return s.costs.ListByProject(ctx, projectID)
}

func (s *costService) Update(ctx context.Context, c *domain.CostItem) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.costs.Update(ctx, c)
}

func (s *costService) Delete(ctx context.Context, id string) error {
	return s.costs.Delete(ctx, id)
}
