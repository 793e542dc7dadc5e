package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/repository"
)

type calendarService struct {
	calendars repository.CalendarRepo
}

func NewCalendarService(calendars repository.CalendarRepo) CalendarService {
	return &calendarService{calendars: calendars}
}

func (s *calendarService) Create(ctx context.Context, c *domain.WorkingCalendar) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Holidays == nil {
		c.Holidays = map[string]bool{}
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := c.Validate(); err != nil {
		return err
	}
	return s.calendars.Create(ctx, c)
}

func (s *calendarService) GetByID(ctx context.Context, id string) (*domain.WorkingCalendar, error) {
	return s.calendars.GetByID(ctx, id)
}

func (s *calendarService) List(ctx context.Context) ([]*domain.WorkingCalendar, error) {
	return s.calendars.List(ctx)
}

func (s *calendarService) Update(ctx context.Context, c *domain.WorkingCalendar) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.calendars.Update(ctx, c)
}

func (s *calendarService) AddHoliday(ctx context.Context, calendarID string, day time.Time) error {
	if _, err := s.calendars.GetByID(ctx, calendarID); err != nil {
		return err
	}
	return s.calendars.AddHoliday(ctx, calendarID, domain.DateKey(day))
}

func (s *calendarService) RemoveHoliday(ctx context.Context, calendarID string, day time.Time) error {
	return s.calendars.RemoveHoliday(ctx, calendarID, domain.DateKey(day))
}
