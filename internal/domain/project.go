package domain

import (
	"fmt"
	"time"
)

type Project struct {
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
	StartDate   *time.Time
	CalendarID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	return nil
}
