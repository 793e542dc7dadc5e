package domain

import (
	"fmt"
	"time"
)

// Resource is a person or machine that can be assigned to tasks.
type Resource struct {
	ID         string
	Name       string
	Role       string
	HourlyRate float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r *Resource) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("resource name is required")
	}
	if r.HourlyRate < 0 {
		return fmt.Errorf("hourly_rate must be >= 0, got %.2f", r.HourlyRate)
	}
	return nil
}

// Assignment links a resource to a task at a percentage of the resource's
// working day. AllocationPercent above 100 is tolerated only transiently in
// what-if simulation; persisted assignments are validated to [0, 100].
type Assignment struct {
	ID                string
	ResourceID        string
	TaskID            string
	AllocationPercent float64
	PlannedHours      float64
	LoggedHours       float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (a *Assignment) Validate() error {
	if a.ResourceID == "" || a.TaskID == "" {
		return fmt.Errorf("assignment requires both resource and task")
	}
	if a.AllocationPercent < 0 || a.AllocationPercent > 100 {
		return fmt.Errorf("allocation_percent must be in [0, 100], got %.1f", a.AllocationPercent)
	}
	if a.PlannedHours < 0 {
		return fmt.Errorf("planned_hours must be >= 0, got %.1f", a.PlannedHours)
	}
	if a.LoggedHours < 0 {
		return fmt.Errorf("logged_hours must be >= 0, got %.1f", a.LoggedHours)
	}
	return nil
}
