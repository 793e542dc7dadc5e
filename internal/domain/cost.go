package domain

import (
	"fmt"
	"time"
)

// CostItem is a planned and/or actual budget line. TaskID is optional: lines
// without a task linkage are distributed across tasks duration-weighted when
// a baseline is built, so planned-value integration stays well-defined.
type CostItem struct {
	ID            string
	ProjectID     string
	TaskID        *string
	Description   string
	Type          CostType
	PlannedAmount float64
	ActualAmount  float64
	IncurredDate  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c *CostItem) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("cost item requires a project")
	}
	if c.PlannedAmount < 0 {
		return fmt.Errorf("planned_amount must be >= 0, got %.2f", c.PlannedAmount)
	}
	if c.ActualAmount < 0 {
		return fmt.Errorf("actual_amount must be >= 0, got %.2f", c.ActualAmount)
	}
	return nil
}
