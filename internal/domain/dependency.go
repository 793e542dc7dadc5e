package domain

import (
	"fmt"
	"time"
)

// Dependency is a typed edge between two tasks in the same project.
// LagDays is a signed offset in working days applied to the constraint.
type Dependency struct {
	PredecessorID string
	SuccessorID   string
	Type          DependencyType
	LagDays       int
	CreatedAt     time.Time
}

func (d *Dependency) Validate() error {
	if d.PredecessorID == "" || d.SuccessorID == "" {
		return fmt.Errorf("dependency requires both predecessor and successor")
	}
	if d.PredecessorID == d.SuccessorID {
		return fmt.Errorf("task cannot depend on itself")
	}
	if !ValidDependencyTypes[string(d.Type)] {
		return fmt.Errorf("unknown dependency type %q", d.Type)
	}
	return nil
}
