package schedule

import (
	"errors"
	"fmt"
)

// ErrCycle indicates the dependency graph is not acyclic. Scheduling aborts
// before computing any dates.
var ErrCycle = errors.New("circular dependency")

// ErrInconsistent indicates the scheduler produced output violating one of
// its own invariants. It should never surface with correct inputs.
var ErrInconsistent = errors.New("inconsistent schedule")

// CycleError names one edge participating in a dependency cycle.
type CycleError struct {
	PredecessorID string
	SuccessorID   string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency: edge %s -> %s closes a cycle", e.PredecessorID, e.SuccessorID)
}

func (e *CycleError) Unwrap() error { return ErrCycle }
