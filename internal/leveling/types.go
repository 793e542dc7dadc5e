package leveling

import (
	"time"

	"github.com/jmorand/planline/internal/domain"
)

// DefaultThresholdPercent is the allocation ceiling above which a resource
// day counts as over-allocated.
const DefaultThresholdPercent = 100.0

// DefaultMaxIterations bounds the auto-leveling horizon: one iteration is
// one single-day shift of one task.
const DefaultMaxIterations = 60

// Input is the immutable snapshot a leveling pass operates on. Tasks carry
// computed dates from a prior scheduling run; the analyzer works on copies
// and never mutates the caller's slices.
type Input struct {
	ProjectStart     time.Time
	Tasks            []*domain.Task
	Dependencies     []domain.Dependency
	Assignments      []*domain.Assignment
	Calendar         *domain.WorkingCalendar
	ThresholdPercent float64
	MaxIterations    int

	// Strict makes AutoLevel fail with ErrUnresolvedConflict instead of
	// returning flagged conflicts when none of the contributors can move
	// or the iteration horizon runs out.
	Strict bool
}

func (in Input) threshold() float64 {
	if in.ThresholdPercent > 0 {
		return in.ThresholdPercent
	}
	return DefaultThresholdPercent
}

func (in Input) maxIterations() int {
	if in.MaxIterations > 0 {
		return in.MaxIterations
	}
	return DefaultMaxIterations
}

// ConflictEntry is one task's contribution to an over-allocated range.
type ConflictEntry struct {
	TaskID            string
	TaskName          string
	AllocationPercent float64
}

// Conflict reports a resource over-allocated across a contiguous range of
// working days by the same set of tasks. Unresolved is set when auto
// leveling could not clear the conflict within its horizon.
type Conflict struct {
	ResourceID             string
	Start                  time.Time
	End                    time.Time
	TotalAllocationPercent float64
	Entries                []ConflictEntry
	Unresolved             bool
}

// Action records one shift applied during auto leveling.
type Action struct {
	TaskID     string
	TaskName   string
	ResourceID string
	OldStart   time.Time
	NewStart   time.Time
	Reason     string
}

// Result is the outcome of an auto-leveling run. Tasks are annotated copies
// reflecting the shifted schedule; Conflicts lists whatever remains, with
// unresolvable entries flagged rather than dropped.
type Result struct {
	Tasks      []*domain.Task
	Actions    []Action
	Conflicts  []Conflict
	Iterations int
}
