package domain

import "time"

// Baseline is an immutable snapshot of a project's planned schedule and
// cost, used as the EVM reference plan. Baselines are created once and read
// many times; re-baselining creates a new snapshot. The only mutation the
// system allows is deleting a baseline as a whole unit.
type Baseline struct {
	ID        string
	ProjectID string
	Name      string
	// StateHash fingerprints the task/dependency/cost snapshot the baseline
	// was taken from, so a baseline can be matched to the plan it captured.
	StateHash uint64
	CreatedAt time.Time

	Tasks []BaselineTask
}

// BaselineTask records one task's planned dates and cost at snapshot time.
type BaselineTask struct {
	BaselineID   string
	TaskID       string
	TaskName     string
	Start        *time.Time
	Finish       *time.Time
	DurationDays int
	PlannedCost  float64
	PlannedHours float64
}

// PlannedCostTotal sums the baseline planned cost over all tasks (BAC).
func (b *Baseline) PlannedCostTotal() float64 {
	var total float64
	for _, t := range b.Tasks {
		total += t.PlannedCost
	}
	return total
}
